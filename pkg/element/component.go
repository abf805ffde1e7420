package element

// Component is a stateful component's public instance.
type Component interface {
	Render() Element
}

// PropsReceiver is implemented by components that hold their current props.
// SetProps is called after construction and before every re-render.
type PropsReceiver interface {
	SetProps(props Props)
}

// BeforeMounter is called once, before the first Render.
type BeforeMounter interface {
	OnBeforeMount()
}

// BeforeUpdater is called with the next props before the component's props
// are replaced and it re-renders.
type BeforeUpdater interface {
	OnBeforeUpdate(next Props)
}

// BeforeUnmounter is called once, before the component's subtree is unmounted.
type BeforeUnmounter interface {
	OnBeforeUnmount()
}

// Base holds the mutable props of a stateful component.
// Embed it to satisfy PropsReceiver.
type Base struct {
	props Props
}

// SetProps implements PropsReceiver.
func (b *Base) SetProps(props Props) {
	b.props = props
}

// Props returns the current props.
func (b *Base) Props() Props {
	return b.props
}
