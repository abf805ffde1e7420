package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

func renderCmd(a *app) *cobra.Command {
	var (
		trace  bool
		indent bool
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Mount a document and print the host tree",
		Long: `Mount a document into a fresh in-memory host and print the
resulting HTML.

Examples:
  reconcile render app.yaml
  reconcile render app.yaml --trace
  reconcile render app.json --indent`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.newSession()
			u, err := a.mountFile(s, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if trace {
				printTrace(out, u.Trace)
				fmt.Fprintln(out)
			}
			if indent {
				fmt.Fprint(out, s.Indented())
				return nil
			}
			fmt.Fprintln(out, u.HTML)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "Print the host adapter calls")
	cmd.Flags().BoolVarP(&indent, "indent", "i", false, "Print one node per line")

	return cmd
}

func diffCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff FILE_A FILE_B",
		Short: "Mount two documents in sequence and show what changed",
		Long: `Mount FILE_A, then mount FILE_B into the same container.

Prints the host adapter calls made by the second pass, followed by a
line diff of the host tree before and after.

Examples:
  reconcile diff before.yaml after.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.newSession()
			if _, err := a.mountFile(s, args[0]); err != nil {
				return err
			}
			before := s.Indented()

			u, err := a.mountFile(s, args[1])
			if err != nil {
				return err
			}
			after := s.Indented()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %d host calls\n", len(u.Trace))
			printTrace(out, u.Trace)
			fmt.Fprintln(out)
			writeLineDiff(out, before, after)
			return nil
		},
	}

	return cmd
}

// writeLineDiff writes a unified-style line diff of before and after.
func writeLineDiff(w io.Writer, before, after string) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprint(w, prefix, line)
			if !strings.HasSuffix(line, "\n") {
				fmt.Fprintln(w)
			}
		}
	}
}
