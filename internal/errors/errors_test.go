package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "invalid element type",
			code:    CodeInvalidElementType,
			wantMsg: "Invalid element type",
			wantCat: CategoryReconcile,
		},
		{
			name:    "no mounted root",
			code:    CodeNoMountedRoot,
			wantMsg: "No mounted root",
			wantCat: CategoryReconcile,
		},
		{
			name:    "fixture error",
			code:    CodeFixtureDecode,
			wantMsg: "Invalid element tree document",
			wantCat: CategoryFixture,
		},
		{
			name:    "unknown error code",
			code:    "R999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestIsMatchesCode(t *testing.T) {
	sentinel := New(CodeHostNodeUnavailable)
	err := sentinel.WithDetail("instance %s", "div")

	if !stderrors.Is(err, sentinel) {
		t.Error("detailed copy should match its sentinel")
	}
	if sentinel.Detail != "" {
		t.Error("WithDetail should not modify the sentinel")
	}
	if stderrors.Is(err, New(CodeNoMountedRoot)) {
		t.Error("different codes should not match")
	}

	wrapped := fmt.Errorf("mount: %w", err)
	if !stderrors.Is(wrapped, sentinel) {
		t.Error("wrapped error should still match")
	}
	if stderrors.Is(Newf(CategoryConfig, "x"), Newf(CategoryConfig, "x")) {
		t.Error("errors without codes should not match by Is")
	}
}

func TestErrorString(t *testing.T) {
	err := New(CodeNoMountedRoot).WithDetail("container %s", "root")
	want := "R002: No mounted root: container root"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := stderrors.New("disk full")
	wrapped := New(CodeSnapshotStore).Wrap(cause)
	if !strings.HasSuffix(wrapped.Error(), "disk full") {
		t.Errorf("Error() = %q, want cause suffix", wrapped.Error())
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeSnapshotStore) != nil {
		t.Error("FromError(nil) should be nil")
	}
	orig := New(CodeConfigInvalid)
	if FromError(orig, CodeSnapshotStore) != orig {
		t.Error("FromError should return *Error unchanged")
	}
	got := FromError(stderrors.New("boom"), CodeSnapshotStore)
	if got.Code != CodeSnapshotStore {
		t.Errorf("Code = %q, want %q", got.Code, CodeSnapshotStore)
	}
}

func TestWithLocationReadsContext(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tree.yaml")
	content := "type: div\nprops:\n  id: a\nchildren: 3\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New(CodeFixtureDecode).WithLocation(file, 4, 11)
	if err.Location.String() != file+":4:11" {
		t.Errorf("Location = %q", err.Location.String())
	}
	if len(err.Context) == 0 {
		t.Fatal("expected context lines")
	}

	DisableColors()
	defer EnableColors()
	out := err.Format()
	if !strings.Contains(out, "children: 3") {
		t.Errorf("Format should include the offending line:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("Format should include a column marker:\n%s", out)
	}
}

func TestFormatCompact(t *testing.T) {
	err := New(CodeUnknownComponent).WithDetail("Widget")
	err.Location = &Location{File: "a.yaml", Line: 2}
	want := "a.yaml:2: R011: Unknown component: Widget"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestPrint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Print(&buf, fmt.Errorf("ctx: %w", New(CodeNoMountedRoot).WithSuggestion("mount first")))
	out := buf.String()
	if !strings.Contains(out, "ERROR R002") || !strings.Contains(out, "Hint: mount first") {
		t.Errorf("Print output:\n%s", out)
	}

	buf.Reset()
	Print(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("Print plain = %q", buf.String())
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("no codes registered")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Errorf("codes not sorted: %v", codes)
		}
	}
	if _, ok := GetTemplate(CodeLifecycleViolation); !ok {
		t.Error("lifecycle violation should be registered")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line too long: %q", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should produce no lines")
	}
}
