package mmd2pdf

import (
	"context"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	c := newGoldmarkConverter()

	tests := []struct {
		name     string
		markdown string
		want     []string
	}{
		{
			name:     "heading",
			markdown: "# Title",
			want:     []string{"<h1", "Title</h1>"},
		},
		{
			name:     "image reference",
			markdown: "![Diagram](/tmp/cache/abc.png)",
			want:     []string{`<img src="/tmp/cache/abc.png"`, `alt="Diagram"`},
		},
		{
			name:     "gfm table",
			markdown: "| a | b |\n|---|---|\n| 1 | 2 |",
			want:     []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "highlighted code block",
			markdown: "```go\nfunc main() {}\n```",
			want:     []string{"<pre", "main"},
		},
		{
			name:     "pandoc title line passes through",
			markdown: "% My Doc\n\nBody text.",
			want:     []string{"Body text."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := c.ToHTML(context.Background(), tt.markdown)
			if err != nil {
				t.Fatalf("ToHTML() = %v", err)
			}
			if !strings.HasPrefix(got, "<!DOCTYPE html>") {
				t.Error("output is not a standalone document")
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output lacks %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newGoldmarkConverter()
	if _, err := c.ToHTML(ctx, "# Title"); err == nil {
		t.Error("canceled context should abort conversion")
	}
}
