package mmd2pdf

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ReplaceWithImages substitutes each diagram's original source span
// with a Markdown image reference to its rendered file. Diagrams
// without an entry in images are left untouched.
//
// Replacement runs bottom-up (descending start line) so that editing
// one region never shifts the offsets of regions still to be processed,
// and each diagram is replaced at its own occurrence: two verbatim
// copies of the same diagram at different positions each receive their
// own image reference.
func ReplaceWithImages(content string, images map[Diagram]string) string {
	diagrams := make([]Diagram, 0, len(images))
	for d := range images {
		diagrams = append(diagrams, d)
	}
	sort.Slice(diagrams, func(i, j int) bool {
		return diagrams[i].StartLine > diagrams[j].StartLine
	})

	for _, d := range diagrams {
		abs, err := filepath.Abs(images[d])
		if err != nil {
			abs = images[d]
		}
		ref := fmt.Sprintf("![Diagram](%s)", abs)

		start, ok := occurrenceAt(content, d.OriginalText, d.StartLine)
		if !ok {
			continue
		}
		content = content[:start] + ref + content[start+len(d.OriginalText):]
	}

	return content
}

// occurrenceAt finds the byte offset of the occurrence of text whose
// first line is startLine (1-based). A plain strings.Replace would pick
// an arbitrary occurrence when identical diagram text appears more than
// once, so the match is anchored to the diagram's own line span.
func occurrenceAt(content, text string, startLine int) (int, bool) {
	offset := 0
	for {
		i := strings.Index(content[offset:], text)
		if i < 0 {
			return 0, false
		}
		pos := offset + i
		if strings.Count(content[:pos], "\n")+1 == startLine {
			return pos, true
		}
		offset = pos + 1
	}
}
