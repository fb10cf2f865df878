package mmd2pdf

import (
	"regexp"
	"sort"
	"strings"
)

// Precompiled extraction patterns. (?s) makes '.' match newlines so
// multi-line diagram bodies are captured; (.*?) keeps the match
// non-greedy so adjacent diagrams are not merged.
var (
	// Fenced code blocks: ```mermaid ... ``` with newline-bounded body.
	fencedPattern = regexp.MustCompile("(?s)```mermaid\n(.*?)\n```")

	// Inline tagged regions: <mermaid>...</mermaid>, newlines optional.
	inlinePattern = regexp.MustCompile(`(?s)<mermaid>(.*?)</mermaid>`)

	// Line ending normalization, applied before extraction so the
	// newline-anchored fence pattern matches CRLF documents.
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// ExtractDiagrams scans Markdown text for Mermaid diagrams in both
// notations and returns them ordered by match start offset. It is a
// pure function of its input and never fails; a document without
// diagrams yields an empty slice.
//
// Line numbers are 1-based and computed by counting newlines before the
// match boundaries, so they are exact even when the same diagram text
// appears at several positions.
func ExtractDiagrams(content string) []Diagram {
	type span struct {
		start   int
		diagram Diagram
	}

	var spans []span
	for _, pattern := range []*regexp.Regexp{fencedPattern, inlinePattern} {
		for _, m := range pattern.FindAllStringSubmatchIndex(content, -1) {
			// m[0],m[1] bound the full match; m[2],m[3] the body group.
			startLine := strings.Count(content[:m[0]], "\n") + 1
			endLine := strings.Count(content[:m[1]], "\n") + 1

			spans = append(spans, span{
				start: m[0],
				diagram: Diagram{
					Content:      strings.TrimSpace(content[m[2]:m[3]]),
					StartLine:    startLine,
					EndLine:      endLine,
					OriginalText: content[m[0]:m[1]],
				},
			})
		}
	}

	// The two notations never match the same literal span, so ordering
	// by start offset gives document order.
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	diagrams := make([]Diagram, len(spans))
	for i, s := range spans {
		diagrams[i] = s.diagram
	}
	return diagrams
}
