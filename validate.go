package mmd2pdf

import (
	"fmt"
	"strings"
)

// DiagramType identifies a Mermaid diagram variant.
type DiagramType int

// Known diagram types.
const (
	Graph DiagramType = iota
	Flowchart
	SequenceDiagram
	ClassDiagram
	StateDiagram
	ERDiagram
	Pie
	Gantt
)

// typeSpec describes structural requirements for one diagram variant.
type typeSpec struct {
	typ               DiagramType
	minLines          int  // type line plus content lines
	requiresDirection bool // graph/flowchart need a direction token
}

// diagramTypes maps the normalized first token of a diagram to its
// structural requirements. The table is fixed; unknown tokens fail
// validation.
var diagramTypes = map[string]typeSpec{
	"graph":           {typ: Graph, minLines: 2, requiresDirection: true},
	"flowchart":       {typ: Flowchart, minLines: 2, requiresDirection: true},
	"sequencediagram": {typ: SequenceDiagram, minLines: 2},
	"classdiagram":    {typ: ClassDiagram, minLines: 2},
	"statediagram":    {typ: StateDiagram, minLines: 2},
	"erdiagram":       {typ: ERDiagram, minLines: 2},
	"pie":             {typ: Pie, minLines: 2},
	"gantt":           {typ: Gantt, minLines: 2},
}

// ValidateDiagram checks a diagram against the known type grammar.
// It returns nil when the diagram is structurally plausible.
//
// Only the type line and line counts are checked here. Node and edge
// syntax is the renderer's business: a diagram can pass validation and
// still fail at render time.
func ValidateDiagram(d Diagram) error {
	lines := strings.Split(strings.TrimSpace(d.Content), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return ErrEmptyDiagram
	}

	firstLine := strings.TrimSpace(lines[0])
	fields := strings.Fields(firstLine)

	// Normalize: lowercase, trailing colon stripped (sequenceDiagram: is
	// accepted by mermaid).
	token := strings.TrimSuffix(strings.ToLower(fields[0]), ":")

	spec, known := diagramTypes[token]
	if !known {
		return fmt.Errorf("%w: %s", ErrUnknownType, token)
	}

	if spec.requiresDirection && len(fields) < 2 {
		return fmt.Errorf("%w for %s diagram", ErrMissingDirection, token)
	}

	if len(lines) < spec.minLines {
		return fmt.Errorf("%w: %s requires at least %d", ErrTooFewLines, token, spec.minLines)
	}

	return nil
}

// ValidateDiagrams validates every diagram and returns one error string
// per invalid diagram, tagged with its source span. The slice is empty
// when all diagrams pass.
func ValidateDiagrams(diagrams []Diagram) []string {
	var errs []string
	for _, d := range diagrams {
		if err := ValidateDiagram(d); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", d.LineRange(), err))
		}
	}
	return errs
}
