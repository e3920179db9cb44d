// Package diagram contains the input model handed from a parser to the layout engine:
// nodes in declaration order, the parent to child records between them, the flow
// orientation and any style classes.
package diagram

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Orientation is the direction the flow of a diagram runs in.
type Orientation string

// Supported orientations
const (
	LeftRight Orientation = "LR"
	TopDown   Orientation = "TD"
)

// ParseOrientation converts a header keyword into an Orientation. TB is accepted as an
// alias of TD. Other flow directions are not supported.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LR":
		return LeftRight, nil
	case "TD", "TB":
		return TopDown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
	}
}

// IsVertical reports whether nodes flow from top to bottom.
func (o Orientation) IsVertical() bool {
	return o == TopDown
}

// Record is one parent to child connection. An empty Label means the connection is
// unlabelled. Parent and child style classes are optional.
type Record struct {
	Parent      string `json:"parent"`
	Child       string `json:"child"`
	Label       string `json:"label,omitempty"`
	ParentClass string `json:"parent_class,omitempty"`
	ChildClass  string `json:"child_class,omitempty"`
}

// IsSelfLoop reports whether the record connects a node to itself.
func (r Record) IsSelfLoop() bool {
	return r.Parent == r.Child
}

// StyleClass is a named set of style properties, such as color=red.
type StyleClass struct {
	Name   string            `json:"name"`
	Styles map[string]string `json:"styles"`
}

// Diagram is a parsed flow diagram.
type Diagram struct {
	// Nodes lists node names in the order they were first declared.
	Nodes []string `json:"nodes"`
	// Edges maps a parent name to its outgoing records, in declaration order.
	Edges        map[string][]Record   `json:"edges"`
	Orientation  Orientation           `json:"orientation"`
	StyleClasses map[string]StyleClass `json:"style_classes,omitempty"`
	// NodeClasses assigns a style class to a node independently of any record.
	NodeClasses map[string]string `json:"node_classes,omitempty"`
	// Hints carries source-level directives, such as padding, for the caller to apply.
	Hints map[string]string `json:"hints,omitempty"`
}

// New creates an empty diagram flowing in orientation o.
func New(o Orientation) *Diagram {
	return &Diagram{
		Edges:        make(map[string][]Record),
		Orientation:  o,
		StyleClasses: make(map[string]StyleClass),
		NodeClasses:  make(map[string]string),
		Hints:        make(map[string]string),
	}
}

// Validate checks that the diagram has at least one node, a known orientation and
// records filed under their parent. An empty orientation is left for the render
// options to decide.
func (d *Diagram) Validate() error {
	if d == nil || len(d.Nodes) == 0 {
		return ErrEmptyDiagram
	}
	if d.Orientation != "" && d.Orientation != LeftRight && d.Orientation != TopDown {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, d.Orientation)
	}
	for parent, records := range d.Edges {
		for _, r := range records {
			if r.Parent != parent {
				return fmt.Errorf("record %s -> %s filed under %q", r.Parent, r.Child, parent)
			}
			if r.Parent == "" || r.Child == "" {
				return fmt.Errorf("record with empty node name under %q", parent)
			}
		}
	}
	return nil
}

// Records returns every record, grouped by parent in node declaration order.
// Records whose parent is missing from Nodes follow in parent name order.
func (d *Diagram) Records() []Record {
	var out []Record
	seen := make(map[string]bool, len(d.Nodes))
	for _, name := range d.Nodes {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, d.Edges[name]...)
	}
	for _, parent := range slices.Sorted(maps.Keys(d.Edges)) {
		if !seen[parent] {
			out = append(out, d.Edges[parent]...)
		}
	}
	return out
}

// ClassOf returns the style class assigned to a node, or "" when it has none.
// An explicit node class wins over classes carried by records.
func (d *Diagram) ClassOf(name string) string {
	if class := d.NodeClasses[name]; class != "" {
		return class
	}
	for _, r := range d.Records() {
		switch {
		case r.Parent == name && r.ParentClass != "":
			return r.ParentClass
		case r.Child == name && r.ChildClass != "":
			return r.ChildClass
		}
	}
	return ""
}

// Clone creates a deep copy of the diagram.
func (d *Diagram) Clone() *Diagram {
	if d == nil {
		return nil
	}
	clone := &Diagram{
		Nodes:        slices.Clone(d.Nodes),
		Edges:        make(map[string][]Record, len(d.Edges)),
		Orientation:  d.Orientation,
		StyleClasses: make(map[string]StyleClass, len(d.StyleClasses)),
		NodeClasses:  maps.Clone(d.NodeClasses),
		Hints:        maps.Clone(d.Hints),
	}
	for parent, records := range d.Edges {
		clone.Edges[parent] = slices.Clone(records)
	}
	for name, sc := range d.StyleClasses {
		clone.StyleClasses[name] = StyleClass{Name: sc.Name, Styles: maps.Clone(sc.Styles)}
	}
	return clone
}
