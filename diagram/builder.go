package diagram

// Builder assembles a Diagram while keeping node declaration order.
type Builder struct {
	d     *Diagram
	known map[string]bool
}

// NewBuilder starts a diagram flowing in orientation o.
func NewBuilder(o Orientation) *Builder {
	return &Builder{d: New(o), known: make(map[string]bool)}
}

// SetOrientation changes the flow orientation.
func (b *Builder) SetOrientation(o Orientation) *Builder {
	b.d.Orientation = o
	return b
}

// Node declares a node. Declaring a node twice has no effect.
func (b *Builder) Node(name string) *Builder {
	if !b.known[name] {
		b.known[name] = true
		b.d.Nodes = append(b.d.Nodes, name)
	}
	return b
}

// Edge declares a connection from parent to child, declaring both nodes when needed.
func (b *Builder) Edge(parent, child, label string) *Builder {
	b.Node(parent).Node(child)
	b.d.Edges[parent] = append(b.d.Edges[parent], Record{
		Parent:      parent,
		Child:       child,
		Label:       label,
		ParentClass: b.d.NodeClasses[parent],
		ChildClass:  b.d.NodeClasses[child],
	})
	return b
}

// Class assigns a style class to a node and to every record already naming it.
func (b *Builder) Class(name, class string) *Builder {
	b.Node(name)
	b.d.NodeClasses[name] = class
	for parent, records := range b.d.Edges {
		for i := range records {
			if records[i].Parent == name {
				records[i].ParentClass = class
			}
			if records[i].Child == name {
				records[i].ChildClass = class
			}
		}
		b.d.Edges[parent] = records
	}
	return b
}

// ClassDef defines a style class. Redefining a class merges the new properties in.
func (b *Builder) ClassDef(name string, styles map[string]string) *Builder {
	sc, ok := b.d.StyleClasses[name]
	if !ok {
		sc = StyleClass{Name: name, Styles: make(map[string]string, len(styles))}
	}
	for k, v := range styles {
		sc.Styles[k] = v
	}
	b.d.StyleClasses[name] = sc
	return b
}

// Hint records a source-level directive.
func (b *Builder) Hint(key, value string) *Builder {
	b.d.Hints[key] = value
	return b
}

// Diagram returns the assembled diagram.
func (b *Builder) Diagram() *Diagram {
	return b.d
}
