package diagram

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"LR", LeftRight, false},
		{"lr", LeftRight, false},
		{"TD", TopDown, false},
		{"TB", TopDown, false},
		{" td ", TopDown, false},
		{"RL", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOrientation(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidOrientation) {
				t.Errorf("ParseOrientation(%q) error = %v, want ErrInvalidOrientation", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseOrientation(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestBuilder_KeepsDeclarationOrder(t *testing.T) {
	d := NewBuilder(LeftRight).
		Node("C").
		Edge("A", "B", "").
		Edge("A", "C", "yes").
		Edge("B", "B", "").
		Node("A").
		Diagram()

	if diff := cmp.Diff([]string{"C", "A", "B"}, d.Nodes); diff != "" {
		t.Errorf("Nodes mismatch (-want +got):\n%s", diff)
	}

	want := []Record{
		{Parent: "A", Child: "B"},
		{Parent: "A", Child: "C", Label: "yes"},
		{Parent: "B", Child: "B"},
	}
	if diff := cmp.Diff(want, d.Records()); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}
	if !d.Records()[2].IsSelfLoop() {
		t.Errorf("B -> B should be a self loop")
	}
}

func TestBuilder_Classes(t *testing.T) {
	b := NewBuilder(TopDown).
		Edge("A", "B", "").
		Class("B", "hot").
		ClassDef("hot", map[string]string{"color": "red"}).
		ClassDef("hot", map[string]string{"font-weight": "bold"}).
		Node("Lonely").
		Class("Lonely", "cold")
	d := b.Diagram()

	if got := d.Edges["A"][0].ChildClass; got != "hot" {
		t.Errorf("ChildClass = %q, want hot", got)
	}
	if got := d.ClassOf("B"); got != "hot" {
		t.Errorf("ClassOf(B) = %q, want hot", got)
	}
	if got := d.ClassOf("Lonely"); got != "cold" {
		t.Errorf("ClassOf(Lonely) = %q, want cold", got)
	}
	if got := d.ClassOf("A"); got != "" {
		t.Errorf("ClassOf(A) = %q, want empty", got)
	}
	want := map[string]string{"color": "red", "font-weight": "bold"}
	if diff := cmp.Diff(want, d.StyleClasses["hot"].Styles); diff != "" {
		t.Errorf("styles mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagram_Validate(t *testing.T) {
	valid := NewBuilder(LeftRight).Edge("A", "B", "").Diagram()
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	if err := New(LeftRight).Validate(); !errors.Is(err, ErrEmptyDiagram) {
		t.Errorf("empty diagram: error = %v, want ErrEmptyDiagram", err)
	}

	bad := valid.Clone()
	bad.Orientation = "RL"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidOrientation) {
		t.Errorf("bad orientation: error = %v, want ErrInvalidOrientation", err)
	}

	misfiled := valid.Clone()
	misfiled.Edges["B"] = []Record{{Parent: "A", Child: "B"}}
	if err := misfiled.Validate(); err == nil {
		t.Errorf("misfiled record accepted")
	}
}

func TestDiagram_CloneIsDeep(t *testing.T) {
	d := NewBuilder(LeftRight).Edge("A", "B", "x").ClassDef("c", map[string]string{"k": "v"}).Diagram()
	c := d.Clone()
	c.Nodes[0] = "Z"
	c.Edges["A"][0].Label = "changed"
	c.StyleClasses["c"].Styles["k"] = "w"

	if d.Nodes[0] != "A" || d.Edges["A"][0].Label != "x" || d.StyleClasses["c"].Styles["k"] != "v" {
		t.Errorf("clone shares state with original: %+v", d)
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr error
	}{
		{"defaults", func(*Options) {}, nil},
		{"zero padding", func(o *Options) { o.PaddingBetweenColumns = 0; o.PaddingBetweenRows = 0 }, nil},
		{"negative border", func(o *Options) { o.BorderPadding = -1 }, ErrInvalidOption},
		{"negative columns", func(o *Options) { o.PaddingBetweenColumns = -2 }, ErrInvalidOption},
		{"negative rows", func(o *Options) { o.PaddingBetweenRows = -2 }, ErrInvalidOption},
		{"orientation", func(o *Options) { o.Orientation = "BT" }, ErrInvalidOrientation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			err := o.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptions_OrientationFor(t *testing.T) {
	d := New(TopDown)
	o := DefaultOptions()
	if got := o.OrientationFor(d); got != TopDown {
		t.Errorf("OrientationFor = %q, want TD", got)
	}
	o.Orientation = LeftRight
	if got := o.OrientationFor(d); got != LeftRight {
		t.Errorf("override: OrientationFor = %q, want LR", got)
	}
	if got := DefaultOptions().OrientationFor(New("")); got != LeftRight {
		t.Errorf("fallback: OrientationFor = %q, want LR", got)
	}
	if DefaultOptions().Log() == nil {
		t.Errorf("Log() returned nil")
	}
}

func TestOptions_WithHints(t *testing.T) {
	d := NewBuilder(LeftRight).Node("A").Hint(HintPaddingX, "2").Hint(HintPaddingY, "0").Diagram()
	got, err := DefaultOptions().WithHints(d)
	if err != nil {
		t.Fatalf("WithHints failed: %v", err)
	}
	want := DefaultOptions()
	want.PaddingBetweenColumns = 2
	want.PaddingBetweenRows = 0
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WithHints mismatch (-want +got):\n%s", diff)
	}

	bad := NewBuilder(LeftRight).Node("A").Hint(HintBorderPadding, "-3").Diagram()
	if _, err := DefaultOptions().WithHints(bad); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("negative hint: error = %v, want ErrInvalidOption", err)
	}
}
