package textmeasure

import (
	"testing"

	"github.com/matzehuels/umlkit/pkg/core/geom"
)

func TestApprox(t *testing.T) {
	f := Font{Family: "Go", Size: 12}
	tests := []struct {
		name string
		text string
		want geom.Dimension
	}{
		{"empty", "", geom.Dimension{}},
		{"single line", "Node", geom.Dimension{Width: 26, Height: 15}},
		{"two lines widest wins", "ab\nabcdef", geom.Dimension{Width: 40, Height: 30}},
		{"runes not bytes", "éé", geom.Dimension{Width: 13, Height: 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Approx{}).Measure(f, tt.text); got != tt.want {
				t.Errorf("Measure(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestOpenType(t *testing.T) {
	m := NewOpenType()
	f := DefaultFont

	if got := m.Measure(f, ""); got != (geom.Dimension{}) {
		t.Errorf("empty text = %v", got)
	}

	short := m.Measure(f, "Thy")
	long := m.Measure(f, "Thy Thy Thy")
	if short.Width <= 0 || short.Height <= 0 {
		t.Fatalf("Measure(Thy) = %v", short)
	}
	if long.Width <= short.Width {
		t.Errorf("longer text not wider: %v vs %v", long, short)
	}
	if long.Height != short.Height {
		t.Errorf("single-line heights differ: %v vs %v", long, short)
	}

	two := m.Measure(f, "Thy\nThy")
	if two.Width != short.Width || two.Height <= short.Height {
		t.Errorf("two lines = %v, one line = %v", two, short)
	}

	big := m.Measure(Font{Family: f.Family, Size: 24}, "Thy")
	if big.Width <= short.Width {
		t.Errorf("larger size not wider: %v vs %v", big, short)
	}

	if again := m.Measure(f, "Thy"); again != short {
		t.Errorf("not deterministic: %v then %v", short, again)
	}
}

type countingMeasurer struct {
	calls int
}

func (c *countingMeasurer) Measure(f Font, text string) geom.Dimension {
	c.calls++
	return geom.Dimension{Width: float64(len(text)), Height: f.Size}
}

func TestCached(t *testing.T) {
	inner := &countingMeasurer{}
	c, err := NewCached(inner, 2)
	if err != nil {
		t.Fatal(err)
	}
	f := DefaultFont

	c.Measure(f, "a")
	c.Measure(f, "a")
	if inner.calls != 1 {
		t.Errorf("calls = %d after repeated lookup, want 1", inner.calls)
	}

	c.Measure(Font{Family: f.Family, Size: 20}, "a")
	if inner.calls != 2 {
		t.Errorf("font size not part of key: calls = %d", inner.calls)
	}

	c.Measure(f, "b")
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	c.Measure(f, "a") // evicted by "b"
	if inner.calls != 4 {
		t.Errorf("calls = %d, want 4 after eviction", inner.calls)
	}
}
