package fonts

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Go", Regular},
		{"go mono", Mono},
		{"GO BOLD", Bold},
		{"Comic Sans", DefaultFamily},
		{"", DefaultFamily},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Resolve(tt.in); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	for _, family := range append(Families(), "unknown") {
		t.Run(family, func(t *testing.T) {
			f, err := Parse(family)
			if err != nil {
				t.Fatalf("Parse(%q): %v", family, err)
			}
			if f.NumGlyphs() == 0 {
				t.Error("font has no glyphs")
			}
			again, _ := Parse(family)
			if again != f {
				t.Error("parsed font not cached")
			}
		})
	}
}

func TestTTFFallback(t *testing.T) {
	if len(TTF("nope")) == 0 {
		t.Fatal("fallback TTF is empty")
	}
	if string(TTF("nope")) != string(TTF(DefaultFamily)) {
		t.Error("unknown family did not fall back to default")
	}
}
