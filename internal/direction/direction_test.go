package direction

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
	}{
		{"ltr", LTR},
		{"rtl", RTL},
		{"LTR", LTR},
		{"RTL", RTL},
		{"  rtl  ", RTL},
		{"Ltr", LTR},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "up", "left-to-right", "lt r", "rl"} {
		got, err := Parse(input)
		if err == nil {
			t.Errorf("Parse(%q) = %v, expected error", input, got)
			continue
		}
		if !errors.Is(err, ErrUnknownDirection) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownDirection", input, err)
		}
	}
}

func TestDirection_IsValid(t *testing.T) {
	if !LTR.IsValid() {
		t.Error("LTR should be valid")
	}
	if !RTL.IsValid() {
		t.Error("RTL should be valid")
	}
	if Direction("").IsValid() {
		t.Error("empty direction should not be valid")
	}
	if Direction("down").IsValid() {
		t.Error("unknown direction should not be valid")
	}
}

func TestDirection_Flip(t *testing.T) {
	if got := LTR.Flip(); got != RTL {
		t.Errorf("LTR.Flip() = %v, want RTL", got)
	}
	if got := RTL.Flip(); got != LTR {
		t.Errorf("RTL.Flip() = %v, want LTR", got)
	}
	if got := Direction("").Flip(); got != LTR {
		t.Errorf("invalid.Flip() = %v, want LTR", got)
	}
}

func TestDirection_FlipTwiceRestores(t *testing.T) {
	for _, d := range []Direction{LTR, RTL} {
		if got := d.Flip().Flip(); got != d {
			t.Errorf("%v.Flip().Flip() = %v, want %v", d, got, d)
		}
	}
}

func TestDirection_String(t *testing.T) {
	if LTR.String() != "ltr" {
		t.Errorf("LTR.String() = %q, want %q", LTR.String(), "ltr")
	}
	if RTL.String() != "rtl" {
		t.Errorf("RTL.String() = %q, want %q", RTL.String(), "rtl")
	}
}
