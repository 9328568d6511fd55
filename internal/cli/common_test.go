package cli

import (
	"testing"

	"github.com/dshills/textdir/internal/direction"
)

func TestNearestStored(t *testing.T) {
	stored := []string{"notes/hebrew.md", "notes/arabic.md", "journal/2026.md"}

	tests := []struct {
		name  string
		query string
		want  string
		ok    bool
	}{
		{"one character typo", "notes/hebew.md", "notes/hebrew.md", true},
		{"transposed characters", "notes/arabci.md", "notes/arabic.md", true},
		{"too far to suggest", "completely/different/path.txt", "", false},
		{"exact match", "journal/2026.md", "journal/2026.md", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := nearestStored(tt.query, stored)
			if got != tt.want || ok != tt.ok {
				t.Errorf("nearestStored(%q) = (%q, %v), want (%q, %v)", tt.query, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNearestStored_EmptyStore(t *testing.T) {
	if got, ok := nearestStored("anything.md", nil); ok {
		t.Errorf("nearestStored on empty store = (%q, true), want miss", got)
	}
}

func TestCountNoun(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "0 entries"},
		{1, "1 entry"},
		{2, "2 entries"},
	}

	for _, tt := range tests {
		if got := countNoun(tt.count, "entry", "entries"); got != tt.want {
			t.Errorf("countNoun(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestDirectionBadge(t *testing.T) {
	if got := directionBadge(direction.LTR); got != "→ ltr" {
		t.Errorf("badge(ltr) = %q", got)
	}
	if got := directionBadge(direction.RTL); got != "← rtl" {
		t.Errorf("badge(rtl) = %q", got)
	}
}
