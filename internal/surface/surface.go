// Package surface defines the presentation surfaces a direction is pushed
// into: the edit view, the rendered preview, and the print stylesheet.
// Surfaces are capability-typed collaborators; the resolver depends on the
// interfaces here and treats every call as best-effort. Nothing on the
// apply path returns an error, and absent surfaces are no-ops.
package surface

import "github.com/dshills/textdir/internal/direction"

// EditSurface is the live editing view of a document. It is the only
// surface whose current direction can be read back, which is what makes
// toggling possible.
type EditSurface interface {
	// Direction returns the surface's current direction.
	Direction() direction.Direction

	// SetDirection pushes a direction into the surface.
	SetDirection(d direction.Direction)
}

// PreviewSurface is the rendered read-only view of a document.
type PreviewSurface interface {
	// SetDirection pushes a direction into the surface.
	SetDirection(d direction.Direction)
}

// PrintSurface is the print/export representation of a document.
type PrintSurface interface {
	// SetDirection pushes a direction into the surface.
	SetDirection(d direction.Direction)
}

// Set bundles the three surfaces the resolver pushes directions into.
// Any field may be nil; Apply skips nil surfaces.
type Set struct {
	Edit    EditSurface
	Preview PreviewSurface
	Print   PrintSurface
}

// WithEdit returns a copy of the set with the edit surface replaced.
func (s Set) WithEdit(e EditSurface) Set {
	s.Edit = e
	return s
}

// WithPreview returns a copy of the set with the preview surface replaced.
func (s Set) WithPreview(p PreviewSurface) Set {
	s.Preview = p
	return s
}

// WithPrint returns a copy of the set with the print surface replaced.
func (s Set) WithPrint(p PrintSurface) Set {
	s.Print = p
	return s
}

// Apply pushes a direction into every attached surface.
func (s Set) Apply(d direction.Direction) {
	if s.Edit != nil {
		s.Edit.SetDirection(d)
	}
	if s.Preview != nil {
		s.Preview.SetDirection(d)
	}
	if s.Print != nil {
		s.Print.SetDirection(d)
	}
}

// HasEdit reports whether an edit surface is attached.
func (s Set) HasEdit() bool {
	return s.Edit != nil
}
