package surface

import "github.com/dshills/textdir/internal/direction"

// NoopEdit is an inert edit surface. It reports the default direction and
// discards writes. Useful as a stand-in when no document is open.
type NoopEdit struct{}

// Direction returns the default direction.
func (NoopEdit) Direction() direction.Direction { return direction.Default }

// SetDirection discards the direction.
func (NoopEdit) SetDirection(direction.Direction) {}

// NoopPreview is an inert preview surface.
type NoopPreview struct{}

// SetDirection discards the direction.
func (NoopPreview) SetDirection(direction.Direction) {}

// NoopPrint is an inert print surface.
type NoopPrint struct{}

// SetDirection discards the direction.
func (NoopPrint) SetDirection(direction.Direction) {}

// Noop returns a Set with all three surfaces inert.
func Noop() Set {
	return Set{
		Edit:    NoopEdit{},
		Preview: NoopPreview{},
		Print:   NoopPrint{},
	}
}
