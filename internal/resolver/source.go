package resolver

// Source identifies which link of the resolution chain produced a
// direction.
type Source int

const (
	// SourceDefault means the vault default was used.
	SourceDefault Source = iota
	// SourceStored means a per-file entry in the store matched.
	SourceStored
	// SourceRule means a user rule claimed the path.
	SourceRule
	// SourceDetected means first-strong content detection decided.
	SourceDetected
)

// String returns the source name used in explain output.
func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceStored:
		return "stored"
	case SourceRule:
		return "rule"
	case SourceDetected:
		return "detected"
	default:
		return "unknown"
	}
}
