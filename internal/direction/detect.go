package direction

import "golang.org/x/text/unicode/bidi"

// detectLimit bounds how much of a document Detect inspects.
// The first strong character almost always appears well before this.
const detectLimit = 4096

// Detect returns the direction implied by the first strong character in
// text, following the first-strong heuristic of UAX #9 rules P2/P3.
// Characters with neutral or weak bidi classes are skipped. The second
// return value is false when no strong character is found, in which case
// the Default direction is returned.
func Detect(text string) (Direction, bool) {
	if len(text) > detectLimit {
		text = text[:detectLimit]
	}

	for i := 0; i < len(text); {
		props, size := bidi.LookupString(text[i:])
		if size == 0 {
			break
		}
		switch props.Class() {
		case bidi.L:
			return LTR, true
		case bidi.R, bidi.AL:
			return RTL, true
		}
		i += size
	}

	return Default, false
}
