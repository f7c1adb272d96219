package classify

import "fmt"

// Category is the classification assigned to a closed track. Exactly one per
// track, assigned once.
type Category int

const (
	CategorySubtitle Category = iota
	CategoryStaticOverlay
	CategoryScreencast
	CategoryAmbiguous
)

// String returns the canonical name used in logs, reports, and storage.
func (c Category) String() string {
	switch c {
	case CategorySubtitle:
		return "subtitle"
	case CategoryStaticOverlay:
		return "static_overlay"
	case CategoryScreencast:
		return "screencast"
	case CategoryAmbiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}
