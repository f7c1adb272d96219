package sampling

import (
	"fmt"
	"strings"
)

// Region identifies the screen area a text observation belongs to.
type Region int

const (
	RegionBottom Region = iota
	RegionTop
	RegionMiddle
	RegionLeft
	RegionRight
	RegionCenter
)

// ParseRegion converts a configuration string into a Region.
func ParseRegion(value string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "bottom":
		return RegionBottom, nil
	case "top":
		return RegionTop, nil
	case "middle":
		return RegionMiddle, nil
	case "left":
		return RegionLeft, nil
	case "right":
		return RegionRight, nil
	case "center":
		return RegionCenter, nil
	default:
		return RegionBottom, fmt.Errorf("unknown region %q", value)
	}
}

// String returns the canonical configuration name for the region.
func (r Region) String() string {
	switch r {
	case RegionBottom:
		return "bottom"
	case RegionTop:
		return "top"
	case RegionMiddle:
		return "middle"
	case RegionLeft:
		return "left"
	case RegionRight:
		return "right"
	case RegionCenter:
		return "center"
	default:
		return fmt.Sprintf("region(%d)", int(r))
	}
}
