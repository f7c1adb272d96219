package detect

import (
	"fmt"

	"hardsub/internal/sampling"
)

// Detection is one text-line observation in a sampled frame. Immutable once
// created; produced by a Detector.
type Detection struct {
	Timestamp  float64
	FrameIndex int
	Region     sampling.Region
	Text       string
	Box        sampling.Rect
	Confidence float64
}

// Validate reports whether the detection carries a usable confidence and
// bounding box. Malformed detections are dropped rather than clamped so bad
// detector output stays visible in scan metadata.
func (d Detection) Validate() error {
	if d.Confidence < 0 || d.Confidence > 1 {
		return fmt.Errorf("confidence %v out of range [0, 1]", d.Confidence)
	}
	if d.Box.Width <= 0 || d.Box.Height <= 0 {
		return fmt.Errorf("bounding box %+v has non-positive size", d.Box)
	}
	if d.Box.X < 0 || d.Box.Y < 0 {
		return fmt.Errorf("bounding box %+v has negative origin", d.Box)
	}
	return nil
}

// CenterY returns the vertical center of the bounding box in pixels.
func (d Detection) CenterY() float64 {
	return float64(d.Box.Y) + float64(d.Box.Height)/2
}

// Filter gates raw detector output before tracking.
type Filter struct {
	MinTextLength int
	MinConfidence float64
	MinAlphaRatio float64
}

// FilterStats counts detections removed by Apply.
type FilterStats struct {
	Malformed int
	Rejected  int
}

// Apply drops malformed detections and detections that fail the text gates.
// The input slice is not modified.
func (f Filter) Apply(detections []Detection) ([]Detection, FilterStats) {
	var stats FilterStats
	kept := make([]Detection, 0, len(detections))
	for _, d := range detections {
		if err := d.Validate(); err != nil {
			stats.Malformed++
			continue
		}
		if !f.accepts(d) {
			stats.Rejected++
			continue
		}
		kept = append(kept, d)
	}
	return kept, stats
}

func (f Filter) accepts(d Detection) bool {
	text := NormalizeText(d.Text)
	if len([]rune(text)) < f.MinTextLength {
		return false
	}
	if d.Confidence < f.MinConfidence {
		return false
	}
	if f.MinAlphaRatio > 0 && AlphaRatio(text) < f.MinAlphaRatio {
		return false
	}
	return true
}
