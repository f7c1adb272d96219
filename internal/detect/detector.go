package detect

import (
	"context"

	"hardsub/internal/sampling"
)

// Frame is one decoded sample handed to detectors. Data holds the encoded
// image (PNG) exactly as extracted from the source video.
type Frame struct {
	Timestamp float64
	Index     int
	Width     int
	Height    int
	Data      []byte
}

// Detector is the capability the engine consumes for frame-level text
// detection. Implementations must be safe for concurrent use: the engine
// invokes Detect for several frames at once.
type Detector interface {
	// Name identifies the strategy in votes, logs, and weight configuration.
	Name() string
	// Detect returns zero or more text-line observations inside roi. A nil
	// slice means no text was found; an error marks the call as failed for
	// this frame only.
	Detect(ctx context.Context, frame Frame, roi sampling.ROI) ([]Detection, error)
}

// Strategy pairs a detector with its static ensemble vote weight.
type Strategy struct {
	Detector Detector
	Weight   float64
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc struct {
	StrategyName string
	Fn           func(ctx context.Context, frame Frame, roi sampling.ROI) ([]Detection, error)
}

func (d DetectorFunc) Name() string { return d.StrategyName }

func (d DetectorFunc) Detect(ctx context.Context, frame Frame, roi sampling.ROI) ([]Detection, error) {
	return d.Fn(ctx, frame, roi)
}
