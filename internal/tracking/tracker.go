package tracking

import (
	"math"

	"hardsub/internal/detect"
	"hardsub/internal/sampling"
)

// Config controls cross-frame track matching.
type Config struct {
	// LineYTolerancePx is the maximum vertical distance, in pixels, between a
	// detection's center and a track's most recent center for the detection to
	// extend that track.
	LineYTolerancePx float64
	// MaxFrameGap is how many consecutive sampled frames may pass without a
	// match before a track is closed.
	MaxFrameGap int
}

// Tracker groups the ordered per-frame detections of one region into
// persistent tracks. Matching is vertical-proximity only: subtitles
// legitimately change text while occupying the same screen region, so text
// changes alone never start a new track.
type Tracker struct {
	cfg    Config
	region sampling.Region
	open   []*Track
	closed []*Track
}

// NewTracker creates a tracker for one region of one detection strategy.
func NewTracker(region sampling.Region, cfg Config) *Tracker {
	return &Tracker{cfg: cfg, region: region}
}

// Observe consumes all detections of one sampled frame. Frames must be fed in
// ascending frame-index order. Detections from other regions are ignored.
func (t *Tracker) Observe(frameIndex int, detections []detect.Detection) {
	t.closeExpired(frameIndex)

	matched := make(map[*Track]bool, len(t.open))
	for _, d := range detections {
		if d.Region != t.region || d.FrameIndex != frameIndex {
			continue
		}
		if track := t.match(d, matched); track != nil {
			track.Detections = append(track.Detections, d)
			track.lastFrame = frameIndex
			matched[track] = true
			continue
		}
		fresh := &Track{
			Region:     t.region,
			Detections: []detect.Detection{d},
			lastFrame:  frameIndex,
		}
		t.open = append(t.open, fresh)
		matched[fresh] = true
	}
}

// match finds the open track whose latest detection is vertically closest to
// d within tolerance. Ties resolve to the earliest-created track so the
// result is deterministic. A track accepts at most one detection per frame to
// keep frame indices strictly increasing.
func (t *Tracker) match(d detect.Detection, taken map[*Track]bool) *Track {
	var best *Track
	bestDistance := t.cfg.LineYTolerancePx
	for _, track := range t.open {
		if taken[track] {
			continue
		}
		distance := math.Abs(track.Last().CenterY() - d.CenterY())
		if distance < bestDistance || (best == nil && distance == bestDistance) {
			best = track
			bestDistance = distance
		}
	}
	return best
}

func (t *Tracker) closeExpired(frameIndex int) {
	remaining := t.open[:0]
	for _, track := range t.open {
		gap := frameIndex - track.lastFrame - 1
		if gap > t.cfg.MaxFrameGap {
			t.closed = append(t.closed, track)
			continue
		}
		remaining = append(remaining, track)
	}
	t.open = remaining
}

// Finalize closes every remaining track, computes metrics for the full set,
// and returns all tracks observed during the pass. The tracker must not be
// reused afterwards.
func (t *Tracker) Finalize(totalSampledFrames int) []*Track {
	t.closed = append(t.closed, t.open...)
	t.open = nil
	for _, track := range t.closed {
		track.Metrics = ComputeMetrics(track.Detections, totalSampledFrames)
	}
	return t.closed
}
