package tracking

import (
	"fmt"
	"testing"

	"hardsub/internal/detect"
	"hardsub/internal/sampling"
)

func det(frame int, text string, y int) detect.Detection {
	return detect.Detection{
		Timestamp:  float64(frame) * 10,
		FrameIndex: frame,
		Region:     sampling.RegionBottom,
		Text:       text,
		Box:        sampling.Rect{X: 100, Y: y, Width: 600, Height: 40},
		Confidence: 0.9,
	}
}

func TestTrackerExtendsTrackAcrossTextChanges(t *testing.T) {
	tracker := NewTracker(sampling.RegionBottom, Config{LineYTolerancePx: 30, MaxFrameGap: 2})

	texts := []string{"first line", "second line", "third line", "fourth line", "fifth line"}
	for frame, text := range texts {
		tracker.Observe(frame, []detect.Detection{det(frame, text, 900)})
	}

	tracks := tracker.Finalize(len(texts))
	if len(tracks) != 1 {
		t.Fatalf("expected a single track despite text changes, got %d", len(tracks))
	}
	track := tracks[0]
	if len(track.Detections) != 5 {
		t.Fatalf("expected 5 detections, got %d", len(track.Detections))
	}
	if track.Metrics.TextChangeRate != 1.0 {
		t.Errorf("TextChangeRate = %v, want 1.0", track.Metrics.TextChangeRate)
	}
	if track.Metrics.PresenceRatio != 1.0 {
		t.Errorf("PresenceRatio = %v, want 1.0", track.Metrics.PresenceRatio)
	}
}

func TestTrackerSeparatesDistantRegionsVertically(t *testing.T) {
	tracker := NewTracker(sampling.RegionBottom, Config{LineYTolerancePx: 30, MaxFrameGap: 2})

	for frame := 0; frame < 3; frame++ {
		tracker.Observe(frame, []detect.Detection{
			det(frame, "subtitle text", 900),
			det(frame, "watermark", 1020),
		})
	}

	tracks := tracker.Finalize(3)
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	for _, track := range tracks {
		if len(track.Detections) != 3 {
			t.Errorf("track at y=%v has %d detections, want 3", track.Metrics.YMean, len(track.Detections))
		}
	}
}

func TestTrackerClosesTrackAfterFrameGap(t *testing.T) {
	tracker := NewTracker(sampling.RegionBottom, Config{LineYTolerancePx: 30, MaxFrameGap: 1})

	tracker.Observe(0, []detect.Detection{det(0, "early text", 900)})
	// Frames 1-2 pass with no detections; gap of 2 exceeds MaxFrameGap of 1.
	tracker.Observe(1, nil)
	tracker.Observe(2, nil)
	tracker.Observe(3, []detect.Detection{det(3, "late text", 900)})

	tracks := tracker.Finalize(4)
	if len(tracks) != 2 {
		t.Fatalf("expected the gap to split into 2 tracks, got %d", len(tracks))
	}
}

func TestTrackerStrictlyIncreasingFrameIndexes(t *testing.T) {
	tracker := NewTracker(sampling.RegionBottom, Config{LineYTolerancePx: 50, MaxFrameGap: 2})

	for frame := 0; frame < 4; frame++ {
		// Two detections per frame at nearly the same height: only one may
		// extend a given track per frame.
		tracker.Observe(frame, []detect.Detection{
			det(frame, fmt.Sprintf("line a %d", frame), 900),
			det(frame, fmt.Sprintf("line b %d", frame), 910),
		})
	}

	tracks := tracker.Finalize(4)
	for _, track := range tracks {
		for i := 1; i < len(track.Detections); i++ {
			if track.Detections[i].FrameIndex <= track.Detections[i-1].FrameIndex {
				t.Fatalf("frame indexes not strictly increasing: %v", track.Detections)
			}
		}
	}
}

func TestTrackerIgnoresOtherRegions(t *testing.T) {
	tracker := NewTracker(sampling.RegionBottom, Config{LineYTolerancePx: 30, MaxFrameGap: 2})

	topDetection := det(0, "channel name", 40)
	topDetection.Region = sampling.RegionTop
	tracker.Observe(0, []detect.Detection{topDetection})

	if tracks := tracker.Finalize(1); len(tracks) != 0 {
		t.Fatalf("expected no tracks for foreign-region detections, got %d", len(tracks))
	}
}

func TestComputeMetrics(t *testing.T) {
	detections := []detect.Detection{
		det(0, "same text", 900),
		det(1, "same text", 904),
		det(2, "different text", 908),
	}
	m := ComputeMetrics(detections, 6)

	if m.PresenceRatio != 0.5 {
		t.Errorf("PresenceRatio = %v, want 0.5", m.PresenceRatio)
	}
	if m.TextChangeRate != 0.5 {
		t.Errorf("TextChangeRate = %v, want 0.5", m.TextChangeRate)
	}
	if m.YMean != 924 {
		t.Errorf("YMean = %v, want 924", m.YMean)
	}
	if m.AvgConfidence != 0.9 {
		t.Errorf("AvgConfidence = %v, want 0.9", m.AvgConfidence)
	}
	if m.MeanBoxArea != 600*40 {
		t.Errorf("MeanBoxArea = %v, want %v", m.MeanBoxArea, 600*40)
	}
}

func TestComputeMetricsEmpty(t *testing.T) {
	if m := ComputeMetrics(nil, 6); m != (Metrics{}) {
		t.Errorf("expected zero metrics for empty input, got %+v", m)
	}
}

func TestComputeMetricsSingleDetection(t *testing.T) {
	m := ComputeMetrics([]detect.Detection{det(0, "only", 900)}, 6)
	if m.TextChangeRate != 0 {
		t.Errorf("TextChangeRate = %v, want 0", m.TextChangeRate)
	}
	if m.YStd != 0 {
		t.Errorf("YStd = %v, want 0", m.YStd)
	}
}
