package classify

import (
	"reflect"
	"testing"

	"hardsub/internal/detect"
	"hardsub/internal/sampling"
	"hardsub/internal/tracking"
)

func defaultThresholds() Thresholds {
	return Thresholds{
		StaticMinPresence:      0.80,
		StaticMaxChange:        0.05,
		SubtitleMinChangeRate:  0.15,
		ScreencastMinAreaRatio: 0.15,
		IgnoreStaticText:       true,
	}
}

// buildTrack produces a closed track with one detection per frame.
func buildTrack(texts []string, totalFrames int, box sampling.Rect, confidence float64) *tracking.Track {
	detections := make([]detect.Detection, 0, len(texts))
	for i, text := range texts {
		detections = append(detections, detect.Detection{
			Timestamp:  float64(i) * 10,
			FrameIndex: i,
			Region:     sampling.RegionBottom,
			Text:       text,
			Box:        box,
			Confidence: confidence,
		})
	}
	track := &tracking.Track{Region: sampling.RegionBottom, Detections: detections}
	track.Metrics = tracking.ComputeMetrics(detections, totalFrames)
	return track
}

func subtitleBox() sampling.Rect { return sampling.Rect{X: 400, Y: 950, Width: 900, Height: 50} }

func TestCategorizeStaticOverlay(t *testing.T) {
	classifier := NewClassifier(defaultThresholds(), 1920, 1080)

	// 100 identical detections with full presence.
	texts := make([]string, 100)
	for i := range texts {
		texts[i] = "CHANNEL 5"
	}
	track := buildTrack(texts, 100, sampling.Rect{X: 40, Y: 40, Width: 200, Height: 40}, 0.95)

	if got := classifier.Categorize(track); got != CategoryStaticOverlay {
		t.Fatalf("Categorize = %v, want static overlay", got)
	}

	result := classifier.Decide([]*tracking.Track{track})
	if result.HasSubtitles {
		t.Fatal("static overlay alone must not count as subtitles with ignore_static_text")
	}
}

func TestStaticOverlayCountsWhenIgnoreDisabled(t *testing.T) {
	thresholds := defaultThresholds()
	thresholds.IgnoreStaticText = false
	classifier := NewClassifier(thresholds, 1920, 1080)

	texts := make([]string, 10)
	for i := range texts {
		texts[i] = "hardcoded line"
	}
	track := buildTrack(texts, 10, subtitleBox(), 0.9)

	result := classifier.Decide([]*tracking.Track{track})
	if !result.HasSubtitles {
		t.Fatal("static text should qualify when ignore_static_text is disabled")
	}
	if result.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", result.Confidence)
	}
}

func TestCategorizeSubtitle(t *testing.T) {
	classifier := NewClassifier(defaultThresholds(), 1920, 1080)

	track := buildTrack([]string{"line one", "line two", "line three", "line four", "line five"}, 6, subtitleBox(), 0.88)
	if got := classifier.Categorize(track); got != CategorySubtitle {
		t.Fatalf("Categorize = %v, want subtitle", got)
	}

	result := classifier.Decide([]*tracking.Track{track})
	if !result.HasSubtitles {
		t.Fatal("expected has_subtitles for changing text")
	}
	if result.Confidence != 0.88 {
		t.Errorf("Confidence = %v, want 0.88", result.Confidence)
	}
	if result.Tracks.Counts().Subtitle != 1 {
		t.Errorf("Counts = %+v, want one subtitle track", result.Tracks.Counts())
	}
}

func TestCategorizeScreencast(t *testing.T) {
	classifier := NewClassifier(defaultThresholds(), 1920, 1080)

	// Large unchanging block covering ~26% of the frame but with partial
	// presence, so the static rule does not fire.
	track := buildTrack([]string{"terminal output", "terminal output"}, 6, sampling.Rect{X: 100, Y: 100, Width: 1200, Height: 450}, 0.7)
	if got := classifier.Categorize(track); got != CategoryScreencast {
		t.Fatalf("Categorize = %v, want screencast", got)
	}
}

func TestCategorizeAmbiguous(t *testing.T) {
	classifier := NewClassifier(defaultThresholds(), 1920, 1080)

	track := buildTrack([]string{"brief text", "brief text"}, 6, subtitleBox(), 0.6)
	if got := classifier.Categorize(track); got != CategoryAmbiguous {
		t.Fatalf("Categorize = %v, want ambiguous", got)
	}
}

func TestStaticRuleTakesPriorityOverSubtitle(t *testing.T) {
	// A track that is both highly present and above the static change cap
	// boundary case: full presence, zero change. Static wins by rule order.
	classifier := NewClassifier(defaultThresholds(), 1920, 1080)
	texts := make([]string, 6)
	for i := range texts {
		texts[i] = "watermark"
	}
	track := buildTrack(texts, 6, subtitleBox(), 0.9)
	if got := classifier.Categorize(track); got != CategoryStaticOverlay {
		t.Fatalf("Categorize = %v, want static overlay to win priority", got)
	}
}

func TestDecideEmptyTrackSet(t *testing.T) {
	classifier := NewClassifier(defaultThresholds(), 1920, 1080)
	result := classifier.Decide(nil)

	if result.HasSubtitles {
		t.Error("empty input must yield has_subtitles=false")
	}
	if result.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", result.Confidence)
	}
	if counts := result.Tracks.Counts(); counts != (Counts{}) {
		t.Errorf("Counts = %+v, want all zero", counts)
	}
	if result.Reason == "" {
		t.Error("expected a reason for the empty verdict")
	}
}

func TestDecideIsPure(t *testing.T) {
	classifier := NewClassifier(defaultThresholds(), 1920, 1080)
	tracks := []*tracking.Track{
		buildTrack([]string{"one", "two", "three"}, 6, subtitleBox(), 0.8),
		buildTrack([]string{"logo", "logo", "logo", "logo", "logo", "logo"}, 6, sampling.Rect{X: 10, Y: 10, Width: 100, Height: 30}, 0.95),
	}

	first := classifier.Decide(tracks)
	second := classifier.Decide(tracks)

	if first.HasSubtitles != second.HasSubtitles || first.Confidence != second.Confidence || first.Reason != second.Reason {
		t.Fatalf("verdicts differ: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(first.Tracks.Counts(), second.Tracks.Counts()) {
		t.Fatalf("partitions differ: %+v vs %+v", first.Tracks.Counts(), second.Tracks.Counts())
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{CategorySubtitle, "subtitle"},
		{CategoryStaticOverlay, "static_overlay"},
		{CategoryScreencast, "screencast"},
		{CategoryAmbiguous, "ambiguous"},
		{Category(42), "category(42)"},
	}
	for _, tt := range tests {
		if got := tt.category.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
