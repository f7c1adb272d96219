package classify

import (
	"fmt"

	"hardsub/internal/tracking"
)

// Thresholds are the category decision boundaries.
type Thresholds struct {
	StaticMinPresence      float64
	StaticMaxChange        float64
	SubtitleMinChangeRate  float64
	ScreencastMinAreaRatio float64
	IgnoreStaticText       bool
}

// Partition holds the classified track lists.
type Partition struct {
	Subtitle      []*tracking.Track
	StaticOverlay []*tracking.Track
	Screencast    []*tracking.Track
	Ambiguous     []*tracking.Track
}

// Counts reports how many tracks landed in each category.
type Counts struct {
	Subtitle      int
	StaticOverlay int
	Screencast    int
	Ambiguous     int
}

// Counts summarizes the partition sizes.
func (p Partition) Counts() Counts {
	return Counts{
		Subtitle:      len(p.Subtitle),
		StaticOverlay: len(p.StaticOverlay),
		Screencast:    len(p.Screencast),
		Ambiguous:     len(p.Ambiguous),
	}
}

// Result is the single-strategy verdict derived from the categorized tracks.
// Produced once per strategy per video; immutable.
type Result struct {
	HasSubtitles bool
	Confidence   float64
	Reason       string
	Tracks       Partition
}

// Classifier assigns closed tracks to categories and derives a verdict. It is
// a pure function of its inputs: identical track sets and thresholds always
// yield identical results.
type Classifier struct {
	thresholds Thresholds
	frameArea  float64
}

// NewClassifier builds a classifier for one video's frame geometry.
func NewClassifier(thresholds Thresholds, frameWidth, frameHeight int) *Classifier {
	area := float64(frameWidth) * float64(frameHeight)
	if area <= 0 {
		area = 1
	}
	return &Classifier{thresholds: thresholds, frameArea: area}
}

// Categorize assigns a track to exactly one category. The rules run in a
// fixed priority order so the outcome is deterministic when several criteria
// could apply: static overlay first, then subtitle, then screencast, then
// ambiguous.
func (c *Classifier) Categorize(track *tracking.Track) Category {
	m := track.Metrics
	if m.PresenceRatio >= c.thresholds.StaticMinPresence && m.TextChangeRate <= c.thresholds.StaticMaxChange {
		return CategoryStaticOverlay
	}
	if m.TextChangeRate >= c.thresholds.SubtitleMinChangeRate {
		return CategorySubtitle
	}
	if m.MeanBoxArea/c.frameArea >= c.thresholds.ScreencastMinAreaRatio {
		return CategoryScreencast
	}
	return CategoryAmbiguous
}

// Decide partitions the closed tracks and derives the strategy verdict. An
// empty track set is a valid terminal case, never an error.
func (c *Classifier) Decide(tracks []*tracking.Track) Result {
	var partition Partition
	for _, track := range tracks {
		switch c.Categorize(track) {
		case CategorySubtitle:
			partition.Subtitle = append(partition.Subtitle, track)
		case CategoryStaticOverlay:
			partition.StaticOverlay = append(partition.StaticOverlay, track)
		case CategoryScreencast:
			partition.Screencast = append(partition.Screencast, track)
		case CategoryAmbiguous:
			partition.Ambiguous = append(partition.Ambiguous, track)
		}
	}

	result := Result{Tracks: partition}

	qualifying := partition.Subtitle
	if !c.thresholds.IgnoreStaticText {
		qualifying = append(append([]*tracking.Track{}, qualifying...), partition.StaticOverlay...)
	}

	switch {
	case len(tracks) == 0:
		result.Reason = "no text regions detected"
	case len(qualifying) > 0:
		result.HasSubtitles = true
		result.Confidence = meanConfidence(qualifying)
		if len(partition.Subtitle) > 0 {
			result.Reason = fmt.Sprintf("%d track(s) with changing subtitle-like text", len(partition.Subtitle))
		} else {
			result.Reason = fmt.Sprintf("%d persistent text track(s) counted as subtitles", len(qualifying))
		}
	case len(partition.StaticOverlay) > 0 && c.thresholds.IgnoreStaticText:
		result.Reason = fmt.Sprintf("only static overlay text (%d track(s), ignored)", len(partition.StaticOverlay))
	case len(partition.Screencast) > 0:
		result.Reason = fmt.Sprintf("screen-capture style text (%d track(s))", len(partition.Screencast))
	default:
		result.Reason = fmt.Sprintf("ambiguous text only (%d track(s))", len(partition.Ambiguous))
	}

	return result
}

func meanConfidence(tracks []*tracking.Track) float64 {
	if len(tracks) == 0 {
		return 0
	}
	var sum float64
	for _, track := range tracks {
		sum += track.Metrics.AvgConfidence
	}
	return sum / float64(len(tracks))
}
