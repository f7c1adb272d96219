package analysis

import "time"

// MediaInfo is the probed geometry and duration of the source video.
type MediaInfo struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Vote is the serializable form of one strategy's ballot.
type Vote struct {
	Strategy     string  `json:"strategy"`
	HasSubtitles bool    `json:"has_subtitles"`
	Confidence   float64 `json:"confidence"`
	Weight       float64 `json:"weight"`
}

// TrackCounts reports how many tracks a strategy placed in each category.
type TrackCounts struct {
	Subtitle      int `json:"subtitle"`
	StaticOverlay int `json:"static_overlay"`
	Screencast    int `json:"screencast"`
	Ambiguous     int `json:"ambiguous"`
}

// StrategySummary records how one detection strategy fared during the scan.
// A strategy that failed outright has Completed=false and casts no vote.
type StrategySummary struct {
	Name             string      `json:"name"`
	Completed        bool        `json:"completed"`
	Error            string      `json:"error,omitempty"`
	HasSubtitles     bool        `json:"has_subtitles"`
	Confidence       float64     `json:"confidence"`
	Reason           string      `json:"reason,omitempty"`
	Tracks           TrackCounts `json:"tracks"`
	FramesWithText   int         `json:"frames_with_text"`
	FrameFailures    int         `json:"frame_failures"`
	DroppedMalformed int         `json:"dropped_malformed"`
	DroppedFiltered  int         `json:"dropped_filtered"`
}

// SamplingSummary records how the temporal sampling pass went.
type SamplingSummary struct {
	FramesPlanned   int  `json:"frames_planned"`
	FramesExtracted int  `json:"frames_extracted"`
	FramesWithText  int  `json:"frames_with_text"`
	DurationAssumed bool `json:"duration_assumed"`
}

// Report is the complete output contract of one scan.
type Report struct {
	ScanID           string            `json:"scan_id"`
	Source           string            `json:"source"`
	HasSubtitles     bool              `json:"has_subtitles"`
	Confidence       float64           `json:"confidence"`
	Reason           string            `json:"reason"`
	Conflict         bool              `json:"conflict"`
	ConflictSeverity string            `json:"conflict_severity"`
	Uncertainty      string            `json:"uncertainty"`
	Votes            []Vote            `json:"votes"`
	Strategies       []StrategySummary `json:"strategies"`
	Media            MediaInfo         `json:"media"`
	Sampling         SamplingSummary   `json:"sampling"`
	StartedAt        time.Time         `json:"started_at"`
	ElapsedSeconds   float64           `json:"elapsed_seconds"`
}
