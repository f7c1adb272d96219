package config

const (
	defaultDataDir                = "~/.local/share/hardsub"
	defaultLogDir                 = "~/.local/share/hardsub/logs"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultMinTextLength          = 3
	defaultMinConfidence          = 0.5
	defaultMinAlphaRatio          = 0.4
	defaultFrameTimeoutSeconds    = 30
	defaultDetectionConcurrency   = 4
	defaultTesseractLanguage      = "eng"
	defaultROIPercentage          = 0.25
	defaultMaxTemporalSamples     = 6
	defaultMinValidSamples        = 3
	defaultDurationSeconds        = 60.0
	defaultLineYTolerance         = 0.03
	defaultMaxFrameGap            = 2
	defaultStaticMinPresence      = 0.80
	defaultStaticMaxChange        = 0.05
	defaultSubtitleMinChangeRate  = 0.15
	defaultScreencastMinAreaRatio = 0.15
	defaultVotingMethod           = "confidence_weighted"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Detection: Detection{
			MinTextLength:       defaultMinTextLength,
			MinConfidence:       defaultMinConfidence,
			MinAlphaRatio:       defaultMinAlphaRatio,
			FrameTimeoutSeconds: defaultFrameTimeoutSeconds,
			Concurrency:         defaultDetectionConcurrency,
			TesseractLanguage:   defaultTesseractLanguage,
		},
		Sampling: Sampling{
			ROIPercentage:          defaultROIPercentage,
			Regions:                []string{"bottom"},
			MaxTemporalSamples:     defaultMaxTemporalSamples,
			MinValidSamples:        defaultMinValidSamples,
			DefaultDurationSeconds: defaultDurationSeconds,
		},
		Tracking: Tracking{
			LineYTolerance: defaultLineYTolerance,
			MaxFrameGap:    defaultMaxFrameGap,
		},
		Classification: Classification{
			StaticMinPresence:      defaultStaticMinPresence,
			StaticMaxChange:        defaultStaticMaxChange,
			SubtitleMinChangeRate:  defaultSubtitleMinChangeRate,
			ScreencastMinAreaRatio: defaultScreencastMinAreaRatio,
			IgnoreStaticText:       true,
		},
		Ensemble: Ensemble{
			VotingMethod:    defaultVotingMethod,
			DetectorWeights: map[string]float64{},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
