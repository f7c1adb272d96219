package config

import (
	"errors"
	"fmt"
)

var validRegions = map[string]struct{}{
	"bottom": {},
	"top":    {},
	"middle": {},
	"left":   {},
	"right":  {},
	"center": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDetection(); err != nil {
		return err
	}
	if err := c.validateSampling(); err != nil {
		return err
	}
	if err := c.validateTracking(); err != nil {
		return err
	}
	if err := c.validateClassification(); err != nil {
		return err
	}
	if err := c.validateEnsemble(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDetection() error {
	if c.Detection.MinConfidence < 0 || c.Detection.MinConfidence > 1 {
		return errors.New("detection.min_confidence must be between 0 and 1")
	}
	if c.Detection.MinAlphaRatio < 0 || c.Detection.MinAlphaRatio > 1 {
		return errors.New("detection.min_alpha_ratio must be between 0 and 1")
	}
	if c.Detection.MinTextLength < 0 {
		return errors.New("detection.min_text_length must not be negative")
	}
	return nil
}

func (c *Config) validateSampling() error {
	if c.Sampling.ROIPercentage <= 0 || c.Sampling.ROIPercentage > 1 {
		return errors.New("sampling.roi_percentage must be between 0 (exclusive) and 1")
	}
	if c.Sampling.MaxTemporalSamples < 1 {
		return errors.New("sampling.max_temporal_samples must be at least 1")
	}
	if c.Sampling.MinValidSamples < 1 {
		return errors.New("sampling.min_valid_samples must be at least 1")
	}
	for _, region := range c.Sampling.Regions {
		if _, ok := validRegions[region]; !ok {
			return fmt.Errorf("sampling.regions: unknown region %q", region)
		}
	}
	return nil
}

func (c *Config) validateTracking() error {
	if c.Tracking.LineYTolerance <= 0 || c.Tracking.LineYTolerance > 1 {
		return errors.New("tracking.line_y_tolerance must be between 0 (exclusive) and 1")
	}
	if c.Tracking.MaxFrameGap < 0 {
		return errors.New("tracking.max_frame_gap must not be negative")
	}
	return nil
}

func (c *Config) validateClassification() error {
	for name, value := range map[string]float64{
		"classification.static_min_presence":       c.Classification.StaticMinPresence,
		"classification.static_max_change":         c.Classification.StaticMaxChange,
		"classification.subtitle_min_change_rate":  c.Classification.SubtitleMinChangeRate,
		"classification.screencast_min_area_ratio": c.Classification.ScreencastMinAreaRatio,
	} {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}
	return nil
}

func (c *Config) validateEnsemble() error {
	switch c.Ensemble.VotingMethod {
	case "weighted", "confidence_weighted":
	default:
		return fmt.Errorf("ensemble.voting_method: unsupported value %q (use weighted or confidence_weighted)", c.Ensemble.VotingMethod)
	}
	for name, weight := range c.Ensemble.DetectorWeights {
		if weight <= 0 {
			return fmt.Errorf("ensemble.detector_weights[%s] must be positive", name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
