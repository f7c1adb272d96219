package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDetection()
	c.normalizeSampling()
	c.normalizeEnsemble()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDetection() {
	if c.Detection.FrameTimeoutSeconds <= 0 {
		c.Detection.FrameTimeoutSeconds = defaultFrameTimeoutSeconds
	}
	if c.Detection.Concurrency <= 0 {
		c.Detection.Concurrency = defaultDetectionConcurrency
	}
	if strings.TrimSpace(c.Detection.TesseractLanguage) == "" {
		c.Detection.TesseractLanguage = defaultTesseractLanguage
	}
}

func (c *Config) normalizeSampling() {
	if len(c.Sampling.Regions) == 0 {
		c.Sampling.Regions = []string{"bottom"}
	}
	for i, region := range c.Sampling.Regions {
		c.Sampling.Regions[i] = strings.ToLower(strings.TrimSpace(region))
	}
	if c.Sampling.MinValidSamples <= 0 {
		c.Sampling.MinValidSamples = defaultMinValidSamples
	}
	if c.Sampling.DefaultDurationSeconds <= 0 {
		c.Sampling.DefaultDurationSeconds = defaultDurationSeconds
	}
}

func (c *Config) normalizeEnsemble() {
	c.Ensemble.VotingMethod = strings.ToLower(strings.TrimSpace(c.Ensemble.VotingMethod))
	if c.Ensemble.VotingMethod == "" {
		c.Ensemble.VotingMethod = defaultVotingMethod
	}
	if c.Ensemble.DetectorWeights == nil {
		c.Ensemble.DetectorWeights = map[string]float64{}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
