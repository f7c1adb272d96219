package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hardsub/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "hardsub")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Sampling.ROIPercentage != 0.25 {
		t.Fatalf("unexpected roi percentage: %v", cfg.Sampling.ROIPercentage)
	}
	if cfg.Sampling.MaxTemporalSamples != 6 {
		t.Fatalf("unexpected max samples: %d", cfg.Sampling.MaxTemporalSamples)
	}
	if got := cfg.Sampling.Regions; len(got) != 1 || got[0] != "bottom" {
		t.Fatalf("unexpected default regions: %v", got)
	}
	if cfg.Ensemble.VotingMethod != "confidence_weighted" {
		t.Fatalf("unexpected voting method: %q", cfg.Ensemble.VotingMethod)
	}
	if !cfg.Classification.IgnoreStaticText {
		t.Fatal("expected ignore_static_text enabled by default")
	}
}

func TestLoadParsesFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		`[sampling]`,
		`regions = [" Bottom ", "TOP"]`,
		`max_temporal_samples = 8`,
		``,
		`[ensemble]`,
		`voting_method = "Weighted"`,
		`[ensemble.detector_weights]`,
		`tesseract = 2.0`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if got := cfg.Sampling.Regions; len(got) != 2 || got[0] != "bottom" || got[1] != "top" {
		t.Fatalf("regions not normalized: %v", got)
	}
	if cfg.Sampling.MaxTemporalSamples != 8 {
		t.Fatalf("unexpected max samples: %d", cfg.Sampling.MaxTemporalSamples)
	}
	if cfg.Ensemble.VotingMethod != "weighted" {
		t.Fatalf("voting method not normalized: %q", cfg.Ensemble.VotingMethod)
	}
	if cfg.Ensemble.DetectorWeights["tesseract"] != 2.0 {
		t.Fatalf("unexpected detector weight: %v", cfg.Ensemble.DetectorWeights)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"roi percentage zero", func(c *config.Config) { c.Sampling.ROIPercentage = 0 }},
		{"roi percentage above one", func(c *config.Config) { c.Sampling.ROIPercentage = 1.5 }},
		{"unknown region", func(c *config.Config) { c.Sampling.Regions = []string{"diagonal"} }},
		{"bad voting method", func(c *config.Config) { c.Ensemble.VotingMethod = "majority" }},
		{"negative weight", func(c *config.Config) { c.Ensemble.DetectorWeights = map[string]float64{"ocr": -1} }},
		{"confidence above one", func(c *config.Config) { c.Detection.MinConfidence = 1.2 }},
		{"tolerance zero", func(c *config.Config) { c.Tracking.LineYTolerance = 0 }},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "yaml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[sampling]") {
		t.Fatal("sample config missing [sampling] section")
	}
}
