package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Detection contains detection-level filtering and execution settings shared
// by every strategy.
type Detection struct {
	MinTextLength       int     `toml:"min_text_length"`
	MinConfidence       float64 `toml:"min_confidence"`
	MinAlphaRatio       float64 `toml:"min_alpha_ratio"`
	FrameTimeoutSeconds int     `toml:"frame_timeout_seconds"`
	Concurrency         int     `toml:"concurrency"`
	TesseractLanguage   string  `toml:"tesseract_language"`
}

// Sampling contains region-of-interest and temporal sampling settings.
type Sampling struct {
	ROIPercentage          float64  `toml:"roi_percentage"`
	Regions                []string `toml:"regions"`
	MaxTemporalSamples     int      `toml:"max_temporal_samples"`
	MinValidSamples        int      `toml:"min_valid_samples"`
	DefaultDurationSeconds float64  `toml:"default_duration_seconds"`
}

// Tracking contains temporal tracker settings.
type Tracking struct {
	// LineYTolerance is expressed as a fraction of frame height so one value
	// serves every resolution; it is resolved to pixels per video.
	LineYTolerance float64 `toml:"line_y_tolerance"`
	MaxFrameGap    int     `toml:"max_frame_gap"`
}

// Classification contains track category thresholds.
type Classification struct {
	StaticMinPresence      float64 `toml:"static_min_presence"`
	StaticMaxChange        float64 `toml:"static_max_change"`
	SubtitleMinChangeRate  float64 `toml:"subtitle_min_change_rate"`
	ScreencastMinAreaRatio float64 `toml:"screencast_min_area_ratio"`
	IgnoreStaticText       bool    `toml:"ignore_static_text"`
}

// Ensemble contains decision fusion settings.
type Ensemble struct {
	VotingMethod    string             `toml:"voting_method"`
	DetectorWeights map[string]float64 `toml:"detector_weights"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for hardsub.
//
// Configuration sections by subsystem:
//   - Paths: data and log directories
//   - Detection: per-frame detection filters, timeout, and concurrency
//   - Sampling: ROI geometry and temporal sample planning
//   - Tracking: cross-frame track matching and closing
//   - Classification: track category thresholds
//   - Ensemble: voting method and per-strategy weights
//   - Logging: log format and level
type Config struct {
	Paths          Paths          `toml:"paths"`
	Detection      Detection      `toml:"detection"`
	Sampling       Sampling       `toml:"sampling"`
	Tracking       Tracking       `toml:"tracking"`
	Classification Classification `toml:"classification"`
	Ensemble       Ensemble       `toml:"ensemble"`
	Logging        Logging        `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/hardsub/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second and third
// return values report the resolved path and whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("hardsub.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the scanner needs at runtime.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFprobeBinary returns the ffprobe executable name used for media probing.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

// FFmpegBinary returns the ffmpeg executable name used for frame extraction.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// TesseractBinary returns the tesseract executable name used for OCR.
func (c *Config) TesseractBinary() string {
	return "tesseract"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
