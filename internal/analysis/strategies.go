package analysis

import (
	"hardsub/internal/config"
	"hardsub/internal/detect"
)

// BuildStrategies assembles the configured detection strategies with their
// ensemble weights. Weights default to 1 when unconfigured.
func BuildStrategies(cfg *config.Config) []detect.Strategy {
	tesseract := detect.NewTesseract(detect.TesseractConfig{
		Binary:   cfg.TesseractBinary(),
		Language: cfg.Detection.TesseractLanguage,
	})
	return []detect.Strategy{
		{Detector: tesseract, Weight: weightFor(cfg.Ensemble.DetectorWeights, tesseract.Name())},
	}
}

func weightFor(weights map[string]float64, name string) float64 {
	if w, ok := weights[name]; ok && w > 0 {
		return w
	}
	return 1
}
