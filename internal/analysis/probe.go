package analysis

import (
	"context"

	"hardsub/internal/media/ffprobe"
)

// Prober reads the geometry and duration of a video before sampling.
type Prober interface {
	Probe(ctx context.Context, path string) (MediaInfo, error)
}

// FFprobeProber probes media through the ffprobe CLI.
type FFprobeProber struct {
	Binary string
}

func (p FFprobeProber) Probe(ctx context.Context, path string) (MediaInfo, error) {
	result, err := ffprobe.Inspect(ctx, p.Binary, path)
	if err != nil {
		return MediaInfo{}, err
	}
	width, height, _ := result.VideoDimensions()
	return MediaInfo{
		Width:           width,
		Height:          height,
		DurationSeconds: result.DurationSeconds(),
	}, nil
}
