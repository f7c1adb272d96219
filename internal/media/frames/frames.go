package frames

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"hardsub/internal/detect"
)

// Extractor pulls single frames out of a video file with ffmpeg.
type Extractor struct {
	binary string
}

// NewExtractor returns an extractor that shells out to the given ffmpeg
// binary. An empty binary falls back to "ffmpeg" on PATH.
func NewExtractor(binary string) *Extractor {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Extractor{binary: binary}
}

// Extract decodes the frame nearest to the given timestamp as PNG bytes.
// Callers treat an error as a skipped sample, not a fatal scan failure.
func (e *Extractor) Extract(ctx context.Context, path string, timestamp float64, index, width, height int) (detect.Frame, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return detect.Frame{}, errors.New("frame extract: empty path")
	}
	if timestamp < 0 {
		return detect.Frame{}, fmt.Errorf("frame extract: negative timestamp %.3f", timestamp)
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-ss", strconv.FormatFloat(timestamp, 'f', 3, 64),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", "png",
		"pipe:1",
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return detect.Frame{}, fmt.Errorf("frame extract at %.3fs: %w: %s", timestamp, err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return detect.Frame{}, fmt.Errorf("frame extract at %.3fs: no image data", timestamp)
	}

	return detect.Frame{
		Timestamp: timestamp,
		Index:     index,
		Width:     width,
		Height:    height,
		Data:      stdout.Bytes(),
	}, nil
}
