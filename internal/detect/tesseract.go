package detect

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"hardsub/internal/sampling"
)

// TesseractConfig controls the tesseract OCR strategy.
type TesseractConfig struct {
	Binary   string
	Language string
}

// Tesseract runs the tesseract CLI against extracted frames and parses its
// TSV output into line-level detections.
type Tesseract struct {
	binary   string
	language string
}

// NewTesseract constructs the tesseract-backed detection strategy.
func NewTesseract(cfg TesseractConfig) *Tesseract {
	binary := strings.TrimSpace(cfg.Binary)
	if binary == "" {
		binary = "tesseract"
	}
	language := strings.TrimSpace(cfg.Language)
	if language == "" {
		language = "eng"
	}
	return &Tesseract{binary: binary, language: language}
}

func (t *Tesseract) Name() string { return "tesseract" }

// Detect feeds the full frame to tesseract and keeps the recognized lines
// whose bounding box falls inside roi. Word boxes arrive in frame pixel
// space because the whole frame is supplied, so no coordinate translation is
// needed.
func (t *Tesseract) Detect(ctx context.Context, frame Frame, roi sampling.ROI) ([]Detection, error) {
	if len(frame.Data) == 0 {
		return nil, fmt.Errorf("tesseract: empty frame data")
	}

	cmd := exec.CommandContext(ctx, t.binary, "stdin", "stdout", "-l", t.language, "--psm", "6", "tsv")
	cmd.Stdin = bytes.NewReader(frame.Data)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	lines, err := parseTSV(stdout.String())
	if err != nil {
		return nil, fmt.Errorf("tesseract parse: %w", err)
	}

	detections := make([]Detection, 0, len(lines))
	for _, line := range lines {
		if !rectInROI(line.box, roi.Rect) {
			continue
		}
		detections = append(detections, Detection{
			Timestamp:  frame.Timestamp,
			FrameIndex: frame.Index,
			Region:     roi.Region,
			Text:       line.text,
			Box:        line.box,
			Confidence: line.confidence,
		})
	}
	return detections, nil
}

// rectInROI reports whether the line's vertical center lies inside the ROI
// band and the boxes overlap horizontally.
func rectInROI(box, roi sampling.Rect) bool {
	centerY := box.Y + box.Height/2
	if centerY < roi.Y || centerY >= roi.Y+roi.Height {
		return false
	}
	return box.X < roi.X+roi.Width && box.X+box.Width > roi.X
}

type tsvLine struct {
	text       string
	box        sampling.Rect
	confidence float64
}

type lineKey struct {
	block, par, line int
}

// parseTSV groups tesseract word rows (level 5) into lines keyed by block,
// paragraph, and line number, unioning word boxes and averaging word
// confidences. Rows with negative confidence are layout placeholders and are
// skipped.
func parseTSV(output string) ([]tsvLine, error) {
	rows := strings.Split(strings.TrimSpace(output), "\n")
	if len(rows) == 0 {
		return nil, nil
	}

	type lineAccum struct {
		words     []string
		box       sampling.Rect
		confSum   float64
		confCount int
	}

	accum := map[lineKey]*lineAccum{}
	var order []lineKey

	for i, row := range rows {
		if i == 0 && strings.HasPrefix(row, "level") {
			continue
		}
		fields := strings.Split(row, "\t")
		if len(fields) < 12 {
			continue
		}

		level, err := strconv.Atoi(fields[0])
		if err != nil || level != 5 {
			continue
		}

		conf, err := strconv.ParseFloat(fields[10], 64)
		if err != nil || conf < 0 {
			continue
		}

		word := strings.TrimSpace(fields[11])
		if word == "" {
			continue
		}

		left, err1 := strconv.Atoi(fields[6])
		top, err2 := strconv.Atoi(fields[7])
		width, err3 := strconv.Atoi(fields[8])
		height, err4 := strconv.Atoi(fields[9])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return nil, fmt.Errorf("row %d: malformed geometry", i)
		}

		key := lineKey{
			block: atoiDefault(fields[2]),
			par:   atoiDefault(fields[3]),
			line:  atoiDefault(fields[4]),
		}

		entry, ok := accum[key]
		if !ok {
			entry = &lineAccum{box: sampling.Rect{X: left, Y: top, Width: width, Height: height}}
			accum[key] = entry
			order = append(order, key)
		} else {
			entry.box = unionRect(entry.box, sampling.Rect{X: left, Y: top, Width: width, Height: height})
		}
		entry.words = append(entry.words, word)
		entry.confSum += conf / 100
		entry.confCount++
	}

	result := make([]tsvLine, 0, len(order))
	for _, key := range order {
		entry := accum[key]
		if entry.confCount == 0 {
			continue
		}
		result = append(result, tsvLine{
			text:       strings.Join(entry.words, " "),
			box:        entry.box,
			confidence: entry.confSum / float64(entry.confCount),
		})
	}
	return result, nil
}

func atoiDefault(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func unionRect(a, b sampling.Rect) sampling.Rect {
	minX := min(a.X, b.X)
	minY := min(a.Y, b.Y)
	maxX := max(a.X+a.Width, b.X+b.Width)
	maxY := max(a.Y+a.Height, b.Y+b.Height)
	return sampling.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Available reports whether the tesseract binary can be resolved. Used by
// preflight checks and strategy registration.
func (t *Tesseract) Available() bool {
	_, err := exec.LookPath(t.binary)
	return err == nil
}
