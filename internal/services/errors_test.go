package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 1")
	err := Wrap(ErrDetectorUnavailable, "ensemble", "run strategy", "tesseract failed", base)
	if !errors.Is(err, ErrDetectorUnavailable) {
		t.Fatalf("expected wrapped error to match ErrDetectorUnavailable: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to retain cause: %v", err)
	}
}

func TestWrapNilMarkerDefaultsToExternalTool(t *testing.T) {
	err := Wrap(nil, "frames", "extract", "", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected default marker ErrExternalTool, got %v", err)
	}
}

func TestInconclusive(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"all detectors failed", Wrap(ErrAllDetectorsFailed, "ensemble", "fuse", "", nil), true},
		{"insufficient samples", Wrap(ErrInsufficientSamples, "analysis", "sample", "", nil), true},
		{"external tool", Wrap(ErrExternalTool, "ffprobe", "inspect", "", nil), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inconclusive(tt.err); got != tt.want {
				t.Errorf("Inconclusive(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
