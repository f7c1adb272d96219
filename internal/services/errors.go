package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool        = errors.New("external tool error")
	ErrConfiguration       = errors.New("configuration error")
	ErrInvalidMetadata     = errors.New("invalid video metadata")
	ErrInsufficientSamples = errors.New("insufficient samples")
	ErrDetectorUnavailable = errors.New("detector unavailable")
	ErrAllDetectorsFailed  = errors.New("all detectors failed")
	ErrMalformedDetection  = errors.New("malformed detection")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Inconclusive reports whether the error means classification could not reach
// a verdict for the video. Callers should treat these as "no answer", not as
// infrastructure failures.
func Inconclusive(err error) bool {
	return errors.Is(err, ErrAllDetectorsFailed) || errors.Is(err, ErrInsufficientSamples)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
