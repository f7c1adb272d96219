// Package detect defines the frame-level text detection capability: the
// Detection value type, the Detector interface the engine consumes, the
// pre-tracking gate filter, and the tesseract-backed OCR strategy.
//
// Detectors are registered by name with a static ensemble weight and must be
// safe for concurrent use across frames. Malformed detector output is dropped
// and counted, never silently clamped.
package detect
