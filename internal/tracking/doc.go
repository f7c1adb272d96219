// Package tracking assigns temporal identity to text regions across sampled
// frames. It consumes the ordered per-frame detections of one region from one
// detection strategy and emits closed tracks with aggregate statistics for
// classification.
package tracking
