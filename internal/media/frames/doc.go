// Package frames extracts individual video frames through ffmpeg for
// downstream text detection. Extraction failures are recoverable: the scan
// records a gap and moves to the next sampled timestamp.
package frames
