// Package ffprobe wraps the ffprobe CLI to read the resolution and duration
// the sampler needs before planning a scan.
package ffprobe
