// Package sampling computes resolution-adaptive regions of interest and
// bounded, deterministic temporal sample plans for a video.
//
// The ROI contract is exact: the scanned region's pixel height equals the
// configured fraction of the frame height at every supported resolution.
// Timestamp planning is uniform and non-randomized so repeated scans of the
// same video observe the same frames.
package sampling
