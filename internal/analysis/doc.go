// Package analysis orchestrates the scan pipeline. It probes the source
// video, samples frames, fans detection out across the configured strategies,
// tracks and classifies the resulting text regions, and fuses the per-strategy
// verdicts into the final report.
package analysis
