// Package services defines shared utilities consumed by the detection engine
// and external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp video labels, strategy names, and scan
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that keep the failure
//     taxonomy (fatal vs recoverable, conclusive vs inconclusive) uniform
//     across the pipeline.
//
// Use these helpers when wiring new engine logic so error handling and
// observability stay consistent.
package services
