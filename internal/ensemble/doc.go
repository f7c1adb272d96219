// Package ensemble fuses the verdicts of independent detection strategies
// into one final decision, quantifying inter-detector conflict and decision
// uncertainty alongside the weighted confidence score.
package ensemble
