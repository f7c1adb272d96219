package ensemble

import (
	"errors"
	"fmt"
	"math"
)

// Boundary distances and confidence spreads that grade uncertainty.
const (
	nearBoundary     = 0.10
	moderateBoundary = 0.25
	wideSpread       = 0.25
	moderateSpread   = 0.15
)

// Minority weight shares that grade conflict severity. The share approaches
// 0.5 as the vote split approaches 50/50.
const (
	lowConflictShare    = 0.15
	mediumConflictShare = 0.30
)

// Fuse combines per-strategy votes into the final verdict. At least one vote
// is required; the caller is responsible for mapping an empty vote set to its
// all-detectors-failed handling.
func Fuse(votes []Vote, method VotingMethod) (Result, error) {
	if len(votes) == 0 {
		return Result{}, errors.New("ensemble fuse: no votes")
	}
	for _, vote := range votes {
		if vote.Weight <= 0 {
			return Result{}, fmt.Errorf("ensemble fuse: vote %q has non-positive weight %v", vote.Strategy, vote.Weight)
		}
		if vote.Confidence < 0 || vote.Confidence > 1 {
			return Result{}, fmt.Errorf("ensemble fuse: vote %q has confidence %v outside [0, 1]", vote.Strategy, vote.Confidence)
		}
	}

	score := weightedScore(votes, method)

	result := Result{
		HasSubtitles: score >= 0.5,
		Confidence:   score * 100,
		Conflict:     detectConflict(votes),
		Uncertainty:  estimateUncertainty(score, votes),
		Votes:        append([]Vote(nil), votes...),
	}
	return result, nil
}

func weightedScore(votes []Vote, method VotingMethod) float64 {
	var numerator, denominator float64
	for _, vote := range votes {
		weight := vote.Weight
		if method == VoteConfidenceWeighted {
			weight *= vote.Confidence
		}
		denominator += weight
		if vote.HasSubtitles {
			numerator += weight
		}
	}
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// detectConflict reports disagreement between votes. Unanimous vote sets
// never conflict; otherwise severity scales with the minority's weight share.
func detectConflict(votes []Vote) Conflict {
	var positiveWeight, totalWeight float64
	for _, vote := range votes {
		totalWeight += vote.Weight
		if vote.HasSubtitles {
			positiveWeight += vote.Weight
		}
	}

	if positiveWeight == 0 || positiveWeight == totalWeight {
		return Conflict{Detected: false, Severity: ConflictNone}
	}

	minorityShare := positiveWeight / totalWeight
	if minorityShare > 0.5 {
		minorityShare = 1 - minorityShare
	}

	severity := ConflictHigh
	switch {
	case minorityShare <= lowConflictShare:
		severity = ConflictLow
	case minorityShare <= mediumConflictShare:
		severity = ConflictMedium
	}
	return Conflict{Detected: true, Severity: severity}
}

// estimateUncertainty grades the decision by its distance from the 0.5
// boundary and the spread of per-vote confidences: far from the boundary
// with tightly clustered confidences is low, near the boundary or widely
// diverging confidences is high.
func estimateUncertainty(score float64, votes []Vote) Uncertainty {
	distance := math.Abs(score - 0.5)
	spread := confidenceStdDev(votes)

	switch {
	case distance < nearBoundary || spread > wideSpread:
		return Uncertainty{Level: UncertaintyHigh}
	case distance < moderateBoundary || spread > moderateSpread:
		return Uncertainty{Level: UncertaintyMedium}
	default:
		return Uncertainty{Level: UncertaintyLow}
	}
}

func confidenceStdDev(votes []Vote) float64 {
	if len(votes) < 2 {
		return 0
	}
	var sum float64
	for _, vote := range votes {
		sum += vote.Confidence
	}
	mean := sum / float64(len(votes))

	var varianceSum float64
	for _, vote := range votes {
		diff := vote.Confidence - mean
		varianceSum += diff * diff
	}
	return math.Sqrt(varianceSum / float64(len(votes)))
}
