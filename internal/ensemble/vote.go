package ensemble

import (
	"fmt"
	"strings"
)

// Vote is one strategy's opinion about a video. Strategies that fail to run
// produce no vote.
type Vote struct {
	Strategy     string
	HasSubtitles bool
	Confidence   float64
	Weight       float64
}

// VotingMethod selects how votes are combined.
type VotingMethod int

const (
	// VoteWeighted counts each positive vote by its static weight.
	VoteWeighted VotingMethod = iota
	// VoteConfidenceWeighted scales each vote's weight by its confidence.
	VoteConfidenceWeighted
)

// ParseVotingMethod converts a configuration string into a VotingMethod.
func ParseVotingMethod(value string) (VotingMethod, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "weighted":
		return VoteWeighted, nil
	case "confidence_weighted":
		return VoteConfidenceWeighted, nil
	default:
		return VoteWeighted, fmt.Errorf("unknown voting method %q", value)
	}
}

// String returns the canonical configuration name.
func (m VotingMethod) String() string {
	switch m {
	case VoteWeighted:
		return "weighted"
	case VoteConfidenceWeighted:
		return "confidence_weighted"
	default:
		return fmt.Sprintf("voting_method(%d)", int(m))
	}
}

// ConflictSeverity grades how strongly the strategies disagree.
type ConflictSeverity int

const (
	ConflictNone ConflictSeverity = iota
	ConflictLow
	ConflictMedium
	ConflictHigh
)

func (s ConflictSeverity) String() string {
	switch s {
	case ConflictNone:
		return "none"
	case ConflictLow:
		return "low"
	case ConflictMedium:
		return "medium"
	case ConflictHigh:
		return "high"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// UncertaintyLevel grades how close the fused decision sits to the boundary.
type UncertaintyLevel int

const (
	UncertaintyLow UncertaintyLevel = iota
	UncertaintyMedium
	UncertaintyHigh
)

func (l UncertaintyLevel) String() string {
	switch l {
	case UncertaintyLow:
		return "low"
	case UncertaintyMedium:
		return "medium"
	case UncertaintyHigh:
		return "high"
	default:
		return fmt.Sprintf("uncertainty(%d)", int(l))
	}
}

// Conflict reports inter-detector disagreement.
type Conflict struct {
	Detected bool
	Severity ConflictSeverity
}

// Uncertainty reports how trustworthy the fused decision is.
type Uncertainty struct {
	Level UncertaintyLevel
}

// Result is the final fused verdict for a video.
type Result struct {
	HasSubtitles bool
	// Confidence is the weighted score rescaled to [0, 100].
	Confidence  float64
	Conflict    Conflict
	Uncertainty Uncertainty
	Votes       []Vote
}
