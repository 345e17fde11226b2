package interview

import (
	"fmt"
	"strings"
)

// Thresholds is the configured pass bar. The three rating minimums are on the
// 0-10 scale, the cheating maximum on [0,1].
type Thresholds struct {
	RequiredSkillMin float64 `json:"required_skill_min"`
	SoftSkillMin     float64 `json:"soft_skill_min"`
	ConfidenceMin    float64 `json:"confidence_min"`
	CheatingMax      float64 `json:"cheating_max"`
}

// DefaultThresholds mirror the values the service shipped with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RequiredSkillMin: 6.5,
		SoftSkillMin:     5.5,
		ConfidenceMin:    4.0,
		CheatingMax:      0.75,
	}
}

// Decision is the terminal artifact of a completed interview.
type Decision struct {
	RequiredSkillRating float64 `json:"required_skill_rating"`
	SoftSkillRating     float64 `json:"soft_skill_rating"`
	ConfidenceRating    float64 `json:"confidence_rating"`
	CheatingScore       float64 `json:"cheating_score"`
	Passed              bool    `json:"passed"`
	Feedback            string  `json:"feedback"`
}

// Decide computes the final verdict from the accumulated signals. All four
// threshold conditions are conjunctive: missing any one fails the candidate.
func Decide(signals Signals, thresholds Thresholds) Decision {
	d := Decision{
		RequiredSkillRating: round2(signals.RequiredSkill * 10),
		SoftSkillRating:     round2(signals.SoftSkill * 10),
		ConfidenceRating:    round2(signals.Confidence * 10),
		CheatingScore:       round2(signals.Cheating),
	}

	var missed []string
	if d.RequiredSkillRating < thresholds.RequiredSkillMin {
		missed = append(missed, fmt.Sprintf("required-skill rating %.1f is below the %.1f minimum", d.RequiredSkillRating, thresholds.RequiredSkillMin))
	}
	if d.SoftSkillRating < thresholds.SoftSkillMin {
		missed = append(missed, fmt.Sprintf("soft-skill rating %.1f is below the %.1f minimum", d.SoftSkillRating, thresholds.SoftSkillMin))
	}
	if d.ConfidenceRating < thresholds.ConfidenceMin {
		missed = append(missed, fmt.Sprintf("confidence rating %.1f is below the %.1f minimum", d.ConfidenceRating, thresholds.ConfidenceMin))
	}
	if d.CheatingScore >= thresholds.CheatingMax {
		missed = append(missed, fmt.Sprintf("cheating indicator %.2f reached the %.2f limit", d.CheatingScore, thresholds.CheatingMax))
	}

	d.Passed = len(missed) == 0
	d.Feedback = decisionFeedback(missed)

	return d
}

func decisionFeedback(missed []string) string {
	if len(missed) == 0 {
		return "Candidate meets requirements; proceed to the next stage."
	}

	return fmt.Sprintf(
		"Not passed: %s. Focus on the required skill areas, keep answers structured and concise, and avoid relying on external references.",
		strings.Join(missed, "; "),
	)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
