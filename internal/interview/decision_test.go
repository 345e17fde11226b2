package interview

import (
	"strings"
	"testing"
)

func TestDecide(t *testing.T) {
	thresholds := DefaultThresholds()

	tests := []struct {
		name    string
		signals Signals
		passed  bool
		mention string
	}{
		{
			name:    "strong candidate passes",
			signals: Signals{RequiredSkill: 0.8, SoftSkill: 0.7, Confidence: 0.9, Cheating: 0.1, Answered: 10},
			passed:  true,
		},
		{
			name:    "exact minimums pass",
			signals: Signals{RequiredSkill: 0.65, SoftSkill: 0.55, Confidence: 0.4, Cheating: 0.74, Answered: 10},
			passed:  true,
		},
		{
			name:    "weak required skills fail",
			signals: Signals{RequiredSkill: 0.5, SoftSkill: 0.7, Confidence: 0.9, Cheating: 0.1, Answered: 10},
			passed:  false,
			mention: "required-skill",
		},
		{
			name:    "weak soft skills fail",
			signals: Signals{RequiredSkill: 0.8, SoftSkill: 0.4, Confidence: 0.9, Cheating: 0.1, Answered: 10},
			passed:  false,
			mention: "soft-skill",
		},
		{
			name:    "low confidence fails",
			signals: Signals{RequiredSkill: 0.8, SoftSkill: 0.7, Confidence: 0.3, Cheating: 0.1, Answered: 10},
			passed:  false,
			mention: "confidence",
		},
		{
			name:    "cheating at the limit fails",
			signals: Signals{RequiredSkill: 0.8, SoftSkill: 0.7, Confidence: 0.9, Cheating: 0.75, Answered: 10},
			passed:  false,
			mention: "cheating",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.signals, thresholds)

			if d.Passed != tt.passed {
				t.Fatalf("passed = %v, want %v (decision %+v)", d.Passed, tt.passed, d)
			}
			if d.Feedback == "" {
				t.Fatal("feedback must never be empty")
			}
			if tt.mention != "" && !strings.Contains(d.Feedback, tt.mention) {
				t.Fatalf("feedback %q does not mention %q", d.Feedback, tt.mention)
			}
		})
	}
}

func TestDecideScalesRatings(t *testing.T) {
	d := Decide(Signals{RequiredSkill: 0.815, SoftSkill: 0.6, Confidence: 0.75, Cheating: 0.123, Answered: 5}, DefaultThresholds())

	if d.RequiredSkillRating != 8.15 {
		t.Fatalf("required rating = %v, want 8.15", d.RequiredSkillRating)
	}
	if d.SoftSkillRating != 6.0 {
		t.Fatalf("soft rating = %v, want 6.0", d.SoftSkillRating)
	}
	if d.ConfidenceRating != 7.5 {
		t.Fatalf("confidence rating = %v, want 7.5", d.ConfidenceRating)
	}
	if d.CheatingScore != 0.12 {
		t.Fatalf("cheating score = %v, want 0.12", d.CheatingScore)
	}
}

func TestDecideListsEveryMissedThreshold(t *testing.T) {
	d := Decide(Signals{Answered: 3}, DefaultThresholds())

	if d.Passed {
		t.Fatal("all-zero signals must fail")
	}
	for _, fragment := range []string{"required-skill", "soft-skill", "confidence"} {
		if !strings.Contains(d.Feedback, fragment) {
			t.Fatalf("feedback %q misses %q", d.Feedback, fragment)
		}
	}
}
