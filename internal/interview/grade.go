package interview

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/skillgate/interviewd/internal/ai"
)

const (
	// Answers longer than this are suspicious regardless of question kind.
	excessiveAnswerRunes = 1200
	// More line breaks than a typed answer plausibly has.
	excessiveLineBreaks = 30
	// Long answers graded with low confidence hint at pasted material.
	pastedAnswerRunes = 800

	timeoutFeedback = "Skipped due to time limit."
	// Confidence attached to a timeout: the engine learned nothing either way.
	neutralConfidence = 0.5
)

// GradeResult is the transient outcome of evaluating one answer. It is folded
// into the session signals and then discarded.
type GradeResult struct {
	Scores       []float64
	Total        float64
	Confidence   float64
	Feedback     string
	Contribution Contribution
	TimedOut     bool
}

// TimeoutGrade is the grade for a submission that arrived past the question
// deadline. Zero topical score, neutral confidence, no cheating evidence.
func TimeoutGrade() GradeResult {
	return GradeResult{
		Feedback: timeoutFeedback,
		TimedOut: true,
		Contribution: Contribution{
			RequiredSkill: 0,
			SoftSkill:     neutralSoftSkill,
			Confidence:    neutralConfidence,
			Cheating:      0,
		},
	}
}

// GradeMultipleChoice scores an answer against the correct key. Exact,
// case-insensitive, total and deterministic; confidence is always 1.
func GradeMultipleChoice(q Question, answer string) GradeResult {
	correct := matchesKey(q.CorrectAnswer, answer)

	total := 0.0
	feedback := fmt.Sprintf("Incorrect. Correct answer is %s.", strings.TrimSpace(q.CorrectAnswer))
	if correct {
		total = 1.0
		feedback = "Correct."
	}

	return GradeResult{
		Total:      total,
		Confidence: 1.0,
		Feedback:   feedback,
		Contribution: Contribution{
			RequiredSkill: total,
			SoftSkill:     softSkillContribution(answer),
			Confidence:    1.0,
			Cheating:      cheatingContribution(answer, 1.0),
		},
	}
}

// matchesKey compares a submitted answer with the correct key, accepting both
// the full option text and the bare option letter.
func matchesKey(key, answer string) bool {
	key = strings.TrimSpace(key)
	answer = strings.TrimSpace(answer)
	if key == "" || answer == "" {
		return false
	}

	if strings.EqualFold(key, answer) {
		return true
	}

	keyLetter := optionLetter(key)
	return keyLetter != "" && keyLetter == optionLetter(answer)
}

// GradeOpenEnded delegates rubric grading and falls back to the local
// heuristic when the delegate fails. The flow never propagates a delegate
// error: the fallback result is always usable.
func GradeOpenEnded(ctx context.Context, grader ai.AnswerGrader, q Question, answer string, fallbackConfidence float64) (GradeResult, error) {
	grade, err := delegateGrade(ctx, grader, q, answer)
	if err != nil {
		return heuristicGrade(q, answer, fallbackConfidence), err
	}

	total := ai.Clamp01(grade.Total, 0)
	confidence := ai.Clamp01(grade.Confidence, neutralConfidence)

	scores := make([]float64, len(grade.Scores))
	for i, s := range grade.Scores {
		scores[i] = ai.Clamp01(s, 0)
	}

	feedback := strings.TrimSpace(grade.Comment)
	if feedback == "" {
		feedback = fmt.Sprintf("Scored %.2f against the rubric.", total)
	}

	return GradeResult{
		Scores:     scores,
		Total:      total,
		Confidence: confidence,
		Feedback:   feedback,
		Contribution: Contribution{
			RequiredSkill: total,
			SoftSkill:     softSkillContribution(answer),
			Confidence:    confidence,
			Cheating:      cheatingContribution(answer, confidence),
		},
	}, nil
}

func delegateGrade(ctx context.Context, grader ai.AnswerGrader, q Question, answer string) (*ai.RubricGrade, error) {
	if grader == nil {
		return nil, fmt.Errorf("no grading delegate configured")
	}

	criteria := make([]ai.RubricCriterion, len(q.Rubric))
	for i, criterion := range q.Rubric {
		criteria[i] = ai.RubricCriterion{
			Criterion:   criterion.Criterion,
			Weight:      criterion.Weight,
			Description: criterion.Description,
		}
	}

	return grader.GradeAnswer(ctx, ai.GradeRequest{
		QuestionText: q.Text,
		Criteria:     criteria,
		Answer:       answer,
	})
}

// heuristicGrade is the deterministic stand-in for an unavailable grading
// delegate: score grows with answer substance and mentions of the question's
// skill, confidence is pinned low to mark the result as unreliable.
func heuristicGrade(q Question, answer string, fallbackConfidence float64) GradeResult {
	length := utf8.RuneCountInString(strings.TrimSpace(answer))

	total := float64(length) / 400.0
	if total > 0.5 {
		total = 0.5
	}

	lowered := strings.ToLower(answer)
	keywords := strings.Fields(strings.ToLower(q.Skill))
	matched := 0
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			matched++
		}
	}
	if len(keywords) > 0 {
		total += 0.5 * float64(matched) / float64(len(keywords))
	}
	total = ai.Clamp01(total, 0)

	confidence := ai.Clamp01(fallbackConfidence, 0.4)

	return GradeResult{
		Total:      total,
		Confidence: confidence,
		Feedback:   "Automated grading was unavailable; the answer was scored heuristically.",
		Contribution: Contribution{
			RequiredSkill: total,
			SoftSkill:     softSkillContribution(answer),
			Confidence:    confidence,
			Cheating:      cheatingContribution(answer, confidence),
		},
	}
}
