package interview

import (
	"fmt"
	"strings"

	"github.com/skillgate/interviewd/internal/ai"
)

// QuestionType discriminates the two supported question kinds.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	OpenEnded      QuestionType = "open_ended"
)

// RubricCriterion is one weighted grading criterion of an open-ended question.
type RubricCriterion struct {
	Criterion   string  `json:"criterion" yaml:"criterion"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Question is a single interview question. Immutable once assigned to a
// session.
type Question struct {
	ID            int               `json:"id" yaml:"id"`
	Type          QuestionType      `json:"type" yaml:"type"`
	Text          string            `json:"text" yaml:"text"`
	Skill         string            `json:"skill" yaml:"skill"`
	Options       []string          `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer string            `json:"correct_answer,omitempty" yaml:"correct_answer,omitempty"`
	Rubric        []RubricCriterion `json:"rubric,omitempty" yaml:"rubric,omitempty"`
}

// Validate checks the question against the generation schema.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question %d: text is empty", q.ID)
	}

	switch q.Type {
	case MultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d: multiple choice needs at least 2 options, got %d", q.ID, len(q.Options))
		}
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			return fmt.Errorf("question %d: correct answer is empty", q.ID)
		}
		if !q.hasOption(q.CorrectAnswer) {
			return fmt.Errorf("question %d: correct answer %q is not among the options", q.ID, q.CorrectAnswer)
		}
	case OpenEnded:
		if len(q.Rubric) == 0 {
			return fmt.Errorf("question %d: open ended needs a rubric", q.ID)
		}
		var weightSum float64
		for _, criterion := range q.Rubric {
			if strings.TrimSpace(criterion.Criterion) == "" {
				return fmt.Errorf("question %d: rubric criterion name is empty", q.ID)
			}
			if criterion.Weight <= 0 {
				return fmt.Errorf("question %d: rubric weight must be positive, got %v", q.ID, criterion.Weight)
			}
			weightSum += criterion.Weight
		}
		if weightSum <= 0 {
			return fmt.Errorf("question %d: rubric weights sum to %v", q.ID, weightSum)
		}
	default:
		return fmt.Errorf("question %d: unknown type %q", q.ID, q.Type)
	}

	return nil
}

// Presented returns the candidate-facing copy of the question, with the
// correct answer and the grading rubric stripped.
func (q Question) Presented() Question {
	q.CorrectAnswer = ""
	q.Rubric = nil
	return q
}

// hasOption reports whether the key matches one of the options, either as the
// full option text or as its leading letter ("C" matches "C) ...").
func (q Question) hasOption(key string) bool {
	key = strings.TrimSpace(key)
	for _, option := range q.Options {
		if strings.EqualFold(strings.TrimSpace(option), key) {
			return true
		}
		if letter := optionLetter(option); letter != "" && strings.EqualFold(letter, optionLetter(key)) {
			return true
		}
	}
	return false
}

// optionLetter extracts the leading letter of an option label ("C) foo" → "c").
func optionLetter(option string) string {
	option = strings.TrimSpace(option)
	if option == "" {
		return ""
	}
	first := rune(option[0])
	if (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z') {
		return strings.ToLower(string(first))
	}
	return ""
}

// QuestionsFromDrafts converts delegate drafts into questions, enforcing the
// schema. A single malformed draft rejects the whole batch: a partially
// delegate-authored interview is worse than a fully static one.
func QuestionsFromDrafts(drafts []ai.QuestionDraft, max int) ([]Question, error) {
	if len(drafts) == 0 {
		return nil, fmt.Errorf("empty question batch")
	}

	questions := make([]Question, 0, len(drafts))
	for i, draft := range drafts {
		q := Question{
			ID:            i + 1,
			Type:          QuestionType(strings.TrimSpace(draft.Type)),
			Text:          strings.TrimSpace(draft.Text),
			Skill:         strings.TrimSpace(draft.Skill),
			Options:       draft.Options,
			CorrectAnswer: strings.TrimSpace(draft.CorrectAnswer),
		}
		if q.Skill == "" {
			q.Skill = "general"
		}
		for _, criterion := range draft.Rubric {
			q.Rubric = append(q.Rubric, RubricCriterion{
				Criterion:   criterion.Criterion,
				Weight:      criterion.Weight,
				Description: criterion.Description,
			})
		}

		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("draft %d: %w", i+1, err)
		}

		questions = append(questions, q)
		if max > 0 && len(questions) >= max {
			break
		}
	}

	return questions, nil
}
