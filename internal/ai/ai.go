// Package ai defines the contracts for the external question-generation and
// answer-grading delegates. Failures of either delegate are recoverable by
// design: callers substitute deterministic fallbacks instead of surfacing
// delegate errors to the candidate.
package ai

import "context"

// GenerateRequest describes the interview a question batch is needed for.
type GenerateRequest struct {
	Role       string
	Level      string
	ResumeText string
	Skills     []string
	Count      int
}

// QuestionDraft is a question as returned by a delegate, before schema
// validation. Fields are loosely typed on purpose: the interview engine
// decides whether a draft is acceptable.
type QuestionDraft struct {
	ID            int               `json:"id"`
	Type          string            `json:"type"`
	Text          string            `json:"text"`
	Skill         string            `json:"skill"`
	Options       []string          `json:"options,omitempty"`
	CorrectAnswer string            `json:"correct_answer,omitempty"`
	Rubric        []RubricCriterion `json:"rubric,omitempty"`
}

// RubricCriterion is one weighted grading criterion of an open-ended question.
type RubricCriterion struct {
	Criterion   string  `json:"criterion"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description,omitempty"`
}

// GradeRequest carries everything a grading delegate needs for one answer.
type GradeRequest struct {
	QuestionText string
	Criteria     []RubricCriterion
	Answer       string
}

// RubricGrade is the structured grading verdict for one open-ended answer.
type RubricGrade struct {
	Scores     []float64
	Total      float64
	Confidence float64
	Comment    string
}

// QuestionGenerator produces an ordered question batch for an interview.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, req GenerateRequest) ([]QuestionDraft, error)
}

// AnswerGrader scores one open-ended answer against its rubric.
type AnswerGrader interface {
	GradeAnswer(ctx context.Context, req GradeRequest) (*RubricGrade, error)
}

// ContentGenerator is the minimal surface a model backend must provide.
// Implementations live in the openai and gemini subpackages.
type ContentGenerator interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Model() string
}
