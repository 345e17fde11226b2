package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/skillgate/interviewd/internal/logger"
	"go.uber.org/zap"
)

const defaultMaxLogLength = 200

const generateSystemPrompt = `You are an interview question writer. ` +
	`Return only a single valid JSON object. No extra text, no markdown. ` +
	`Schema: {"questions":[{"id":int,"type":"multiple_choice"|"open_ended","text":string,` +
	`"skill":string,"options":[string],"correct_answer":string,` +
	`"rubric":[{"criterion":string,"weight":number,"description":string}]}]}. ` +
	`Multiple-choice questions must have 3-4 options and exactly one correct_answer ` +
	`that appears among the options. Open-ended questions must carry a rubric whose ` +
	`weights sum to 1. Every question MUST have a non-empty text field.`

const gradeSystemPrompt = `You are a strict interview grader. Score the candidate answer ` +
	`against the rubric only. Return only a single valid JSON object: ` +
	`{"scores":[number 0-1 per criterion],"total":number 0-1,"confidence":number 0-1,"comments":string}.`

// Delegate implements the question-generation and answer-grading contracts on
// top of any ContentGenerator backend.
type Delegate struct {
	generator ContentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewDelegate wraps a model backend. A nil logger is replaced with a no-op one.
func NewDelegate(generator ContentGenerator, log *zap.Logger, maxLogLength int) *Delegate {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Delegate{
		generator: generator,
		logger:    logger.WithFields(log),
		maxLogLen: maxLogLength,
	}
}

// GenerateQuestions asks the backend for a question batch tailored to the
// candidate. The drafts are returned unvalidated; schema enforcement is the
// caller's responsibility.
func (d *Delegate) GenerateQuestions(ctx context.Context, req GenerateRequest) ([]QuestionDraft, error) {
	if d == nil || d.generator == nil {
		return nil, errors.New("question generation delegate is not configured")
	}

	if req.Count <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", req.Count)
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Generate concise interview questions for a %s at %s level.\n", req.Role, req.Level)
	fmt.Fprintf(&user, "Mix multiple_choice and open_ended. Create up to %d questions.\n", req.Count)
	fmt.Fprintf(&user, "Focus first on the matched resume skills: %s.\n", strings.Join(req.Skills, ", "))
	user.WriteString("Also ask about projects and experience with measurable impact.\n")
	if req.ResumeText != "" {
		fmt.Fprintf(&user, "\nResume text:\n%s\n", req.ResumeText)
	}

	raw, err := d.complete(ctx, generateSystemPrompt, user.String(), "generate questions")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Questions []QuestionDraft `json:"questions"`
	}
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &envelope); err != nil {
		return nil, fmt.Errorf("parse question batch: %w", err)
	}

	if len(envelope.Questions) == 0 {
		return nil, errors.New("delegate returned no questions")
	}

	return envelope.Questions, nil
}

// GradeAnswer scores one open-ended answer against its rubric. Numeric fields
// are coerced defensively but not clamped here: the evaluator owns bounds.
func (d *Delegate) GradeAnswer(ctx context.Context, req GradeRequest) (*RubricGrade, error) {
	if d == nil || d.generator == nil {
		return nil, errors.New("grading delegate is not configured")
	}

	if len(req.Criteria) == 0 {
		return nil, errors.New("rubric criteria are required")
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Question: %s\n\nRubric:\n", req.QuestionText)
	for _, criterion := range req.Criteria {
		fmt.Fprintf(&user, "- %s (weight %.2f)", criterion.Criterion, criterion.Weight)
		if criterion.Description != "" {
			fmt.Fprintf(&user, ": %s", criterion.Description)
		}
		user.WriteString("\n")
	}
	fmt.Fprintf(&user, "\nCandidate answer:\n%s\n", req.Answer)

	raw, err := d.complete(ctx, gradeSystemPrompt, user.String(), "grade answer")
	if err != nil {
		return nil, err
	}

	return parseGrade(raw, len(req.Criteria))
}

func (d *Delegate) complete(ctx context.Context, system, user, step string) (string, error) {
	d.logger.Debug(step,
		zap.String("ai_model", d.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(user)),
		zap.String("prompt_preview", logger.TruncateForLog(user, d.maxLogLen)),
	)

	raw, err := d.generator.Complete(ctx, system, user)
	if err != nil {
		return "", err
	}

	d.logger.Debug(step+" response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, d.maxLogLen)),
	)

	return raw, nil
}

func parseGrade(raw string, criteria int) (*RubricGrade, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse grade response: %w", err)
	}

	if _, ok := data["total"]; !ok {
		return nil, errors.New("grade response is missing total")
	}

	scores := make([]float64, 0, criteria)
	if rawScores, ok := data["scores"].([]any); ok {
		for _, s := range rawScores {
			scores = append(scores, CoerceFloat(s))
		}
	}
	if len(scores) != criteria {
		return nil, fmt.Errorf("grade response has %d scores, rubric has %d criteria", len(scores), criteria)
	}

	return &RubricGrade{
		Scores:     scores,
		Total:      CoerceFloat(data["total"]),
		Confidence: CoerceFloat(data["confidence"]),
		Comment:    CoerceString(data["comments"]),
	}, nil
}
