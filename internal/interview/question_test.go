package interview

import (
	"testing"

	"github.com/skillgate/interviewd/internal/ai"
)

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{
			name: "valid multiple choice",
			q: Question{
				ID: 1, Type: MultipleChoice, Text: "Pick one", Skill: "lookup",
				Options: []string{"A) yes", "B) no"}, CorrectAnswer: "A",
			},
		},
		{
			name: "correct answer as full option text",
			q: Question{
				ID: 1, Type: MultipleChoice, Text: "Pick one", Skill: "lookup",
				Options: []string{"A) yes", "B) no"}, CorrectAnswer: "B) no",
			},
		},
		{
			name: "valid open ended",
			q: Question{
				ID: 2, Type: OpenEnded, Text: "Explain", Skill: "charts",
				Rubric: []RubricCriterion{{Criterion: "depth", Weight: 1}},
			},
		},
		{
			name:    "empty text",
			q:       Question{ID: 1, Type: MultipleChoice, Options: []string{"A) y", "B) n"}, CorrectAnswer: "A"},
			wantErr: true,
		},
		{
			name: "single option",
			q: Question{
				ID: 1, Type: MultipleChoice, Text: "Pick", Options: []string{"A) only"}, CorrectAnswer: "A",
			},
			wantErr: true,
		},
		{
			name: "correct answer outside options",
			q: Question{
				ID: 1, Type: MultipleChoice, Text: "Pick", Options: []string{"A) y", "B) n"}, CorrectAnswer: "Z",
			},
			wantErr: true,
		},
		{
			name:    "open ended without rubric",
			q:       Question{ID: 2, Type: OpenEnded, Text: "Explain"},
			wantErr: true,
		},
		{
			name: "zero rubric weight",
			q: Question{
				ID: 2, Type: OpenEnded, Text: "Explain",
				Rubric: []RubricCriterion{{Criterion: "depth", Weight: 0}},
			},
			wantErr: true,
		},
		{
			name:    "unknown type",
			q:       Question{ID: 3, Type: "essay", Text: "Write"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPresentedStripsAnswerKey(t *testing.T) {
	q := Question{
		ID: 1, Type: MultipleChoice, Text: "Pick", Skill: "lookup",
		Options: []string{"A) y", "B) n"}, CorrectAnswer: "A",
		Rubric: []RubricCriterion{{Criterion: "depth", Weight: 1}},
	}

	p := q.Presented()

	if p.CorrectAnswer != "" || p.Rubric != nil {
		t.Fatalf("presented question leaks grading data: %+v", p)
	}
	if q.CorrectAnswer != "A" {
		t.Fatal("original question was mutated")
	}
}

func TestQuestionsFromDrafts(t *testing.T) {
	drafts := []ai.QuestionDraft{
		{
			Type: "multiple_choice", Text: "Pick one", Skill: "lookup",
			Options: []string{"A) y", "B) n"}, CorrectAnswer: "A",
		},
		{
			Type: "open_ended", Text: "Explain",
			Rubric: []ai.RubricCriterion{{Criterion: "depth", Weight: 1}},
		},
	}

	questions, err := QuestionsFromDrafts(drafts, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].ID != 1 || questions[1].ID != 2 {
		t.Fatalf("expected sequential ids, got %d and %d", questions[0].ID, questions[1].ID)
	}
	if questions[1].Skill != "general" {
		t.Fatalf("missing skill must default to general, got %q", questions[1].Skill)
	}
}

func TestQuestionsFromDraftsRejectsWholeBatch(t *testing.T) {
	drafts := []ai.QuestionDraft{
		{
			Type: "multiple_choice", Text: "Pick one", Skill: "lookup",
			Options: []string{"A) y", "B) n"}, CorrectAnswer: "A",
		},
		{Type: "open_ended", Text: "Explain, no rubric"},
	}

	if _, err := QuestionsFromDrafts(drafts, 10); err == nil {
		t.Fatal("one malformed draft must reject the whole batch")
	}

	if _, err := QuestionsFromDrafts(nil, 10); err == nil {
		t.Fatal("empty batch must be rejected")
	}
}

func TestQuestionsFromDraftsCapsCount(t *testing.T) {
	var drafts []ai.QuestionDraft
	for i := 0; i < 15; i++ {
		drafts = append(drafts, ai.QuestionDraft{
			Type: "open_ended", Text: "Explain", Skill: "charts",
			Rubric: []ai.RubricCriterion{{Criterion: "depth", Weight: 1}},
		})
	}

	questions, err := QuestionsFromDrafts(drafts, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 10 {
		t.Fatalf("expected cap at 10, got %d", len(questions))
	}
}
