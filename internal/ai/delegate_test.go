package ai

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (s *stubGenerator) Complete(_ context.Context, system, user string) (string, error) {
	s.lastSystem = system
	s.lastUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string { return "stub-model" }

func TestGenerateQuestions(t *testing.T) {
	stub := &stubGenerator{response: `{"questions":[
		{"id":1,"type":"multiple_choice","text":"Pick one","skill":"lookup",
		 "options":["A) a","B) b","C) c"],"correct_answer":"A) a"},
		{"id":2,"type":"open_ended","text":"Explain pivot tables","skill":"pivot tables",
		 "rubric":[{"criterion":"correctness","weight":0.6},{"criterion":"clarity","weight":0.4}]}
	]}`}
	delegate := NewDelegate(stub, zap.NewNop(), 0)

	drafts, err := delegate.GenerateQuestions(context.Background(), GenerateRequest{
		Role:   "Analyst",
		Level:  "Intermediate",
		Skills: []string{"lookup", "pivot tables"},
		Count:  5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}

	if drafts[0].Type != "multiple_choice" || len(drafts[0].Options) != 3 {
		t.Fatalf("unexpected first draft: %+v", drafts[0])
	}

	if len(drafts[1].Rubric) != 2 || drafts[1].Rubric[0].Weight != 0.6 {
		t.Fatalf("unexpected rubric: %+v", drafts[1].Rubric)
	}

	if !strings.Contains(stub.lastUser, "lookup, pivot tables") {
		t.Fatalf("expected matched skills in prompt, got: %s", stub.lastUser)
	}

	if !strings.Contains(stub.lastSystem, "correct_answer") {
		t.Fatalf("expected schema description in system prompt")
	}
}

func TestGenerateQuestionsHandlesCodeFence(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"questions\":[{\"id\":1,\"type\":\"open_ended\",\"text\":\"Q\",\"skill\":\"vba\",\"rubric\":[{\"criterion\":\"c\",\"weight\":1}]}]}\n```"}
	delegate := NewDelegate(stub, zap.NewNop(), 0)

	drafts, err := delegate.GenerateQuestions(context.Background(), GenerateRequest{Role: "Analyst", Level: "Junior", Count: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(drafts) != 1 || drafts[0].Text != "Q" {
		t.Fatalf("unexpected drafts: %+v", drafts)
	}
}

func TestGenerateQuestionsErrors(t *testing.T) {
	cases := []struct {
		name string
		stub *stubGenerator
	}{
		{name: "backend error", stub: &stubGenerator{err: errors.New("boom")}},
		{name: "malformed json", stub: &stubGenerator{response: "not json"}},
		{name: "empty batch", stub: &stubGenerator{response: `{"questions":[]}`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			delegate := NewDelegate(tc.stub, zap.NewNop(), 0)
			if _, err := delegate.GenerateQuestions(context.Background(), GenerateRequest{Role: "Analyst", Level: "Junior", Count: 3}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestGradeAnswerCoercesStringNumbers(t *testing.T) {
	stub := &stubGenerator{response: `{"scores":["0.5","0.9"],"total":"0.7","confidence":"0.8","comments":"solid"}`}
	delegate := NewDelegate(stub, zap.NewNop(), 0)

	grade, err := delegate.GradeAnswer(context.Background(), GradeRequest{
		QuestionText: "Explain solver",
		Criteria: []RubricCriterion{
			{Criterion: "correctness", Weight: 0.6},
			{Criterion: "clarity", Weight: 0.4},
		},
		Answer: "an answer",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if grade.Total != 0.7 || grade.Confidence != 0.8 {
		t.Fatalf("unexpected grade: %+v", grade)
	}

	if len(grade.Scores) != 2 || grade.Scores[1] != 0.9 {
		t.Fatalf("unexpected scores: %v", grade.Scores)
	}

	if grade.Comment != "solid" {
		t.Fatalf("unexpected comment: %q", grade.Comment)
	}
}

func TestGradeAnswerRejectsScoreCountMismatch(t *testing.T) {
	stub := &stubGenerator{response: `{"scores":[0.5],"total":0.5,"confidence":0.9,"comments":""}`}
	delegate := NewDelegate(stub, zap.NewNop(), 0)

	_, err := delegate.GradeAnswer(context.Background(), GradeRequest{
		QuestionText: "Q",
		Criteria: []RubricCriterion{
			{Criterion: "a", Weight: 0.5},
			{Criterion: "b", Weight: 0.5},
		},
		Answer: "answer",
	})
	if err == nil {
		t.Fatal("expected error on score count mismatch")
	}
}

func TestGradeAnswerRequiresTotal(t *testing.T) {
	stub := &stubGenerator{response: `{"scores":[1],"confidence":0.9}`}
	delegate := NewDelegate(stub, zap.NewNop(), 0)

	_, err := delegate.GradeAnswer(context.Background(), GradeRequest{
		QuestionText: "Q",
		Criteria:     []RubricCriterion{{Criterion: "a", Weight: 1}},
		Answer:       "answer",
	})
	if err == nil {
		t.Fatal("expected error when total is missing")
	}
}

func TestClamp01(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    float64
		fallback float64
		expect   float64
	}{
		{"in range", 0.4, 0, 0.4},
		{"below", -3, 0, 0},
		{"above", 42, 0, 1},
		{"nan", math.NaN(), 0.5, 0.5},
		{"inf", math.Inf(1), 0.25, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp01(tt.value, tt.fallback); got != tt.expect {
				t.Fatalf("Clamp01(%v) = %v, expected %v", tt.value, got, tt.expect)
			}
		})
	}
}

func TestCoerceFloat(t *testing.T) {
	t.Parallel()

	if got := CoerceFloat("0.75"); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}

	if got := CoerceFloat(nil); !math.IsNaN(got) {
		t.Fatalf("expected NaN for nil, got %v", got)
	}

	if got := CoerceFloat("not a number"); !math.IsNaN(got) {
		t.Fatalf("expected NaN for garbage, got %v", got)
	}
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"a\":1}\n```"
	if got := ExtractJSON(raw); got != `{"a":1}` {
		t.Fatalf("unexpected extraction: %q", got)
	}

	if got := ExtractJSON("  {\"b\":2}  "); got != `{"b":2}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}
