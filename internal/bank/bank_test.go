package bank

import (
	"reflect"
	"testing"

	"github.com/skillgate/interviewd/internal/interview"
)

func TestLoadEmbeddedBank(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("embedded bank must parse: %v", err)
	}

	if b.Len() < 10 {
		t.Fatalf("expected a usable bank, got %d entries", b.Len())
	}
}

func TestQuestionsAreValidAndSequential(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	questions := b.Questions("Analyst", "Intermediate", 10)
	if len(questions) == 0 {
		t.Fatal("expected questions for analyst/intermediate")
	}

	for i, q := range questions {
		if q.ID != i+1 {
			t.Fatalf("expected sequential ids, got %d at position %d", q.ID, i)
		}
		if err := q.Validate(); err != nil {
			t.Fatalf("bank question invalid: %v", err)
		}
	}
}

func TestQuestionsFiltersByLevel(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	junior := b.Questions("Analyst", "Junior", 20)
	for _, q := range junior {
		if q.Skill == "vba" {
			t.Fatalf("senior-only question leaked into junior set: %+v", q)
		}
	}
}

func TestQuestionsDeterministic(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	first := b.Questions("Analyst", "Intermediate", 5)
	second := b.Questions("Analyst", "Intermediate", 5)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("bank selection must be deterministic")
	}

	if len(first) != 5 {
		t.Fatalf("expected cap at 5, got %d", len(first))
	}
}

func TestQuestionsNeverEmpty(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	questions := b.Questions("Unheard Of Role", "Mythical", 3)
	if len(questions) == 0 {
		t.Fatal("bank must keep the interview flowing for any role/level")
	}
}

func TestParseRejectsInvalidEntries(t *testing.T) {
	invalid := []byte(`
questions:
  - id: 1
    type: multiple_choice
    text: "Broken"
    skill: lookup
    options: ["A) one"]
    correct_answer: "A"
`)

	if _, err := parse(invalid); err == nil {
		t.Fatal("expected validation error for single-option question")
	}

	if _, err := parse([]byte("questions: []")); err == nil {
		t.Fatal("expected error for empty bank")
	}
}

func TestParseAcceptsRubricQuestions(t *testing.T) {
	data := []byte(`
questions:
  - id: 1
    type: open_ended
    text: "Tell me"
    skill: charts
    rubric:
      - criterion: correctness
        weight: 1.0
`)

	b, err := parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	questions := b.Questions("", "", 0)
	if len(questions) != 1 || questions[0].Type != interview.OpenEnded {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}
