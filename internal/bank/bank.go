// Package bank holds the pre-authored question bank used whenever the
// generation delegate is unavailable or returns an invalid batch. The bank is
// embedded so the fallback path has no runtime dependencies at all.
package bank

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/skillgate/interviewd/internal/interview"
	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var bankYAML []byte

type entry struct {
	interview.Question `yaml:",inline"`
	// Roles and Levels restrict where the entry applies; empty means any.
	Roles  []string `yaml:"roles,omitempty"`
	Levels []string `yaml:"levels,omitempty"`
}

type document struct {
	Questions []entry `yaml:"questions"`
}

// Bank is a validated, immutable set of pre-authored questions.
type Bank struct {
	entries []entry
}

// Load parses and validates the embedded bank. Called once at startup; a
// malformed bank is a build defect, not a runtime condition.
func Load() (*Bank, error) {
	return parse(bankYAML)
}

func parse(data []byte) (*Bank, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing question bank: %w", err)
	}

	if len(doc.Questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}

	for i, e := range doc.Questions {
		if err := e.Question.Validate(); err != nil {
			return nil, fmt.Errorf("question bank entry %d: %w", i+1, err)
		}
	}

	return &Bank{entries: doc.Questions}, nil
}

// Questions returns up to max questions applicable to the role and level, in
// bank order with sequential ids. The result is never empty: when no entry
// matches the filters, the filters are ignored rather than stalling the
// interview.
func (b *Bank) Questions(role, level string, max int) []interview.Question {
	if max <= 0 {
		max = len(b.entries)
	}

	selected := b.filter(role, level, max)
	if len(selected) == 0 {
		selected = b.filter("", "", max)
	}

	questions := make([]interview.Question, len(selected))
	for i, e := range selected {
		q := e.Question
		q.ID = i + 1
		questions[i] = q
	}
	return questions
}

// Len reports the total number of bank entries.
func (b *Bank) Len() int {
	return len(b.entries)
}

func (b *Bank) filter(role, level string, max int) []entry {
	var selected []entry
	for _, e := range b.entries {
		if !matches(e.Roles, role) || !matches(e.Levels, level) {
			continue
		}
		selected = append(selected, e)
		if len(selected) >= max {
			break
		}
	}
	return selected
}

// matches reports whether the candidate value passes the filter list. An
// empty list or empty value matches everything.
func matches(list []string, value string) bool {
	if len(list) == 0 || strings.TrimSpace(value) == "" {
		return true
	}
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}
