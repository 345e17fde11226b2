package interview

import (
	"strings"
	"unicode/utf8"

	"github.com/skillgate/interviewd/internal/ai"
)

// neutralSoftSkill is the contribution when an answer gives no structural
// signal either way.
const neutralSoftSkill = 0.5

// cheatingContribution derives the per-answer cheating evidence from the raw
// text. Always computed locally, regardless of how the answer was graded.
// The result is clamped into [0,1].
func cheatingContribution(answer string, confidence float64) float64 {
	evidence := 0.0
	length := utf8.RuneCountInString(answer)

	if strings.Contains(answer, "http://") || strings.Contains(answer, "https://") {
		evidence += 0.2
	}
	if length > excessiveAnswerRunes {
		evidence += 0.2
	}
	if strings.Count(answer, "\n") > excessiveLineBreaks {
		evidence += 0.1
	}
	if uniformStructure(answer) {
		evidence += 0.2
	}
	if confidence < 0.4 && length > pastedAnswerRunes {
		evidence += 0.2
	}

	return ai.Clamp01(evidence, 0)
}

// uniformStructure detects copy-paste-like formatting: many lines that all
// open the same way, without the punctuation variation of typed prose.
func uniformStructure(answer string) bool {
	var lines []string
	for _, line := range strings.Split(answer, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) < 5 {
		return false
	}

	sameLead := 0
	lead := lines[0][0]
	punctuated := 0
	for _, line := range lines {
		if line[0] == lead {
			sameLead++
		}
		if strings.ContainsAny(line, ".?!,;") {
			punctuated++
		}
	}

	return sameLead*5 >= len(lines)*4 && punctuated*2 < len(lines)
}

// softSkillContribution scores communication structure independently of
// topical correctness, symmetrically: concise or clearly structured answers
// score high, unstructured verbosity scores low.
func softSkillContribution(answer string) float64 {
	trimmed := strings.TrimSpace(answer)
	length := utf8.RuneCountInString(trimmed)
	if length == 0 {
		return neutralSoftSkill
	}

	if length <= 80 {
		return 0.9
	}

	if structuredProse(trimmed) {
		return 0.8
	}

	if length > 600 {
		return 0.2
	}

	return neutralSoftSkill
}

// structuredProse reports whether the answer reads as deliberately organized:
// bullet/numbered lists or a handful of full sentences.
func structuredProse(answer string) bool {
	bullets := 0
	for _, line := range strings.Split(answer, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") || startsWithDigit(trimmed) {
			bullets++
		}
	}
	if bullets >= 2 {
		return true
	}

	sentences := strings.Count(answer, ". ") + strings.Count(answer, ".\n")
	if strings.HasSuffix(answer, ".") {
		sentences++
	}
	return sentences >= 3 && sentences <= 8
}

func startsWithDigit(line string) bool {
	if line == "" {
		return false
	}
	return line[0] >= '0' && line[0] <= '9'
}
