package skills

import (
	"regexp"
	"sort"
	"strings"
)

var nonWordRe = regexp.MustCompile(`[^a-z0-9\s\-\+\./]`)

// Normalize lowercases the text and strips characters that carry no meaning
// for skill matching, so "Pivot-Tables!" and "pivot tables" compare equal.
func Normalize(text string) string {
	cleaned := nonWordRe.ReplaceAllString(strings.ToLower(text), " ")
	return strings.TrimSpace(strings.Join(strings.Fields(cleaned), " "))
}

// Extract scans free-form resume text for vocabulary terms and returns the
// sorted set of canonical skills it mentions. Matching is case-insensitive
// substring search over the normalized text.
func Extract(resumeText string, vocabulary *Vocabulary) []string {
	if vocabulary == nil {
		vocabulary = DefaultVocabulary()
	}

	text := " " + Normalize(resumeText) + " "

	detected := make(map[string]struct{})
	for _, alias := range vocabulary.Terms() {
		if alias == "" {
			continue
		}
		if strings.Contains(text, alias) {
			canonical, _ := vocabulary.Canonical(alias)
			detected[canonical] = struct{}{}
		}
	}

	result := make([]string, 0, len(detected))
	for skill := range detected {
		result = append(result, skill)
	}
	sort.Strings(result)

	return result
}
