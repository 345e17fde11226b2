package skills

import "sort"

// gateDenominator caps the required-skill denominator so very long required
// lists do not make the gate impossible to pass.
const gateDenominator = 10

// Overlap is the outcome of comparing extracted resume skills against the
// required set.
type Overlap struct {
	// Matched holds the canonical skills present in both sets, sorted.
	Matched []string
	// Score10 is the overlap ratio normalized to a 0-10 scale.
	Score10 float64
	// Admitted reports whether the overlap clears the gate threshold.
	Admitted bool
}

// EvaluateGate computes the overlap between the candidate's extracted skills
// and the required set and admits the candidate when the normalized score
// reaches the threshold. Pure function: no side effects.
func EvaluateGate(extracted, required []string, threshold float64) Overlap {
	requiredSet := make(map[string]struct{}, len(required))
	for _, skill := range required {
		if normalized := Normalize(skill); normalized != "" {
			requiredSet[normalized] = struct{}{}
		}
	}

	matched := make([]string, 0, len(extracted))
	seen := make(map[string]struct{})
	for _, skill := range extracted {
		normalized := Normalize(skill)
		if _, required := requiredSet[normalized]; !required {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		matched = append(matched, normalized)
	}
	sort.Strings(matched)

	denom := len(requiredSet)
	if denom > gateDenominator {
		denom = gateDenominator
	}
	if denom < 1 {
		denom = 1
	}

	score := float64(len(matched)) / float64(denom) * 10.0
	if score > 10 {
		score = 10
	}

	return Overlap{
		Matched:  matched,
		Score10:  score,
		Admitted: score >= threshold,
	}
}
