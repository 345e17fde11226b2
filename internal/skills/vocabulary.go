package skills

// Vocabulary is the canonical set of recognizable skill terms together with
// the aliases that fold into them. Matching never goes beyond this list: a
// synonym that is not listed here is simply not recognized.
type Vocabulary struct {
	aliases map[string]string
}

// DefaultVocabulary covers the spreadsheet-analyst skill set the service
// interviews for out of the box.
func DefaultVocabulary() *Vocabulary {
	v := &Vocabulary{aliases: make(map[string]string)}

	canonical := []string{
		"excel", "formulas", "functions", "pivot tables", "charts",
		"data cleaning", "data validation", "conditional formatting",
		"power query", "lookup", "index-match", "dynamic arrays",
		"vba", "macros", "goal seek", "solver", "dashboards",
		"sumifs", "countifs", "iferror", "what-if analysis",
		"filter", "unique", "sort", "charting",
	}
	for _, term := range canonical {
		v.Add(term, term)
	}

	// Folding rules: narrow terms collapse to the canonical skill they prove.
	v.Add("microsoft excel", "excel")
	v.Add("vlookup", "lookup")
	v.Add("xlookup", "lookup")
	v.Add("index match", "lookup")
	v.Add("index-match", "lookup")
	v.Add("pivot", "pivot tables")
	v.Add("pivot table", "pivot tables")
	v.Add("powerpivot", "power query")
	v.Add("power pivot", "power query")
	v.Add("charting", "charts")

	return v
}

// Add registers an alias for a canonical term. Both are normalized before
// storage so lookups are case- and punctuation-insensitive.
func (v *Vocabulary) Add(alias, canonical string) {
	v.aliases[Normalize(alias)] = Normalize(canonical)
}

// Terms returns every known alias in no particular order.
func (v *Vocabulary) Terms() []string {
	terms := make([]string, 0, len(v.aliases))
	for alias := range v.aliases {
		terms = append(terms, alias)
	}
	return terms
}

// Canonical resolves an alias to its canonical term. The second return value
// reports whether the alias is part of the vocabulary.
func (v *Vocabulary) Canonical(alias string) (string, bool) {
	canonical, ok := v.aliases[Normalize(alias)]
	return canonical, ok
}
