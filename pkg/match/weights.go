package match

// Weights holds the scoring constants of a Matcher.
// Penalties are negative numbers.
type Weights struct {
	AdjacencyBonus          int `toml:"adjacency_bonus"`
	SeparatorBonus          int `toml:"separator_bonus"`
	CamelBonus              int `toml:"camel_bonus"`
	LeadingLetterPenalty    int `toml:"leading_letter_penalty"`
	MaxLeadingLetterPenalty int `toml:"max_leading_letter_penalty"`
	UnmatchedLetterPenalty  int `toml:"unmatched_letter_penalty"`
	SubstringBonus          int `toml:"substring_bonus"`
	// SeenDotBonus is added to letters matched after the first '.'.
	// The newer documentation search ships it as 10; set seen_dot_bonus = 10
	// to reproduce that ranking. The default 0 keeps the base scores.
	SeenDotBonus int `toml:"seen_dot_bonus"`
}

// DefaultWeights returns the standard scoring constants.
func DefaultWeights() Weights {
	return Weights{
		AdjacencyBonus:          5,
		SeparatorBonus:          10,
		CamelBonus:              10,
		LeadingLetterPenalty:    -3,
		MaxLeadingLetterPenalty: -9,
		UnmatchedLetterPenalty:  -1,
		SubstringBonus:          50,
		SeenDotBonus:            0,
	}
}
