package lang

import "github.com/sahilm/fuzzy"

// hint returns the candidate that best matches an identifier token, or the
// empty string if tok is not an identifier or nothing matches.
func hint(tok Token, candidates ...string) string {
	if tok.Kind != KindIdent || tok.Text == "" || len(candidates) == 0 {
		return ""
	}

	matches := fuzzy.Find(tok.Text, candidates)
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}

// Candidate words offered as hints for each grammar position.
var (
	commandWords = []string{"input", "output", "transform", "print"}
	printWords   = []string{"line"}
	builtinWords = []string{"raw", "serial"}
)
