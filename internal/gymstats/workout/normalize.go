package workout

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// minSuggestQueryLen is the shortest normalized query for which Suggest returns anything.
const minSuggestQueryLen = 2

// Normalize returns the canonical form of an exercise name: lowercased, with '-' and '_'
// treated as word separators and every whitespace run collapsed to a single space.
//
//	Normalize("Incline  Bench_Press") == "incline bench press"
func Normalize(name string) string {
	separated := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, name)

	// cases.Caser is stateful, so a new one per call
	lowered := cases.Lower(language.Und).String(separated)
	return strings.Join(strings.Fields(lowered), " ")
}

// SameExercise reports whether two raw names denote the same exercise.
func SameExercise(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Suggest returns the names whose normalized form starts with the normalized query
// (strict prefix, so exact matches are not suggested). Order of names is kept.
func Suggest(names []string, query string) []string {
	suggestions := make([]string, 0)

	nq := Normalize(query)
	if len([]rune(nq)) < minSuggestQueryLen {
		return suggestions
	}

	for _, name := range names {
		nn := Normalize(name)
		if len(nn) > len(nq) && strings.HasPrefix(nn, nq) {
			suggestions = append(suggestions, name)
		}
	}

	return suggestions
}
