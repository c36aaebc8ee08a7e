package reco

import "strings"

// bannedTerms lists, per diet tag, the keywords whose presence in a title or tag
// rules a candidate out. Matching is a literal substring scan, not semantic.
var bannedTerms = map[string][]string{
	"vegan":      {"chicken", "pork"},
	"vegetarian": {"chicken", "pork"},
}

// Violates reports whether the candidate categorically breaks one of the user's diets.
func Violates(user UserProfile, c Candidate) bool {
	for _, d := range user.Diet {
		terms, ok := bannedTerms[strings.ToLower(d)]
		if !ok {
			continue
		}
		if containsAny(strings.ToLower(c.Title), terms) {
			return true
		}
		for _, tag := range c.Tags {
			if containsAny(strings.ToLower(tag), terms) {
				return true
			}
		}
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
