package diagnostics

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest returns the closest candidate to target by fuzzy rank, or ""
// if candidates is empty or nothing ranks as a plausible match. Used to
// turn an UnknownIdentifierError into a "did you mean" hint the way a
// decorator-name typo is suggested in the teacher's planner package.
func Suggest(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target
}

// suggestionHint formats a non-empty suggestion as a parenthetical hint,
// or "" if there's nothing to suggest.
func suggestionHint(target string, candidates []string) string {
	s := Suggest(target, candidates)
	if s == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", s)
}
