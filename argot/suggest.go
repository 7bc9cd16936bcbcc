package argot

import "github.com/davrell/argot/internal/fuzzy"

// Edit distance budget for "did you mean" suggestions on unknown names.
const suggestionMaxDistance = 2

func suggestOption(input string, candidates []string) string {
	return fuzzy.NewMatcher(suggestionMaxDistance).BestOf(input, candidates)
}

func suggestCommand(input string, candidates []string) string {
	return fuzzy.NewMatcher(suggestionMaxDistance).BestOf(input, candidates)
}
