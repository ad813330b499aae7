package intent

import "strings"

// Mode is the presentation strategy selected for the final answer.
type Mode string

const (
	ModeGettingStarted Mode = "getting-started"
	ModeComparison     Mode = "comparison"
	ModeOverview       Mode = "overview"
	ModeNoContent      Mode = "no-content"
)

var gettingStartedPhrases = []string{
	"how to", "how do i", "get started", "for beginners", "learn",
}

// Classify picks a mode from the query and whether research content was
// found. It is a pure function; rules are checked in priority order and the
// first match wins.
func Classify(query string, hasContent bool) Mode {
	if !hasContent {
		return ModeNoContent
	}

	lower := strings.ToLower(query)
	for _, phrase := range gettingStartedPhrases {
		if strings.Contains(lower, phrase) {
			return ModeGettingStarted
		}
	}
	if strings.Contains(lower, "compare") || strings.Contains(lower, " vs ") {
		return ModeComparison
	}
	return ModeOverview
}
