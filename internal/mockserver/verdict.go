package mockserver

import (
	"github.com/pact-foundation/pact-core-go/internal/matching"
)

// Verdict summarises a server's event log against its pact.
type Verdict struct {
	Matched bool
	Rows    []MismatchRow
}

// MismatchRow is one entry of the JSON array mock_server_mismatches
// returns: `{type, path, expected, actual, mismatch}`.
type MismatchRow struct {
	Type     string      `json:"type"`
	Path     string      `json:"path"`
	Expected interface{} `json:"expected"`
	Actual   interface{} `json:"actual"`
	Mismatch string      `json:"mismatch"`
}

// ComputeVerdict reports `matched` iff every expected interaction was
// matched at least once, no Unexpected event occurred, and no event
// carried a partial mismatch. mismatches() includes both unmatched
// expectations and unexpected requests.
func ComputeVerdict(entry *Entry) Verdict {
	events := entry.Events()

	matchedDescriptions := make(map[string]bool)
	var rows []MismatchRow
	anyUnexpectedOrPartial := false

	for _, ev := range events {
		switch ev.Outcome {
		case OutcomeMatched:
			matchedDescriptions[ev.MatchedInteraction.Description] = true
		case OutcomePartial:
			anyUnexpectedOrPartial = true
			matchedDescriptions[ev.MatchedInteraction.Description] = true
			rows = append(rows, mismatchRowsFor(ev.Result)...)
		case OutcomeUnexpected:
			anyUnexpectedOrPartial = true
			rows = append(rows, MismatchRow{
				Type:     "unexpected-request",
				Path:     "$",
				Expected: nil,
				Actual:   ev.Request.Path,
				Mismatch: "no configured interaction matched this request",
			})
		}
	}

	allExercised := true
	if entry.Pact != nil {
		for _, in := range entry.Pact.Interactions {
			if !matchedDescriptions[in.Description] {
				allExercised = false
				rows = append(rows, MismatchRow{
					Type:     "missing-request",
					Path:     "$",
					Expected: in.Description,
					Actual:   nil,
					Mismatch: "expected interaction was never exercised",
				})
			}
		}
	}

	return Verdict{
		Matched: allExercised && !anyUnexpectedOrPartial,
		Rows:    rows,
	}
}

func mismatchRowsFor(result matching.RequestMatchResult) []MismatchRow {
	var out []MismatchRow
	for _, m := range result.Mismatches() {
		out = append(out, MismatchRow{
			Type:     string(m.Kind),
			Path:     m.Path,
			Expected: m.Expected,
			Actual:   m.Actual,
			Mismatch: m.Message,
		})
	}
	return out
}
