package matching

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// MatchTextBody compares two plain-text bodies, applying any body matcher at the root path, else comparing
// NFC-normalised, trimmed text.
func MatchTextBody(cat *rules.Category, expected, actual []byte) []Mismatch {
	exp, act := string(expected), string(actual)
	if cat != nil {
		if rl, ok := cat.BestMatch(nil); ok {
			if ok, reason := EvaluateRuleList(rl, exp, act); !ok {
				return []Mismatch{mismatch(BodyMismatch, "$", exp, act, "text body %s", reason)}
			}
			return nil
		}
	}
	normExp := norm.NFC.String(strings.TrimSpace(exp))
	normAct := norm.NFC.String(strings.TrimSpace(act))
	if normExp == normAct {
		return nil
	}
	return []Mismatch{mismatch(BodyMismatch, "$", exp, act,
		"expected text body %q but received %q", exp, act)}
}
