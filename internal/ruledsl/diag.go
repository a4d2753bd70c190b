package ruledsl

import "fmt"

// Diagnostic is a single parse error: a source span, a human-readable
// message, and an optional suggestion.
type Diagnostic struct {
	Start, End int
	Message    string
	Suggestion string
}

func (d Diagnostic) Error() string {
	if d.Suggestion == "" {
		return fmt.Sprintf("ruledsl: %d:%d: %s", d.Start, d.End, d.Message)
	}
	return fmt.Sprintf("ruledsl: %d:%d: %s (%s)", d.Start, d.End, d.Message, d.Suggestion)
}

func errUnexpected(tok Token, want string) Diagnostic {
	return Diagnostic{
		Start:   tok.Start,
		End:     tok.End,
		Message: fmt.Sprintf("expected %s, found %s %q", want, tok.Kind, tok.Text),
	}
}

func errUnquotedString(tok Token) Diagnostic {
	return Diagnostic{
		Start:      tok.Start,
		End:        tok.End,
		Message:    fmt.Sprintf("expected a quoted string, found %s %q", tok.Kind, tok.Text),
		Suggestion: "surround the value in quotes",
	}
}

func errUnknownFunction(tok Token) Diagnostic {
	return Diagnostic{
		Start:      tok.Start,
		End:        tok.End,
		Message:    fmt.Sprintf("unknown rule expression %q", tok.Text),
		Suggestion: "expected one of matching, notEmpty, eachKey, eachValue",
	}
}

func errUnknownRuleKind(tok Token) Diagnostic {
	return Diagnostic{
		Start:      tok.Start,
		End:        tok.End,
		Message:    fmt.Sprintf("unknown matching rule %q", tok.Text),
		Suggestion: "expected one of equalTo, regex, type, datetime, date, time, number, integer, decimal, boolean, include, contentType, semver",
	}
}
