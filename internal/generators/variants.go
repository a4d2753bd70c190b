package generators

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp/syntax"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RandomInt generates an integer in [Min, Max].
type RandomInt struct{ Min, Max int64 }

func (RandomInt) Kind() Kind { return KindRandomInt }

func (g RandomInt) Generate(mode Mode, ctx *Context, current interface{}) (interface{}, error) {
	if mode == ProviderState {
		if v, ok := ctx.Lookup("int"); ok {
			return v, nil
		}
	}
	lo, hi := g.Min, g.Max
	if hi < lo {
		hi = lo
	}
	n, err := rand.Int(rand.Reader, big.NewInt(hi-lo+1))
	if err != nil {
		return nil, fmt.Errorf("generators: RandomInt: %w", err)
	}
	return lo + n.Int64(), nil
}

// RandomDecimal generates a decimal number with Digits digits of precision.
type RandomDecimal struct{ Digits int }

func (RandomDecimal) Kind() Kind { return KindRandomDecimal }

func (g RandomDecimal) Generate(mode Mode, ctx *Context, current interface{}) (interface{}, error) {
	digits := g.Digits
	if digits <= 0 {
		digits = 2
	}
	whole, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return nil, fmt.Errorf("generators: RandomDecimal: %w", err)
	}
	frac, err := rand.Int(rand.Reader, big.NewInt(int64pow10(digits)))
	if err != nil {
		return nil, fmt.Errorf("generators: RandomDecimal: %w", err)
	}
	return fmt.Sprintf("%d.%0*d", whole.Int64(), digits, frac.Int64()), nil
}

func int64pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

// RandomString generates a string of Size printable ASCII characters.
type RandomString struct{ Size int }

func (RandomString) Kind() Kind { return KindRandomString }

const randomStringAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func (g RandomString) Generate(mode Mode, ctx *Context, current interface{}) (interface{}, error) {
	size := g.Size
	if size <= 0 {
		size = 10
	}
	var b strings.Builder
	for i := 0; i < size; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(randomStringAlphabet))))
		if err != nil {
			return nil, fmt.Errorf("generators: RandomString: %w", err)
		}
		b.WriteByte(randomStringAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// RandomBoolean generates true or false with equal probability.
type RandomBoolean struct{}

func (RandomBoolean) Kind() Kind { return KindRandomBoolean }

func (RandomBoolean) Generate(mode Mode, ctx *Context, current interface{}) (interface{}, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(2))
	if err != nil {
		return nil, fmt.Errorf("generators: RandomBoolean: %w", err)
	}
	return n.Int64() == 1, nil
}

// UUID generates a version-4 UUID string.
type UUID struct{ Format string } // Format: "" (default hyphenated), "simple", "upper", "URN"

func (UUID) Kind() Kind { return KindUUID }

func (g UUID) Generate(mode Mode, ctx *Context, current interface{}) (interface{}, error) {
	id := uuid.New()
	switch g.Format {
	case "simple":
		return strings.ReplaceAll(id.String(), "-", ""), nil
	case "upper":
		return strings.ToUpper(id.String()), nil
	case "URN":
		return id.URN(), nil
	default:
		return id.String(), nil
	}
}

// DateTime generates a formatted timestamp. Format is a Go reference-time
// layout, same convention as the Timestamp/Time/Date matching rules.
type DateTime struct{ Format string }

func (DateTime) Kind() Kind { return KindDateTime }

func (g DateTime) Generate(mode Mode, ctx *Context, current interface{}) (interface{}, error) {
	layout := g.Format
	if layout == "" {
		layout = time.RFC3339
	}
	return time.Now().UTC().Format(layout), nil
}

// DateOnly generates a formatted date.
type DateOnly struct{ Format string }

func (DateOnly) Kind() Kind { return KindDate }

func (g DateOnly) Generate(mode Mode, ctx *Context, current interface{}) (interface{}, error) {
	layout := g.Format
	if layout == "" {
		layout = "2006-01-02"
	}
	return time.Now().UTC().Format(layout), nil
}

// TimeOnly generates a formatted time.
type TimeOnly struct{ Format string }

func (TimeOnly) Kind() Kind { return KindTime }

func (g TimeOnly) Generate(mode Mode, ctx *Context, current interface{}) (interface{}, error) {
	layout := g.Format
	if layout == "" {
		layout = "15:04:05"
	}
	return time.Now().UTC().Format(layout), nil
}

// Regex generates a string by expanding a simple regular expression.
type Regex struct{ Pattern string }

func (Regex) Kind() Kind { return KindRegex }

func (g Regex) Generate(mode Mode, ctx *Context, current interface{}) (interface{}, error) {
	re, err := syntax.Parse(g.Pattern, syntax.Perl)
	if err != nil {
		return nil, fmt.Errorf("generators: Regex: invalid pattern %q: %w", g.Pattern, err)
	}
	return expandRegexLiteral(re), nil
}

// expandRegexLiteral produces one concrete string satisfying re on a
// best-effort basis: literals are emitted verbatim, character classes take
// their first rune, and repeats take their minimum count (a bounded repeat
// with a minimum of zero is emitted once).
func expandRegexLiteral(re *syntax.Regexp) string {
	switch re.Op {
	case syntax.OpLiteral:
		return string(re.Rune)
	case syntax.OpConcat:
		var b strings.Builder
		for _, sub := range re.Sub {
			b.WriteString(expandRegexLiteral(sub))
		}
		return b.String()
	case syntax.OpCapture:
		if len(re.Sub) > 0 {
			return expandRegexLiteral(re.Sub[0])
		}
		return ""
	case syntax.OpStar, syntax.OpQuest:
		return ""
	case syntax.OpPlus:
		if len(re.Sub) > 0 {
			return expandRegexLiteral(re.Sub[0])
		}
		return ""
	case syntax.OpRepeat:
		if len(re.Sub) == 0 {
			return ""
		}
		var b strings.Builder
		n := re.Min
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			b.WriteString(expandRegexLiteral(re.Sub[0]))
		}
		return b.String()
	case syntax.OpCharClass:
		if len(re.Rune) > 0 {
			return string(rune(re.Rune[0]))
		}
		return "a"
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		return "a"
	case syntax.OpAlternate:
		if len(re.Sub) > 0 {
			return expandRegexLiteral(re.Sub[0])
		}
		return ""
	default:
		return ""
	}
}

// ProviderStateGenerator resolves Expression against the provider-state
// parameters in Context, falling back to current when absent.
type ProviderStateGenerator struct{ Expression string }

func (ProviderStateGenerator) Kind() Kind { return KindProviderState }

func (g ProviderStateGenerator) Generate(mode Mode, ctx *Context, current interface{}) (interface{}, error) {
	if v, ok := ctx.Lookup(g.Expression); ok {
		return v, nil
	}
	return current, nil
}

// MockServerURLGenerator substitutes the running mock server's own base
// URL into the example value, used for HATEOAS-style self links.
type MockServerURLGenerator struct{ Expression string }

func (MockServerURLGenerator) Kind() Kind { return KindMockServerURL }

func (g MockServerURLGenerator) Generate(mode Mode, ctx *Context, current interface{}) (interface{}, error) {
	if ctx == nil || ctx.MockServerURL == "" {
		return current, nil
	}
	return ctx.MockServerURL, nil
}
