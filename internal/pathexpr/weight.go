package pathexpr

import "strconv"

// Fragment is one element of a concrete runtime path: an object key or an
// array index rendered as its decimal string.
type Fragment = string

// Weight computes the per-token product weight of e against a concrete
// runtime path:
//
//	Root                            -> 2 (runtime paths carry no "$" fragment)
//	Field  vs equal fragment        -> 2, else 0
//	Index  vs fragment parsed as i  -> 2, else 0
//	StarIndex vs numeric fragment   -> 1, else 0
//	Star   vs any fragment          -> 1
//
// The expression only applies when the runtime path has at least as many
// fragments as the expression has non-root tokens; ok is false otherwise,
// and weight is meaningless.
func Weight(e Expression, path []Fragment) (weight int, ok bool) {
	nonRoot := len(e.Tokens) - 1
	if nonRoot < 0 || len(path) < nonRoot {
		return 0, false
	}

	weight = 1
	for i, tok := range e.Tokens {
		var w int
		switch tok.Kind {
		case Root:
			w = 2
		case Field:
			frag := path[i-1]
			if frag == tok.Name {
				w = 2
			}
		case Index:
			frag := path[i-1]
			if n, err := strconv.ParseUint(frag, 10, 64); err == nil && n == tok.Idx {
				w = 2
			}
		case StarIndex:
			frag := path[i-1]
			if _, err := strconv.ParseUint(frag, 10, 64); err == nil {
				w = 1
			}
		case Star:
			w = 1
		}
		weight *= w
		if weight == 0 {
			// remaining tokens cannot change a zero product; stop early.
			return 0, true
		}
	}
	return weight, true
}

// Score computes the selection score used to pick the best matcher for a
// concrete path: weight × token_count, where token_count is the
// number of non-root tokens (so "$.a.b" scoring 16 on path ["a","b"] means
// weight 8 × 2 tokens, not 3). Score returns 0 when the expression does
// not apply to path at all (ok == false from Weight).
func Score(e Expression, path []Fragment) int {
	w, ok := Weight(e, path)
	if !ok {
		return 0
	}
	return w * (len(e.Tokens) - 1)
}
