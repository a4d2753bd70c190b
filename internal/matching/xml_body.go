package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// MatchXMLBody compares two XML documents element-by-element:
// fully-qualified name, then attributes (as a map), then children (grouped
// by qualified name), then concatenated trimmed text.
func MatchXMLBody(cat *rules.Category, expected, actual []byte) []Mismatch {
	expDoc := etree.NewDocument()
	if err := expDoc.ReadFromBytes(expected); err != nil {
		return []Mismatch{mismatch(BodyMismatch, "$", nil, nil, "failed to parse expected XML body: %v", err)}
	}
	actDoc := etree.NewDocument()
	if err := actDoc.ReadFromBytes(actual); err != nil {
		return []Mismatch{mismatch(BodyMismatch, "$", nil, nil, "failed to parse actual XML body: %v", err)}
	}
	expRoot, actRoot := expDoc.Root(), actDoc.Root()
	if expRoot == nil {
		return nil
	}
	if actRoot == nil {
		return []Mismatch{mismatch(BodyMismatch, "$", qualifiedName(expRoot), nil, "expected a root element but actual document was empty")}
	}
	return matchXMLElement(cat, "$", expRoot, actRoot)
}

func qualifiedName(e *etree.Element) string {
	if e.Space != "" {
		return fmt.Sprintf("{%s}:%s", e.Space, e.Tag)
	}
	return e.Tag
}

func matchXMLElement(cat *rules.Category, path string, expected, actual *etree.Element) []Mismatch {
	var out []Mismatch
	expName, actName := qualifiedName(expected), qualifiedName(actual)
	if expName != actName {
		out = append(out, mismatch(BodyMismatch, path+"."+expName, expName, actName,
			"Expected '%s' to be equal to '%s'", expName, actName))
	}

	out = append(out, matchXMLAttrs(path, expected, actual)...)

	expChildren := groupChildrenByName(expected)
	actChildren := groupChildrenByName(actual)
	names := make([]string, 0, len(expChildren))
	for n := range expChildren {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, name := range names {
		expEls := expChildren[name]
		actEls := actChildren[name]
		if len(actEls) < len(expEls) {
			for i := len(actEls); i < len(expEls); i++ {
				out = append(out, mismatch(BodyMismatch, fmt.Sprintf("%s.%s[%d]", path, name, i), name, nil,
					"expected child element %q but it was missing", name))
			}
		}
		n := len(expEls)
		if len(actEls) < n {
			n = len(actEls)
		}
		for i := 0; i < n; i++ {
			childPath := fmt.Sprintf("%s.%s[%d]", path, name, i)
			out = append(out, matchXMLElement(cat, childPath, expEls[i], actEls[i])...)
		}
	}
	for name, actEls := range actChildren {
		if _, ok := expChildren[name]; ok {
			continue
		}
		_ = actEls // unexpected children are tolerated: AllowUnexpectedKeys default
	}

	expText := strings.TrimSpace(elementText(expected))
	actText := strings.TrimSpace(elementText(actual))
	if cat != nil {
		if rl, ok := cat.BestMatch(nil); ok {
			if ok, reason := EvaluateRuleList(rl, expText, actText); !ok {
				out = append(out, mismatch(BodyMismatch, path+"#text", expText, actText, "%s", reason))
			}
			return out
		}
	}
	if expText != actText {
		out = append(out, mismatch(BodyMismatch, path+"#text", expText, actText,
			"expected text %q but received %q", expText, actText))
	}
	return out
}

func matchXMLAttrs(path string, expected, actual *etree.Element) []Mismatch {
	var out []Mismatch
	actAttrs := make(map[string]string, len(actual.Attr))
	for _, a := range actual.Attr {
		actAttrs[attrName(a)] = a.Value
	}
	for _, a := range expected.Attr {
		name := attrName(a)
		actVal, ok := actAttrs[name]
		if !ok {
			out = append(out, mismatch(BodyMismatch, path+"@"+name, a.Value, nil,
				"expected attribute %q but it was missing", name))
			continue
		}
		if actVal != a.Value {
			out = append(out, mismatch(BodyMismatch, path+"@"+name, a.Value, actVal,
				"expected attribute %q to equal %q but received %q", name, a.Value, actVal))
		}
	}
	return out
}

func attrName(a etree.Attr) string {
	if a.Space != "" {
		return fmt.Sprintf("{%s}:%s", a.Space, a.Key)
	}
	return a.Key
}

func groupChildrenByName(e *etree.Element) map[string][]*etree.Element {
	out := make(map[string][]*etree.Element)
	for _, c := range e.ChildElements() {
		name := qualifiedName(c)
		out[name] = append(out[name], c)
	}
	return out
}

func elementText(e *etree.Element) string {
	var b strings.Builder
	for _, c := range e.Child {
		if cd, ok := c.(*etree.CharData); ok {
			b.WriteString(cd.Data)
		}
	}
	return b.String()
}
