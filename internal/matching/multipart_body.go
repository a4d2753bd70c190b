package matching

import (
	"bytes"
	"io"
	"mime/multipart"

	"github.com/pact-foundation/pact-core-go/internal/content"
	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// MatchMultipartBody compares two multipart/form-data bodies: each
// is parsed into ordered parts, and every expected part is paired by name
// with an actual part and compared recursively using MatchBody.
func MatchMultipartBody(catMap *rules.Map, expected, actual []byte, ct content.ContentType) []Mismatch {
	boundary := ct.Params["boundary"]
	if boundary == "" {
		return []Mismatch{mismatch(BodyMismatch, "$", nil, nil, "multipart body has no boundary parameter")}
	}
	expParts, err := parseMultipart(expected, boundary)
	if err != nil {
		return []Mismatch{mismatch(BodyMismatch, "$", nil, nil, "failed to parse expected multipart body: %v", err)}
	}
	actParts, err := parseMultipart(actual, boundary)
	if err != nil {
		return []Mismatch{mismatch(BodyMismatch, "$", nil, nil, "failed to parse actual multipart body: %v", err)}
	}

	actByName := make(map[string]content.Part, len(actParts))
	for _, p := range actParts {
		actByName[p.Name] = p
	}

	var out []Mismatch
	for _, exp := range expParts {
		act, ok := actByName[exp.Name]
		if !ok {
			out = append(out, mismatch(BodyMismatch, "$."+exp.Name, exp.Name, nil,
				"expected multipart field %q but it was missing", exp.Name))
			continue
		}
		result := MatchBody(catMap, exp.Body, act.Body)
		if result.TypeMismatch != nil {
			out = append(out, *result.TypeMismatch)
		}
		out = append(out, result.Mismatches...)
	}
	return out
}

func parseMultipart(data []byte, boundary string) ([]content.Part, error) {
	reader := multipart.NewReader(bytes.NewReader(data), boundary)
	var parts []content.Part
	for {
		p, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(p)
		if err != nil {
			return nil, err
		}
		headers := content.NewOrderedMap()
		for k, vs := range p.Header {
			for _, v := range vs {
				headers.Add(k, v)
			}
		}
		var ct *content.ContentType
		if h := p.Header.Get("Content-Type"); h != "" {
			parsed := content.ParseContentType(h)
			ct = &parsed
		}
		var ob content.OptionalBody
		if len(body) == 0 {
			ob = content.NewEmptyBody()
		} else {
			ob = content.NewPresentBody(body, ct)
		}
		parts = append(parts, content.Part{Name: p.FormName(), Headers: headers, Body: ob})
	}
	return parts, nil
}
