// Package matching is the content-aware, path-addressed comparator at the
// core of this toolkit: it decides whether an actual HTTP request,
// response, or message satisfies an expected one under a configurable set
// of matching rules.
//
// It implements:
//
//   - Method, path, status, query, and header matching, each exposed as a
//     composable sub-matcher sharing one Mismatch vocabulary.
//   - Content-type-driven body dispatch across JSON, XML, plain text,
//     octet-stream, and multipart/form-data bodies.
//   - Aggregate MatchRequest / MatchResponse / MatchMessage operations
//     that combine every sub-matcher into one result, plus a selection
//     score used by the mock server to pick among partial matches.
//
// All matching here is total and pure: it never panics on a content
// mismatch and never mutates its inputs; structural failures (a body that
// doesn't parse) are reported as a Mismatch, not an error.
package matching
