package matching

import (
	"bytes"

	"github.com/pact-foundation/pact-core-go/internal/rules"
)

// magicSignatures maps a MIME type to the byte prefix that identifies it,
// used by the ContentType(mime) rule when sniffing an octet-stream body.
// Not exhaustive: covers the common binary formats a contract test
// is likely to pin down.
var magicSignatures = map[string][]byte{
	"image/png":              {0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'},
	"image/jpeg":              {0xFF, 0xD8, 0xFF},
	"image/gif":               {'G', 'I', 'F', '8'},
	"application/pdf":         {'%', 'P', 'D', 'F'},
	"application/zip":         {'P', 'K', 0x03, 0x04},
	"application/gzip":        {0x1F, 0x8B},
	"application/octet-stream": nil,
}

// sniffContentType reports whether data begins with mime's magic
// signature. An unknown mime or one with no defined signature always
// fails the sniff (falls through to bytewise equality).
func sniffContentType(mime string, data []byte) bool {
	sig, ok := magicSignatures[mime]
	if !ok || sig == nil {
		return false
	}
	return bytes.HasPrefix(data, sig)
}

// MatchBinaryBody compares two application/octet-stream bodies: a
// ContentType(mime) rule succeeds when the actual bytes carry mime's magic
// signature; otherwise the bytes must be bytewise identical.
func MatchBinaryBody(cat *rules.Category, expected, actual []byte) []Mismatch {
	if cat != nil {
		if rl, ok := cat.BestMatch(nil); ok {
			for _, r := range rl.Rules {
				if ct, ok := r.(rules.ContentType); ok {
					if sniffContentType(ct.MIME, actual) {
						return nil
					}
					return []Mismatch{mismatch(BodyMismatch, "$", ct.MIME, actual,
						"expected binary body to have content type %q", ct.MIME)}
				}
			}
		}
	}
	if bytes.Equal(expected, actual) {
		return nil
	}
	return []Mismatch{mismatch(BodyMismatch, "$", len(expected), len(actual),
		"expected %d byte(s) but received %d byte(s) and they differ", len(expected), len(actual))}
}
