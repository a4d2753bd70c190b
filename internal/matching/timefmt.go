package matching

import (
	"fmt"
	"time"
)

// defaultLayout is used when a Timestamp/Time/Date rule carries no format,
// matching this port's convention of accepting a Go reference-time layout.
func defaultLayout(kind string) string {
	switch kind {
	case "time":
		return "15:04:05"
	case "date":
		return "2006-01-02"
	default:
		return time.RFC3339
	}
}

// matchTimeFormat parses value with the given Go reference-time layout
// (falling back to a kind-appropriate default), reporting a failure
// message on parse error.
func matchTimeFormat(format, value, kind string) (bool, string) {
	layout := format
	if layout == "" {
		layout = defaultLayout(kind)
	}
	if _, err := time.Parse(layout, value); err != nil {
		return false, fmt.Sprintf("expected %q to match %s format %q: %v", value, kind, layout, err)
	}
	return true, ""
}
