package format

import (
	"regexp"
	"strconv"

	"github.com/poiesic/eventide/core"
)

// Clock-like tokens, in decreasing strictness: "3:04 PM", "15:04", "3 PM".
var (
	clockColonRe    = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(AM|PM)?\b`)
	clockMeridiemRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(AM|PM)\b`)
)

// StartTime extracts an event's start time as minutes since midnight.
// The time metadata field is consulted first, then the document contents
// are scanned for the first clock-like token. Returns ok=false when no
// parseable time exists; such events sort after timed ones.
func StartTime(doc *core.EventDocument) (int, bool) {
	if doc == nil {
		return 0, false
	}
	if t, ok := parseClock(doc.Metadata[core.MetaTime]); ok {
		return t, ok
	}
	return parseClock(doc.Contents)
}

// parseClock finds the first clock token in s and converts it to minutes
// since midnight.
func parseClock(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	if m := clockColonRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if t, ok := clockMinutes(hour, minute, m[3]); ok {
			return t, true
		}
	}

	if m := clockMeridiemRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if t, ok := clockMinutes(hour, 0, m[2]); ok {
			return t, true
		}
	}

	return 0, false
}

func clockMinutes(hour, minute int, meridiem string) (int, bool) {
	if minute < 0 || minute > 59 {
		return 0, false
	}
	switch meridiem {
	case "":
		if hour < 0 || hour > 23 {
			return 0, false
		}
	case "AM", "am", "Am", "aM":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		hour = hour % 12
	default: // PM
		if hour < 1 || hour > 12 {
			return 0, false
		}
		hour = hour%12 + 12
	}
	return hour*60 + minute, true
}
