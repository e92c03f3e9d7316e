// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package temporal

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the canonical calendar date format used in event metadata
// and refined queries, e.g. "November 5, 2025".
const DateLayout = "January 2, 2006"

// ErrUnparseableDate is returned when no parse strategy accepts a date string.
// Callers downgrade gracefully; this error never aborts a turn.
var ErrUnparseableDate = errors.New("unparseable date")

// dateLayouts are tried in order. Year-less layouts are retried with the
// reference year appended, matching the original filter derivation fallback.
var dateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2006-01-02",
}

var yearlessLayouts = []string{
	"January 2",
	"Jan 2",
}

// ParseDate parses a calendar date string using an ordered list of layout
// strategies. Strings without a year are completed with now's year.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparseableDate
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range yearlessLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrUnparseableDate
}

// WeekdayOf returns the weekday name for a parseable date string.
func WeekdayOf(dateStr string, now time.Time) (string, error) {
	t, err := ParseDate(dateStr, now)
	if err != nil {
		return "", err
	}
	return t.Weekday().String(), nil
}

// ParseWeekday matches a full weekday name, case-insensitively.
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.TrimSpace(s)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(s, wd.String()) {
			return wd, true
		}
	}
	return 0, false
}

// NearestDate returns the next calendar date falling on the given weekday,
// counting today: the offset from now is the smallest non-negative number of
// days, wrapping to next week when the weekday has already passed.
func NearestDate(weekday time.Weekday, now time.Time) time.Time {
	offset := (int(weekday) - int(now.Weekday()) + 7) % 7
	d := now.AddDate(0, 0, offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a time in the canonical metadata date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// relativeTerms maps relative date phrases to day offsets from the reference
// date. Multi-word phrases are listed first so they win the scan.
var relativeTerms = []struct {
	phrase string
	offset func(now time.Time) time.Time
}{
	{"day after tomorrow", func(now time.Time) time.Time { return now.AddDate(0, 0, 2) }},
	{"this weekend", func(now time.Time) time.Time { return NearestDate(time.Saturday, now) }},
	{"tomorrow", func(now time.Time) time.Time { return now.AddDate(0, 0, 1) }},
	{"tonight", func(now time.Time) time.Time { return now }},
	{"today", func(now time.Time) time.Time { return now }},
}

// ResolveRelative converts a relative date phrase to an absolute date using
// now as the reference instant. Unknown phrases report ok=false; the caller
// passes the term through unresolved.
func ResolveRelative(term string, now time.Time) (time.Time, bool) {
	term = strings.ToLower(strings.TrimSpace(term))
	for _, rt := range relativeTerms {
		if term == rt.phrase {
			d := rt.offset(now)
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

var (
	explicitDateRe = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?`)
	isoDateRe      = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	weekdayRe      = regexp.MustCompile(`(?i)\b(Sunday|Monday|Tuesday|Wednesday|Thursday|Friday|Saturday)s?\b`)
)

// recurringQualifiers mark a weekday mention as recurring ("every Wednesday"),
// which suppresses nearest-date enrichment.
var recurringQualifiers = map[string]bool{
	"every": true,
	"each":  true,
	"all":   true,
	"on":    false, // "on Wednesday" is a single occurrence
}

// FindDate locates the first explicit calendar date in text and returns it
// in a form ParseDate accepts.
func FindDate(text string) (string, bool) {
	if m := explicitDateRe.FindStringSubmatch(text); m != nil {
		date := m[1] + " " + m[2]
		if m[3] != "" {
			date += ", " + m[3]
		}
		return date, true
	}
	if m := isoDateRe.FindString(text); m != "" {
		return m, true
	}
	return "", false
}

// FindWeekday locates the first weekday name in text. It returns the parsed
// weekday, the matched token, and whether the mention is qualified as
// recurring.
func FindWeekday(text string) (weekday time.Weekday, token string, recurring bool, ok bool) {
	loc := weekdayRe.FindStringIndex(text)
	if loc == nil {
		return 0, "", false, false
	}
	token = text[loc[0]:loc[1]]

	name := strings.TrimSuffix(strings.TrimSuffix(token, "s"), "S")
	weekday, ok = ParseWeekday(name)
	if !ok {
		return 0, "", false, false
	}

	// A plural form ("Wednesdays") is itself recurring.
	if strings.EqualFold(token, name+"s") {
		recurring = true
	}

	// Check the word immediately before the match for a recurring qualifier.
	before := strings.Fields(strings.ToLower(text[:loc[0]]))
	if len(before) > 0 && recurringQualifiers[before[len(before)-1]] {
		recurring = true
	}

	return weekday, token, recurring, true
}

// HasRelativeReference reports whether text contains a known relative date phrase.
func HasRelativeReference(text string) bool {
	lower := strings.ToLower(text)
	for _, rt := range relativeTerms {
		if strings.Contains(lower, rt.phrase) {
			return true
		}
	}
	return strings.Contains(lower, "weekend")
}

// HasTemporalReference reports whether text mentions a date, weekday, or
// relative date term.
func HasTemporalReference(text string) bool {
	if _, ok := FindDate(text); ok {
		return true
	}
	if _, _, _, ok := FindWeekday(text); ok {
		return true
	}
	return HasRelativeReference(text)
}

// EnrichQuery cross-references dates and weekdays in a search query:
//
//   - relative date phrases are replaced with the absolute date they resolve to
//   - an explicit date gains its weekday name when missing
//   - an explicit non-recurring weekday gains the nearest future matching date
//
// Queries without any temporal reference pass through unchanged; no date is
// ever appended by default.
func EnrichQuery(query string, now time.Time) string {
	q := query

	lower := strings.ToLower(q)
	for _, rt := range relativeTerms {
		idx := strings.Index(lower, rt.phrase)
		if idx < 0 {
			continue
		}
		d := rt.offset(now)
		q = q[:idx] + FormatDate(d) + q[idx+len(rt.phrase):]
		lower = strings.ToLower(q)
	}

	hasDate := false
	if dateStr, ok := FindDate(q); ok {
		hasDate = true
		if _, _, _, hasWeekday := FindWeekday(q); !hasWeekday {
			if day, err := WeekdayOf(dateStr, now); err == nil {
				q += " (" + day + ")"
			}
			// Unparseable dates pass through unenriched.
		}
	}

	if weekday, _, recurring, ok := FindWeekday(q); ok && !hasDate && !recurring {
		q += " " + FormatDate(NearestDate(weekday, now))
	}

	return q
}
