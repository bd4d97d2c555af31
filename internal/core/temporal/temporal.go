// Package temporal provides timestamp normalization, interval overlap tests
// and the display helpers shared by the aggregators
//
// All comparisons work on the ISO8601 lexical order of the date portion, which
// is valid because the format is fixed width
package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// YearSentinel sorts malformed or missing dates last in ascending year
// displays and excludes them from "as of" filters
const YearSentinel = 9999

// EndOfTime is the effective end used to sort ongoing terms first
const EndOfTime = "9999-12-31"

// Unknown is the display fallback for terms without a start date
const Unknown = "Unknown"

const tsLayout = "2006-01-02T15:04:05Z"

var (
	yearSuffixRe = regexp.MustCompile(`-\d{4}$`)
	nonAlnumRe   = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	titleCaser   = cases.Title(language.English)
)

// NormalizeTimestamp renders ts as YYYY-MM-DDTHH:MM:SSZ so date-only caller
// input compares against full timestamps stored upstream
// Empty input passes through; unparseable input gets a best-effort Z suffix
func NormalizeTimestamp(ts string) string {
	if ts == "" {
		return ts
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.UTC().Format(tsLayout)
	}
	if _, err := time.Parse(time.DateOnly, ts); err == nil {
		return ts + "T00:00:00Z"
	}
	if strings.HasSuffix(ts, "Z") {
		return ts
	}
	return ts + "Z"
}

// DatePart returns the date portion before any T
func DatePart(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 {
		return ts[:i]
	}
	return ts
}

// Term formats an office term like "2022 Jul - 2024 Sep"
// An empty end renders as "Present"; a missing start renders as "Unknown"
func Term(start, end string) string {
	sd, err := time.Parse(time.DateOnly, DatePart(start))
	if err != nil {
		return Unknown
	}
	left := fmt.Sprintf("%d %s", sd.Year(), sd.Month().String()[:3])
	ed, err := time.Parse(time.DateOnly, DatePart(end))
	if err != nil {
		return left + " - Present"
	}
	return fmt.Sprintf("%s - %d %s", left, ed.Year(), ed.Month().String()[:3])
}

// Overlaps reports whether an office term [termStart, termEnd] overlaps the
// interval [start, end]. Empty ends mean ongoing. The interval touching the
// term start exactly does not count as overlap
func Overlaps(termStart, termEnd, start, end string) bool {
	if termStart == "" {
		return false
	}
	if termEnd != "" && DatePart(start) > DatePart(termEnd) {
		return false
	}
	if end != "" && DatePart(end) <= DatePart(termStart) {
		return false
	}
	return true
}

// SameDate reports whether two timestamps fall on the same calendar date
func SameDate(a, b string) bool {
	return DatePart(a) != "" && DatePart(a) == DatePart(b)
}

// ExtractYear parses the leading year of a date string
// Missing or malformed input yields YearSentinel
func ExtractYear(date string) int {
	if date == "" {
		return YearSentinel
	}
	head := date
	if i := strings.IndexByte(date, '-'); i >= 0 {
		head = date[:i]
	}
	y, err := strconv.Atoi(head)
	if err != nil {
		return YearSentinel
	}
	return y
}

// TitleCase renders a machine name as a display title: underscores and
// hyphens become spaces, everything outside [A-Za-z0-9\s] is stripped, and
// each token is capitalized
func TitleCase(text string) string {
	if text == "" {
		return ""
	}
	s := strings.NewReplacer("_", " ", "-", " ").Replace(text)
	s = nonAlnumRe.ReplaceAllString(s, "")
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = titleCaser.String(f)
	}
	return strings.Join(fields, " ")
}

// StripYearSuffix removes a trailing -YYYY so yearly dataset variants group
// under one display name
func StripYearSuffix(name string) string {
	return yearSuffixRe.ReplaceAllString(name, "")
}

// MatchScore rates how well text matches query, case insensitive
// exact 1.0, prefix 0.8, substring 0.6, otherwise 0
func MatchScore(query, text string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0
	}
	switch {
	case s == q:
		return 1.0
	case strings.HasPrefix(s, q):
		return 0.8
	case strings.Contains(s, q):
		return 0.6
	default:
		return 0
	}
}
