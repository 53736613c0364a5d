// Package dateutils provides the date parsing and formatting shared by the broker
// parsers and the QIF emitter.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts found in broker exports and QIF files
const (
	DateLayoutUS      = "01/02/2006"
	DateLayoutUSShort = "01/02/06"
	DateLayoutISO     = "2006-01-02"
)

// brokerFormats is the ordered list of layouts tried by ParseDate.
var brokerFormats = []string{
	DateLayoutUS,
	DateLayoutISO,
	"1/2/2006",
}

// asOfPattern matches "MM/DD/YYYY as of MM/DD/YYYY"; the as-of date is captured.
var asOfPattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4} as of (\d{2}/\d{2}/\d{4})$`)

var spaces = regexp.MustCompile(`\s+`)

// CleanDateString trims a date string and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate parses a broker date. A settlement date carrying an "as of" suffix
// resolves to the as-of date.
func ParseDate(dateStr string) (time.Time, error) {
	clean := CleanDateString(dateStr)
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range brokerFormats {
		if t, err := time.Parse(layout, clean); err == nil {
			return t, nil
		}
	}

	if m := asOfPattern.FindStringSubmatch(clean); m != nil {
		t, err := time.Parse(DateLayoutUS, m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("unable to parse as-of date %q: %w", m[1], err)
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// FormatQIF formats a date the way QIF expects it: M/D'YY.
func FormatQIF(date time.Time) string {
	return fmt.Sprintf("%d/%d'%02d", int(date.Month()), date.Day(), date.Year()%100)
}
