package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var (
	// 30th June 2025 / 3 March 2024 / 1st january, 2026
	datePattern     = `(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+),?\s+(\d{4})\b`
	ordinalSuffixRe = regexp.MustCompile(`(?i)(\d+)(st|nd|rd|th)\b`)
	clauseEndRe     = regexp.MustCompile(`[.,;\n]`)
	sentenceEndRe   = regexp.MustCompile(`[.\n]`)
	spaceRe         = regexp.MustCompile(`\s+`)
)

// StripOrdinalSuffix removes st/nd/rd/th after day numbers: "30th June" -> "30 June".
func StripOrdinalSuffix(text string) string {
	return ordinalSuffixRe.ReplaceAllString(text, "$1")
}

// ParseDayMonthYear parses "<day> <full month name> <year>" into YYYY-MM-DD.
// Month names are matched case-insensitively, ordinal suffixes are accepted.
func ParseDayMonthYear(day, month, year string) (string, error) {
	d, err := strconv.Atoi(StripOrdinalSuffix(day))
	if err != nil {
		return "", fmt.Errorf("invalid day %q: %w", day, err)
	}
	t, err := time.Parse("2 January 2006", fmt.Sprintf("%d %s %s", d, month, year))
	if err != nil {
		return "", err
	}
	return t.Format(isoDate), nil
}

// firstClause cuts text at the first period, comma, semicolon or newline.
func firstClause(text string) string {
	if loc := clauseEndRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return NormalizeSpace(text)
}

// firstSentence cuts text at the first period or newline.
func firstSentence(text string) string {
	if loc := sentenceEndRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return NormalizeSpace(text)
}

// NormalizeSpace trims text and collapses inner whitespace runs to one space.
func NormalizeSpace(text string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

func joinNonEmpty(parts []string, sep string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
