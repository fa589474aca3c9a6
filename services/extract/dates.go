// File: services/extract/dates.go
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"tablewala/utils"
)

var (
	dmyRe      = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	dayFirstRe = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+([a-z]+)\b`)
	dayLastRe  = regexp.MustCompile(`\b([a-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
)

// Date extracts a calendar date from the utterance, resolved relative to the
// engine clock. Rule order: relative-day lexicon, then day-of-week lexicon
// (next future occurrence, plus 7 more days under a next-week qualifier even
// when the named day has not yet occurred this week), then absolute
// DD/MM/YYYY, then "<day> <month>" / "<month> <day>" with the current year.
func (e *Engine) Date(utterance string) (string, bool) {
	text := normalize(utterance)
	now := e.Now()

	for _, phrase := range e.relativePhrases {
		if containsPhrase(text, phrase) {
			target := now.AddDate(0, 0, e.lex.RelativeDays[phrase])
			return utils.FormatDate(target), true
		}
	}

	for _, token := range strings.Fields(text) {
		wd, ok := e.lex.Weekdays[token]
		if !ok {
			continue
		}
		delta := (wd - int(now.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		if e.hasNextWeekQualifier(text) {
			delta += 7
		}
		return utils.FormatDate(now.AddDate(0, 0, delta)), true
	}

	if m := dmyRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if d, ok := buildDate(year, month, day); ok {
			return d, true
		}
	}

	// "<day> <month-name>" ("25 december") and "<month-name> <day>".
	for _, m := range dayFirstRe.FindAllStringSubmatch(text, -1) {
		if month, ok := e.lex.Months[m[2]]; ok {
			day, _ := strconv.Atoi(m[1])
			if d, ok := buildDate(now.Year(), month, day); ok {
				return d, true
			}
		}
	}
	for _, m := range dayLastRe.FindAllStringSubmatch(text, -1) {
		if month, ok := e.lex.Months[m[1]]; ok {
			day, _ := strconv.Atoi(m[2])
			if d, ok := buildDate(now.Year(), month, day); ok {
				return d, true
			}
		}
	}

	return "", false
}

func (e *Engine) hasNextWeekQualifier(text string) bool {
	for _, q := range e.lex.NextWeekQualifiers {
		if containsPhrase(text, q) {
			return true
		}
	}
	return false
}

func buildDate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date silently normalizes overflow (e.g. 31 Feb); reject those.
	if t.Day() != day || int(t.Month()) != month {
		return "", false
	}
	return utils.FormatDate(t), true
}
