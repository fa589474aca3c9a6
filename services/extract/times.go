// File: services/extract/times.go
package extract

import (
	"regexp"
	"strconv"

	"tablewala/utils"
)

var (
	clockRe    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
	hourAmPmRe = regexp.MustCompile(`\b(\d{1,2})\s*(am|pm)\b`)
	bareHourRe = regexp.MustCompile(`\b(\d{1,2})\b`)
)

// Slot granularity for minute alignment of extracted times.
const slotIntervalMinutes = 30

// TimeOfDay extracts a 24-hour "HH:MM" seating time. Rule order: an hour
// marker ("7 baje") combined with a time-of-day qualifier, then a
// qualifier-adjacent bare number in either order, then standard H:MM and
// H am/pm, then a bare hour. A bare hour between 5 and 11 with no qualifier
// is assumed PM: dinner service is the house default, and that assumption is
// a business rule, not a parsing accident.
func (e *Engine) TimeOfDay(utterance string) (string, bool) {
	text := normalize(utterance)

	if m := e.hourMarkerRe.FindStringSubmatch(text); m != nil {
		if hour, ok := e.numberToken(m[1]); ok && hour >= 0 && hour <= 23 {
			if meridiem, found := e.findQualifier(text); found {
				return clockOf(applyMeridiem(hour, meridiem), 0), true
			}
			return clockOf(dinnerDefault(hour), 0), true
		}
	}

	if m := e.qualifierThenHourRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[2])
		if hour <= 23 {
			return clockOf(applyMeridiem(hour, e.lex.TimeQualifiers[m[1]]), 0), true
		}
	}
	if m := e.hourThenQualifierRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour <= 23 {
			return clockOf(applyMeridiem(hour, e.lex.TimeQualifiers[m[2]]), 0), true
		}
	}

	if m := clockRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour <= 23 && minute <= 59 {
			if m[3] != "" {
				hour = applyMeridiem(hour, m[3])
			}
			return clockOf(hour, minute), true
		}
	}
	if m := hourAmPmRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour <= 23 {
			return clockOf(applyMeridiem(hour, m[2]), 0), true
		}
	}

	if m := bareHourRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour <= 23 {
			return clockOf(dinnerDefault(hour), 0), true
		}
	}

	return "", false
}

// findQualifier looks for any time-of-day qualifier word in the text,
// checking longer qualifiers first so matching stays deterministic.
func (e *Engine) findQualifier(text string) (string, bool) {
	for _, q := range e.qualifierWords {
		if containsPhrase(text, q) {
			return e.lex.TimeQualifiers[q], true
		}
	}
	return "", false
}

func applyMeridiem(hour int, meridiem string) int {
	switch meridiem {
	case "pm":
		if hour < 12 {
			return hour + 12
		}
	case "am":
		if hour == 12 {
			return 0
		}
	}
	return hour
}

// dinnerDefault assumes bare hours 5 through 11 are evening seatings.
func dinnerDefault(hour int) int {
	if hour >= 5 && hour <= 11 {
		return hour + 12
	}
	return hour
}

// clockOf renders an aligned "HH:MM", snapping minutes down to the slot grid.
func clockOf(hour, minute int) string {
	minute -= minute % slotIntervalMinutes
	return utils.ClockFromMinutes(hour*60 + minute)
}
