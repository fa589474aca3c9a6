// File: services/extract/extract.go
package extract

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"tablewala/models"
)

// Field names a single booking slot the dialogue collects.
type Field string

const (
	FieldName            Field = "customerName"
	FieldGuestCount      Field = "guestCount"
	FieldDate            Field = "date"
	FieldTime            Field = "time"
	FieldCuisine         Field = "cuisine"
	FieldSpecialRequests Field = "specialRequests"
)

// Guest count bounds. Extraction is the single owner of this range; the
// allocation engine never re-validates it.
const (
	MinGuests = 1
	MaxGuests = 20
)

// Engine resolves raw utterances against the lexicon tables. All methods are
// pure with respect to engine state; identical input yields identical output.
type Engine struct {
	lex *Lexicon

	// Now supplies the reference clock for relative date resolution.
	// Overridable for tests; defaults to time.Now.
	Now func() time.Time

	qualifierThenHourRe *regexp.Regexp
	hourThenQualifierRe *regexp.Regexp
	qualifierWords      []string // TimeQualifiers keys, longest first
	hourMarkerRe        *regexp.Regexp
	partyMoreRe         *regexp.Regexp
	partyAndMeRe        *regexp.Regexp
	relativePhrases     []string // RelativeDays keys, longest first
	cuisinePhrases      []string // Cuisines, longest first
	tagPhrases          []string // RequestTags keys, longest first
	introPhrases        []string // NameIntroductions, longest first
}

// NewEngine builds an extraction engine over the given lexicon.
// A nil lexicon uses the built-in defaults.
func NewEngine(lex *Lexicon) *Engine {
	if lex == nil {
		lex = DefaultLexicon()
	}
	e := &Engine{lex: lex, Now: time.Now}

	e.qualifierWords = sortedByLength(keysOfString(lex.TimeQualifiers))
	qualifierAlt := quotedAlt(e.qualifierWords)
	markerAlt := quotedAlt(lex.HourMarkers)

	e.qualifierThenHourRe = regexp.MustCompile(`\b(` + qualifierAlt + `)\b\D{0,8}?\b(\d{1,2})\b`)
	e.hourThenQualifierRe = regexp.MustCompile(`\b(\d{1,2})\b\D{0,12}?\b(` + qualifierAlt + `)\b`)
	e.hourMarkerRe = regexp.MustCompile(`\b(\d{1,2}|\w+)\s+(?:` + markerAlt + `)\b`)
	e.partyMoreRe = regexp.MustCompile(`\b(?:` + quotedAlt(lex.PartyIntros) + `)\s+(\w+)\s+(?:` + quotedAlt(lex.MoreConstructions) + `)\b`)
	e.partyAndMeRe = regexp.MustCompile(`\b(\w+)\s+(?:` + quotedAlt(lex.AndMeTails) + `)\b`)

	e.relativePhrases = sortedByLength(keysOfInt(lex.RelativeDays))
	e.cuisinePhrases = sortedByLength(append([]string(nil), lex.Cuisines...))
	e.tagPhrases = sortedByLength(keysOfString(lex.RequestTags))
	e.introPhrases = sortedByLength(append([]string(nil), lex.NameIntroductions...))

	return e
}

// Apply runs extraction for one field against the utterance and returns a new
// field snapshot with the result merged in. The input snapshot is never
// mutated; the bool reports whether anything was filled.
func (e *Engine) Apply(field Field, utterance string, fields models.Fields) (models.Fields, bool) {
	next := fields
	switch field {
	case FieldName:
		if v, ok := e.Name(utterance); ok {
			next.CustomerName = v
			return next, true
		}
	case FieldGuestCount:
		if v, ok := e.GuestCount(utterance); ok {
			next.GuestCount = v
			return next, true
		}
	case FieldDate:
		if v, ok := e.Date(utterance); ok {
			next.Date = v
			return next, true
		}
	case FieldTime:
		if v, ok := e.TimeOfDay(utterance); ok {
			next.Time = v
			return next, true
		}
	case FieldCuisine:
		if v, ok := e.Cuisine(utterance); ok {
			next.Cuisine = v
			return next, true
		}
	case FieldSpecialRequests:
		if tags := e.SpecialRequests(utterance); len(tags) > 0 {
			next.SpecialRequests = mergeTags(next.SpecialRequests, tags)
			return next, true
		}
	}
	return fields, false
}

// normalize lowercases and collapses an utterance, stripping punctuation that
// never carries slot information. Slashes and colons survive for date and
// clock patterns.
func normalize(utterance string) string {
	s := strings.ToLower(strings.TrimSpace(utterance))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == ':', r == '/', r == '\'':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// containsPhrase reports whether text contains phrase on word boundaries.
func containsPhrase(text, phrase string) bool {
	return phraseIndex(text, phrase) >= 0
}

func mergeTags(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing)+len(incoming))
	out := append([]string(nil), existing...)
	for _, t := range existing {
		seen[t] = true
	}
	for _, t := range incoming {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// quotedAlt joins vocabulary entries into a regexp alternation, longest first.
func quotedAlt(items []string) string {
	sorted := sortedByLength(append([]string(nil), items...))
	quoted := make([]string, 0, len(sorted))
	for _, it := range sorted {
		quoted = append(quoted, regexp.QuoteMeta(it))
	}
	return strings.Join(quoted, "|")
}

func sortedByLength(items []string) []string {
	sort.Slice(items, func(i, j int) bool {
		if len(items[i]) != len(items[j]) {
			return len(items[i]) > len(items[j])
		}
		return items[i] < items[j]
	})
	return items
}

func keysOfInt(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysOfString(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
