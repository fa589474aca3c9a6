// File: services/extract/numbers.go
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var bareDigitsRe = regexp.MustCompile(`\b(\d{1,2})\b`)

// GuestCount extracts a party size from the utterance. Rule order:
// party constructions ("me and N more", "N and me") first since they embed a
// plain numeral, then a bare digit sequence, then the bilingual number-word
// lexicon. The [MinGuests, MaxGuests] bound is enforced here and only here.
func (e *Engine) GuestCount(utterance string) (int, bool) {
	text := normalize(utterance)

	if m := e.partyMoreRe.FindStringSubmatch(text); m != nil {
		if n, ok := e.numberToken(m[1]); ok {
			return boundGuests(n + 1)
		}
	}
	if m := e.partyAndMeRe.FindStringSubmatch(text); m != nil {
		if n, ok := e.numberToken(m[1]); ok {
			return boundGuests(n + 1)
		}
	}

	if m := bareDigitsRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return boundGuests(n)
	}

	for _, token := range strings.Fields(text) {
		if n, ok := e.lex.NumberWords[token]; ok {
			return boundGuests(n)
		}
	}
	return 0, false
}

// numberToken resolves a single token that may be a digit or a number word.
func (e *Engine) numberToken(token string) (int, bool) {
	if n, err := strconv.Atoi(token); err == nil {
		return n, true
	}
	n, ok := e.lex.NumberWords[token]
	return n, ok
}

func boundGuests(n int) (int, bool) {
	if n < MinGuests || n > MaxGuests {
		return 0, false
	}
	return n, true
}
