// File: services/extract/cuisine.go
package extract

import "regexp"

var (
	wordFoodRe = regexp.MustCompile(`\b([a-z]+)\s+food\b`)
	foodWordRe = regexp.MustCompile(`\bfood\s+([a-z]+)\b`)
)

// Cuisine resolves a cuisine preference. An exact vocabulary match wins
// (longer entries first so "north indian" beats "indian"); otherwise a
// "<word> food" / "food <word>" construction is resolved against the same
// vocabulary, falling back to the captured word as free text.
func (e *Engine) Cuisine(utterance string) (string, bool) {
	text := normalize(utterance)

	for _, cuisine := range e.cuisinePhrases {
		if containsPhrase(text, cuisine) {
			return cuisine, true
		}
	}

	for _, re := range []*regexp.Regexp{wordFoodRe, foodWordRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			word := m[1]
			for _, cuisine := range e.cuisinePhrases {
				if word == cuisine {
					return cuisine, true
				}
			}
			return word, true
		}
	}

	return "", false
}

// SpecialRequests collects every canonical request tag mentioned in the
// utterance, de-duplicated. Requests are optional and never block the
// conversation, so an empty result is not a miss.
func (e *Engine) SpecialRequests(utterance string) []string {
	text := normalize(utterance)

	var tags []string
	seen := make(map[string]bool)
	for _, keyword := range e.tagPhrases {
		if !containsPhrase(text, keyword) {
			continue
		}
		tag := e.lex.RequestTags[keyword]
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
