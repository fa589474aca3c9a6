// File: services/extract/names.go
package extract

import "strings"

// Name extracts a customer name. Only the dialogue's name-collection state
// should call this; the bare-name fallback would otherwise swallow arbitrary
// utterances. Self-introduction phrases are tried first, then a short bare
// utterance is taken as the name itself. Each word is capitalized.
func (e *Engine) Name(utterance string) (string, bool) {
	text := normalize(utterance)
	if text == "" {
		return "", false
	}

	for _, intro := range e.introPhrases {
		idx := phraseIndex(text, intro)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(text[idx+len(intro):])
		if name, ok := e.nameFromTokens(strings.Fields(rest)); ok {
			return name, true
		}
	}

	// Bare-name fallback: a short, purely alphabetic utterance.
	tokens := strings.Fields(text)
	if len(tokens) >= 1 && len(tokens) <= 3 {
		return e.nameFromTokens(tokens)
	}

	return "", false
}

// nameFromTokens trims trailer words and assembles a capitalized name of at
// most four words.
func (e *Engine) nameFromTokens(tokens []string) (string, bool) {
	for len(tokens) > 0 && e.isTrailer(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}

	var words []string
	for _, tok := range tokens {
		if !alphabetic(tok) {
			break
		}
		words = append(words, capitalize(tok))
		if len(words) == 4 {
			break
		}
	}
	if len(words) == 0 {
		return "", false
	}
	return strings.Join(words, " "), true
}

func (e *Engine) isTrailer(token string) bool {
	for _, t := range e.lex.NameTrailers {
		if token == t {
			return true
		}
	}
	return false
}

// phraseIndex returns the byte offset of phrase in text on word boundaries,
// or -1 when absent.
func phraseIndex(text, phrase string) int {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return -1
		}
		start := idx + i
		end := start + len(phrase)
		beforeOK := start == 0 || text[start-1] == ' '
		afterOK := end == len(text) || text[end] == ' '
		if beforeOK && afterOK {
			return start
		}
		idx = start + 1
	}
}

func alphabetic(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return len(s) > 0
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
