// Package parsing turns free text into the normalized tokens used for skill matching and similarity.
package parsing

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer reduces text to comparable tokens.
type Normalizer interface {
	// Tokenize returns lowercased surface tokens with stop words and punctuation removed.
	Tokenize(text string) []string
	// Normalize returns the base form of every token produced by Tokenize.
	Normalize(text string) []string
}

// English is the default Normalizer. It is safe for concurrent use.
type English struct{}

// NewNormalizer returns the English normalizer.
func NewNormalizer() *English {
	return &English{}
}

// Tokenize splits text into tokens. A token starts with a letter or digit and may carry
// '+', '#', '.', '-', '/' or '_' inside it, so "C++", "C#", "Node.js" and "CI/CD" survive intact.
func (e *English) Tokenize(text string) []string {
	tokens := []string{}
	if strings.TrimSpace(text) == "" {
		return tokens
	}

	// Casers keep internal state, so each call gets its own.
	lower := cases.Lower(language.English).String(text)

	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		tok := strings.TrimRight(current.String(), ".-/_")
		current.Reset()
		if tok == "" || IsStopWord(tok) {
			return
		}
		tokens = append(tokens, tok)
	}

	for _, r := range lower {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(r)
		case current.Len() > 0 && isJoiner(r):
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	return tokens
}

// Normalize returns the base forms of the tokens in text. Empty input yields an empty slice.
func (e *English) Normalize(text string) []string {
	tokens := e.Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, Lemma(tok))
	}
	return out
}

// Stem reduces a purely alphabetic word to its stem. Words with digits or symbols are returned unchanged.
// Stems are truncated forms ("communic", "excel") and are only fit for similarity features.
func Stem(word string) string {
	if !isAlpha(word) {
		return word
	}
	return english.Stem(word, false)
}

// inflections are the endings Lemma may remove. A stem that drops anything else
// ("excellent" to "excel", "swiftly" to "swift") changes the word, not its form.
var inflections = []string{"s", "es", "d", "ed", "ing"}

// Lemma returns the base form of an inflected word: plurals, past tenses and
// gerunds lose their ending ("apis" to "api", "developing" to "develop", "running" to "run",
// "delivers" to "deliver"). Derived words and words with digits or symbols are returned unchanged.
func Lemma(word string) string {
	if !isAlpha(word) {
		return word
	}

	stem := english.Stem(word, false)
	if stem != "" && stem != word && strings.HasPrefix(word, stem) {
		tail := word[len(stem):]
		for _, suffix := range inflections {
			if tail == suffix {
				return stem
			}
		}
		// Doubled final consonant: "running", "planned".
		if last := stem[len(stem)-1:]; tail == last+"ing" || tail == last+"ed" {
			return stem
		}
	}

	if len(word) > 3 && strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") &&
		!strings.HasSuffix(word, "us") && !strings.HasSuffix(word, "is") {
		return word[:len(word)-1]
	}
	return word
}

// TokenSet builds the lookup set used for skill matching. It holds each token and its lemma.
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens)*2)
	for _, tok := range tokens {
		set[tok] = struct{}{}
		set[Lemma(tok)] = struct{}{}
	}
	return set
}

func isAlpha(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isJoiner(r rune) bool {
	switch r {
	case '+', '#', '.', '-', '/', '_':
		return true
	}
	return false
}
