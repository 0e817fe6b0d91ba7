package feed

import (
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	adjectives = []string{"funny", "happy", "sad", "excited", "angry", "silly", "adorable", "weird"}
	nouns      = []string{"cat", "dog", "dancing", "party", "food", "meme", "game", "reaction"}
	verbs      = []string{"running", "laughing", "crying", "celebrating", "thinking", "eating"}
)

// RandomPhrase returns a placeholder such as "Funny dog running..."
func RandomPhrase(rng *rand.Rand) string {
	pick := func(words []string) string {
		return words[rng.IntN(len(words))]
	}
	return Capitalize(pick(adjectives)) + " " + pick(nouns) + " " + pick(verbs) + "..."
}

// Capitalize upper-cases the first letter of s
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatTerm turns a path term like "cute+cats" into "Cute cats"
func FormatTerm(term string) string {
	return Capitalize(strings.Join(strings.Fields(strings.ReplaceAll(term, "+", " ")), " "))
}

// PathTerm turns "cute cats" into the path form "cute+cats"
func PathTerm(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), "+")
}
