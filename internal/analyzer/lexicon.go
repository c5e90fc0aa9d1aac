package analyzer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// mergeTags are the personalization placeholders a mail client substitutes
var mergeTags = []string{"{name}", "{company}"}

// subject caches the forms of the input every rule needs
type subject struct {
	raw   string
	lower string
}

func newSubject(raw string) subject {
	return subject{raw: raw, lower: strings.ToLower(raw)}
}

// length counts characters, not bytes
func (s subject) length() int {
	return utf8.RuneCountInString(s.raw)
}

// containsAny reports whether the lowercased subject contains any needle
func (s subject) containsAny(needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s.lower, n) {
			return true
		}
	}
	return false
}

// allCaps is true when the subject has at least one cased letter and no lowercase ones
func (s subject) allCaps() bool {
	return s.raw == strings.ToUpper(s.raw) && s.raw != s.lower
}

// specialChars counts runes that are not letters, digits or whitespace.
// Merge tags are removed first: they are placeholders, not punctuation.
func (s subject) specialChars() int {
	text := s.lower
	for _, tag := range mergeTags {
		text = strings.ReplaceAll(text, tag, "")
	}

	count := 0
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}

// lexicon is an ordered word list matched case-insensitively as substrings
type lexicon struct {
	entries []lexiconEntry
}

type lexiconEntry struct {
	word   string // as declared, used in feedback
	needle string // lowercased, used for matching
}

func newLexicon(words []string) lexicon {
	entries := make([]lexiconEntry, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			continue
		}
		entries = append(entries, lexiconEntry{word: w, needle: strings.ToLower(w)})
	}
	return lexicon{entries: entries}
}

// matches returns every declared word found in the subject, in list order
func (l lexicon) matches(s subject) []string {
	var found []string
	for _, e := range l.entries {
		if strings.Contains(s.lower, e.needle) {
			found = append(found, e.word)
		}
	}
	return found
}

func (l lexicon) words() []string {
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.word
	}
	return out
}
