package text

import (
	"regexp"
	"strings"
	"unicode"
)

// MinPhoneDigits is the smallest number of digits a phone candidate must carry
// to be reported.
const MinPhoneDigits = 7

// space mirrors the whitespace class used when matching: ASCII whitespace plus
// vertical tab, every Unicode separator and the byte order mark.
const space = `\s\v\p{Z}\x{FEFF}`

var (
	emailRe = regexp.MustCompile(`[\w.+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	// An opening parenthesis before the first digit belongs to the number, so
	// "(212) 555-0100" is kept whole rather than as "212) 555-0100".
	phoneRe = regexp.MustCompile(`\+?\(?\d[\d` + space + `().-]{7,}\d`)
	urlRe   = regexp.MustCompile(`https?://[^` + space + `"']+`)
)

// Contacts holds the distinct matches found in one piece of text, each slice in
// first-seen order.
type Contacts struct {
	Emails []string
	Phones []string
	URLs   []string
}

// Len returns the total number of matches across all three kinds.
func (c Contacts) Len() int {
	return len(c.Emails) + len(c.Phones) + len(c.URLs)
}

// ExtractContacts scans text for emails, phone numbers and http(s) URLs.
// Each kind is scanned independently, so the same characters may show up in
// more than one slice. Empty text yields three empty slices.
func ExtractContacts(text string) Contacts {
	emails := newOrderedSet()
	phones := newOrderedSet()
	urls := newOrderedSet()

	if text == "" {
		return Contacts{Emails: emails.items, Phones: phones.items, URLs: urls.items}
	}

	for _, m := range emailRe.FindAllString(text, -1) {
		emails.add(NormalizeMatch(m))
	}

	for _, m := range phoneRe.FindAllString(text, -1) {
		m = NormalizeMatch(m)
		if CountDigits(m) >= MinPhoneDigits {
			phones.add(m)
		}
	}

	for _, m := range urlRe.FindAllString(text, -1) {
		urls.add(NormalizeMatch(m))
	}

	return Contacts{Emails: emails.items, Phones: phones.items, URLs: urls.items}
}

// NormalizeMatch trims surrounding whitespace, then drops any trailing run of
// '.', ',', ';' or ':'.
func NormalizeMatch(match string) string {
	return strings.TrimRight(strings.TrimFunc(match, isSpace), ".,;:")
}

// CountDigits returns the number of ASCII digits in s.
func CountDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}

// isSpace is the trim counterpart of space. NEL (U+0085) is not trimmed.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r) || r == '\uFEFF'
}

// orderedSet keeps insertion order while rejecting repeats.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{}), items: []string{}}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}
