package parser

import (
	"regexp"
	"strings"
	"unicode"
)

const maxExperienceRunes = 500

var (
	emailRe      = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe      = regexp.MustCompile(`(\+?\d{1,3}[\s.-]?)?(\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4})`)
	experienceRe = regexp.MustCompile(`(?is)(?:work experience|experience)(.*)`)
)

// FirstLine returns the first line that is not blank, trimmed.
func FirstLine(text string) (string, bool) {
	for _, line := range splitLines(text) {
		if line = strings.TrimSpace(line); line != "" {
			return line, true
		}
	}
	return "", false
}

// Email returns the first email address found in text.
func Email(text string) (string, bool) {
	email := emailRe.FindString(text)
	return email, email != ""
}

// Phone returns the first phone number found in text, with an optional
// country code prefix.
func Phone(text string) (string, bool) {
	phone := phoneRe.FindString(text)
	return phone, phone != ""
}

// Experience returns everything after the first "experience" heading, up to
// maxExperienceRunes runes. Heading punctuation such as ':' or '-' is dropped.
func Experience(text string) (string, bool) {
	m := experienceRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	section := strings.TrimLeftFunc(strings.TrimSpace(m[1]), func(r rune) bool {
		return r == ':' || r == '-' || unicode.IsSpace(r)
	})
	if runes := []rune(section); len(runes) > maxExperienceRunes {
		section = string(runes[:maxExperienceRunes])
	}

	return section, true
}

// splitLines breaks text on every Unicode line boundary, not only '\n'.
func splitLines(text string) []string {
	return strings.FieldsFunc(text, isLineBreak)
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
