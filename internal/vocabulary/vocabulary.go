package vocabulary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Source describes where the skill list is read from.
type Source struct {
	// Name is used in error messages to give more context about the source.
	Name string
	// File points to a line-delimited file with one skill per line.
	// When set it takes precedence over Reader.
	File string
	// Reader is an already opened line-delimited stream.
	Reader io.Reader
}

// Vocabulary is the ordered list of known skills. It is immutable after creation.
type Vocabulary struct {
	terms []term
}

type term struct {
	name    string
	pattern *regexp.Regexp
}

// Load reads the skill list from the provided source. Every line is trimmed,
// blank lines are skipped and entries are stored lowercased.
//
// Load never returns a nil vocabulary. When the source can not be read the
// returned vocabulary is empty and the error describes the failure, so callers
// can log it and continue with a matcher that simply finds nothing.
func Load(src Source) (*Vocabulary, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "skills"
	}

	reader := src.Reader
	if file := strings.TrimSpace(src.File); file != "" {
		f, err := os.Open(file)
		if err != nil {
			return &Vocabulary{}, fmt.Errorf("opening %s file %q: %w", name, file, err)
		}
		defer f.Close()
		reader = f
	}

	if reader == nil {
		return &Vocabulary{}, fmt.Errorf("%s source is not configured", name)
	}

	// bufio.Reader has no line length limit, unlike bufio.Scanner.
	var lines []string
	br := bufio.NewReader(reader)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return &Vocabulary{}, fmt.Errorf("reading %s: %w", name, err)
		}
	}

	return New(lines...), nil
}

// New builds a vocabulary from in-memory entries using the same
// normalization as Load.
func New(entries ...string) *Vocabulary {
	v := &Vocabulary{terms: make([]term, 0, len(entries))}
	for _, entry := range entries {
		name := strings.ToLower(strings.TrimSpace(entry))
		if name == "" {
			continue
		}
		v.terms = append(v.terms, term{name: name, pattern: wholeWord(name)})
	}
	return v
}

// Terms returns the lowercase entries in load order.
func (v *Vocabulary) Terms() []string {
	if v == nil {
		return nil
	}
	names := make([]string, 0, len(v.terms))
	for _, t := range v.terms {
		names = append(names, t.name)
	}
	return names
}

func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Scan returns every vocabulary entry found in text as a whole word,
// ignoring case. Results are canonicalized, unique and sorted.
func (v *Vocabulary) Scan(text string) []string {
	found := make([]string, 0)
	if v == nil || len(v.terms) == 0 || text == "" {
		return found
	}

	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	for _, t := range v.terms {
		if !t.pattern.MatchString(lower) {
			continue
		}
		skill := Canonical(t.name)
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		found = append(found, skill)
	}

	slices.Sort(found)
	return found
}

// Canonical converts a skill to the title-cased form shared by candidate and
// job records, so their skill sets can be intersected directly. Every run of
// cased letters starts with a capital, so "node.js" becomes "Node.Js" and
// "o'reilly" becomes "O'Reilly".
func Canonical(skill string) string {
	skill = strings.TrimSpace(skill)
	caser := cases.Title(language.Und)

	var b strings.Builder
	b.Grow(len(skill))

	start := -1
	for i, r := range skill {
		switch {
		case isCased(r) && start < 0:
			start = i
		case !isCased(r) && start >= 0:
			b.WriteString(caser.String(skill[start:i]))
			start = -1
		}
		if start < 0 {
			b.WriteRune(r)
		}
	}
	if start >= 0 {
		b.WriteString(caser.String(skill[start:]))
	}

	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

// wholeWord matches name only when it is not glued to other letters, digits
// or underscores on either side.
func wholeWord(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(name) + `(?:$|[^\p{L}\p{N}_])`)
}
