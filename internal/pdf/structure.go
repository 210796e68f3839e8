package pdf

import (
	"io"
	"regexp"
	"strings"

	"github.com/unidoc/unipdf/v3/model"
)

// Structure holds document metadata and detected section headings.
type Structure struct {
	Title    string
	Author   string
	Keywords string
	Headings []Heading
}

// Heading is a detected section heading with an approximate outline level.
type Heading struct {
	Text  string
	Level int
}

const (
	minHeadingLen = 20
	maxHeadingLen = 120
)

var (
	enumerationPattern = regexp.MustCompile(`^\d+(\.\d+)*\.?\s+[A-Z]\w*`)
	markdownPattern    = regexp.MustCompile(`^#{1,6}\s+\S`)
)

// ExtractStructure pulls title/author/keyword metadata and heading candidates
// from the document. The filename is used as the title when PDF metadata has
// none. Parse failures never propagate: the caller always receives a usable
// Structure, at worst with only the filename as title.
func ExtractStructure(rs io.ReadSeeker, filename string) Structure {
	s := Structure{Title: filename}

	reader, err := model.NewPdfReader(rs)
	if err != nil {
		return s
	}

	if info, err := reader.GetPdfInfo(); err == nil && info != nil {
		if info.Title != nil && info.Title.Decoded() != "" {
			s.Title = info.Title.Decoded()
		}
		if info.Author != nil {
			s.Author = info.Author.Decoded()
		}
		if info.Keywords != nil {
			s.Keywords = info.Keywords.Decoded()
		}
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return s
	}
	pages, err := ExtractPages(rs)
	if err != nil {
		return s
	}
	for _, page := range pages {
		s.Headings = append(s.Headings, HeadingsFromText(page.Text)...)
	}
	return s
}

// HeadingsFromText scans text lines for heading candidates: lines of 20-120
// characters that are fully upper-case, start with a numeric enumeration
// followed by a capitalized word, or carry a markdown-style hash prefix.
func HeadingsFromText(text string) []Heading {
	var headings []Heading
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < minHeadingLen || len(line) > maxHeadingLen {
			continue
		}
		if !isUpperLine(line) && !enumerationPattern.MatchString(line) && !markdownPattern.MatchString(line) {
			continue
		}
		headings = append(headings, Heading{Text: line, Level: headingLevel(line)})
	}
	return headings
}

// headingLevel derives a 1-3 outline level from the number of periods in the
// heading label. This is a heuristic carried over from the heading detector's
// origins, not a real outline parse: "2.1.3 Results" nests deeper than
// "2. Methods", and an unnumbered all-caps line lands at level 3.
func headingLevel(line string) int {
	level := 3 - strings.Count(line, ".")
	if level < 1 {
		level = 1
	}
	return level
}

// isUpperLine reports whether the line contains at least one letter and no
// lower-case letters.
func isUpperLine(line string) bool {
	hasLetter := false
	for _, r := range line {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		}
	}
	return hasLetter
}
