// Package textnorm cleans raw text extracted from PDFs before chunking.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	figureRef    = regexp.MustCompile(`Fig\.\s?\d+|Figure\s?\d+`)
	blankLines   = regexp.MustCompile(`\n+`)
	extraSpaces  = regexp.MustCompile(`\s{2,}`)
	lineNumbers  = regexp.MustCompile(`(?m)^(\d{1,3} )`)
	referencesOn = regexp.MustCompile(`(?i)(References|Bibliography)[\s\S]*$`)
)

// Normalize cleans extracted document text: figure/table references are
// removed, runs of blank lines and spaces are collapsed, stray leading line
// numbers are stripped, and everything from a References/Bibliography heading
// to the end of the text is truncated. The function is pure; if no references
// section exists the text only receives the other cleanups.
func Normalize(raw string) string {
	text := figureRef.ReplaceAllString(raw, "")
	text = blankLines.ReplaceAllString(text, "\n")
	text = extraSpaces.ReplaceAllString(text, " ")
	text = lineNumbers.ReplaceAllString(text, "")
	text = referencesOn.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

var unsafeFilenameChars = strings.NewReplacer("-", "_", ".", "_", " ", "_")

// Filename normalizes an uploaded file name for use in record identifiers
// and on-disk reasoning files.
func Filename(name string) string {
	return unsafeFilenameChars.Replace(name)
}
