// Package pdf extracts text, document structure, and figure images from PDF
// files using UniPDF.
package pdf

import (
	"fmt"
	"io"
	"log"

	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// SetLicense registers the UniPDF metered license key. Without a key PDF
// processing fails, so callers should invoke this once at startup.
func SetLicense(key string) error {
	if key == "" {
		return fmt.Errorf("UNIDOC_LICENSE_KEY is not set")
	}
	return license.SetMeteredKey(key)
}

// Page holds the extracted text of a single PDF page.
type Page struct {
	Number int
	Text   string
}

// ExtractPages returns the text of every page in the document. A page that
// fails to extract is logged and skipped; the document-level parse error is
// returned to the caller.
func ExtractPages(rs io.ReadSeeker) ([]Page, error) {
	reader, err := model.NewPdfReader(rs)
	if err != nil {
		return nil, fmt.Errorf("parsing pdf: %w", err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, fmt.Errorf("reading page count: %w", err)
	}

	pages := make([]Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			log.Printf("PDF: skipping page %d: %v", i, err)
			continue
		}
		ex, err := extractor.New(page)
		if err != nil {
			log.Printf("PDF: skipping page %d: %v", i, err)
			continue
		}
		text, err := ex.ExtractText()
		if err != nil {
			log.Printf("PDF: skipping page %d text: %v", i, err)
			continue
		}
		pages = append(pages, Page{Number: i, Text: text})
	}
	return pages, nil
}
