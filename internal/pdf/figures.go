package pdf

import (
	"context"
	"image/png"
	"io"
	"log"
	"os"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/yma-ai/yma/internal/ocr"
)

// Figure is the OCR output for one embedded image.
type Figure struct {
	Page    int
	OCRText string
}

// ExtractFigures decodes every embedded image on every page and runs OCR on
// it. A failure on a single image is skipped; a document that fails to open
// yields an empty slice with a logged warning, never an error. Each image is
// written to a temporary file that is removed on every exit path.
func ExtractFigures(ctx context.Context, rs io.ReadSeeker, filename string, engine ocr.Engine) []Figure {
	reader, err := model.NewPdfReader(rs)
	if err != nil {
		log.Printf("OCR: figure extraction failed for %s: %v", filename, err)
		return nil
	}
	numPages, err := reader.GetNumPages()
	if err != nil {
		log.Printf("OCR: figure extraction failed for %s: %v", filename, err)
		return nil
	}

	var figures []Figure
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			continue
		}
		ex, err := extractor.New(page)
		if err != nil {
			continue
		}
		pageImages, err := ex.ExtractPageImages(nil)
		if err != nil {
			continue
		}
		for _, mark := range pageImages.Images {
			text, err := recognizeImage(ctx, mark.Image, engine)
			if err != nil {
				log.Printf("OCR: skipping image on page %d of %s: %v", i, filename, err)
				continue
			}
			figures = append(figures, Figure{Page: i, OCRText: text})
		}
	}
	return figures
}

// recognizeImage round-trips one PDF image through a scoped temporary PNG
// file and the OCR engine. The temp file is removed before returning.
func recognizeImage(ctx context.Context, img *model.Image, engine ocr.Engine) (string, error) {
	goImg, err := img.ToGoImage()
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "yma-figure-*.png")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, goImg); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	return engine.Recognize(ctx, tmp.Name())
}
