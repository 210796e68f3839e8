// Package ocr provides optical character recognition for images extracted
// from PDF pages.
package ocr

import "context"

// Engine recognizes text in a single image file on disk. Implementations are
// injected so callers can fake recognition in tests.
type Engine interface {
	// Recognize runs OCR on the image at path and returns the recognized text.
	Recognize(ctx context.Context, path string) (string, error)
	// Name returns the name/identifier of the OCR engine.
	Name() string
}
