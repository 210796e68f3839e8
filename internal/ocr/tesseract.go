package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const defaultTesseractBinary = "tesseract"

// Tesseract runs the tesseract CLI on image files. It requires the binary to
// be installed on the host.
type Tesseract struct {
	binary string
}

// NewTesseract creates a tesseract-backed OCR engine. binary defaults to
// "tesseract" if empty.
func NewTesseract(binary string) *Tesseract {
	if binary == "" {
		binary = defaultTesseractBinary
	}
	return &Tesseract{binary: binary}
}

func (t *Tesseract) Name() string {
	return "tesseract"
}

// Detect reports whether the tesseract binary is available on PATH.
func (t *Tesseract) Detect() bool {
	return exec.CommandContext(context.Background(), t.binary, "--version").Run() == nil
}

// Recognize invokes tesseract with stdout output ("-") and returns the
// recognized text with surrounding whitespace trimmed.
func (t *Tesseract) Recognize(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, t.binary, path, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed on %s: %w (%s)", path, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
