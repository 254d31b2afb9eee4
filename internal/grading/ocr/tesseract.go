// Package ocr extracts text from scanned answer sheets and rubrics. It
// shells out to tesseract (and pdftoppm for PDF pages); the grading engine
// never imports this package and only ever sees the extracted text.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Extractor turns an uploaded file into cleaned plain text.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader) (string, error)
	ExtractPath(ctx context.Context, path string) (string, error)
}

// Tesseract runs the tesseract CLI. PDFs are rasterized page by page with
// pdftoppm first.
type Tesseract struct {
	Lang    string
	DPI     int
	Timeout time.Duration
}

func NewTesseract() *Tesseract {
	return &Tesseract{Lang: "eng", DPI: 300, Timeout: 60 * time.Second}
}

// Extract copies image bytes to a temp file and runs OCR on it. Use
// ExtractPath for PDFs; the stream form has no filename to detect them by.
func (t *Tesseract) Extract(ctx context.Context, r io.Reader) (string, error) {
	f, err := os.CreateTemp("", "sheet-*.img")
	if err != nil {
		return "", err
	}
	defer func() { f.Close(); os.Remove(f.Name()) }()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return t.runTesseract(ctx, f.Name())
}

func (t *Tesseract) ExtractPath(ctx context.Context, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return t.extractPDF(ctx, path)
	}
	return t.runTesseract(ctx, path)
}

// extractPDF rasterizes each page and OCRs them in order, joining page
// texts with a newline.
func (t *Tesseract) extractPDF(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return "", errors.New("pdftoppm not found in PATH")
	}
	dir, err := os.MkdirTemp("", "pdf-pages-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	ctx, cancel := t.bound(ctx)
	defer cancel()

	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", "-r", fmt.Sprint(t.dpi()), "-png", path, prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftoppm: %s", strings.TrimSpace(stderr.String()))
	}

	pages, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return "", err
	}
	if len(pages) == 0 {
		return "", errors.New("pdf produced no pages")
	}
	sort.Strings(pages)

	var texts []string
	for _, p := range pages {
		text, err := t.runTesseract(ctx, p)
		if err != nil {
			return "", err
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n"), nil
}

func (t *Tesseract) runTesseract(ctx context.Context, inPath string) (string, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", errors.New("tesseract not found in PATH")
	}
	ctx, cancel := t.bound(ctx)
	defer cancel()

	args := []string{inPath, "stdout"}
	if t.Lang != "" {
		args = append(args, "-l", t.Lang)
	}
	cmd := exec.CommandContext(ctx, "tesseract", args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.New(strings.TrimSpace(stderr.String()))
	}
	return CleanText(out.String()), nil
}

func (t *Tesseract) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.Timeout > 0 {
		return context.WithTimeout(ctx, t.Timeout)
	}
	return ctx, func() {}
}

func (t *Tesseract) dpi() int {
	if t.DPI > 0 {
		return t.DPI
	}
	return 300
}

// CleanText drops blank lines and trims per-line whitespace from raw OCR
// output.
func CleanText(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
