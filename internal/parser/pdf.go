package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if enabled and available.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(ctx context.Context, r io.ReaderAt, size int64, filename string) (*Document, error) {
	text, err := extractPDFText(r, size)
	if err != nil && p.FallbackPdftotext {
		text, err = extractPdftotext(ctx, r, size)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	out := &Document{Title: title(filename)}
	for _, line := range strings.FieldsFunc(text, func(c rune) bool { return c == '\n' || c == '\f' }) {
		out.Paragraphs = appendParagraph(out.Paragraphs, line)
	}
	return out, nil
}

func extractPDFText(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdflib.NewReader(r, size)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f") // Form feed as page separator.
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

// extractPdftotext copies the document to a temp file since pdftotext
// only reads from a path.
func extractPdftotext(ctx context.Context, r io.ReaderAt, size int64) (string, error) {
	tmp, err := os.CreateTemp("", "roster-pdf-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, io.NewSectionReader(r, 0, size)); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", tmpPath, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
