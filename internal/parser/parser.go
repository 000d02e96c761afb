package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned by ForFile for extensions without a parser.
var ErrUnsupported = errors.New("unsupported file extension")

// Document is the paragraph-level text of a parsed file.
type Document struct {
	Title      string   // File name without extension
	Paragraphs []string // Trimmed, non-empty, in reading order
}

// Parser converts raw document bytes into paragraphs.
type Parser interface {
	// Parse must return promptly once ctx is done if it does blocking work.
	Parse(ctx context.Context, r io.ReaderAt, size int64, filename string) (*Document, error)
}

// SupportedExtensions lists file extensions this service can read text from.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Options tunes parsers that have external fallbacks.
type Options struct {
	PDFFallbackPdftotext bool
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension (or file name) is supported.
func IsSupportedExtension(name string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(name))]
}

func title(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// appendParagraph trims p and appends it when non-empty.
func appendParagraph(paras []string, p string) []string {
	if p = strings.TrimSpace(p); p != "" {
		paras = append(paras, p)
	}
	return paras
}

func readAll(r io.ReaderAt, size int64) ([]byte, error) {
	return io.ReadAll(io.NewSectionReader(r, 0, size))
}
