package parser

import (
	"errors"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     Parser
	}{
		{"a.docx", &DOCXParser{}},
		{"A.DOCX", &DOCXParser{}},
		{"a.pdf", &PDFParser{}},
		{"a.md", &MarkdownParser{}},
		{"a.markdown", &MarkdownParser{}},
		{"a.htm", &HTMLParser{}},
		{"a.txt", &TextParser{}},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename, Options{})
		if err != nil {
			t.Errorf("ForFile(%q): unexpected error: %v", tt.filename, err)
			continue
		}
		if got, want := typeName(p), typeName(tt.want); got != want {
			t.Errorf("ForFile(%q): expected %s, got %s", tt.filename, want, got)
		}
	}

	if _, err := ForFile("a.doc", Options{}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported for .doc, got %v", err)
	}
}

func TestForFile_PDFOptions(t *testing.T) {
	p, err := ForFile("a.pdf", Options{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.(*PDFParser).FallbackPdftotext {
		t.Error("expected pdftotext fallback to be enabled")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	for _, name := range []string{"x.docx", ".docx", "X.PDF", "a.md"} {
		if !IsSupportedExtension(name) {
			t.Errorf("expected %q to be supported", name)
		}
	}
	for _, name := range []string{"x.doc", "docx", "x.odt", ""} {
		if IsSupportedExtension(name) {
			t.Errorf("expected %q to be unsupported", name)
		}
	}
}

func typeName(p Parser) string {
	switch p.(type) {
	case *DOCXParser:
		return "DOCXParser"
	case *PDFParser:
		return "PDFParser"
	case *MarkdownParser:
		return "MarkdownParser"
	case *HTMLParser:
		return "HTMLParser"
	case *TextParser:
		return "TextParser"
	}
	return "unknown"
}
