package parser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Only body paragraphs are read; tables,
// headers and footers are ignored.
type DOCXParser struct{}

func (p *DOCXParser) Parse(_ context.Context, r io.ReaderAt, size int64, filename string) (*Document, error) {
	doc, err := docx.Parse(r, size)
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	out := &Document{Title: title(filename)}
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		out.Paragraphs = appendParagraph(out.Paragraphs, docxParagraphText(para))
	}
	return out, nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return buf.String()
}
