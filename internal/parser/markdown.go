package parser

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Every top-level
// block becomes a paragraph; list items are split into one paragraph each.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(_ context.Context, r io.ReaderAt, size int64, filename string) (*Document, error) {
	src, err := readAll(r, size)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	out := &Document{Title: title(filename)}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				out.Paragraphs = appendParagraph(out.Paragraphs, extractText(item, src))
			}
		case *ast.ThematicBreak:
			continue
		default:
			out.Paragraphs = appendParagraph(out.Paragraphs, extractText(n, src))
		}
	}
	return out, nil
}

// extractText gets the text content of a goldmark AST node. Leaf blocks
// such as code blocks carry their text in Lines; everything else is read
// from inline children so paragraph text is not counted twice.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		if c.Type() == ast.TypeBlock && buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(extractText(c, src))
	}
	return strings.TrimSpace(buf.String())
}
