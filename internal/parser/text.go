package parser

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// TextParser handles plain text files. Blank lines separate paragraphs.
type TextParser struct{}

func (p *TextParser) Parse(_ context.Context, r io.ReaderAt, size int64, filename string) (*Document, error) {
	scanner := bufio.NewScanner(io.NewSectionReader(r, 0, size))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	out := &Document{Title: title(filename)}
	var current strings.Builder

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				out.Paragraphs = appendParagraph(out.Paragraphs, current.String())
				current.Reset()
			}
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		out.Paragraphs = appendParagraph(out.Paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
