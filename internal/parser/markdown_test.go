package parser

import (
	"reflect"
	"testing"
)

func TestMarkdownParser_BlocksBecomeParagraphs(t *testing.T) {
	input := `# Title

Intro *text*.

## Section A

- first item
- second item

---

Closing line.
`
	doc := parseString(t, &MarkdownParser{}, input, "bio.md")

	if doc.Title != "bio" {
		t.Errorf("expected title %q, got %q", "bio", doc.Title)
	}
	want := []string{"Title", "Intro text.", "Section A", "first item", "second item", "Closing line."}
	if !reflect.DeepEqual(doc.Paragraphs, want) {
		t.Errorf("expected %q, got %q", want, doc.Paragraphs)
	}
}

func TestMarkdownParser_CodeBlock(t *testing.T) {
	input := "Intro.\n\n```\nGET /api/locations\n```\n"
	doc := parseString(t, &MarkdownParser{}, input, "api.md")

	want := []string{"Intro.", "GET /api/locations"}
	if !reflect.DeepEqual(doc.Paragraphs, want) {
		t.Errorf("expected %q, got %q", want, doc.Paragraphs)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	doc := parseString(t, &MarkdownParser{}, "", "empty.md")
	if len(doc.Paragraphs) != 0 {
		t.Errorf("expected 0 paragraphs for empty input, got %d", len(doc.Paragraphs))
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
	}
	for _, tt := range tests {
		doc := parseString(t, &MarkdownParser{}, "text", tt.filename)
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}
