// Package testfixture builds location/person data trees in temp directories.
package testfixture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/fumiama/go-docx"
)

// Tree is a data root rooted at a test temp dir.
type Tree struct {
	t    *testing.T
	Root string
}

func NewTree(t *testing.T) *Tree {
	t.Helper()
	return &Tree{t: t, Root: t.TempDir()}
}

// Dir creates a directory (and parents) under the root.
func (tr *Tree) Dir(parts ...string) string {
	tr.t.Helper()
	p := filepath.Join(append([]string{tr.Root}, parts...)...)
	if err := os.MkdirAll(p, 0o755); err != nil {
		tr.t.Fatalf("mkdir %s: %v", p, err)
	}
	return p
}

// File writes data to a file under the root, creating parent directories.
func (tr *Tree) File(data []byte, parts ...string) string {
	tr.t.Helper()
	tr.Dir(parts[:len(parts)-1]...)
	p := filepath.Join(append([]string{tr.Root}, parts...)...)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		tr.t.Fatalf("write %s: %v", p, err)
	}
	return p
}

// Doc writes a .docx with one paragraph per argument.
func (tr *Tree) Doc(paragraphs []string, parts ...string) string {
	tr.t.Helper()
	return tr.File(DOCX(tr.t, paragraphs...), parts...)
}

// PNG writes a solid w×h image.
func (tr *Tree) PNG(w, h int, parts ...string) string {
	tr.t.Helper()
	return tr.File(PNG(tr.t, w, h), parts...)
}

// Unreadable removes all permissions from an existing directory for the rest
// of the test. Tests calling it are skipped where permissions are not
// enforced (root, Windows).
func (tr *Tree) Unreadable(parts ...string) string {
	tr.t.Helper()
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		tr.t.Skip("directory permissions are not enforced for this user")
	}
	p := filepath.Join(append([]string{tr.Root}, parts...)...)
	if err := os.Chmod(p, 0); err != nil {
		tr.t.Fatalf("chmod %s: %v", p, err)
	}
	tr.t.Cleanup(func() { os.Chmod(p, 0o755) })
	return p
}

// DOCX renders paragraphs into a Word document.
func DOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	w := docx.New().WithDefaultTheme()
	for _, p := range paragraphs {
		w.AddParagraph().AddText(p)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	return buf.Bytes()
}

// PNG encodes a solid w×h image.
func PNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
