package media

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Category is the kind of file a name denotes, decided by extension only.
type Category string

const (
	Image        Category = "image"
	Video        Category = "video"
	Document     Category = "document"
	Unclassified Category = "unclassified"
)

// Default extension sets.
var (
	DefaultImageExtensions    = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	DefaultVideoExtensions    = []string{".mp4", ".mov", ".webm"}
	DefaultDocumentExtensions = []string{".docx"}
)

// Classifier maps lower-cased extensions to categories.
type Classifier struct {
	byExt map[string]Category
}

// NewClassifier builds a classifier from three extension sets. Extensions are
// matched case-insensitively; a leading dot is optional. Overlapping sets
// resolve as image over video over document.
func NewClassifier(images, videos, documents []string) *Classifier {
	c := &Classifier{byExt: make(map[string]Category)}
	c.add(documents, Document)
	c.add(videos, Video)
	c.add(images, Image)
	return c
}

// DefaultClassifier uses the built-in extension sets.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultImageExtensions, DefaultVideoExtensions, DefaultDocumentExtensions)
}

func (c *Classifier) add(exts []string, cat Category) {
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.byExt[ext] = cat
	}
}

// Classify returns the category for a file name.
func (c *Classifier) Classify(name string) Category {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return Unclassified
	}
	if cat, ok := c.byExt[ext]; ok {
		return cat
	}
	return Unclassified
}

func (c *Classifier) IsImage(name string) bool    { return c.Classify(name) == Image }
func (c *Classifier) IsVideo(name string) bool    { return c.Classify(name) == Video }
func (c *Classifier) IsDocument(name string) bool { return c.Classify(name) == Document }

// Stem returns the file name without its extension.
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// FilesPrefix is the URL prefix of the raw file routes.
const FilesPrefix = "/files"

// FileURL builds a raw-file URL from path segments, escaping each one.
func FileURL(segs ...string) string {
	var b strings.Builder
	b.WriteString(FilesPrefix)
	for _, s := range segs {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pdf":  "application/pdf",
	".md":   "text/markdown; charset=utf-8",
	".txt":  "text/plain; charset=utf-8",
}

// ContentType returns the MIME type for the media and document extensions
// the catalog knows about, or "" to let the caller sniff.
func ContentType(name string) string {
	return contentTypes[strings.ToLower(filepath.Ext(name))]
}
