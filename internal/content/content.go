package content

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dgallion1/roster/internal/media"
	"github.com/dgallion1/roster/internal/metrics"
	"github.com/dgallion1/roster/internal/store"
	"github.com/dgallion1/roster/internal/textextract"
)

// File is a media file reference.
type File struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Bundle is everything shown on a person's page.
type Bundle struct {
	Images []File                `json:"images"`
	Videos []File                `json:"videos"`
	Text   textextract.TextBlock `json:"text"`
}

// ContactText is one labelled contact document.
type ContactText struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ContactBundle is the contact card of a location or a person.
type ContactBundle struct {
	Images []File        `json:"images"`
	Text   []ContactText `json:"text"`
}

type Options struct {
	ContactDir string
	// LocationSentinel stands in for a person name to address the
	// location's own contact folder.
	LocationSentinel string
}

// Assembler builds content and contact bundles straight from the data tree.
type Assembler struct {
	store     *store.Store
	classify  *media.Classifier
	extractor *textextract.Extractor
	opts      Options
	log       *slog.Logger
}

func NewAssembler(st *store.Store, c *media.Classifier, ex *textextract.Extractor, opts Options, log *slog.Logger) *Assembler {
	if opts.ContactDir == "" {
		opts.ContactDir = "contact"
	}
	if opts.LocationSentinel == "" {
		opts.LocationSentinel = "_location_"
	}
	return &Assembler{store: st, classify: c, extractor: ex, opts: opts, log: log}
}

// Content returns the media and bio of a person. The bool reports whether
// the person directory exists; when it does not, or cannot be read, the
// placeholder bundle is returned. The contact folder is never a person.
func (a *Assembler) Content(ctx context.Context, location, person string) (Bundle, bool) {
	b := Bundle{
		Images: []File{},
		Videos: []File{},
		Text:   a.extractor.PlaceholderBlock(),
	}
	if strings.EqualFold(person, a.opts.ContactDir) {
		return b, false
	}

	entries, err := a.store.ReadDir(location, person)
	if err != nil {
		if store.IsAbsent(err) {
			a.log.Debug("content: person not found", "location", location, "person", person)
			return b, false
		}
		metrics.RecordScanError("content")
		a.log.Error("content: read directory", "location", location, "person", person, "error", err)
		return b, true
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch a.classify.Classify(name) {
		case media.Image:
			b.Images = append(b.Images, File{Name: name, URL: media.FileURL(location, person, name)})
		case media.Video:
			b.Videos = append(b.Videos, File{Name: name, URL: media.FileURL(location, person, name)})
		case media.Document:
			// Last document in name order wins.
			if p, err := a.store.Path(location, person, name); err == nil {
				b.Text = a.extractor.Full(ctx, p)
			}
		}
	}
	return b, true
}

// Contact returns the contact card for a person, or for the location itself
// when person is the location sentinel. Every document contributes an entry.
func (a *Assembler) Contact(ctx context.Context, location, person string) ContactBundle {
	b := ContactBundle{Images: []File{}, Text: []ContactText{}}

	dir := a.ContactPath(location, person)
	entries, err := a.store.ReadDir(dir...)
	if err != nil {
		if !store.IsAbsent(err) {
			metrics.RecordScanError("contact")
			a.log.Error("contact: read directory", "location", location, "person", person, "error", err)
		}
		return b
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		label := strings.ToUpper(media.Stem(name))
		switch a.classify.Classify(name) {
		case media.Image:
			b.Images = append(b.Images, File{Name: label, URL: media.FileURL(location, person, a.opts.ContactDir, name)})
		case media.Document:
			p, err := a.store.Path(append(dir, name)...)
			if err != nil {
				continue
			}
			if text := a.extractor.Plain(ctx, p); strings.TrimSpace(text) != "" {
				b.Text = append(b.Text, ContactText{Name: label, Content: text})
			}
		}
	}
	return b
}

// ContactPath resolves the store segments of a contact folder.
func (a *Assembler) ContactPath(location, person string) []string {
	if person == a.opts.LocationSentinel {
		return []string{location, a.opts.ContactDir}
	}
	return []string{location, person, a.opts.ContactDir}
}
