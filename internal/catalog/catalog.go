package catalog

import (
	"context"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"github.com/dgallion1/roster/internal/media"
	"github.com/dgallion1/roster/internal/metrics"
	"github.com/dgallion1/roster/internal/store"
	"github.com/dgallion1/roster/internal/textextract"
)

// PersonSummary is one card in a location's people list.
type PersonSummary struct {
	Name      string  `json:"name"`
	Thumbnail *string `json:"thumbnail"`
	Preview   string  `json:"preview"`
}

type Options struct {
	// Order, when set, is the preferred location order. Locations not in it
	// are dropped unless IncludeUnlisted is set.
	Order           []string
	IncludeUnlisted bool
	// ContactDir names the per-location/per-person contact folder, which is
	// never listed as a person.
	ContactDir string
}

// Reader enumerates locations and people. It holds no state between calls.
type Reader struct {
	store     *store.Store
	classify  *media.Classifier
	extractor *textextract.Extractor
	opts      Options
	log       *slog.Logger
}

func NewReader(st *store.Store, c *media.Classifier, ex *textextract.Extractor, opts Options, log *slog.Logger) *Reader {
	if opts.ContactDir == "" {
		opts.ContactDir = "contact"
	}
	return &Reader{store: st, classify: c, extractor: ex, opts: opts, log: log}
}

// Locations lists location directories. A missing root yields an empty list.
func (r *Reader) Locations(ctx context.Context) []string {
	entries, err := r.store.ReadDir()
	if err != nil {
		r.scanError("locations", err, "root", r.store.Root())
		return []string{}
	}

	found := make([]string, 0, len(entries))
	for _, e := range entries {
		if !store.IsHidden(e.Name()) && r.isDir(e, e.Name()) {
			found = append(found, e.Name())
		}
	}
	if len(r.opts.Order) == 0 {
		return found
	}

	out := make([]string, 0, len(found))
	for _, name := range r.opts.Order {
		if slices.Contains(found, name) && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	if r.opts.IncludeUnlisted {
		for _, name := range found {
			if !slices.Contains(r.opts.Order, name) {
				out = append(out, name)
			}
		}
	}
	return out
}

// People lists the people of a location in name order. Contact and hidden
// directories are excluded, as are empty and unreadable ones.
func (r *Reader) People(ctx context.Context, location string) []PersonSummary {
	entries, err := r.store.ReadDir(location)
	if err != nil {
		r.scanError("people", err, "location", location)
		return []PersonSummary{}
	}

	people := make([]PersonSummary, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if store.IsHidden(name) || strings.EqualFold(name, r.opts.ContactDir) || !r.isDir(e, location, name) {
			continue
		}
		summary, ok := r.summarize(ctx, location, name)
		if ok {
			people = append(people, summary)
		}
	}
	return people
}

func (r *Reader) summarize(ctx context.Context, location, person string) (PersonSummary, bool) {
	files, err := r.store.ReadDir(location, person)
	if err != nil {
		r.scanError("people", err, "location", location, "person", person)
		return PersonSummary{}, false
	}
	if len(files) == 0 {
		return PersonSummary{}, false
	}

	summary := PersonSummary{Name: person, Preview: r.extractor.Placeholder()}
	var doc string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := f.Name()
		switch r.classify.Classify(name) {
		case media.Image:
			if summary.Thumbnail == nil {
				u := media.FileURL(location, person, name)
				summary.Thumbnail = &u
			}
		case media.Document:
			if doc == "" {
				doc = name
			}
		}
		if summary.Thumbnail != nil && doc != "" {
			break
		}
	}

	if doc != "" {
		if p, err := r.store.Path(location, person, doc); err == nil {
			summary.Preview = r.extractor.Preview(ctx, p)
		}
	}
	return summary, true
}

// isDir reports whether a directory entry is a directory, following symlinks
// so that linked folders are listed like real ones.
func (r *Reader) isDir(e fs.DirEntry, segs ...string) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	ok, err := r.store.IsDir(segs...)
	if err != nil {
		r.scanError("stat", err, "path", segs)
	}
	return ok
}

// scanError logs unexpected read failures. Absent containers are normal and
// only logged at debug.
func (r *Reader) scanError(op string, err error, attrs ...any) {
	if store.IsAbsent(err) {
		r.log.Debug("catalog: container absent", append([]any{"op", op}, attrs...)...)
		return
	}
	metrics.RecordScanError("catalog")
	r.log.Error("catalog: read directory", append([]any{"op", op, "error", err}, attrs...)...)
}
