package textextract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/roster/internal/metrics"
	"github.com/dgallion1/roster/internal/parser"
)

// ErrTimeout is returned when a document takes longer than the parse budget.
var ErrTimeout = errors.New("document parse timed out")

// TextBlock is the bio text of a person.
type TextBlock struct {
	Preview string `json:"preview"`
	Full    string `json:"full"`
	HasDoc  bool   `json:"has_doc"`
}

type Options struct {
	// Placeholder is returned in place of text whenever extraction fails or
	// yields nothing.
	Placeholder string
	// PreviewLines bounds the catalog preview.
	PreviewLines int
	// PreviewParagraphs bounds the preview inside a TextBlock.
	PreviewParagraphs int
	// Timeout bounds a single document parse.
	Timeout time.Duration
	Parser  parser.Options
}

// Extractor reads paragraph text out of document files. Its exported
// methods never return errors: every failure degrades to Placeholder.
type Extractor struct {
	opts    Options
	stats   *Stats
	log     *slog.Logger
	forFile func(string, parser.Options) (parser.Parser, error)
}

func New(opts Options, stats *Stats, log *slog.Logger) *Extractor {
	if opts.PreviewLines <= 0 {
		opts.PreviewLines = 3
	}
	if opts.PreviewParagraphs <= 0 {
		opts.PreviewParagraphs = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if stats == nil {
		stats = NewStats(time.Hour)
	}
	return &Extractor{
		opts:    opts,
		stats:   stats,
		log:     log,
		forFile: parser.ForFile,
	}
}

// Stats exposes the parse latency window.
func (e *Extractor) Stats() *Stats {
	return e.stats
}

// Placeholder returns the text shown when no bio is available.
func (e *Extractor) Placeholder() string {
	return e.opts.Placeholder
}

// PlaceholderBlock is the TextBlock used when a person has no usable document.
func (e *Extractor) PlaceholderBlock() TextBlock {
	return TextBlock{Preview: e.opts.Placeholder, Full: e.opts.Placeholder}
}

// Preview returns the first PreviewLines paragraphs joined by newlines.
func (e *Extractor) Preview(ctx context.Context, path string) string {
	paras, err := e.Paragraphs(ctx, path)
	if err != nil || len(paras) == 0 {
		return e.opts.Placeholder
	}
	return joinFirst(paras, e.opts.PreviewLines)
}

// Full returns the whole text plus a paragraph-bounded preview.
func (e *Extractor) Full(ctx context.Context, path string) TextBlock {
	paras, err := e.Paragraphs(ctx, path)
	if err != nil || len(paras) == 0 {
		return e.PlaceholderBlock()
	}
	return TextBlock{
		Preview: joinFirst(paras, e.opts.PreviewParagraphs),
		Full:    strings.Join(paras, "\n"),
		HasDoc:  true,
	}
}

// Plain returns the whole text, or the placeholder.
func (e *Extractor) Plain(ctx context.Context, path string) string {
	paras, err := e.Paragraphs(ctx, path)
	if err != nil || len(paras) == 0 {
		return e.opts.Placeholder
	}
	return strings.Join(paras, "\n")
}

// Paragraphs parses path and returns its non-empty paragraphs. Unlike the
// other methods it reports failures, after logging and counting them.
func (e *Extractor) Paragraphs(ctx context.Context, path string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	p, err := e.forFile(path, e.opts.Parser)
	if err != nil {
		e.observe(ext, "error", 0, path, err)
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		e.observe(ext, "missing", 0, path, err)
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		e.observe(ext, "error", 0, path, err)
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	type result struct {
		doc *parser.Document
		err error
	}
	ch := make(chan result, 1)
	start := time.Now()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: fmt.Errorf("parser panic: %v", r)}
			}
		}()
		doc, err := p.Parse(ctx, f, info.Size(), filepath.Base(path))
		ch <- result{doc: doc, err: err}
	}()

	select {
	case res := <-ch:
		elapsed := time.Since(start)
		if res.err != nil {
			e.stats.Record(ext, elapsed, true)
			e.observe(ext, "error", elapsed, path, res.err)
			return nil, res.err
		}
		e.stats.Record(ext, elapsed, false)
		paras := cleanParagraphs(res.doc.Paragraphs)
		if len(paras) == 0 {
			e.observe(ext, "empty", elapsed, path, nil)
		} else {
			e.observe(ext, "ok", elapsed, path, nil)
		}
		return paras, nil

	case <-ctx.Done():
		elapsed := time.Since(start)
		err := ctx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", ErrTimeout, e.opts.Timeout)
		}
		e.stats.Record(ext, elapsed, true)
		e.observe(ext, "timeout", elapsed, path, err)
		return nil, err
	}
}

func (e *Extractor) observe(ext, result string, elapsed time.Duration, path string, err error) {
	metrics.RecordExtraction(ext, result, elapsed)
	if err == nil || e.log == nil {
		return
	}
	if errors.Is(err, fs.ErrNotExist) {
		e.log.Debug("document missing", "path", path)
		return
	}
	e.log.Warn("document extraction failed", "path", path, "result", result, "error", err)
}

func cleanParagraphs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinFirst(paras []string, n int) string {
	return strings.Join(paras[:min(n, len(paras))], "\n")
}
