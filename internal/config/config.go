package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Data tree
	DataDir                  string
	LocationOrder            []string
	IncludeUnlistedLocations bool
	ContactDir               string
	LocationSentinel         string

	// Classification
	ImageExtensions    []string
	VideoExtensions    []string
	DocumentExtensions []string

	// Text
	NoBioText                string
	CatalogPreviewLines      int
	ContentPreviewParagraphs int
	DocParseTimeout          time.Duration
	ExtractStatsWindow       time.Duration

	// Responses
	MissingPersonNotFound bool
	MaxImageWidth         int
	IndexFile             string

	// HTTP
	AllowedOrigins    []string
	RateLimitRequests int
	RateLimitWindow   time.Duration

	LogLevel string

	// PDF
	PDFFallbackPdftotext bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real env vars take precedence.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		DataDir:                  envOr("DATA_DIR", "data"),
		LocationOrder:            envList("LOCATION_ORDER", nil),
		IncludeUnlistedLocations: envBool("LOCATION_INCLUDE_UNLISTED", false),
		ContactDir:               envOr("CONTACT_DIR", "contact"),
		LocationSentinel:         envOr("LOCATION_SENTINEL", "_location_"),

		ImageExtensions:    normalizeExts(envList("IMAGE_EXTENSIONS", []string{".jpg", ".jpeg", ".png", ".gif", ".webp"})),
		VideoExtensions:    normalizeExts(envList("VIDEO_EXTENSIONS", []string{".mp4", ".mov", ".webm"})),
		DocumentExtensions: normalizeExts(envList("DOCUMENT_EXTENSIONS", []string{".docx"})),

		NoBioText:                envOr("NO_BIO_TEXT", "No bio yet"),
		CatalogPreviewLines:      envInt("CATALOG_PREVIEW_LINES", 3),
		ContentPreviewParagraphs: envInt("CONTENT_PREVIEW_PARAGRAPHS", 5),
		DocParseTimeout:          envDuration("DOC_PARSE_TIMEOUT", 10*time.Second),
		ExtractStatsWindow:       envDuration("EXTRACT_STATS_WINDOW", time.Hour),

		MissingPersonNotFound: envBool("MISSING_PERSON_NOT_FOUND", false),
		MaxImageWidth:         envInt("MAX_IMAGE_WIDTH", 2048),
		IndexFile:             os.Getenv("INDEX_FILE"),

		AllowedOrigins:    envList("ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 0),
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", time.Minute),

		LogLevel: envOr("LOG_LEVEL", "info"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", false),
	}

	if cfg.CatalogPreviewLines <= 0 {
		cfg.CatalogPreviewLines = 3
	}
	if cfg.ContentPreviewParagraphs <= 0 {
		cfg.ContentPreviewParagraphs = 5
	}
	if cfg.DocParseTimeout <= 0 {
		cfg.DocParseTimeout = 10 * time.Second
	}
	if cfg.ExtractStatsWindow <= 0 {
		cfg.ExtractStatsWindow = time.Hour
	}
	if cfg.MaxImageWidth <= 0 {
		cfg.MaxImageWidth = 2048
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = time.Minute
	}

	return cfg
}

// Validate checks invariants that cannot be repaired with a default.
// supported reports whether a document extension has a parser.
func (c Config) Validate(supported func(ext string) bool) error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if c.ContactDir == "" {
		return fmt.Errorf("CONTACT_DIR must not be empty")
	}
	// CONTACT_DIR becomes a literal segment of a route pattern.
	if !plainSegment(c.ContactDir) {
		return fmt.Errorf("CONTACT_DIR %q must be a single plain path segment", c.ContactDir)
	}
	if c.LocationSentinel == "" {
		return fmt.Errorf("LOCATION_SENTINEL must not be empty")
	}
	if strings.EqualFold(c.LocationSentinel, c.ContactDir) {
		return fmt.Errorf("LOCATION_SENTINEL %q collides with CONTACT_DIR", c.LocationSentinel)
	}

	seen := make(map[string]string)
	sets := []struct {
		name string
		exts []string
	}{
		{"IMAGE_EXTENSIONS", c.ImageExtensions},
		{"VIDEO_EXTENSIONS", c.VideoExtensions},
		{"DOCUMENT_EXTENSIONS", c.DocumentExtensions},
	}
	for _, set := range sets {
		for _, ext := range set.exts {
			if prev, ok := seen[ext]; ok && prev != set.name {
				return fmt.Errorf("extension %s listed in both %s and %s", ext, prev, set.name)
			}
			seen[ext] = set.name
		}
	}

	if supported != nil {
		for _, ext := range c.DocumentExtensions {
			if !supported(ext) {
				return fmt.Errorf("DOCUMENT_EXTENSIONS: no parser for %s", ext)
			}
		}
	}
	return nil
}

// plainSegment reports whether s is one path element with no route syntax.
func plainSegment(s string) bool {
	if s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\{}*?#%\x00") && strings.TrimSpace(s) == s
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma-separated variable, dropping blank items.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
