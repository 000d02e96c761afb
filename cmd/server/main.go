package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/roster/internal/api"
	"github.com/dgallion1/roster/internal/catalog"
	"github.com/dgallion1/roster/internal/config"
	"github.com/dgallion1/roster/internal/content"
	"github.com/dgallion1/roster/internal/media"
	"github.com/dgallion1/roster/internal/parser"
	"github.com/dgallion1/roster/internal/store"
	"github.com/dgallion1/roster/internal/textextract"
)

func main() {
	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	if err := cfg.Validate(parser.IsSupportedExtension); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	st := store.New(cfg.DataDir)
	if ok, err := st.IsDir(); !ok {
		// Routes still answer with empty lists until the directory appears.
		log.Warn("data directory not available", "dir", cfg.DataDir, "error", err)
	}

	classifier := media.NewClassifier(cfg.ImageExtensions, cfg.VideoExtensions, cfg.DocumentExtensions)
	extractor := textextract.New(textextract.Options{
		Placeholder:       cfg.NoBioText,
		PreviewLines:      cfg.CatalogPreviewLines,
		PreviewParagraphs: cfg.ContentPreviewParagraphs,
		Timeout:           cfg.DocParseTimeout,
		Parser:            parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
	}, textextract.NewStats(cfg.ExtractStatsWindow), log)

	cat := catalog.NewReader(st, classifier, extractor, catalog.Options{
		Order:           cfg.LocationOrder,
		IncludeUnlisted: cfg.IncludeUnlistedLocations,
		ContactDir:      cfg.ContactDir,
	}, log)
	asm := content.NewAssembler(st, classifier, extractor, content.Options{
		ContactDir:       cfg.ContactDir,
		LocationSentinel: cfg.LocationSentinel,
	}, log)

	srv := api.NewServer(cat, asm, st, classifier, extractor, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // large videos
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting roster",
		"port", cfg.Port,
		"data_dir", cfg.DataDir,
		"document_extensions", cfg.DocumentExtensions,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
