package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/orderscan/internal/api"
	"github.com/dgallion1/orderscan/internal/config"
	"github.com/dgallion1/orderscan/internal/declension"
	"github.com/dgallion1/orderscan/internal/history"
	"github.com/dgallion1/orderscan/internal/parser"
	"github.com/dgallion1/orderscan/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dict := declension.Default()
	if cfg.DictionaryPath != "" {
		var err error
		dict, err = declension.LoadDictionary(cfg.DictionaryPath)
		if err != nil {
			log.Error("load dictionary", "path", cfg.DictionaryPath, "error", err)
			os.Exit(1)
		}
		log.Info("loaded name dictionary", "path", cfg.DictionaryPath)
	}

	var hist *history.Store
	if cfg.HistoryDBPath != "" {
		var err error
		hist, err = history.Open(cfg.HistoryDBPath)
		if err != nil {
			log.Error("open history", "path", cfg.HistoryDBPath, "error", err)
			os.Exit(1)
		}
		defer hist.Close()
	}

	// Initialize pipeline.
	proc := pipeline.NewProcessor(pipeline.ProcessorConfig{
		Parsers:          parser.Options{PDFFallback: cfg.PDFFallbackPdftotext},
		Dictionary:       dict,
		DirectiveKeyword: cfg.DirectiveKeyword,
		History:          hist,
		StatsWindow:      time.Hour,
	}, log)
	orch := pipeline.NewOrchestrator(cfg, proc, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
	}()

	log.Info("starting orderscan",
		"port", cfg.Port,
		"workers", cfg.WorkerCount,
		"history", cfg.HistoryDBPath != "",
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-done
}
