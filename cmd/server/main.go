package main

import (
	"log"

	"github.com/alkime/studio/internal/config"
	"github.com/alkime/studio/internal/draft"
	"github.com/alkime/studio/internal/ideas"
	"github.com/alkime/studio/internal/logger"
	"github.com/alkime/studio/internal/search"
	"github.com/alkime/studio/internal/server"
	"github.com/alkime/studio/internal/store"
	"github.com/alkime/studio/internal/studio"
	"github.com/alkime/studio/internal/workdir"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logger := logger.SetupLogger(cfg)

	dataDir, err := workdir.Resolve(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to resolve data directory: %v", err)
	}

	st, err := store.Open(workdir.StorePath(dataDir), logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	// Log startup information
	logger.Info("Starting Studio server",
		"env", cfg.Env,
		"port", cfg.Port,
		"store", st.Path(),
		"search_endpoint", cfg.SearchEndpoint,
	)

	// Ideas and drafts consult a remote search backend when one is configured.
	// This server always answers /api/web-search itself via DuckDuckGo.
	client := search.NewClient(cfg.SearchEndpoint, cfg.SearchTimeout, logger)
	svc := studio.New(st, client, ideas.NewEngine(nil), draft.NewComposer(), logger)
	backend := search.NewBackend(search.NewDuckDuckGo(cfg.SearchTimeout), logger)

	srv := server.New(cfg, logger, svc, backend)
	if err := server.Run(srv); err != nil {
		logger.Error("Failed to start server", "error", err)
		log.Fatalf("Fatal: %v", err)
	}
}
