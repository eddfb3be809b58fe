package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"

	"harvestdesk/internal/config"
	"harvestdesk/internal/http/handlers"
	applog "harvestdesk/internal/log"
	"harvestdesk/internal/store"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	s, err := store.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	if cfg.SeedDemo {
		if err := store.SeedIfEmpty(context.Background(), s, cfg.RootPath); err != nil {
			log.Fatal(err)
		}
	}

	if abs, err := filepath.Abs(cfg.ImagesDir); err == nil {
		cfg.ImagesDir = abs
	}
	if err := os.MkdirAll(cfg.ImagesDir, 0o755); err != nil {
		log.Printf("[warn] could not create images dir %s: %v", cfg.ImagesDir, err)
	}
	app := handlers.NewApp(cfg, handlers.NewDeps(s, cfg))
	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port, "root": cfg.RootPath, "images": cfg.ImagesDir})
	log.Fatal(app.Listen(":" + cfg.Port))
}
