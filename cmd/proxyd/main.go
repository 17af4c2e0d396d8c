package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	_ "modernc.org/sqlite"

	"github.com/forgedash/trading-ai-proxy/internal/api"
	"github.com/forgedash/trading-ai-proxy/internal/config"
	"github.com/forgedash/trading-ai-proxy/internal/openai"
	"github.com/forgedash/trading-ai-proxy/internal/prompt"
	"github.com/forgedash/trading-ai-proxy/internal/proxy"
	"github.com/forgedash/trading-ai-proxy/internal/session"
	"github.com/forgedash/trading-ai-proxy/internal/snapshot"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	addr := flag.String("addr", "", "override listen address")
	dbPath := flag.String("db", "", "override sqlite database path")
	flag.Parse()

	cfg, err := config.LoadFile(*cfgPath)
	if err != nil {
		log.Printf("warning: config file: %v, using defaults", err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()
	if *addr != "" {
		cfg.API.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	// The credential check is a startup precondition: without it the proxy
	// cannot serve any traffic.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("trading-ai-proxy starting",
		zap.String("addr", cfg.API.Addr),
		zap.String("model", cfg.OpenAI.Model),
		zap.String("db", cfg.DBPath),
		zap.Int("history_limit", cfg.HistoryLimit),
	)

	db, err := sql.Open("sqlite", cfg.DBPath+"?mode=ro")
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}

	// Snapshot is captured once; later data changes never reach the preamble.
	snap, err := snapshot.Build(db, cfg.SnapshotRows)
	db.Close()
	if err != nil {
		logger.Fatal("build snapshot", zap.Error(err))
	}
	preamble := prompt.BuildPreamble(snap)

	gateway := openai.NewClient(openai.Config{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Temperature: cfg.OpenAI.Temperature,
		Timeout:     cfg.OpenAI.Timeout,
	})

	svc := proxy.NewService(session.NewStore(cfg.HistoryLimit), gateway, preamble, logger)
	server := api.NewServer(cfg.API.Addr, svc, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("start api server", zap.Error(err))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutdown signal received")

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return cfg.Build()
}
