package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"playd/internal/common/fsutil"
	"playd/internal/config"
	"playd/internal/engine"
	"playd/internal/httpapi"
	"playd/internal/runtime"
	"playd/internal/vectorstore"
)

func main() {
	// Best-effort .env bootstrap so local overrides work without exporting.
	_ = godotenv.Load()

	// Flags with environment variable defaults
	defaultAddr := config.DefaultAddr
	if v := os.Getenv("PLAYD_ADDR"); v != "" {
		defaultAddr = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8080")
	configPath := flag.String("config", os.Getenv("PLAYD_CONFIG"), "Path to config file (json, yaml, or toml)")
	flag.Parse()

	var cfg config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config %s: %v", *configPath, err)
		}
		cfg = loaded
	}
	if err := config.FromEnv(&cfg); err != nil {
		log.Fatalf("failed to read env config: %v", err)
	}
	config.ApplyDefaults(&cfg)
	// Explicit -addr wins over file and env.
	if *addr != defaultAddr {
		cfg.Addr = *addr
	}

	logger := newLogger(cfg.LogLevel)

	dataDir, err := fsutil.EnsureDir(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to prepare data dir: %v", err)
	}
	indexPath, err := fsutil.ExpandHome(cfg.IndexPath)
	if err != nil {
		log.Fatalf("failed to resolve index path: %v", err)
	}
	store, err := vectorstore.Open(indexPath)
	if err != nil {
		log.Fatalf("failed to open index %s: %v", indexPath, err)
	}
	defer store.Close()

	rt := runtime.New(cfg.RuntimeURL)
	eng := engine.New(engine.EngineConfig{
		Runtime:       rt,
		Index:         store,
		DataDir:       dataDir,
		ChatModel:     cfg.ChatModel,
		EmbedModel:    cfg.EmbedModel,
		RetrieveTopK:  cfg.RetrieveTopK,
		MaxQueueDepth: cfg.MaxQueueDepth,
		MaxWait:       time.Duration(cfg.MaxWaitSeconds) * time.Second,
	})

	httpapi.SetLogger(logger)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSAllowedOrigins,
		[]string{"GET", "POST", "OPTIONS"},
		[]string{"Accept", "Content-Type", "X-Log-Level"})

	// Base context canceled on shutdown so in-flight streams stop too.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(eng)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("runtime", cfg.RuntimeURL).Str("data_dir", dataDir).Msg("playd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown error")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
