package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"uploadai/internal/config"
	"uploadai/internal/index"
	"uploadai/internal/retrieval"
	"uploadai/internal/server"
	"uploadai/internal/service"
	"uploadai/internal/synthesis"
	"uploadai/internal/webpage"
	"uploadai/internal/websearch"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	apiKey := os.Getenv(cfg.Synthesis.APIKeyEnv)
	if apiKey == "" {
		sugar.Fatalf("missing %s in environment", cfg.Synthesis.APIKeyEnv)
	}
	synth, err := synthesis.NewClient(synthesis.Config{
		APIKey:  apiKey,
		Model:   cfg.Synthesis.Model,
		BaseURL: cfg.Synthesis.BaseURL,
		Timeout: time.Duration(cfg.Synthesis.TimeoutSecs) * time.Second,
	})
	if err != nil {
		sugar.Fatalf("synthesis init failed: %v", err)
	}

	ix, err := index.Load(cfg.Index.Dir)
	if err != nil {
		sugar.Fatalf("index not loadable from %s (run uploadai-index first): %v", cfg.Index.Dir, err)
	}
	sugar.Infow("index loaded", "build_id", ix.BuildID, "records", ix.Size())

	searcher := websearch.NewClient(websearch.Config{
		APIKey:  os.Getenv(cfg.Search.APIKeyEnv),
		CX:      os.Getenv(cfg.Search.CXEnv),
		Site:    cfg.Search.Site,
		Timeout: time.Duration(cfg.Search.TimeoutSecs) * time.Second,
	}, sugar)
	if !searcher.Configured() {
		sugar.Info("web search fallback not configured; continuing without it")
	}
	fetcher := webpage.NewFetcher(0, sugar)

	svc := service.New(ix, retrieval.DefaultBoosts(), retrieval.DefaultForceRules(), searcher, fetcher, synth, sugar)
	srv := server.New(svc, sugar)

	sugar.Infow("listening", "addr", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, srv.Handler()); err != nil {
		sugar.Fatalf("server stopped: %v", err)
	}
}
