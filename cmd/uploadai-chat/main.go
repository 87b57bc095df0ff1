package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"uploadai/internal/config"
	"uploadai/internal/index"
	"uploadai/internal/retrieval"
	"uploadai/internal/service"
	"uploadai/internal/synthesis"
	"uploadai/internal/tui"
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

	// The TUI owns the terminal, so keep logs out of the way.
	logger := zap.NewNop().Sugar()

	apiKey := os.Getenv(cfg.Synthesis.APIKeyEnv)
	if apiKey == "" {
		log.Fatalf("missing %s in environment", cfg.Synthesis.APIKeyEnv)
	}
	synth, err := synthesis.NewClient(synthesis.Config{
		APIKey:  apiKey,
		Model:   cfg.Synthesis.Model,
		BaseURL: cfg.Synthesis.BaseURL,
		Timeout: time.Duration(cfg.Synthesis.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("synthesis init failed: %v", err)
	}

	ix, err := index.Load(cfg.Index.Dir)
	if err != nil {
		log.Fatalf("index not loadable from %s (run uploadai-index first): %v", cfg.Index.Dir, err)
	}

	searcher := websearch.NewClient(websearch.Config{
		APIKey:  os.Getenv(cfg.Search.APIKeyEnv),
		CX:      os.Getenv(cfg.Search.CXEnv),
		Site:    cfg.Search.Site,
		Timeout: time.Duration(cfg.Search.TimeoutSecs) * time.Second,
	}, logger)
	fetcher := webpage.NewFetcher(0, logger)

	svc := service.New(ix, retrieval.DefaultBoosts(), retrieval.DefaultForceRules(), searcher, fetcher, synth, logger)

	info := fmt.Sprintf("Index %s loaded with %d records. Type to ask.", ix.BuildID[:8], ix.Size())
	m := tui.New(svc, info)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
