package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"uploadai/internal/config"
	"uploadai/internal/corpus"
	"uploadai/internal/domain"
	"uploadai/internal/index"
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

	websiteCSV := cfg.Corpus.WebsiteCSV
	if env := os.Getenv("UD_CSV_PATH"); env != "" {
		websiteCSV = env
	}

	web, err := corpus.LoadFile(websiteCSV, domain.SourceWebsite)
	if err != nil {
		log.Fatalf("failed to load website corpus: %v", err)
	}
	gdocs, err := corpus.LoadFile(cfg.Corpus.GDocsCSV, domain.SourceGDoc)
	if err != nil {
		log.Fatalf("failed to load gdocs corpus: %v", err)
	}
	records := corpus.Merge(web, gdocs)

	ix, err := index.Build(records)
	if err != nil {
		log.Fatalf("index build failed: %v", err)
	}
	if err := ix.Save(cfg.Index.Dir); err != nil {
		log.Fatalf("index save failed: %v", err)
	}

	fmt.Printf("Index built in %s/ (TF-IDF + KNN).\n", cfg.Index.Dir)
	fmt.Printf("Total rows indexed: %d (website: %d, gdocs: %d)\n", len(records), len(web), len(gdocs))
}
