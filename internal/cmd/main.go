package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"scraper/internal/config"
	"scraper/internal/extract"
	"scraper/internal/fetcher"
	"scraper/internal/model"
	"scraper/internal/notifier"
	"scraper/internal/source"
	"scraper/internal/storage"
	"scraper/internal/translate"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/samber/lo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("ERROR: config load fail: %v", err)
		os.Exit(1)
	}

	descriptors, err := config.ParseSources(cfg.Sources)
	if err != nil {
		log.Printf("ERROR: bad source config: %v", err)
		os.Exit(1)
	}

	db, err := sqlx.Connect("postgres", cfg.DatabaseDSN)
	if err != nil {
		log.Printf("ERROR: failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		articleStorage = storage.NewArticleStorage(db)
		extractor      = extract.New(cfg.FetchTimeout, cfg.ImageTimeout, cfg.MinContentLength, cfg.DefaultImages)
		translator     = translate.New("", cfg.ChunkThreshold, cfg.ChunkPause, cfg.TranslateTimeout)
		sources        = lo.Map(descriptors, func(m model.Source, _ int) fetcher.Source { return source.New(m, cfg.FetchTimeout) })
	)

	run := fetcher.New(
		articleStorage,
		sources,
		extractor,
		translator,
		cfg.FilterKeywords,
		cfg.MaxSavedPerRun,
		cfg.SavePause,
	)

	if cfg.TelegramBotToken != "" && cfg.TelegramChannelID != 0 {
		botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			log.Printf("ERROR: failed to create botAPI, running without notifications: %v", err)
		} else {
			run.WithNotifier(notifier.New(botAPI, cfg.TelegramChannelID))
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run.Run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("ERROR: run failed: %v", err)
			os.Exit(1)
		}

		log.Println("run interrupted")
	}
}
