package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"recipeclip/internal/cli"
	"recipeclip/internal/config"
	"recipeclip/internal/extract"
	"recipeclip/internal/scrape"
	"recipeclip/internal/server"
	"recipeclip/internal/store"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "init" {
		if err := cli.RunConfigWizard(); err != nil {
			fatal(err)
		}
		return
	}

	configPath := flag.String("config", "config.json", "path to config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	dataFile := flag.String("data", "", "recipe data file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fatal(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	recipes, err := store.Open(cfg.DataFile)
	if err != nil {
		return err
	}

	extractor := extract.NewClient(extract.Config{
		APIKey:    cfg.OpenAIKey,
		BaseURL:   cfg.OpenAIBaseURL,
		Model:     cfg.OpenAIModel,
		MaxTokens: cfg.MaxTokens,
	}, logger)

	fetcher := scrape.WebFetcher{
		Timeout:      cfg.Timeout(),
		UserAgent:    cfg.UserAgent,
		Headless:     cfg.Headless == nil || *cfg.Headless,
		DynamicHosts: cfg.DynamicHosts,
	}

	pipeline := scrape.NewService(fetcher, extractor, recipes, logger)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.New(pipeline, recipes, logger).Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("data_file", cfg.DataFile))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
