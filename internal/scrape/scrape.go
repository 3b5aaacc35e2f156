// Package scrape wires the pipeline: fetch, sanitize, convert, extract,
// persist. One call per scrape request; stages fail fast and nothing is
// stored unless every stage succeeds.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"recipeclip/internal/extract"
	"recipeclip/internal/fetch"
	"recipeclip/internal/markdown"
	"recipeclip/internal/recipe"
	"recipeclip/internal/sanitize"
	"recipeclip/internal/store"
)

// Fetcher abstracts strategy selection so tests can substitute canned
// HTML for the network.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (fetch.Result, error)
}

// WebFetcher is the production Fetcher: plain GET, or a headless
// browser for hosts that require one.
type WebFetcher struct {
	Timeout      time.Duration
	UserAgent    string
	Headless     bool
	DynamicHosts []string
}

func (f WebFetcher) Fetch(ctx context.Context, url string) (fetch.Result, error) {
	return fetch.Fetch(ctx, fetch.Options{
		URL:          url,
		Mode:         fetch.ModeAuto,
		Timeout:      f.Timeout,
		UserAgent:    f.UserAgent,
		Headless:     f.Headless,
		DynamicHosts: f.DynamicHosts,
	})
}

type Service struct {
	fetcher   Fetcher
	conv      *markdown.Converter
	extractor extract.Extractor
	recipes   *store.Store
	logger    *zap.Logger
}

func NewService(fetcher Fetcher, extractor extract.Extractor, recipes *store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher:   fetcher,
		conv:      markdown.NewConverter(),
		extractor: extractor,
		recipes:   recipes,
		logger:    logger,
	}
}

// Scrape runs the full pipeline for one URL and stores the extracted
// recipe. extract.ErrNotARecipe passes through untouched so the caller
// can answer "no recipe found" instead of failing.
func (s *Service) Scrape(ctx context.Context, url string) (recipe.Recipe, error) {
	res, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Error("scrape failed", zap.String("url", url), zap.String("stage", "fetch"), zap.Error(err))
		return recipe.Recipe{}, err
	}

	// Browser-rendered pages carry app chrome in the body; the first
	// article element is the post itself.
	rootSelector := sanitize.DefaultRootSelector
	if res.FinalMode == fetch.ModeDynamic {
		rootSelector = sanitize.ArticleRootSelector
	}

	fragment, err := sanitize.Sanitize(res.HTML, rootSelector)
	if err != nil {
		s.logger.Error("scrape failed", zap.String("url", url), zap.String("stage", "sanitize"), zap.Error(err))
		return recipe.Recipe{}, err
	}

	text, err := s.conv.ConvertString(fragment)
	if err != nil {
		s.logger.Error("scrape failed", zap.String("url", url), zap.String("stage", "convert"), zap.Error(err))
		return recipe.Recipe{}, fmt.Errorf("convert to markdown: %w", err)
	}

	draft, err := s.extractor.Extract(ctx, text)
	if err != nil {
		if errors.Is(err, extract.ErrNotARecipe) {
			s.logger.Info("no recipe on page", zap.String("url", url))
		} else {
			s.logger.Error("scrape failed", zap.String("url", url), zap.String("stage", "extract"), zap.Error(err))
		}
		return recipe.Recipe{}, err
	}

	rec, err := s.recipes.Add(draft, url)
	if err != nil {
		s.logger.Error("scrape failed", zap.String("url", url), zap.String("stage", "store"), zap.Error(err))
		return recipe.Recipe{}, err
	}

	s.logger.Info("recipe scraped",
		zap.String("url", url),
		zap.String("id", rec.ID),
		zap.String("title", rec.Title))
	return rec, nil
}
