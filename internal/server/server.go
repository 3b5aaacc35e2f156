// Package server exposes the pipeline and the store over REST. Handlers
// stay thin; clients get generic failure bodies while details go to the
// log.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"recipeclip/internal/extract"
	"recipeclip/internal/recipe"
	"recipeclip/internal/store"
)

// Scraper runs the scrape-and-extract pipeline for one URL.
type Scraper interface {
	Scrape(ctx context.Context, url string) (recipe.Recipe, error)
}

type Server struct {
	scraper Scraper
	recipes *store.Store
	logger  *zap.Logger
}

func New(scraper Scraper, recipes *store.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{scraper: scraper, recipes: recipes, logger: logger}
}

// Router builds the REST surface. CORS is wide open; the service has no
// auth and the browser frontend runs on another origin.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(s.requestLog)

	r.Post("/scrape", s.handleScrape)
	r.Get("/recipes", s.handleListRecipes)
	r.Get("/recipe/{id}", s.handleGetRecipe)
	r.Post("/recipe/{id}", s.handleUpdateRecipe)
	r.Delete("/recipe/{id}", s.handleDeleteRecipe)
	r.Get("/tags", s.handleTags)

	return r
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	rec, err := s.scraper.Scrape(r.Context(), req.URL)
	if errors.Is(err, extract.ErrNotARecipe) {
		writeError(w, http.StatusUnprocessableEntity, "no recipe found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error processing page")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recipe": rec})
}

func (s *Server) handleListRecipes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"recipes": s.recipes.List()})
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.recipes.GetByID(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error getting recipe")
		return
	}

	similar, err := s.recipes.SimilarByIngredients(id)
	if err != nil {
		s.logger.Error("similarity query failed", zap.String("id", id), zap.Error(err))
		similar = []store.Match{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"recipe": rec, "similarRecipes": similar})
}

func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch recipe.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid update payload")
		return
	}

	rec, err := s.recipes.Update(id, patch)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	if err != nil {
		s.logger.Error("update failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "error updating recipe")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recipe": rec})
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.recipes.DeleteByID(id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.Error("delete failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "error deleting recipe")
		return
	}
	// Deleting an absent recipe is fine; the end state is the same.
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTags(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tags": s.recipes.AllTags()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
