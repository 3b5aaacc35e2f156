// Package store is the flat-file recipe collection. One JSON file holds
// every recipe; each mutation rewrites the file wholesale under a lock.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"

	"recipeclip/internal/recipe"
)

var ErrNotFound = errors.New("recipe not found")

type Store struct {
	mu      sync.Mutex
	path    string
	recipes []recipe.Recipe
}

// Open loads the collection from path. A missing file is an empty
// collection, not an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if err := json.Unmarshal(data, &s.recipes); err != nil {
		return nil, fmt.Errorf("parse store file %s: %w", path, err)
	}
	return s, nil
}

// persist rewrites the whole file. Callers hold s.mu.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.recipes, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	return nil
}

// Add assigns a fresh id, appends and persists. The returned record is
// the stored value including its id.
func (s *Store) Add(draft recipe.Draft, sourceURL string) (recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := recipe.Recipe{
		ID:            uuid.NewString(),
		SourceURL:     sourceURL,
		Title:         draft.Title,
		Servings:      draft.Servings,
		PrepTime:      draft.PrepTime,
		PrepTimeUnit:  draft.PrepTimeUnit,
		CookTime:      draft.CookTime,
		CookTimeUnit:  draft.CookTimeUnit,
		TotalTime:     draft.TotalTime,
		TotalTimeUnit: draft.TotalTimeUnit,
		MainImage:     draft.MainImage,
		Ingredients:   append([]recipe.Ingredient(nil), draft.Ingredients...),
		Directions:    append([]recipe.Direction(nil), draft.Directions...),
		Notes:         append([]string(nil), draft.Notes...),
	}
	s.recipes = append(s.recipes, rec)
	if err := s.persist(); err != nil {
		s.recipes = s.recipes[:len(s.recipes)-1]
		return recipe.Recipe{}, err
	}
	return rec.Clone(), nil
}

// List returns all recipes in insertion order.
func (s *Store) List() []recipe.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]recipe.Recipe, 0, len(s.recipes))
	for _, rec := range s.recipes {
		out = append(out, rec.Clone())
	}
	return out
}

func (s *Store) GetByID(id string) (recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return recipe.Recipe{}, ErrNotFound
	}
	return s.recipes[idx].Clone(), nil
}

// Update applies the patch field by field. The first time ingredients,
// directions or notes are edited, the pre-edit value is serialized into
// the matching original* snapshot; later edits leave the snapshot alone.
func (s *Store) Update(id string, patch recipe.Patch) (recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return recipe.Recipe{}, ErrNotFound
	}

	before := s.recipes[idx].Clone()
	rec := &s.recipes[idx]

	if patch.Ingredients != nil {
		if rec.OriginalIngredients == nil {
			snap, err := json.Marshal(rec.Ingredients)
			if err != nil {
				return recipe.Recipe{}, err
			}
			rec.OriginalIngredients = snap
		}
		rec.Ingredients = append([]recipe.Ingredient(nil), (*patch.Ingredients)...)
	}
	if patch.Directions != nil {
		if rec.OriginalDirections == nil {
			snap, err := json.Marshal(rec.Directions)
			if err != nil {
				return recipe.Recipe{}, err
			}
			rec.OriginalDirections = snap
		}
		rec.Directions = append([]recipe.Direction(nil), (*patch.Directions)...)
	}
	if patch.Notes != nil {
		if rec.OriginalNotes == nil {
			snap, err := json.Marshal(rec.Notes)
			if err != nil {
				return recipe.Recipe{}, err
			}
			rec.OriginalNotes = snap
		}
		rec.Notes = append([]string(nil), (*patch.Notes)...)
	}
	if patch.Title != nil {
		rec.Title = *patch.Title
	}
	if patch.Servings != nil {
		rec.Servings = *patch.Servings
	}
	if patch.Tags != nil {
		rec.Tags = append([]string(nil), (*patch.Tags)...)
	}

	if err := s.persist(); err != nil {
		s.recipes[idx] = before
		return recipe.Recipe{}, err
	}
	return rec.Clone(), nil
}

// DeleteByID removes the record. The file is rewritten only when a
// removal actually happened.
func (s *Store) DeleteByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	s.recipes = append(s.recipes[:idx], s.recipes[idx+1:]...)
	return s.persist()
}

// Match pairs a recipe with the ingredient names it shares with the
// queried recipe.
type Match struct {
	Recipe             recipe.Recipe `json:"recipe"`
	MatchedIngredients []string      `json:"matchedIngredients"`
}

// SimilarByIngredients ranks every other recipe by how many ingredient
// names it shares with the target, exact case-sensitive matches only.
// Zero-overlap recipes are excluded; ties keep insertion order.
func (s *Store) SimilarByIngredients(id string) ([]Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	target := map[string]struct{}{}
	for _, ing := range s.recipes[idx].Ingredients {
		target[ing.Name] = struct{}{}
	}

	matches := []Match{}
	for i, rec := range s.recipes {
		if i == idx {
			continue
		}
		var shared []string
		for _, name := range rec.IngredientNames() {
			if _, ok := target[name]; ok {
				shared = append(shared, name)
			}
		}
		if len(shared) == 0 {
			continue
		}
		matches = append(matches, Match{Recipe: rec.Clone(), MatchedIngredients: shared})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return len(matches[a].MatchedIngredients) > len(matches[b].MatchedIngredients)
	})
	return matches, nil
}

// AllTags returns the union of every recipe's tags. Order is not
// specified; it follows first appearance for determinism in responses.
func (s *Store) AllTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]struct{}{}
	tags := []string{}
	for _, rec := range s.recipes {
		for _, tag := range rec.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

func (s *Store) indexOf(id string) int {
	for i, rec := range s.recipes {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
