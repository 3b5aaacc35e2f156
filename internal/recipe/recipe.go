// Package recipe holds the persisted recipe shape shared by the
// extractor, the store and the HTTP handlers. JSON field names follow
// the wire format consumed by the frontend, camelCase throughout.
package recipe

import "encoding/json"

type Ingredient struct {
	Amount        float64 `json:"amount"`
	AmountUnit    string  `json:"amountUnit"`
	Name          string  `json:"name"`
	Group         string  `json:"group,omitempty"`
	Preparation   string  `json:"preparation,omitempty"`
	Substitutions string  `json:"substitutions,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

type Direction struct {
	Instruction string `json:"instruction"`
	Image       string `json:"image,omitempty"`
}

// Draft is an extracted recipe before it has been admitted to the
// store. It carries no id and no source URL; both are assigned on Add.
type Draft struct {
	Title         string       `json:"title"`
	Servings      int          `json:"servings"`
	PrepTime      int          `json:"prepTime"`
	PrepTimeUnit  string       `json:"prepTimeUnit"`
	CookTime      int          `json:"cookTime"`
	CookTimeUnit  string       `json:"cookTimeUnit"`
	TotalTime     int          `json:"totalTime"`
	TotalTimeUnit string       `json:"totalTimeUnit"`
	MainImage     string       `json:"mainImage,omitempty"`
	Ingredients   []Ingredient `json:"ingredients"`
	Directions    []Direction  `json:"directions"`
	Notes         []string     `json:"notes,omitempty"`
}

type Recipe struct {
	ID            string       `json:"id"`
	SourceURL     string       `json:"sourceUrl"`
	Title         string       `json:"title"`
	Servings      int          `json:"servings"`
	PrepTime      int          `json:"prepTime"`
	PrepTimeUnit  string       `json:"prepTimeUnit"`
	CookTime      int          `json:"cookTime"`
	CookTimeUnit  string       `json:"cookTimeUnit"`
	TotalTime     int          `json:"totalTime"`
	TotalTimeUnit string       `json:"totalTimeUnit"`
	MainImage     string       `json:"mainImage,omitempty"`
	Ingredients   []Ingredient `json:"ingredients"`
	Directions    []Direction  `json:"directions"`
	Notes         []string     `json:"notes,omitempty"`
	Tags          []string     `json:"tags,omitempty"`

	// Serialized value of the field as it was immediately before its
	// first edit. Set once, never overwritten.
	OriginalIngredients json.RawMessage `json:"originalIngredients,omitempty"`
	OriginalDirections  json.RawMessage `json:"originalDirections,omitempty"`
	OriginalNotes       json.RawMessage `json:"originalNotes,omitempty"`
}

// Patch is the whitelist of fields a caller may change after creation.
// Nil means "leave as is". ID and SourceURL are deliberately absent.
type Patch struct {
	Title       *string       `json:"title,omitempty"`
	Servings    *int          `json:"servings,omitempty"`
	Ingredients *[]Ingredient `json:"ingredients,omitempty"`
	Directions  *[]Direction  `json:"directions,omitempty"`
	Notes       *[]string     `json:"notes,omitempty"`
	Tags        *[]string     `json:"tags,omitempty"`
}

// Clone returns a deep copy so callers can hand out recipes without
// sharing slice backing arrays with the store.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	out.Directions = append([]Direction(nil), r.Directions...)
	out.Notes = append([]string(nil), r.Notes...)
	out.Tags = append([]string(nil), r.Tags...)
	out.OriginalIngredients = append(json.RawMessage(nil), r.OriginalIngredients...)
	out.OriginalDirections = append(json.RawMessage(nil), r.OriginalDirections...)
	out.OriginalNotes = append(json.RawMessage(nil), r.OriginalNotes...)
	return out
}

// IngredientNames returns the distinct ingredient names in order of
// first appearance.
func (r Recipe) IngredientNames() []string {
	seen := map[string]struct{}{}
	names := []string{}
	for _, ing := range r.Ingredients {
		if _, ok := seen[ing.Name]; ok {
			continue
		}
		seen[ing.Name] = struct{}{}
		names = append(names, ing.Name)
	}
	return names
}
