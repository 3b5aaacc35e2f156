package recipe_test

import (
	"testing"

	"recipeclip/internal/recipe"
)

func TestIngredientNames_DeduplicatesInOrder(t *testing.T) {
	r := recipe.Recipe{
		Ingredients: []recipe.Ingredient{
			{Name: "flour", Group: "dough"},
			{Name: "butter", Group: "dough"},
			{Name: "flour", Group: "topping"},
		},
	}
	got := r.IngredientNames()
	if len(got) != 2 || got[0] != "flour" || got[1] != "butter" {
		t.Fatalf("unexpected names: %v", got)
	}
}

func TestClone_DoesNotShareSlices(t *testing.T) {
	r := recipe.Recipe{
		Ingredients: []recipe.Ingredient{{Name: "flour"}},
		Tags:        []string{"dinner"},
	}
	c := r.Clone()
	c.Ingredients[0].Name = "changed"
	c.Tags[0] = "changed"

	if r.Ingredients[0].Name != "flour" || r.Tags[0] != "dinner" {
		t.Fatalf("clone mutated the original: %+v", r)
	}
}
