package scrape_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"recipeclip/internal/extract"
	"recipeclip/internal/fetch"
	"recipeclip/internal/recipe"
	"recipeclip/internal/sanitize"
	"recipeclip/internal/scrape"
	"recipeclip/internal/store"
)

type stubFetcher struct {
	html string
	mode fetch.Mode
	err  error
}

func (f stubFetcher) Fetch(_ context.Context, _ string) (fetch.Result, error) {
	if f.err != nil {
		return fetch.Result{}, f.err
	}
	mode := f.mode
	if mode == "" {
		mode = fetch.ModeStatic
	}
	return fetch.Result{HTML: f.html, FinalMode: mode}, nil
}

type stubExtractor struct {
	draft    recipe.Draft
	err      error
	gotText  string
	numCalls int
}

func (e *stubExtractor) Extract(_ context.Context, text string) (recipe.Draft, error) {
	e.gotText = text
	e.numCalls++
	if e.err != nil {
		return recipe.Draft{}, e.err
	}
	return e.draft, nil
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "recipes.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

const blogHTML = `<html><body>
<header>Site nav</header>
<h1>Simple Gnocchi</h1>
<ul><li>2 cups flour, diced onion</li></ul>
<ol><li>Mix flour and onion</li></ol>
<div class="wprm-comments">Great recipe!!</div>
<footer>About us</footer>
</body></html>`

func TestScrape_EndToEnd(t *testing.T) {
	recipes := newStore(t)
	extractor := &stubExtractor{
		draft: recipe.Draft{
			Title:    "Simple Gnocchi",
			Servings: 6,
			Ingredients: []recipe.Ingredient{
				{Amount: 2, AmountUnit: "cups", Name: "flour"},
			},
			Directions: []recipe.Direction{{Instruction: "Mix flour and onion"}},
		},
	}
	svc := scrape.NewService(stubFetcher{html: blogHTML}, extractor, recipes, nil)

	rec, err := svc.Scrape(context.Background(), "https://example.com/gnocchi")
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}

	if rec.ID == "" || rec.SourceURL != "https://example.com/gnocchi" {
		t.Fatalf("stored recipe incomplete: %+v", rec)
	}
	if rec.Ingredients[0].Amount != 2 || rec.Ingredients[0].Name != "flour" {
		t.Fatalf("ingredient wrong: %+v", rec.Ingredients[0])
	}
	if rec.Directions[0].Instruction != "Mix flour and onion" {
		t.Fatalf("direction wrong: %+v", rec.Directions[0])
	}

	// The extractor must see the page content as markdown, with the
	// boilerplate already stripped.
	if !strings.Contains(extractor.gotText, "2 cups flour, diced onion") {
		t.Fatalf("extractor input lost content:\n%s", extractor.gotText)
	}
	for _, noise := range []string{"Site nav", "About us", "Great recipe"} {
		if strings.Contains(extractor.gotText, noise) {
			t.Fatalf("extractor input still has %q:\n%s", noise, extractor.gotText)
		}
	}

	if got := recipes.List(); len(got) != 1 {
		t.Fatalf("want 1 stored recipe, got %d", len(got))
	}
}

func TestScrape_NotARecipeIsNotStored(t *testing.T) {
	recipes := newStore(t)
	extractor := &stubExtractor{err: extract.ErrNotARecipe}
	svc := scrape.NewService(stubFetcher{html: blogHTML}, extractor, recipes, nil)

	_, err := svc.Scrape(context.Background(), "https://example.com/travel-diary")
	if !errors.Is(err, extract.ErrNotARecipe) {
		t.Fatalf("want ErrNotARecipe, got %v", err)
	}
	if got := recipes.List(); len(got) != 0 {
		t.Fatalf("nothing may be stored, got %d recipes", len(got))
	}
}

func TestScrape_EmptyContentSkipsExtraction(t *testing.T) {
	recipes := newStore(t)
	extractor := &stubExtractor{}
	svc := scrape.NewService(stubFetcher{html: "<html><body><script>x()</script></body></html>"}, extractor, recipes, nil)

	_, err := svc.Scrape(context.Background(), "https://example.com/empty")
	if !errors.Is(err, sanitize.ErrEmptyContent) {
		t.Fatalf("want ErrEmptyContent, got %v", err)
	}
	if extractor.numCalls != 0 {
		t.Fatal("extractor must not be called for empty content")
	}
}

func TestScrape_DynamicPagesUseArticleRoot(t *testing.T) {
	recipes := newStore(t)
	extractor := &stubExtractor{
		draft: recipe.Draft{
			Title:       "Reel Pasta",
			Ingredients: []recipe.Ingredient{{Amount: 1, AmountUnit: "lb", Name: "pasta"}},
			Directions:  []recipe.Direction{{Instruction: "Boil."}},
		},
	}
	html := `<html><body><div id="app">chrome</div><article><p>1 lb pasta. Boil.</p></article></body></html>`
	svc := scrape.NewService(stubFetcher{html: html, mode: fetch.ModeDynamic}, extractor, recipes, nil)

	if _, err := svc.Scrape(context.Background(), "https://www.instagram.com/p/abc/"); err != nil {
		t.Fatalf("scrape: %v", err)
	}
	if !strings.Contains(extractor.gotText, "1 lb pasta") {
		t.Fatalf("article content missing:\n%s", extractor.gotText)
	}
	if strings.Contains(extractor.gotText, "chrome") {
		t.Fatalf("content outside article leaked:\n%s", extractor.gotText)
	}
}

func TestScrape_FetchFailureAborts(t *testing.T) {
	recipes := newStore(t)
	extractor := &stubExtractor{}
	fetchErr := &fetch.Error{URL: "https://example.com", Err: errors.New("connection refused")}
	svc := scrape.NewService(stubFetcher{err: fetchErr}, extractor, recipes, nil)

	_, err := svc.Scrape(context.Background(), "https://example.com")
	var gotErr *fetch.Error
	if !errors.As(err, &gotErr) {
		t.Fatalf("want *fetch.Error, got %v", err)
	}
	if extractor.numCalls != 0 {
		t.Fatal("extractor must not run after a fetch failure")
	}
}
