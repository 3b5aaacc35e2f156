package sanitize_test

import (
	"errors"
	"strings"
	"testing"

	"recipeclip/internal/sanitize"
)

func TestSanitize_RemovesBoilerplate(t *testing.T) {
	tests := []struct {
		name        string
		html        string
		wantAbsent  []string
		wantPresent []string
	}{
		{
			name:       "script tags",
			html:       `<html><body><p>Keep</p><script>alert(1)</script></body></html>`,
			wantAbsent: []string{"alert"}, wantPresent: []string{"Keep"},
		},
		{
			name:       "header and footer",
			html:       `<html><body><header>Nav</header><p>Recipe</p><footer>Legal</footer></body></html>`,
			wantAbsent: []string{"Nav", "Legal"}, wantPresent: []string{"Recipe"},
		},
		{
			name:       "style and link",
			html:       `<html><body><style>p{}</style><link href="a.css"/><p>Text</p></body></html>`,
			wantAbsent: []string{"p{}", "a.css"}, wantPresent: []string{"Text"},
		},
		{
			name:       "comment class substring",
			html:       `<html><body><div class="post-comments-area">Spam</div><p>Dish</p></body></html>`,
			wantAbsent: []string{"Spam"}, wantPresent: []string{"Dish"},
		},
		{
			name:        "comment match is case sensitive",
			html:        `<html><body><div class="Comments">Kept on purpose</div></body></html>`,
			wantPresent: []string{"Kept on purpose"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sanitize.Sanitize(tt.html, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("output still contains %q:\n%s", absent, got)
				}
			}
			for _, present := range tt.wantPresent {
				if !strings.Contains(got, present) {
					t.Errorf("output lost %q:\n%s", present, got)
				}
			}
		})
	}
}

func TestSanitize_RootSelector(t *testing.T) {
	html := `<html><body><div>Outside</div><article><h1>Inside</h1></article></body></html>`

	got, err := sanitize.Sanitize(html, sanitize.ArticleRootSelector)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Inside") {
		t.Fatalf("article content missing: %s", got)
	}
	if strings.Contains(got, "Outside") {
		t.Fatalf("content outside root leaked: %s", got)
	}
}

func TestSanitize_EmptyContent(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		selector string
	}{
		{name: "blank input", html: "   ", selector: ""},
		{name: "missing root", html: "<html><body><p>x</p></body></html>", selector: "article"},
		{name: "empty root", html: "<html><body><article>  </article></body></html>", selector: "article"},
		{name: "only boilerplate", html: "<html><body><script>x()</script></body></html>", selector: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sanitize.Sanitize(tt.html, tt.selector)
			if !errors.Is(err, sanitize.ErrEmptyContent) {
				t.Fatalf("want ErrEmptyContent, got %v", err)
			}
		})
	}
}
