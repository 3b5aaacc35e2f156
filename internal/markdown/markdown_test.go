package markdown_test

import (
	"strings"
	"testing"

	"recipeclip/internal/markdown"
)

func TestConvertString(t *testing.T) {
	conv := markdown.NewConverter()

	tests := []struct {
		name         string
		html         string
		wantContains []string
		wantAbsent   []string
	}{
		{
			name:         "headings and paragraphs",
			html:         `<h1>Gnocchi</h1><p>A cozy dinner.</p>`,
			wantContains: []string{"# Gnocchi", "A cozy dinner."},
		},
		{
			name:         "ordered directions list",
			html:         `<ol><li>Boil water</li><li>Add salt</li></ol>`,
			wantContains: []string{"1. Boil water", "2. Add salt"},
		},
		{
			name:         "unordered ingredient list with emphasis",
			html:         `<ul><li><strong>2 cups</strong> flour</li><li>1 onion</li></ul>`,
			wantContains: []string{"- **2 cups** flour", "- 1 onion"},
		},
		{
			name:         "links and images survive",
			html:         `<p><a href="https://example.com/full">full recipe</a></p><img src="https://example.com/dish.jpg" alt="the dish"/>`,
			wantContains: []string{"[full recipe](https://example.com/full)", "![the dish](https://example.com/dish.jpg)"},
		},
		{
			name:         "interactive noise dropped",
			html:         `<p>Keep me</p><button>Jump to Recipe</button><form><input value="q"/></form>`,
			wantContains: []string{"Keep me"},
			wantAbsent:   []string{"Jump to Recipe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.ConvertString(tt.html)
			if err != nil {
				t.Fatalf("convert: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("output should not contain %q:\n%s", absent, got)
				}
			}
		})
	}
}
