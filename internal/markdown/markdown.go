// Package markdown flattens sanitized HTML fragments into compact
// markdown for the extraction prompt. Purely structural; no text
// content is dropped.
package markdown

import (
	"strings"

	htmltomd "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

type Converter struct {
	md *htmltomd.Converter
}

func NewConverter() *Converter {
	conv := htmltomd.NewConverter("", true, nil)
	conv.Use(plugin.GitHubFlavored())
	conv.AddRules(interactiveNoiseRule())
	return &Converter{md: conv}
}

// ConvertString renders the fragment as markdown. Headings, lists,
// emphasis, links and images all survive; images come out as markdown
// image references so the extractor can attach them to steps.
func (c *Converter) ConvertString(fragment string) (string, error) {
	out, err := c.md.ConvertString(fragment)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out) + "\n", nil
}

// interactiveNoiseRule drops controls that carry no recipe text but
// routinely survive sanitization on recipe cards (print/share/jump
// buttons, rating widgets, inline forms).
func interactiveNoiseRule() htmltomd.Rule {
	return htmltomd.Rule{
		Filter: []string{"button", "form", "input", "select", "iframe"},
		Replacement: func(_ string, _ *goquery.Selection, _ *htmltomd.Options) *string {
			empty := ""
			return &empty
		},
	}
}
