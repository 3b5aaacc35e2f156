// Package sanitize strips boilerplate markup from fetched pages before
// markdown conversion.
package sanitize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrEmptyContent means the root selector matched nothing, or matched an
// element with no usable content. The pipeline stops here, before any
// model call.
var ErrEmptyContent = errors.New("no content found")

// Selectors removed wholesale. The class match is a deliberate
// case-sensitive substring heuristic against comment-section noise.
const boilerplateSelector = `script, header, footer, style, link, [class*="comment"]`

const DefaultRootSelector = "body"

// ArticleRootSelector narrows browser-rendered pages to the first
// article element.
const ArticleRootSelector = "article"

// Sanitize parses html, removes boilerplate elements and returns the
// inner HTML of the first element matching rootSelector.
func Sanitize(html, rootSelector string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", ErrEmptyContent
	}
	if rootSelector == "" {
		rootSelector = DefaultRootSelector
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find(boilerplateSelector).Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	root := doc.Find(rootSelector).First()
	if root.Length() == 0 {
		return "", fmt.Errorf("%w: selector %q matched nothing", ErrEmptyContent, rootSelector)
	}
	fragment, err := root.Html()
	if err != nil {
		return "", fmt.Errorf("render fragment: %w", err)
	}
	if strings.TrimSpace(fragment) == "" {
		return "", fmt.Errorf("%w: selector %q is empty", ErrEmptyContent, rootSelector)
	}
	return fragment, nil
}
