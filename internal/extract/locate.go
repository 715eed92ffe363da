// Package extract mines named sections (team, difference, services,
// background image) out of free-form page-builder markup. Every extractor
// degrades to an empty result; callers bring their own defaults.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/remymerlhiot/cote-sud-api/internal/canon"
)

const (
	// maxClimb caps the walk from a matched heading to its section.
	maxClimb = 5
	// minKeywords is how many distinct keywords a container needs to be
	// picked by density.
	minKeywords = 2

	headingSelector = "h1, h2, h3, h4, h5, h6, .elementor-heading-title"
	sectionSelector = "section, article, .elementor-section, .e-con, .e-parent"
)

// Locator finds the container of a named section. It tries explicit
// selectors, then a heading whose text matches the vocabulary, then
// keyword density.
type Locator struct {
	Selectors []string
	Headings  []string
	Keywords  []string
}

// Locate returns the container or an empty selection.
func (l Locator) Locate(root *goquery.Selection) *goquery.Selection {
	for _, sel := range l.Selectors {
		if s := root.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	if s := l.byHeading(root); s.Length() > 0 {
		return s
	}
	return l.byDensity(root)
}

func (l Locator) byHeading(root *goquery.Selection) *goquery.Selection {
	if len(l.Headings) == 0 {
		return root.Slice(0, 0)
	}
	var found *goquery.Selection
	root.Find(headingSelector).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !canon.ContainsAny(h.Text(), l.Headings...) {
			return true
		}
		if s := sectionOf(h); s != nil {
			found = s
			return false
		}
		return true
	})
	if found == nil {
		return root.Slice(0, 0)
	}
	return found
}

// sectionOf walks up from h to the nearest section container.
func sectionOf(h *goquery.Selection) *goquery.Selection {
	n := h.Parent()
	for depth := 0; depth < maxClimb && n.Length() > 0; depth++ {
		if n.Is(sectionSelector) {
			return n
		}
		n = n.Parent()
	}
	return nil
}

// byDensity picks the container holding the most distinct keywords. Ties
// go to the one with the shortest text, the most specific match.
func (l Locator) byDensity(root *goquery.Selection) *goquery.Selection {
	var (
		best      *goquery.Selection
		bestScore int
		bestLen   int
	)
	if len(l.Keywords) == 0 {
		return root.Slice(0, 0)
	}
	root.Find("section, article, div").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() <= 2 {
			return
		}
		text := s.Text()
		score := canon.CountDistinct(text, l.Keywords)
		if score < minKeywords {
			return
		}
		size := len(strings.TrimSpace(text))
		if best == nil || score > bestScore || (score == bestScore && size < bestLen) {
			best, bestScore, bestLen = s, score, size
		}
	})
	if best == nil {
		return root.Slice(0, 0)
	}
	return best
}

// parse never fails on malformed input, the html parser recovers.
func parse(raw string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil
	}
	return doc.Selection
}

// guard turns a panic in an extractor into the zero result.
func guard[T any](fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out = zero
		}
	}()
	return fn()
}

func text(s *goquery.Selection) string {
	return canon.CollapseSpaces(s.Text())
}
