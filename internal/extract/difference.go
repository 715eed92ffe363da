package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/remymerlhiot/cote-sud-api/internal/canon"
)

// Difference is the "what makes us different" block of the home page.
type Difference struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}

var differenceLocator = Locator{
	Selectors: []string{"#difference", "#notre-difference", ".difference", ".notre-difference", ".why-us"},
	Headings:  []string{"difference", "differencie", "pourquoi nous choisir", "nos atouts", "nos engagements"},
	Keywords:  []string{"experience", "confiance", "accompagn", "proximite", "expertise", "ecoute", "transparence"},
}

// DifferenceSection returns the block and whether one was found.
func DifferenceSection(raw string) (Difference, bool) {
	d := guard(func() Difference {
		root := parse(raw)
		if root == nil {
			return Difference{}
		}
		box := differenceLocator.Locate(root)
		if box.Length() == 0 {
			return Difference{}
		}
		title := differenceTitle(box)
		d := Difference{Title: title, Paragraphs: paragraphs(box.Find("p"), title)}
		if len(d.Paragraphs) == 0 {
			// positional: the text right after the heading or its widget
			if h := box.Find(headingSelector).First(); h.Length() > 0 {
				d.Paragraphs = paragraphs(h.NextAll(), title)
				if len(d.Paragraphs) == 0 {
					d.Paragraphs = paragraphs(h.Parent().NextAll(), title)
				}
			}
		}
		return d
	})
	return d, len(d.Paragraphs) > 0
}

func differenceTitle(box *goquery.Selection) string {
	var title string
	box.Find(headingSelector).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if t := text(h); canon.ContainsAny(t, differenceLocator.Headings...) {
			title = t
			return false
		}
		return true
	})
	if title == "" {
		title = text(box.Find(headingSelector).First())
	}
	return title
}

// paragraphs keeps the distinct non-empty texts of s.
func paragraphs(s *goquery.Selection, title string) []string {
	var out []string
	seen := map[string]bool{title: true}
	s.Each(func(_ int, p *goquery.Selection) {
		t := text(p)
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		out = append(out, t)
	})
	return out
}
