package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/remymerlhiot/cote-sud-api/internal/canon"
	"github.com/remymerlhiot/cote-sud-api/internal/cleaner"
)

// Service is one entry of the services accordion. Content is cleaned HTML.
type Service struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

var servicesLocator = Locator{
	Selectors: []string{"#services", "#nos-services", ".services", ".elementor-accordion", ".elementor-toggle", ".accordion"},
	Headings:  []string{"services", "prestations", "nous proposons", "savoir-faire"},
	Keywords:  []string{"estimation", "gestion", "location", "vente", "achat", "syndic", "viager"},
}

// Services reads the accordion items of the services section.
func Services(raw string) []Service {
	return guard(func() []Service {
		root := parse(raw)
		if root == nil {
			return nil
		}
		box := servicesLocator.Locate(root)
		if box.Length() == 0 {
			return nil
		}
		if out := accordionItems(box); len(out) > 0 {
			return out
		}
		if out := headingItems(box); len(out) > 0 {
			return out
		}
		return detailsItems(box)
	})
}

func accordionItems(box *goquery.Selection) []Service {
	var out []Service
	items := box.Find(".elementor-accordion-item, .elementor-toggle-item, .accordion-item")
	if box.Is(".elementor-accordion-item, .elementor-toggle-item, .accordion-item") {
		items = box
	}
	items.Each(func(_ int, item *goquery.Selection) {
		title := text(item.Find(".elementor-tab-title, .accordion-title, .accordion-header, .accordion-button").First())
		body, _ := item.Find(".elementor-tab-content, .accordion-content, .accordion-body, .accordion-collapse").First().Html()
		out = appendService(out, title, body)
	})
	return out
}

// headingItems pairs each sub-heading with the siblings up to the next one.
func headingItems(box *goquery.Selection) []Service {
	var out []Service
	box.Find("h3, h4, h5").Each(func(_ int, h *goquery.Selection) {
		title := text(h)
		if canon.ContainsAny(title, servicesLocator.Headings...) {
			return
		}
		var b strings.Builder
		h.NextUntil("h2, h3, h4, h5").Each(func(_ int, s *goquery.Selection) {
			if html, err := goquery.OuterHtml(s); err == nil {
				b.WriteString(html)
			}
		})
		out = appendService(out, title, b.String())
	})
	return out
}

func detailsItems(box *goquery.Selection) []Service {
	var out []Service
	box.Find("details").Each(func(_ int, d *goquery.Selection) {
		summary := d.Find("summary").First()
		title := text(summary)
		summary.Remove()
		body, _ := d.Html()
		out = appendService(out, title, body)
	})
	return out
}

func appendService(out []Service, title, body string) []Service {
	if title == "" {
		return out
	}
	return append(out, Service{Title: title, Content: strings.TrimSpace(cleaner.Clean(body, cleaner.DefaultOptions()))})
}
