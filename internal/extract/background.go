package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/antchfx/htmlquery"
)

// HeroLocator finds the banner section opening a page.
var HeroLocator = Locator{
	Selectors: []string{".hero", ".banner", ".page-header", ".elementor-top-section", "header"},
}

var reCSSURL = regexp.MustCompile(`url\(\s*['"]?([^'")]+?)['"]?\s*\)`)

// backgroundXPath selects every element that may carry a background: an
// inline style, a lazy-load attribute or Elementor settings.
const backgroundXPath = `descendant-or-self::*[contains(@style,'background') or @data-bg or @data-background or contains(@data-settings,'background_image')]`

// BackgroundImage returns the first background image URL inside the
// section found by loc, or in the whole document when loc is empty or
// finds nothing.
func BackgroundImage(raw string, loc Locator) string {
	return guard(func() string {
		root := parse(raw)
		if root == nil || root.Length() == 0 {
			return ""
		}
		scope := root.Nodes[0]
		if box := loc.Locate(root); box.Length() > 0 {
			scope = box.Nodes[0]
		}
		nodes, err := htmlquery.QueryAll(scope, backgroundXPath)
		if err != nil {
			return ""
		}
		for _, n := range nodes {
			if u := cssURL(htmlquery.SelectAttr(n, "style")); u != "" {
				return u
			}
			for _, attr := range []string{"data-bg", "data-background"} {
				if v := strings.TrimSpace(htmlquery.SelectAttr(n, attr)); v != "" {
					if u := cssURL(v); u != "" {
						return u
					}
					return v
				}
			}
			if u := settingsURL(htmlquery.SelectAttr(n, "data-settings")); u != "" {
				return u
			}
		}
		return ""
	})
}

func cssURL(style string) string {
	if !strings.Contains(style, "url(") {
		return ""
	}
	if m := reCSSURL.FindStringSubmatch(style); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func settingsURL(settings string) string {
	if settings == "" {
		return ""
	}
	var v struct {
		BackgroundImage struct {
			URL string `json:"url"`
		} `json:"background_image"`
	}
	if err := json.Unmarshal([]byte(settings), &v); err != nil {
		return ""
	}
	return v.BackgroundImage.URL
}
