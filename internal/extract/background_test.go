package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBackgroundImage(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		loc      Locator
		expected string
	}{
		{
			"hero style",
			`<div style="background:url(/first.jpg)"></div><div class="hero" style="background-image: url('https://cdn.test/hero.jpg')"><h1>Bienvenue</h1></div>`,
			HeroLocator,
			"https://cdn.test/hero.jpg",
		},
		{
			"whole document",
			`<div style="background:url(/first.jpg)"></div><div class="hero" style="background-image: url('https://cdn.test/hero.jpg')"></div>`,
			Locator{},
			"/first.jpg",
		},
		{
			"lazy attribute",
			`<section data-bg="https://cdn.test/lazy.jpg"></section>`,
			Locator{},
			"https://cdn.test/lazy.jpg",
		},
		{
			"lazy css value",
			`<section data-background="url(https://cdn.test/css.jpg)"></section>`,
			Locator{},
			"https://cdn.test/css.jpg",
		},
		{
			"elementor settings",
			`<section class="elementor-top-section" data-settings='{"background_background":"classic","background_image":{"url":"https://cdn.test/el.jpg","id":3}}'></section>`,
			HeroLocator,
			"https://cdn.test/el.jpg",
		},
		{
			"nested in hero",
			`<header><nav>menu</nav></header><div class="hero"><div class="overlay"><div data-bg="/inner.jpg"></div></div></div><div style="background:url(/after.jpg)"></div>`,
			Locator{Selectors: []string{".hero"}},
			"/inner.jpg",
		},
		{
			"color only",
			`<div class="hero" style="background-color: #fff"></div>`,
			HeroLocator,
			"",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, BackgroundImage(test.raw, test.loc))
		})
	}
}
