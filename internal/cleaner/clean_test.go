package cleaner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripBuilderClasses(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{
			"all builder classes",
			`<h2 class="elementor-heading-title elementor-size-default">Titre</h2>`,
			`<h2>Titre</h2>`,
		},
		{
			"mixed classes",
			`<h2 class="e-con-inner title animated-slow animated e-flex e-flexible">Titre</h2>`,
			`<h2 class="title e-flexible">Titre</h2>`,
		},
		{
			"animation without dash is kept",
			`<h2 class="animatedly">Titre</h2>`,
			`<h2 class="animatedly">Titre</h2>`,
		},
	}
	opts := Options{RemoveBuilderClasses: true}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, Clean(test.in, opts))
		})
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"empty containers deleted", `<div><span> </span><p></p></div><h3>x</h3>`, `<h3>x</h3>`},
		{"image keeps its wrapper", `<p><img src="a.jpg"/></p>`, `<p><img src="a.jpg"/></p>`},
		{"nested wrappers unwrapped", `<div><div><div><h3>x</h3></div></div></div>`, `<div><h3>x</h3></div>`},
		{"attributed inner kept", `<div><div id="a"><h3>x</h3></div></div>`, `<div><div id="a"><h3>x</h3></div></div>`},
		{"different tags kept", `<section><div><h3>x</h3></div></section>`, `<section><div><h3>x</h3></div></section>`},
		{"text beside inner kept", `<div>hello <div><b>x</b></div></div>`, `<div>hello <div><b>x</b></div></div>`},
		{"unwrap after builder classes", `<div class="elementor-widget"><div class="elementor-container"><p>x</p></div></div>`, `<div><p>x</p></div>`},
	}
	opts := Options{RemoveBuilderClasses: true, SimplifyStructure: true}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, Clean(test.in, opts))
		})
	}
}

func TestResponsiveImages(t *testing.T) {
	assert := require.New(t)
	out := Clean(`<figure class="wp-caption"><img class="size-large" src="a.jpg"/><figcaption>Vue</figcaption></figure>`, DefaultOptions())
	assert.Equal(`<figure class="wp-caption responsive-caption"><img class="size-large img-responsive" src="a.jpg" loading="lazy"/><figcaption>Vue</figcaption></figure>`, out)

	out = Clean(`<div><img src="b.jpg"/></div>`, DefaultOptions())
	assert.Equal(`<div><img src="b.jpg" class="img-responsive" loading="lazy"/></div>`, out)
}

func TestRewriteLinks(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{`<a href="/contact">c</a>`, `<a href="https://example.com/contact">c</a>`},
		{`<a href="//cdn.example.com/x">c</a>`, `<a href="//cdn.example.com/x">c</a>`},
		{`<a href="https://other.com/x">c</a>`, `<a href="https://other.com/x">c</a>`},
		{`<a href="#top">c</a>`, `<a href="#top">c</a>`},
	}
	opts := DefaultOptions().WithBaseDomain("https://example.com/")
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			require.Equal(t, test.expected, Clean(test.in, opts))
		})
	}

	t.Run("no base domain", func(t *testing.T) {
		require.Equal(t, `<a href="/contact">c</a>`, Clean(`<a href="/contact">c</a>`, DefaultOptions()))
	})
}

func TestRemoveUnsafe(t *testing.T) {
	out := Clean(`<p onclick="x()">a<script>alert(1)</script></p><style>p{}</style><a href="javascript:void(0)">b</a>`, Options{})
	require.Equal(t, `<p>a</p><a>b</a>`, out)
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		`<div class="elementor-section elementor-top-section"><div class="elementor-container"><div class="elementor-column">
			<div class="elementor-widget-wrap"><div class="elementor-widget elementor-widget-text-editor">
			<p>Depuis <strong>1985</strong>, l'agence <a href="/histoire">Côte Sud</a>.</p>
			<p>&nbsp;</p><span></span>
			<figure class="wp-caption"><img class="animated fadeIn" src="/wp-content/a.jpg"/></figure>
			</div></div></div></div></div>`,
		`<section><section><article><article><span><span>x</span></span></article></article></section></section>`,
		`<p>plain text</p>`,
	}
	opts := DefaultOptions().WithBaseDomain("https://www.cotesud-immobilier.fr")
	for _, in := range inputs {
		once := Clean(in, opts)
		require.Equal(t, once, Clean(once, opts))
	}
}
