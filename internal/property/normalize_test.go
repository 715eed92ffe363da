package property

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/remymerlhiot/cote-sud-api/internal/feed"
	"github.com/remymerlhiot/cote-sud-api/wordpress"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in       string
		expected int
	}{
		{"1 250 000 €", 1250000},
		{"450000", 450000},
		{"", 0},
		{"Nous consulter", 0},
		{"99999999999999999999999", 0},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			require.Equal(t, test.expected, ParsePrice(test.in))
		})
	}
}

func TestTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "Oui", "TRUE", " oui "} {
		require.True(t, Truthy(v), v)
	}
	for _, v := range []string{"0", "", "non", "false", "yes"} {
		require.False(t, Truthy(v), v)
	}
}

func TestPrestige(t *testing.T) {
	t.Run("price over threshold", func(t *testing.T) {
		p := Normalize(ACFEntry{Fields: wordpress.Fields{"prix_affiche": "1 200 000"}})
		require.True(t, p.Prestigious)
	})
	t.Run("explicit flag with low price", func(t *testing.T) {
		p := Normalize(ACFEntry{Fields: wordpress.Fields{"prix_affiche": "50 000", "prestige": "1"}})
		require.True(t, p.Prestigious)
	})
	t.Run("neither", func(t *testing.T) {
		p := Normalize(ACFEntry{Fields: wordpress.Fields{"prix_affiche": "1 000 000"}})
		require.False(t, p.Prestigious)
	})
}

func TestNormalizeDefaults(t *testing.T) {
	assert := require.New(t)
	p := Normalize(ACFEntry{Fields: wordpress.Fields{}})

	assert.Equal(NotCommunicated, p.Title)
	assert.Equal(NotCommunicated, p.City)
	assert.Equal(NotCommunicated, p.Surface)
	assert.Equal(NotCommunicated, p.Description)
	assert.Equal(PriceOnRequest, p.PriceLabel)
	assert.Equal(0, p.Price)
	assert.False(p.OnSale)
	assert.False(p.Pool)
	assert.Equal([]string{FallbackImage}, p.AllImages)
	assert.Equal(FallbackImage, p.Image)
	assert.True(p.PublishedAt.IsZero())
}

func TestNormalizeWordPressPost(t *testing.T) {
	assert := require.New(t)
	post := wordpress.Post{
		ID:   42,
		Date: "2024-03-01T10:00:00",
		Fields: wordpress.Fields{
			"id":      42,
			"type":    "biens",
			"title":   map[string]any{"rendered": "Villa d&#8217;architecte"},
			"content": map[string]any{"rendered": "<p>Belle <strong>villa</strong></p>\n<p>au calme</p>"},
			"date":    "2024-03-01T10:00:00",
		},
		ACF: wordpress.Fields{
			"prix_affiche": "1 250 000 €",
			"ville":        "Cassis",
			"type_bien":    "Villa",
			"surface":      "180",
			"piscine":      true,
			"balcon":       false,
			"neuf":         "non",
			"galerie": []any{
				map[string]any{"url": "https://cdn.test/c.jpg"},
				"https://cdn.test/a.jpg",
				map[string]any{"sizes": map[string]any{"large": "https://cdn.test/d.jpg"}},
				float64(77),
			},
		},
		Embedded: wordpress.Embedded{
			FeaturedMedia: []wordpress.Media{{SourceURL: "https://cdn.test/a.jpg"}},
			Attachments: wordpress.MediaGroup{
				{SourceURL: "https://cdn.test/b.jpg", MimeType: "image/jpeg"},
				{SourceURL: "https://cdn.test/plan.pdf", MimeType: "application/pdf"},
			},
		},
	}

	p := Normalize(WordPressPost{Post: post})
	assert.Equal(42, p.ID)
	assert.Equal(SourceWordPress, p.Source)
	assert.Equal("Villa d’architecte", p.Title)
	assert.Equal("Villa", p.Type)
	assert.Equal("Cassis", p.City)
	assert.Equal(1250000, p.Price)
	assert.Equal("1 250 000 €", p.PriceLabel)
	assert.True(p.OnSale)
	assert.Equal("180 m²", p.Surface)
	assert.True(p.Pool)
	assert.False(p.Balcony)
	assert.False(p.NewBuild)
	assert.True(p.Prestigious)
	assert.Equal("Belle villa au calme", p.Description)
	assert.Equal([]string{
		"https://cdn.test/a.jpg",
		"https://cdn.test/b.jpg",
		"https://cdn.test/c.jpg",
		"https://cdn.test/d.jpg",
	}, p.AllImages)
	assert.Equal(p.AllImages[0], p.Image)
	assert.True(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC).Equal(p.PublishedAt))
}

func TestNormalizeAttachmentsReplaceImages(t *testing.T) {
	post := wordpress.Post{ID: 5, Fields: wordpress.Fields{"id": 5}}
	p := Normalize(WordPressPost{Post: post, Attachments: []wordpress.Media{
		{SourceURL: "https://cdn.test/x.jpg", MimeType: "image/jpeg"},
		{SourceURL: "https://cdn.test/x.jpg", MimeType: "image/jpeg"},
	}})
	require.Equal(t, []string{"https://cdn.test/x.jpg"}, p.AllImages)
	require.False(t, p.HasOnlyFallbackImage())
}

func TestNormalizeFeedListing(t *testing.T) {
	assert := require.New(t)
	p := Normalize(FeedListing{Listing: feed.Listing{
		ID:        "AG-77",
		Reference: "AG-77",
		Title:     "T3 centre-ville",
		Price:     "320000",
		City:      "Aubagne",
		Surface:   "68 m2",
		Features:  feed.Features{Balcony: true, Garage: true},
		Photos:    []string{"https://cdn.test/1.jpg", "", "https://cdn.test/1.jpg"},
	}})
	assert.Equal(SourceFeed, p.Source)
	assert.Equal("AG-77", p.Reference)
	assert.Positive(p.ID)
	assert.Equal(Normalize(FeedListing{Listing: feed.Listing{Reference: "AG-77"}}).ID, p.ID)
	assert.Equal("68 m2", p.Surface)
	assert.Equal("320 000 €", p.PriceLabel)
	assert.True(p.Balcony)
	assert.False(p.Pool)
	assert.Equal("Oui", p.Garages)
	assert.Equal([]string{"https://cdn.test/1.jpg"}, p.AllImages)
}

func TestImagesInvariant(t *testing.T) {
	raws := []Raw{
		ACFEntry{Fields: wordpress.Fields{"photos": []any{}}},
		ACFEntry{Fields: wordpress.Fields{"image": "https://cdn.test/x.jpg"}},
		FeedListing{},
		WordPressPost{},
	}
	for _, raw := range raws {
		p := Normalize(raw)
		require.NotEmpty(t, p.AllImages)
		require.Equal(t, p.AllImages[0], p.Image)
	}
}

func TestFallback(t *testing.T) {
	assert := require.New(t)
	ps := Fallback()
	assert.Len(ps, 3)
	assert.Equal(1001, ps[0].ID)
	assert.Equal(1002, ps[1].ID)
	assert.Equal(1003, ps[2].ID)
	assert.True(ps[0].Prestigious)
	assert.True(ps[0].HasOnlyFallbackImage())
}

func TestParseSource(t *testing.T) {
	require.Equal(t, SourceFeed, ParseSource(" FEED "))
	require.Equal(t, SourceACF, ParseSource("acf"))
	require.Equal(t, SourceWordPress, ParseSource(""))
}
