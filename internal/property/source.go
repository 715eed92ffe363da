package property

import (
	"strings"

	"github.com/remymerlhiot/cote-sud-api/internal/feed"
	"github.com/remymerlhiot/cote-sud-api/wordpress"
)

// Source names the backend a property was read from.
type Source string

const (
	SourceWordPress Source = "wordpress"
	SourceACF       Source = "acf"
	SourceFeed      Source = "feed"
)

// ParseSource maps a configuration value to a Source, defaulting to WordPress.
func ParseSource(s string) Source {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case SourceACF:
		return SourceACF
	case SourceFeed:
		return SourceFeed
	default:
		return SourceWordPress
	}
}

// Raw is a property payload as one backend delivered it. The set of
// implementations is closed: WordPressPost, ACFEntry and FeedListing.
type Raw interface {
	Source() Source
	record() Record
}

// WordPressPost is a "biens" custom post with its embedded relations.
// Attachments, when set, comes from the per-property media fetch and
// replaces every other image candidate.
type WordPressPost struct {
	Post        wordpress.Post
	Attachments []wordpress.Media
}

// ACFEntry is one record of the ACF REST wrapper.
type ACFEntry struct {
	Fields wordpress.Fields
}

// FeedListing is one record of the feed proxy.
type FeedListing struct {
	Listing feed.Listing
}

func (WordPressPost) Source() Source { return SourceWordPress }
func (ACFEntry) Source() Source      { return SourceACF }
func (FeedListing) Source() Source   { return SourceFeed }

// wordpressCoreKeys are post attributes that collide with property synonyms
// but describe the WordPress object itself.
var wordpressCoreKeys = []string{"type", "status", "link", "guid", "template"}

func (w WordPressPost) record() Record {
	top := make(map[string]any, len(w.Post.Fields))
	for k, v := range w.Post.Fields {
		top[k] = v
	}
	for _, k := range wordpressCoreKeys {
		delete(top, k)
	}
	delete(top, "acf")
	delete(top, "_embedded")

	var images []string
	if att := imageMedia(w.Attachments); len(att) > 0 {
		images = att
	} else {
		images = append(images, imageMedia(w.Post.Embedded.FeaturedMedia)...)
		images = append(images, imageMedia(w.Post.Embedded.Attachments)...)
		images = append(images, photoFields(w.Post.ACF)...)
	}
	return Record{Top: top, ACF: w.Post.ACF, Images: images}
}

func (a ACFEntry) record() Record {
	nested, _ := a.Fields["acf"].(map[string]any)
	var images []string
	for _, obj := range []map[string]any{a.Fields, nested} {
		for _, k := range featuredKeys {
			if u := imageURL(obj[k]); u != "" {
				images = append(images, u)
			}
		}
	}
	images = append(images, photoFields(a.Fields)...)
	images = append(images, photoFields(nested)...)
	return Record{Top: a.Fields, ACF: nested, Images: images}
}

func (f FeedListing) record() Record {
	l := f.Listing
	top := map[string]any{
		"id":                 l.ID,
		"reference":          l.Reference,
		"type_bien":          l.Type,
		"title":              l.Title,
		"description":        l.Description,
		"prix":               l.Price,
		"adresse":            l.Address,
		"code_postal":        l.PostalCode,
		"ville":              l.City,
		"surface":            l.Surface,
		"nb_pieces":          l.Rooms,
		"nb_chambres":        l.Bedrooms,
		"nb_sdb":             l.Bathrooms,
		"annee_construction": l.ConstructionYear,
		"dpe_energie":        l.DPE,
		"balcon":             l.Features.Balcony,
		"terrasse":           l.Features.Terrace,
		"piscine":            l.Features.Pool,
		"ascenseur":          l.Features.Elevator,
	}
	if l.Features.Garage {
		top["garage"] = "Oui"
	}
	return Record{Top: top, Images: append([]string(nil), l.Photos...)}
}

// featuredKeys hold a single primary picture on ACF wrapper records.
var featuredKeys = []string{"featured_image", "image_principale", "image"}

// photoKeys hold picture arrays on ACF payloads.
var photoKeys = []string{"photos", "galerie", "gallery", "images"}

// imageMedia keeps the source URL of media whose MIME type is an image.
// Featured media often comes without a MIME type and is accepted as is.
func imageMedia(list []wordpress.Media) []string {
	var out []string
	for _, m := range list {
		if m.MimeType != "" && !strings.HasPrefix(m.MimeType, "image/") {
			continue
		}
		if m.SourceURL != "" {
			out = append(out, m.SourceURL)
		}
	}
	return out
}

func photoFields(obj map[string]any) []string {
	var out []string
	for _, k := range photoKeys {
		arr, ok := obj[k].([]any)
		if !ok {
			continue
		}
		for _, item := range arr {
			if u := imageURL(item); u != "" {
				out = append(out, u)
			}
		}
	}
	return out
}

// imageURL reads an ACF image value: a URL string or an image object with
// url or sizes. Attachment ids are ignored.
func imageURL(v any) string {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if strings.HasPrefix(s, "http") || strings.HasPrefix(s, "/") {
			return s
		}
	case map[string]any:
		if s, ok := x["url"].(string); ok && s != "" {
			return s
		}
		if s, ok := x["source_url"].(string); ok && s != "" {
			return s
		}
		if sizes, ok := x["sizes"].(map[string]any); ok {
			for _, size := range []string{"large", "medium_large", "medium", "thumbnail"} {
				if s, ok := sizes[size].(string); ok && s != "" {
					return s
				}
			}
		}
	}
	return ""
}
