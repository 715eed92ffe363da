package wordpress

import "encoding/json"

// Media is a wp/v2 media object, either embedded or fetched from /media.
type Media struct {
	ID           int    `json:"id"`
	SourceURL    string `json:"source_url"`
	MimeType     string `json:"mime_type"`
	MediaType    string `json:"media_type"`
	AltText      string `json:"alt_text"`
	MediaDetails struct {
		Sizes map[string]struct {
			SourceURL string `json:"source_url"`
		} `json:"sizes"`
	} `json:"media_details"`
}

// Embedded holds the _embed relations we ask for.
type Embedded struct {
	FeaturedMedia []Media    `json:"wp:featuredmedia"`
	Attachments   MediaGroup `json:"wp:attachment"`
}

// Post is a "biens" custom post type record. Fields keeps the whole
// top-level object so that callers can resolve arbitrary meta keys.
type Post struct {
	ID            int      `json:"id"`
	Date          string   `json:"date"`
	Slug          string   `json:"slug"`
	Title         Text     `json:"title"`
	Content       Text     `json:"content"`
	Excerpt       Text     `json:"excerpt"`
	FeaturedMedia int      `json:"featured_media"`
	ACF           Fields   `json:"acf"`
	Embedded      Embedded `json:"_embedded"`
	Fields        Fields   `json:"-"`
}

func (p *Post) UnmarshalJSON(b []byte) error {
	type plain Post
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if err := json.Unmarshal(b, &v.Fields); err != nil {
		return err
	}
	*p = Post(v)
	return nil
}

// Page is a standard wp/v2 page.
type Page struct {
	ID       int      `json:"id"`
	Slug     string   `json:"slug"`
	Date     string   `json:"date"`
	Title    Text     `json:"title"`
	Content  Text     `json:"content"`
	Excerpt  Text     `json:"excerpt"`
	Embedded Embedded `json:"_embedded"`
}

// FeaturedImage returns the embedded featured media URL, if any.
func (p Page) FeaturedImage() string {
	for _, m := range p.Embedded.FeaturedMedia {
		if m.SourceURL != "" {
			return m.SourceURL
		}
	}
	return ""
}

// CustomPage is the flatter shape served by the agency plugin.
type CustomPage struct {
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	FeaturedImage *string         `json:"featured_image"`
	ElementorData json.RawMessage `json:"elementor_data,omitempty"`
	Media         []string        `json:"media"`
}
