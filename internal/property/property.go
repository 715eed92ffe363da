// Package property turns the listing payloads of every backend into one
// canonical Property.
package property

import "time"

const (
	// NotCommunicated is the value of every text field the source left empty.
	NotCommunicated = "NC"
	// PriceOnRequest is the price label of a property without a price.
	PriceOnRequest = "Prix sur demande"
	// FallbackImage stands in when a property has no picture at all.
	FallbackImage = "https://www.cotesud-immobilier.fr/wp-content/uploads/bien-sans-photo.jpg"
	// PrestigeThreshold is the price above which a property is always prestigious.
	PrestigeThreshold = 1_000_000

	areaUnit = " m²"
)

type Property struct {
	ID          int      `json:"id"`
	Source      Source   `json:"source"`
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Reference   string   `json:"reference"`
	PriceLabel  string   `json:"price"`
	Price       int      `json:"priceValue"`
	OnSale      bool     `json:"onSale"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	PostalCode  string   `json:"postalCode"`
	Surface     string   `json:"surface"`
	Rooms       string   `json:"rooms"`
	Bedrooms    string   `json:"bedrooms"`
	Bathrooms   string   `json:"bathrooms"`
	Image       string   `json:"image"`
	AllImages   []string `json:"allImages"`
	Excerpt     string   `json:"excerpt"`
	Description string   `json:"description"`

	Balcony     bool `json:"hasBalcony"`
	Terrace     bool `json:"hasTerrace"`
	Pool        bool `json:"hasPool"`
	Elevator    bool `json:"hasElevator"`
	NewBuild    bool `json:"isNew"`
	Prestigious bool `json:"isPrestigious"`
	Furnished   bool `json:"isFurnished"`
	LifeAnnuity bool `json:"isViager"`

	Garages          string `json:"garages"`
	ConstructionYear string `json:"constructionYear"`
	DPEEnergy        string `json:"dpeEnergy"`
	DPEGes           string `json:"dpeGes"`
	DPEDate          string `json:"dpeDate"`
	Floor            string `json:"floor"`
	TotalFloors      string `json:"totalFloors"`
	LandArea         string `json:"landArea"`
	NegotiatorName   string `json:"negotiatorName"`
	NegotiatorPhone  string `json:"negotiatorPhone"`
	NegotiatorEmail  string `json:"negotiatorEmail"`

	PublishedAt time.Time `json:"publishedAt"`
}

// HasOnlyFallbackImage reports whether no real picture was found.
func (p Property) HasOnlyFallbackImage() bool {
	return len(p.AllImages) == 1 && p.AllImages[0] == FallbackImage
}
