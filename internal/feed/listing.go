// Package feed serves the vendor property feed: it downloads the XML export
// over FTP, flattens it into Listing records and caches the result.
package feed

// Features is the fixed feature-flag object of a feed record.
type Features struct {
	Balcony  bool `json:"balcony"`
	Terrace  bool `json:"terrace"`
	Pool     bool `json:"pool"`
	Elevator bool `json:"elevator"`
	Garage   bool `json:"garage"`
	Garden   bool `json:"garden"`
}

// Listing is one flat record of the feed proxy output.
type Listing struct {
	ID               string   `json:"id"`
	Reference        string   `json:"reference"`
	Type             string   `json:"type"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Price            string   `json:"price"`
	Address          string   `json:"address"`
	PostalCode       string   `json:"postal_code"`
	City             string   `json:"city"`
	Surface          string   `json:"surface"`
	Rooms            string   `json:"rooms"`
	Bedrooms         string   `json:"bedrooms"`
	Bathrooms        string   `json:"bathrooms"`
	ConstructionYear string   `json:"construction_year"`
	Features         Features `json:"features"`
	Photos           []string `json:"photos"`
	DPE              string   `json:"dpe"`
}
