package property

import "github.com/remymerlhiot/cote-sud-api/internal/feed"

// fallbackListings is shown when the feed proxy is down. The order is the
// display order.
var fallbackListings = []feed.Listing{
	{
		ID:          "1001",
		Reference:   "CS-1001",
		Type:        "Villa",
		Title:       "Villa provençale avec piscine",
		Description: "Villa de plain-pied au calme, jardin arboré et piscine, proche du village.",
		Price:       "1 250 000",
		City:        "Cassis",
		PostalCode:  "13260",
		Surface:     "180",
		Rooms:       "6",
		Bedrooms:    "4",
		Bathrooms:   "2",
		Features:    feed.Features{Terrace: true, Pool: true, Garage: true, Garden: true},
		DPE:         "C",
	},
	{
		ID:          "1002",
		Reference:   "CS-1002",
		Type:        "Appartement",
		Title:       "Appartement vue mer",
		Description: "Trois pièces lumineux en étage élevé, balcon face à la mer, ascenseur.",
		Price:       "495 000",
		City:        "La Ciotat",
		PostalCode:  "13600",
		Surface:     "72",
		Rooms:       "3",
		Bedrooms:    "2",
		Bathrooms:   "1",
		Features:    feed.Features{Balcony: true, Elevator: true},
		DPE:         "D",
	},
	{
		ID:          "1003",
		Reference:   "CS-1003",
		Type:        "Maison",
		Title:       "Maison de village rénovée",
		Description: "Maison de caractère entièrement rénovée avec terrasse, au cœur du vieux village.",
		Price:       "385 000",
		City:        "Roquefort-la-Bédoule",
		PostalCode:  "13830",
		Surface:     "95",
		Rooms:       "4",
		Bedrooms:    "3",
		Bathrooms:   "1",
		Features:    feed.Features{Terrace: true},
		DPE:         "E",
	},
}

// Fallback returns the static catalog, normalized like any feed record.
func Fallback() []Property {
	out := make([]Property, 0, len(fallbackListings))
	for _, l := range fallbackListings {
		out = append(out, Normalize(FeedListing{Listing: l}))
	}
	return out
}
