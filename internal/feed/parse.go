package feed

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// tags lists, per output field, the element names the vendor export has
// used over time.
var tags = map[string][]string{
	"id":                {"id", "identifiant", "id_bien"},
	"reference":         {"reference", "ref", "mandat"},
	"type":              {"type", "type_bien", "categorie"},
	"title":             {"titre", "title", "libelle"},
	"description":       {"descriptif", "description", "texte"},
	"price":             {"prix", "price", "prix_vente"},
	"address":           {"adresse", "address"},
	"postal_code":       {"code_postal", "cp"},
	"city":              {"ville", "city", "commune"},
	"surface":           {"surface", "surface_habitable"},
	"rooms":             {"nb_pieces", "pieces"},
	"bedrooms":          {"nb_chambres", "chambres"},
	"bathrooms":         {"nb_sdb", "salles_de_bain"},
	"construction_year": {"annee_construction", "annee"},
	"dpe":               {"dpe", "dpe_energie", "classe_energie"},
	"balcony":           {"balcon"},
	"terrace":           {"terrasse"},
	"pool":              {"piscine"},
	"elevator":          {"ascenseur"},
	"garage":            {"garage", "parking"},
	"garden":            {"jardin"},
}

// Parse flattens the vendor XML export. Records without an id or a
// reference are skipped.
func Parse(r io.Reader) ([]Listing, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("feed xml: %w", err)
	}
	nodes, err := xmlquery.QueryAll(doc, "//bien | //annonce")
	if err != nil {
		return nil, fmt.Errorf("feed xml: %w", err)
	}
	out := make([]Listing, 0, len(nodes))
	for _, n := range nodes {
		l := Listing{
			ID:               field(n, "id"),
			Reference:        field(n, "reference"),
			Type:             field(n, "type"),
			Title:            field(n, "title"),
			Description:      field(n, "description"),
			Price:            field(n, "price"),
			Address:          field(n, "address"),
			PostalCode:       field(n, "postal_code"),
			City:             field(n, "city"),
			Surface:          field(n, "surface"),
			Rooms:            field(n, "rooms"),
			Bedrooms:         field(n, "bedrooms"),
			Bathrooms:        field(n, "bathrooms"),
			ConstructionYear: field(n, "construction_year"),
			DPE:              field(n, "dpe"),
			Features: Features{
				Balcony:  yes(field(n, "balcony")),
				Terrace:  yes(field(n, "terrace")),
				Pool:     yes(field(n, "pool")),
				Elevator: yes(field(n, "elevator")),
				Garage:   yes(field(n, "garage")),
				Garden:   yes(field(n, "garden")),
			},
			Photos: photos(n),
		}
		if l.ID == "" {
			l.ID = l.Reference
		}
		if l.ID == "" {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// field reads the first non-empty child element (or attribute) named
// after one of the synonyms of key.
func field(n *xmlquery.Node, key string) string {
	for _, name := range tags[key] {
		if c := n.SelectElement(name); c != nil {
			if v := strings.TrimSpace(c.InnerText()); v != "" {
				return v
			}
		}
		if v := strings.TrimSpace(n.SelectAttr(name)); v != "" {
			return v
		}
	}
	return ""
}

func photos(n *xmlquery.Node) []string {
	out := []string{}
	for _, p := range xmlquery.Find(n, "photos/photo | images/image | photos/url") {
		u := strings.TrimSpace(p.SelectAttr("url"))
		if u == "" {
			u = strings.TrimSpace(p.InnerText())
		}
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

func yes(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "oui", "o", "yes":
		return true
	}
	n, err := strconv.Atoi(v)
	return err == nil && n > 0
}
