package property

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Field is a canonical property attribute.
type Field string

const (
	FieldID               Field = "id"
	FieldTitle            Field = "title"
	FieldPrice            Field = "price"
	FieldCity             Field = "city"
	FieldAddress          Field = "address"
	FieldPostalCode       Field = "postal_code"
	FieldType             Field = "type"
	FieldSurface          Field = "surface"
	FieldRooms            Field = "rooms"
	FieldBedrooms         Field = "bedrooms"
	FieldBathrooms        Field = "bathrooms"
	FieldReference        Field = "reference"
	FieldExcerpt          Field = "excerpt"
	FieldDescription      Field = "description"
	FieldDate             Field = "date"
	FieldBalcony          Field = "balcony"
	FieldTerrace          Field = "terrace"
	FieldPool             Field = "pool"
	FieldElevator         Field = "elevator"
	FieldNewBuild         Field = "new_build"
	FieldPrestige         Field = "prestige"
	FieldFurnished        Field = "furnished"
	FieldLifeAnnuity      Field = "life_annuity"
	FieldGarages          Field = "garages"
	FieldConstructionYear Field = "construction_year"
	FieldDPEEnergy        Field = "dpe_energy"
	FieldDPEGes           Field = "dpe_ges"
	FieldDPEDate          Field = "dpe_date"
	FieldFloor            Field = "floor"
	FieldTotalFloors      Field = "total_floors"
	FieldLandArea         Field = "land_area"
	FieldNegotiatorName   Field = "negotiator_name"
	FieldNegotiatorPhone  Field = "negotiator_phone"
	FieldNegotiatorEmail  Field = "negotiator_email"
)

// synonyms lists, in priority order, every field name a backend has used
// for a canonical attribute.
var synonyms = map[Field][]string{
	FieldID:               {"id", "ID", "id_bien"},
	FieldTitle:            {"title", "titre", "nom_bien"},
	FieldPrice:            {"prix_affiche", "prix", "price", "prix_vente"},
	FieldCity:             {"ville", "city", "localisation", "location", "commune"},
	FieldAddress:          {"adresse", "address", "rue"},
	FieldPostalCode:       {"code_postal", "cp", "postal_code", "zip"},
	FieldType:             {"type_bien", "type", "property_type", "categorie"},
	FieldSurface:          {"surface", "surface_habitable", "surface_m2", "area"},
	FieldRooms:            {"nb_pieces", "pieces", "nombre_pieces", "rooms"},
	FieldBedrooms:         {"nb_chambres", "chambres", "nombre_chambres", "bedrooms"},
	FieldBathrooms:        {"nb_sdb", "salles_de_bain", "salles_bain", "bathrooms"},
	FieldReference:        {"reference", "ref", "reference_bien", "mandat"},
	FieldExcerpt:          {"excerpt", "extrait", "resume", "accroche"},
	FieldDescription:      {"content", "description", "descriptif", "texte"},
	FieldDate:             {"date", "date_publication", "date_creation", "created_at"},
	FieldBalcony:          {"balcon", "balcony"},
	FieldTerrace:          {"terrasse", "terrace"},
	FieldPool:             {"piscine", "pool"},
	FieldElevator:         {"ascenseur", "elevator"},
	FieldNewBuild:         {"neuf", "programme_neuf", "new_construction"},
	FieldPrestige:         {"prestige", "bien_prestige", "is_prestige"},
	FieldFurnished:        {"meuble", "furnished"},
	FieldLifeAnnuity:      {"viager", "life_annuity"},
	FieldGarages:          {"nb_garages", "garages", "garage", "parking"},
	FieldConstructionYear: {"annee_construction", "construction_year", "year_built"},
	FieldDPEEnergy:        {"dpe_energie", "dpe", "classe_energie", "energy_class"},
	FieldDPEGes:           {"dpe_ges", "ges", "classe_ges"},
	FieldDPEDate:          {"dpe_date", "date_dpe"},
	FieldFloor:            {"etage", "floor"},
	FieldTotalFloors:      {"nb_etages", "etages", "total_floors"},
	FieldLandArea:         {"surface_terrain", "terrain", "land_area"},
	FieldNegotiatorName:   {"negociateur_nom", "negociateur", "agent_name"},
	FieldNegotiatorPhone:  {"negociateur_telephone", "negociateur_tel", "agent_phone"},
	FieldNegotiatorEmail:  {"negociateur_email", "agent_email"},
}

// Synonyms returns a copy of the accepted source names for f.
func Synonyms(f Field) []string {
	return append([]string(nil), synonyms[f]...)
}

// Record is the source-independent view an adapter builds from a raw
// payload: the top-level object, the nested ACF object, the image
// candidates in discovery order and the source-specific identity bits.
type Record struct {
	Top    map[string]any
	ACF    map[string]any
	Images []string
}

// Lookup resolves f: every synonym is tried on the top-level object first,
// then on the nested ACF object. The first non-empty value wins.
func (r Record) Lookup(f Field) (string, bool) {
	names := synonyms[f]
	for _, obj := range []map[string]any{r.Top, r.ACF} {
		for _, name := range names {
			if v, ok := valueString(obj[name]); ok {
				return v, true
			}
		}
	}
	return "", false
}

// Get is Lookup with a default value.
func (r Record) Get(f Field, def string) string {
	if v, ok := r.Lookup(f); ok {
		return v
	}
	return def
}

// valueString renders a scalar JSON value as text. null, false, empty
// strings, arrays and objects without a "rendered" key are all empty.
func valueString(v any) (string, bool) {
	var s string
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		s = x
	case json.Number:
		s = x.String()
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		s = strconv.Itoa(x)
	case bool:
		if !x {
			return "", false
		}
		s = "true"
	case map[string]any:
		return valueString(x["rendered"])
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
