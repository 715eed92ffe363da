package property

import (
	"hash/fnv"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"github.com/remymerlhiot/cote-sud-api/internal/canon"
)

// Normalize converts any raw payload into the canonical Property. It never
// fails: every missing text field becomes NotCommunicated and every
// missing flag false.
func Normalize(raw Raw) Property {
	r := raw.record()
	text := func(f Field) string { return r.Get(f, NotCommunicated) }
	flag := func(f Field) bool {
		v, _ := r.Lookup(f)
		return Truthy(v)
	}

	rawPrice, _ := r.Lookup(FieldPrice)
	price := ParsePrice(rawPrice)
	images := assembleImages(r.Images)

	p := Property{
		ID:          propertyID(r),
		Source:      raw.Source(),
		Title:       html.UnescapeString(text(FieldTitle)),
		Type:        text(FieldType),
		Reference:   text(FieldReference),
		PriceLabel:  priceLabel(rawPrice, price),
		Price:       price,
		OnSale:      rawPrice != "",
		City:        text(FieldCity),
		Address:     text(FieldAddress),
		PostalCode:  text(FieldPostalCode),
		Surface:     withAreaUnit(r.Get(FieldSurface, "")),
		Rooms:       text(FieldRooms),
		Bedrooms:    text(FieldBedrooms),
		Bathrooms:   text(FieldBathrooms),
		Image:       images[0],
		AllImages:   images,
		Excerpt:     plainText(r.Get(FieldExcerpt, "")),
		Description: plainText(r.Get(FieldDescription, "")),

		Balcony:     flag(FieldBalcony),
		Terrace:     flag(FieldTerrace),
		Pool:        flag(FieldPool),
		Elevator:    flag(FieldElevator),
		NewBuild:    flag(FieldNewBuild),
		Prestigious: flag(FieldPrestige) || price > PrestigeThreshold,
		Furnished:   flag(FieldFurnished),
		LifeAnnuity: flag(FieldLifeAnnuity),

		Garages:          text(FieldGarages),
		ConstructionYear: text(FieldConstructionYear),
		DPEEnergy:        text(FieldDPEEnergy),
		DPEGes:           text(FieldDPEGes),
		DPEDate:          text(FieldDPEDate),
		Floor:            text(FieldFloor),
		TotalFloors:      text(FieldTotalFloors),
		LandArea:         withAreaUnit(r.Get(FieldLandArea, "")),
		NegotiatorName:   text(FieldNegotiatorName),
		NegotiatorPhone:  text(FieldNegotiatorPhone),
		NegotiatorEmail:  text(FieldNegotiatorEmail),

		PublishedAt: publishedAt(r),
	}
	return p
}

// Truthy reports whether a raw flag value means yes: "1", "true" or "oui",
// in any case.
func Truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "oui":
		return true
	}
	return false
}

// ParsePrice keeps the digits of a raw price and parses them. Anything that
// does not parse is 0.
func ParsePrice(raw string) int {
	n, err := strconv.Atoi(canon.Digits(raw))
	if err != nil {
		return 0
	}
	return n
}

func priceLabel(raw string, price int) string {
	switch {
	case raw == "":
		return PriceOnRequest
	case price > 0:
		return canon.GroupThousands(price) + " €"
	default:
		return raw
	}
}

func withAreaUnit(v string) string {
	if v == "" {
		return NotCommunicated
	}
	f := strings.ToLower(v)
	if strings.Contains(f, "m²") || strings.Contains(f, "m2") {
		return v
	}
	return v + areaUnit
}

// plainText drops the markup of a CMS excerpt or body.
func plainText(s string) string {
	if s == "" {
		return NotCommunicated
	}
	if !strings.ContainsAny(s, "<&") {
		return canon.CollapseSpaces(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return canon.CollapseSpaces(s)
	}
	out := canon.CollapseSpaces(doc.Text())
	if out == "" {
		return NotCommunicated
	}
	return out
}

// propertyID uses the numeric source id when there is one and a stable hash
// of the reference (or title) otherwise.
func propertyID(r Record) int {
	v, _ := r.Lookup(FieldID)
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	key := r.Get(FieldReference, "")
	if key == "" {
		key = v
	}
	if key == "" {
		key = r.Get(FieldTitle, "")
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() & 0x7fffffff)
}

func publishedAt(r Record) time.Time {
	v, ok := r.Lookup(FieldDate)
	if !ok {
		return time.Time{}
	}
	t, err := dateparse.ParseIn(v, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
