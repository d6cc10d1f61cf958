package listings

import (
	"fmt"
	"html/template"
	"math/big"
	"net/url"
	"strconv"
	"strings"
)

const (
	mapsSearchURL = "https://www.google.com/maps/search/?api=1&query="
	placeholder   = "—"
)

// Card is the presentation model for one listing in the results grid.
type Card struct {
	Listing

	HasAddress  bool
	AddressLine string
	MapsURL     string
	TelHref     string
	CallAhead   bool
	MinOrder    string
	Price       string
	HoursText   string
}

// NewCard derives display values for a listing.
func NewCard(l Listing) Card {
	hasAddress := strings.TrimSpace(l.Address) != ""
	card := Card{
		Listing:    l,
		HasAddress: hasAddress,
		MapsURL:    MapsURL(l),
		TelHref:    TelHref(l.Phone),
		CallAhead:  l.SupplierType == TypeGrocery,
		MinOrder:   formatMinOrder(l.MinOrderLbs),
		Price:      formatPrice(l.PricePerLb),
		HoursText:  placeholder,
	}
	if hasAddress {
		comma := ""
		if l.City != "" {
			comma = ","
		}
		card.AddressLine = strings.TrimSpace(fmt.Sprintf("%s, %s%s %s %s", l.Address, l.City, comma, l.State, l.Zip))
	}
	if l.Hours != nil {
		card.HoursText = *l.Hours
	}
	return card
}

// TelLink marks the tel: href as safe for templates. It only ever holds
// digits and '+', or "#".
func (c Card) TelLink() template.URL {
	return template.URL(c.TelHref)
}

// NewCards maps listings to cards preserving order.
func NewCards(ls []Listing) []Card {
	cards := make([]Card, 0, len(ls))
	for _, l := range ls {
		cards = append(cards, NewCard(l))
	}
	return cards
}

// MapsQuery is the Google Maps search text: the street address when one is
// known, the name and locality otherwise.
func MapsQuery(l Listing) string {
	if strings.TrimSpace(l.Address) != "" {
		return strings.TrimSpace(fmt.Sprintf("%s, %s %s %s", l.Address, l.City, l.State, l.Zip))
	}
	return strings.TrimSpace(fmt.Sprintf("%s, %s %s", l.Name, l.City, l.State))
}

// MapsURL returns the Google Maps search link for a listing.
func MapsURL(l Listing) string {
	return mapsSearchURL + encodeURIComponent(MapsQuery(l))
}

// DialDigits strips a phone number down to digits and '+'.
func DialDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TelHref returns a tel: link, or "#" when nothing dialable remains.
func TelHref(phone string) string {
	digits := DialDigits(phone)
	if digits == "" {
		return "#"
	}
	return "tel:" + digits
}

func formatMinOrder(v *float64) string {
	if v == nil {
		return placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// A zero price is treated as unknown.
func formatPrice(v *float64) string {
	if v == nil || *v == 0 {
		return placeholder
	}
	return "$" + toFixed2(*v) + "/lb"
}

// toFixed2 formats a non-negative v with two decimals, rounding exact
// halves up rather than to even.
func toFixed2(v float64) string {
	x := new(big.Float).SetPrec(256).SetFloat64(v)
	x.Mul(x, big.NewFloat(100))
	cents, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(x, new(big.Float).SetPrec(256).SetInt(cents))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		cents.Add(cents, big.NewInt(1))
	}
	digits := cents.String()
	for len(digits) < 3 {
		digits = "0" + digits
	}
	return digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}

// uriComponent undoes the QueryEscape encodings that encodeURIComponent
// leaves literal.
var uriComponent = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeURIComponent(s string) string {
	return uriComponent.Replace(url.QueryEscape(s))
}
