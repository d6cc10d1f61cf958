package listings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCardWithAddress(t *testing.T) {
	card := NewCard(sampleListings()[0])

	assert.True(t, card.HasAddress)
	assert.Equal(t, "120 Main St, Rockford, IL 61101", card.AddressLine)
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=120%20Main%20St%2C%20Rockford%20IL%2061101", card.MapsURL)
	assert.Equal(t, "tel:8155550101", card.TelHref)
	assert.True(t, card.CallAhead)
	assert.Equal(t, "5", card.MinOrder)
	assert.Equal(t, "$1.99/lb", card.Price)
	assert.Equal(t, "7am-10pm", card.HoursText)
}

func TestNewCardWithoutAddressFallsBackToName(t *testing.T) {
	card := NewCard(sampleListings()[1])

	assert.False(t, card.HasAddress)
	assert.Empty(t, card.AddressLine)
	assert.Equal(t, "Airgas Belvidere, Belvidere IL", MapsQuery(sampleListings()[1]))
	assert.Equal(t, "#", card.TelHref)
	assert.False(t, card.CallAhead)
	assert.Equal(t, "—", card.MinOrder)
	assert.Equal(t, "—", card.Price)
	assert.Equal(t, "—", card.HoursText)
}

func TestNewCardEdgeValues(t *testing.T) {
	l := Listing{
		Name:        "Corner Store",
		Address:     "   ",
		MinOrderLbs: ptr(0.0),
		PricePerLb:  ptr(0.0),
		Hours:       ptr(""),
		Phone:       "call us",
	}
	card := NewCard(l)

	assert.False(t, card.HasAddress, "whitespace address is not an address")
	assert.Equal(t, "Corner Store,", MapsQuery(l))
	assert.Equal(t, "0", card.MinOrder, "zero minimum is shown")
	assert.Equal(t, "—", card.Price, "zero price is unknown")
	assert.Equal(t, "", card.HoursText, "empty hours are kept")
	assert.Equal(t, "#", card.TelHref)
}

func TestAddressLineWithoutCity(t *testing.T) {
	card := NewCard(Listing{Name: "x", Address: "1 Elm", State: "WI", Zip: "53001"})
	assert.Equal(t, "1 Elm,  WI 53001", card.AddressLine)
}

func TestDialDigits(t *testing.T) {
	cases := map[string]string{
		"(815) 555-0101":   "8155550101",
		"+1 815.555.0101":  "+18155550101",
		"815-555-0101 x12": "815555010112",
		"":                 "",
		"n/a":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, DialDigits(in), in)
	}
}

func TestMinOrderFormatting(t *testing.T) {
	assert.Equal(t, "2.5", formatMinOrder(ptr(2.5)))
	assert.Equal(t, "100", formatMinOrder(ptr(100.0)))
	assert.Equal(t, "$12.00/lb", formatPrice(ptr(12.0)))
}

func TestPriceRoundsHalvesUp(t *testing.T) {
	cases := map[float64]string{
		0.125: "$0.13/lb",
		0.625: "$0.63/lb",
		1.005: "$1.00/lb",
		1.99:  "$1.99/lb",
		0.01:  "$0.01/lb",
		0.004: "$0.00/lb",
		2.675: "$2.67/lb",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatPrice(ptr(in)), "%v", in)
	}
}

func TestMapsURLKeepsURIComponentMarks(t *testing.T) {
	l := Listing{Name: "Joe's Ice (North)!*", City: "Elgin", State: "IL"}
	assert.Equal(t,
		"https://www.google.com/maps/search/?api=1&query=Joe's%20Ice%20(North)!*%2C%20Elgin%20IL",
		MapsURL(l))
	assert.Equal(t, "a%2Bb%20~-_.", encodeURIComponent("a+b ~-_."))
}
