package listings

import "time"

var testTime = time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func sampleListings() []Listing {
	return []Listing{
		{
			Name:         "Hometown Grocery",
			Address:      "120 Main St",
			City:         "Rockford",
			State:        "IL",
			Zip:          "61101",
			Phone:        "(815) 555-0101",
			SupplierType: "Grocery",
			Forms:        []string{"Blocks", "Pellets"},
			MinOrderLbs:  ptr(5.0),
			PricePerLb:   ptr(1.99),
			Hours:        ptr("7am-10pm"),
			Notes:        "Ask at customer service",
			Featured:     true,
		},
		{
			Name:         "Airgas Belvidere",
			City:         "Belvidere",
			State:        "IL",
			Website:      "https://www.airgas.example",
			SupplierType: "Welding Supply",
			Forms:        []string{"Pellets", "Nuggets"},
		},
		{
			Name:         "Ice House Supply",
			Address:      "9 Industrial Pkwy",
			City:         "Loves Park",
			State:        "IL",
			SupplierType: "Specialty Ice",
			Forms:        []string{"Blocks", "Slices"},
			Notes:        "Pelletized snow on request",
			Featured:     true,
		},
		{
			Name:         "ÉCOLE Chemicals",
			City:         "Chicago",
			State:        "IL",
			SupplierType: "Industrial",
		},
	}
}

func names(ls []Listing) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Name)
	}
	return out
}
