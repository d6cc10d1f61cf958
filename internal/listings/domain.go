// Package listings holds the supplier directory: the record model, the
// filter predicate, the file-backed store and the HTTP surface over it.
package listings

import "slices"

// OptionAll is the selector value that disables a category or form filter.
const OptionAll = "All"

// SupplierTypes lists the supplier categories in display order.
var SupplierTypes = []string{
	"Grocery",
	"Welding Supply",
	"Gas Supplier",
	"Party Store",
	"Industrial",
	"Pharmacy",
	"Specialty Ice",
	"Catering Supply",
	"Other",
}

// Forms lists the dry ice forms in display order.
var Forms = []string{
	"Blocks",
	"Pellets",
	"Nuggets",
	"Slices",
	"Pelletized Snow",
	"Other",
}

// TypeGrocery marks suppliers whose stock should be confirmed by phone.
const TypeGrocery = "Grocery"

// Listing is a single supplier record. Listings are never mutated after load.
type Listing struct {
	Name         string   `json:"name" yaml:"name" validate:"notblank"`
	Address      string   `json:"address,omitempty" yaml:"address,omitempty"`
	City         string   `json:"city,omitempty" yaml:"city,omitempty"`
	State        string   `json:"state,omitempty" yaml:"state,omitempty"`
	Zip          string   `json:"zip,omitempty" yaml:"zip,omitempty"`
	Phone        string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Website      string   `json:"website,omitempty" yaml:"website,omitempty" validate:"omitempty,http_url"`
	SupplierType string   `json:"supplierType,omitempty" yaml:"supplierType,omitempty" validate:"omitempty,supplier_type"`
	Forms        []string `json:"forms,omitempty" yaml:"forms,omitempty" validate:"omitempty,dive,dry_ice_form"`
	MinOrderLbs  *float64 `json:"minOrderLbs" yaml:"minOrderLbs" validate:"omitempty,gte=0"`
	PricePerLb   *float64 `json:"pricePerLb" yaml:"pricePerLb" validate:"omitempty,gte=0"`
	Hours        *string  `json:"hours" yaml:"hours"`
	Notes        string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Featured     bool     `json:"featured" yaml:"featured"`
}

// HasForm reports whether the listing offers the given form.
func (l Listing) HasForm(form string) bool {
	return slices.Contains(l.Forms, form)
}

// IsSupplierType reports whether v is one of the known supplier categories.
func IsSupplierType(v string) bool {
	return slices.Contains(SupplierTypes, v)
}

// IsForm reports whether v is one of the known dry ice forms.
func IsForm(v string) bool {
	return slices.Contains(Forms, v)
}

// TypeOptions returns the category selector options, All first.
func TypeOptions() []string {
	return append([]string{OptionAll}, SupplierTypes...)
}

// FormOptions returns the form selector options, All first.
func FormOptions() []string {
	return append([]string{OptionAll}, Forms...)
}
