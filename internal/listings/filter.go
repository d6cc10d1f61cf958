package listings

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dryice-locator/locator/internal/platform/httpx"
)

// Filter captures the directory controls. The zero value matches everything.
type Filter struct {
	Query        string `json:"q,omitempty"`
	Type         string `json:"type,omitempty"`
	Form         string `json:"form,omitempty"`
	FeaturedOnly bool   `json:"featured,omitempty"`
}

// ClearedFilter is the state the Clear control resets to.
func ClearedFilter() Filter {
	return Filter{Type: OptionAll, Form: OptionAll}
}

// FilterFromQuery reads q, type, form and featured from URL query values.
func FilterFromQuery(values url.Values) Filter {
	return Filter{
		Query:        values.Get("q"),
		Type:         values.Get("type"),
		Form:         values.Get("form"),
		FeaturedOnly: parseFlag(values.Get("featured")),
	}
}

func parseFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// Values encodes the filter back into query values, omitting defaults.
func (f Filter) Values() url.Values {
	values := url.Values{}
	if f.Query != "" {
		values.Set("q", f.Query)
	}
	if !isAll(f.Type) {
		values.Set("type", f.Type)
	}
	if !isAll(f.Form) {
		values.Set("form", f.Form)
	}
	if f.FeaturedOnly {
		values.Set("featured", "1")
	}
	return values
}

// Validate rejects category and form values outside the fixed option sets.
func (f Filter) Validate() error {
	if !isAll(f.Type) && !IsSupplierType(f.Type) {
		return fmt.Errorf("listings: unknown supplier type %q: %w", f.Type, httpx.ErrValidation)
	}
	if !isAll(f.Form) && !IsForm(f.Form) {
		return fmt.Errorf("listings: unknown form %q: %w", f.Form, httpx.ErrValidation)
	}
	return nil
}

// Active reports whether any control narrows the result set.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Query) != "" || !isAll(f.Type) || !isAll(f.Form) || f.FeaturedOnly
}

// Matches applies the filter to a single listing.
func (f Filter) Matches(l Listing) bool {
	return f.matches(l, Haystack(l), fold(strings.TrimSpace(f.Query)))
}

func (f Filter) matches(l Listing, hay, term string) bool {
	if term != "" && !strings.Contains(hay, term) {
		return false
	}
	if !isAll(f.Type) && l.SupplierType != f.Type {
		return false
	}
	if !isAll(f.Form) && !l.HasForm(f.Form) {
		return false
	}
	if f.FeaturedOnly && !l.Featured {
		return false
	}
	return true
}

// Haystack returns the case-folded text searched by the free-text query.
func Haystack(l Listing) string {
	parts := []string{
		l.Name,
		l.Address,
		l.City,
		l.State,
		l.Zip,
		l.Notes,
		l.SupplierType,
		strings.Join(l.Forms, ", "),
	}
	return fold(strings.Join(parts, " "))
}

// Apply filters listings in order. It recomputes haystacks; snapshots use
// their precomputed index instead.
func Apply(all []Listing, f Filter) []Listing {
	term := fold(strings.TrimSpace(f.Query))
	out := make([]Listing, 0, len(all))
	for _, l := range all {
		if f.matches(l, Haystack(l), term) {
			out = append(out, l)
		}
	}
	return out
}

func isAll(v string) bool {
	return v == "" || v == OptionAll
}

// cases.Caser keeps state, so each call gets its own.
func fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Lower(language.Und).String(s)
}
