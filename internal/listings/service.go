package listings

import (
	"context"
	"time"
)

// Source supplies the current snapshot.
type Source interface {
	Snapshot() *Snapshot
}

// Result is one filtered view of the directory.
type Result struct {
	Filter   Filter    `json:"filter"`
	Count    int       `json:"count"`
	Total    int       `json:"total"`
	Results  []Listing `json:"results"`
	LoadedAt time.Time `json:"loadedAt"`
	Source   string    `json:"-"`
}

// FacetOption is a selector value and the number of listings carrying it.
type FacetOption struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facets lists the selector options with per-option counts.
type Facets struct {
	SupplierTypes []FacetOption `json:"supplierTypes"`
	Forms         []FacetOption `json:"forms"`
	Featured      int           `json:"featured"`
	Total         int           `json:"total"`
}

// Service answers directory queries against the current snapshot.
type Service struct {
	source Source
}

// NewService wires the service to a snapshot source.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// Search validates the filter and returns matching listings in load order.
func (s *Service) Search(ctx context.Context, f Filter) (Result, error) {
	snap := s.Current()
	empty := Result{Filter: f, Total: snap.Len(), Results: []Listing{}, LoadedAt: snap.LoadedAt, Source: snap.Source}
	if err := f.Validate(); err != nil {
		return empty, err
	}
	if err := ctx.Err(); err != nil {
		return empty, err
	}
	matched := snap.Search(f)
	return Result{
		Filter:   f,
		Count:    len(matched),
		Total:    snap.Len(),
		Results:  matched,
		LoadedAt: snap.LoadedAt,
		Source:   snap.Source,
	}, nil
}

// All returns every loaded listing.
func (s *Service) All(ctx context.Context) []Listing {
	snap := s.Current()
	if snap.Listings == nil {
		return []Listing{}
	}
	return snap.Listings
}

// Facets counts listings per supplier type and per form.
func (s *Service) Facets(ctx context.Context) Facets {
	snap := s.Current()
	typeCounts := make(map[string]int, len(SupplierTypes))
	formCounts := make(map[string]int, len(Forms))
	featured := 0
	for _, l := range snap.Listings {
		typeCounts[l.SupplierType]++
		for _, form := range l.Forms {
			formCounts[form]++
		}
		if l.Featured {
			featured++
		}
	}
	facets := Facets{Featured: featured, Total: snap.Len()}
	facets.SupplierTypes = append(facets.SupplierTypes, FacetOption{Value: OptionAll, Count: snap.Len()})
	for _, t := range SupplierTypes {
		facets.SupplierTypes = append(facets.SupplierTypes, FacetOption{Value: t, Count: typeCounts[t]})
	}
	facets.Forms = append(facets.Forms, FacetOption{Value: OptionAll, Count: snap.Len()})
	for _, f := range Forms {
		facets.Forms = append(facets.Forms, FacetOption{Value: f, Count: formCounts[f]})
	}
	return facets
}

// Current returns the source snapshot, or an empty one before the first load.
func (s *Service) Current() *Snapshot {
	if snap := s.source.Snapshot(); snap != nil {
		return snap
	}
	return &Snapshot{}
}
