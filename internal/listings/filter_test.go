package listings

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dryice-locator/locator/internal/platform/httpx"
)

func TestApplyZeroFilterReturnsAllInOrder(t *testing.T) {
	all := sampleListings()
	got := Apply(all, Filter{})
	if diff := cmp.Diff(names(all), names(got)); diff != "" {
		t.Fatalf("unexpected results (-want +got):\n%s", diff)
	}
	assert.Equal(t, names(all), names(Apply(all, ClearedFilter())))
}

func TestApplyFilters(t *testing.T) {
	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"query matches city case-insensitively", Filter{Query: "  rockford "}, []string{"Hometown Grocery"}},
		{"query matches notes", Filter{Query: "pelletized"}, []string{"Ice House Supply"}},
		{"query matches joined forms", Filter{Query: "blocks, slices"}, []string{"Ice House Supply"}},
		{"query matches supplier type", Filter{Query: "welding"}, []string{"Airgas Belvidere"}},
		{"query folds unicode", Filter{Query: "école"}, []string{"ÉCOLE Chemicals"}},
		{"query ignores website and phone", Filter{Query: "airgas.example"}, []string{}},
		{"type exact", Filter{Type: "Specialty Ice"}, []string{"Ice House Supply"}},
		{"type is case sensitive", Filter{Type: "grocery"}, []string{}},
		{"type all", Filter{Type: OptionAll}, []string{"Hometown Grocery", "Airgas Belvidere", "Ice House Supply", "ÉCOLE Chemicals"}},
		{"form membership", Filter{Form: "Pellets"}, []string{"Hometown Grocery", "Airgas Belvidere"}},
		{"featured only", Filter{FeaturedOnly: true}, []string{"Hometown Grocery", "Ice House Supply"}},
		{"conjunction", Filter{Query: "il", Form: "Blocks", FeaturedOnly: true, Type: "Grocery"}, []string{"Hometown Grocery"}},
		{"no match", Filter{Query: "nowhere"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := names(Apply(sampleListings(), tc.filter))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("unexpected results (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTypeFilterReturnsOnlyThatType(t *testing.T) {
	all := sampleListings()
	for _, typ := range TypeOptions() {
		for _, l := range Apply(all, Filter{Type: typ}) {
			if typ != OptionAll {
				assert.Equal(t, typ, l.SupplierType)
			}
		}
		if typ == OptionAll {
			assert.Len(t, Apply(all, Filter{Type: typ}), len(all))
		}
	}
}

func TestRestrictionsNeverGrowResults(t *testing.T) {
	all := sampleListings()
	base := Filter{Query: "il"}
	baseCount := len(Apply(all, base))
	narrowed := []Filter{
		{Query: "il", Type: "Grocery"},
		{Query: "il", Form: "Blocks"},
		{Query: "il", FeaturedOnly: true},
	}
	for _, f := range narrowed {
		assert.LessOrEqual(t, len(Apply(all, f)), baseCount, "%+v", f)
	}
}

func TestMatchesAgreesWithSnapshotSearch(t *testing.T) {
	all := sampleListings()
	snap := NewSnapshot("mem", all, testTime)
	f := Filter{Query: "ice", FeaturedOnly: true}
	var want []string
	for _, l := range all {
		if f.Matches(l) {
			want = append(want, l.Name)
		}
	}
	assert.Equal(t, want, names(snap.Search(f)))
}

func TestFilterValidate(t *testing.T) {
	require.NoError(t, Filter{}.Validate())
	require.NoError(t, Filter{Type: "Pharmacy", Form: "Pelletized Snow"}.Validate())
	require.NoError(t, ClearedFilter().Validate())

	err := Filter{Type: "Bakery"}.Validate()
	require.ErrorIs(t, err, httpx.ErrValidation)
	assert.Contains(t, err.Error(), `"Bakery"`)

	err = Filter{Form: "Cubes"}.Validate()
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestFilterQueryRoundTrip(t *testing.T) {
	values, err := url.ParseQuery("q=rockford&type=Grocery&form=All&featured=on")
	require.NoError(t, err)

	f := FilterFromQuery(values)
	assert.Equal(t, Filter{Query: "rockford", Type: "Grocery", Form: OptionAll, FeaturedOnly: true}, f)
	assert.True(t, f.Active())
	assert.Equal(t, "featured=1&q=rockford&type=Grocery", f.Values().Encode())

	assert.False(t, FilterFromQuery(url.Values{"featured": {"0"}}).FeaturedOnly)
	assert.False(t, ClearedFilter().Active())
	assert.Empty(t, ClearedFilter().Values())
}
