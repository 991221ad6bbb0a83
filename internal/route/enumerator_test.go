package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milesrun/hubhop/internal/model"
	"github.com/milesrun/hubhop/internal/refdata"
)

func testDataset(t *testing.T) *refdata.Dataset {
	t.Helper()
	ds, err := refdata.Load()
	require.NoError(t, err)
	return ds
}

// smallDataset builds a fixture with two cities per continent so the
// cross-product stays tiny.
func smallDataset() *refdata.Dataset {
	ds := &refdata.Dataset{
		Continents:      refdata.RequiredContinents,
		ContinentCities: make(map[string][]refdata.City),
	}
	seed := map[string][]refdata.City{
		"Asia":          {{CountryCode: "IN", Name: "Delhi", EasyVisa: true}, {CountryCode: "TH", Name: "Bangkok", EasyVisa: true}},
		"Europe":        {{CountryCode: "RS", Name: "Belgrade", EasyVisa: true}, {CountryCode: "GE", Name: "Tbilisi", EasyVisa: true}},
		"Africa":        {{CountryCode: "EG", Name: "Cairo", EasyVisa: true}, {CountryCode: "KE", Name: "Nairobi", EasyVisa: true}},
		"North America": {{CountryCode: "MX", Name: "Mexico City", EasyVisa: true}, {CountryCode: "CU", Name: "Havana", EasyVisa: true}},
		"South America": {{CountryCode: "BR", Name: "Sao Paulo", EasyVisa: true}, {CountryCode: "AR", Name: "Buenos Aires", EasyVisa: true}},
		"Oceania":       {{CountryCode: "AU", Name: "Sydney", EasyVisa: true}, {CountryCode: "AU", Name: "Melbourne", EasyVisa: true}},
	}
	ds.ContinentCities = seed
	return ds
}

func TestEnumerate_FullCrossProductSize(t *testing.T) {
	ds := smallDataset()
	routes := NewEnumerator(ds).Enumerate()

	// 2^6 combinations.
	assert.Len(t, routes, 64)
}

func TestEnumerate_ContinentMultisetExact(t *testing.T) {
	routes := NewEnumerator(smallDataset()).Enumerate()

	for _, r := range routes {
		require.Len(t, r, 6)
		seen := make(map[string]int)
		for _, stop := range r {
			seen[stop.Continent]++
		}
		for _, continent := range refdata.RequiredContinents {
			assert.Equal(t, 1, seen[continent], "continent %s should appear exactly once", continent)
		}
	}
}

func TestEnumerate_Deterministic(t *testing.T) {
	ds := smallDataset()
	first := NewEnumerator(ds).Enumerate()
	second := NewEnumerator(ds).Enumerate()

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Signature(), second[i].Signature())
	}
}

func TestEnumerate_SamplingDeterministicAndDeduped(t *testing.T) {
	ds := smallDataset()
	e := NewEnumerator(ds)
	e.Ceiling = 10 // force the sampling path
	e.MaxSampled = 50

	first := e.Enumerate()
	second := e.Enumerate()

	require.NotEmpty(t, first)
	assert.LessOrEqual(t, len(first), 50)
	require.Equal(t, len(first), len(second))

	seen := make(map[model.Signature]bool)
	for i, r := range first {
		assert.Equal(t, r.Signature(), second[i].Signature())
		assert.False(t, seen[r.Signature()], "sampled routes must be unique by signature")
		seen[r.Signature()] = true
	}
}

func TestEnumerate_SortedByScoreDescending(t *testing.T) {
	routes := NewEnumerator(smallDataset()).Enumerate()

	for i := 1; i < len(routes); i++ {
		assert.GreaterOrEqual(t, Score(routes[i-1]), Score(routes[i]))
	}
}

func TestEnumerate_RealDatasetUnderCeiling(t *testing.T) {
	ds := testDataset(t)
	require.LessOrEqual(t, ds.Combinations(), 100000, "full visa-easy dataset should permit complete coverage")

	routes := NewEnumerator(ds).Enumerate()
	assert.Len(t, routes, ds.Combinations())
}

func TestScore_CountryReuseBonus(t *testing.T) {
	base := model.Route{
		{Continent: "Asia", CountryCode: "IN", City: "Delhi", EasyVisa: true},
		{Continent: "Europe", CountryCode: "RS", City: "Belgrade", EasyVisa: true},
	}
	reused := model.Route{
		{Continent: "Asia", CountryCode: "IN", City: "Delhi", EasyVisa: true},
		{Continent: "Europe", CountryCode: "IN", City: "Delhi", EasyVisa: true},
	}

	assert.Equal(t, 20, Score(base))
	assert.Equal(t, 25, Score(reused))
}
