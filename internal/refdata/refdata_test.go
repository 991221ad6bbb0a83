package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllContinentsPopulated(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	assert.Len(t, ds.Continents, 6)
	for _, continent := range RequiredContinents {
		assert.NotEmpty(t, ds.ContinentCities[continent], "continent %s should have eligible cities", continent)
	}
}

func TestLoad_OnlyEasyVisaCountries(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	for continent, cities := range ds.ContinentCities {
		for _, c := range cities {
			assert.True(t, c.EasyVisa, "%s in %s should be visa-easy", c.Name, continent)
			assert.True(t, easyVisaCountries[c.CountryCode], "country %s should be in the easy-visa set", c.CountryCode)
		}
	}
}

func TestLoad_OceaniaIsAustraliaOnly(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	for _, c := range ds.ContinentCities["Oceania"] {
		assert.Equal(t, "AU", c.CountryCode)
	}
}

func TestCombinations(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	expected := 1
	for _, continent := range ds.Continents {
		expected *= len(ds.ContinentCities[continent])
	}
	assert.Equal(t, expected, ds.Combinations())
	assert.Greater(t, ds.Combinations(), 0)
}

func TestAirportCode_Known(t *testing.T) {
	assert.Equal(t, "DEL", AirportCode("Delhi"))
	assert.Equal(t, "IST", AirportCode("Istanbul"))
	assert.Equal(t, "GRU", AirportCode("Sao Paulo"))
	assert.Equal(t, "JFK", AirportCode("New York"))
}

func TestAirportCode_FallbackTruncates(t *testing.T) {
	assert.Equal(t, "TIM", AirportCode("Timbuktu"))
	assert.Equal(t, "XI", AirportCode("Xi"))
}
