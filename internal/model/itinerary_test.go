package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sixStopRoute() Route {
	return Route{
		{Continent: "Asia", CountryCode: "IN", City: "Delhi", EasyVisa: true},
		{Continent: "Africa", CountryCode: "EG", City: "Cairo", EasyVisa: true},
		{Continent: "Europe", CountryCode: "DE", City: "Frankfurt", EasyVisa: false},
		{Continent: "North America", CountryCode: "US", City: "New York", EasyVisa: false},
		{Continent: "South America", CountryCode: "BR", City: "Sao Paulo", EasyVisa: true},
		{Continent: "Oceania", CountryCode: "AU", City: "Sydney", EasyVisa: true},
	}
}

func TestSignature_PermutationInvariant(t *testing.T) {
	r := sixStopRoute()

	reversed := make(Route, len(r))
	for i, s := range r {
		reversed[len(r)-1-i] = s
	}

	assert.Equal(t, r.Signature(), reversed.Signature())
}

func TestSignature_DistinguishesDifferentStops(t *testing.T) {
	a := sixStopRoute()
	b := sixStopRoute()
	b[0].City = "Mumbai"

	assert.NotEqual(t, a.Signature(), b.Signature())
}

func TestEasyVisaCount(t *testing.T) {
	assert.Equal(t, 4, sixStopRoute().EasyVisaCount())
}

func TestCountries(t *testing.T) {
	r := sixStopRoute()
	r[2].CountryCode = "IN" // reuse India for the Europe stop

	countries := r.Countries()
	assert.Len(t, countries, 5)
	assert.True(t, countries["IN"])
}

func TestRouteString(t *testing.T) {
	r := Route{
		{Continent: "Asia", CountryCode: "IN", City: "Delhi"},
		{Continent: "Africa", CountryCode: "EG", City: "Cairo"},
	}
	assert.Equal(t, "Delhi (IN) → Cairo (EG)", r.String())
}
