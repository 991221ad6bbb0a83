// Package refdata holds the static reference data the route enumerator works
// from: continent membership, major cities per country, the visa-easy country
// set, and city→airport-code mappings. Loaded once at startup, never mutated.
package refdata

import (
	"github.com/rotisserie/eris"
)

// RequiredContinents lists the six continents every route must visit.
var RequiredContinents = []string{"Asia", "Europe", "Africa", "North America", "South America", "Oceania"}

// continentCountries maps each continent to its eligible country codes.
var continentCountries = map[string][]string{
	"Europe":        {"DE", "AT", "AZ", "BE", "GB", "BA", "BG", "CZ", "DK", "EE", "FI", "FR", "GE", "HR", "NL", "IE", "ES", "SE", "CH", "IT", "ME", "XK", "LV", "LT", "LU", "HU", "MK", "MT", "MD", "NO", "PL", "PT", "RO", "RU", "RS", "SI", "GR"},
	"North America": {"US", "CA", "CU", "MX", "PA"},
	"South America": {"AR", "BR", "CO", "CL", "VE"},
	"Asia":          {"AF", "BH", "BD", "AE", "CN", "ID", "PH", "KR", "IN", "IQ", "IR", "JP", "QA", "KZ", "KG", "KW", "LB", "MV", "MY", "MN", "NP", "UZ", "PK", "SG", "LK", "SY", "SA", "TH", "TM", "OM", "JO", "VN", "TR"},
	"Africa":        {"AO", "BJ", "BF", "DZ", "DJ", "TD", "CD", "ER", "ET", "MA", "CI", "GA", "GM", "GH", "GN", "ZA", "SS", "CM", "KE", "CG", "LY", "MG", "ML", "MU", "EG", "MR", "MZ", "NE", "NG", "RW", "SN", "SL", "SO", "TZ", "TN", "UG", "ZM"},
	"Oceania":       {"AU"},
}

// countryCities maps country codes to their major cities.
var countryCities = map[string][]string{
	// Asia
	"IN": {"Delhi", "Mumbai"},
	"AE": {"Dubai", "Abu Dhabi"},
	"SG": {"Singapore"},
	"TH": {"Bangkok", "Phuket"},
	"TR": {"Istanbul"},
	"ID": {"Jakarta", "Bali"},
	"QA": {"Doha"},
	"MY": {"Kuala Lumpur"},
	"BD": {"Dhaka"},
	"LK": {"Colombo"},
	"MV": {"Male"},
	"CN": {"Beijing", "Shanghai"},
	"JP": {"Tokyo", "Osaka"},
	"KR": {"Seoul"},
	"PH": {"Manila"},
	"VN": {"Ho Chi Minh City", "Hanoi"},
	"SA": {"Riyadh", "Jeddah"},
	"KW": {"Kuwait City"},
	"BH": {"Manama"},
	"OM": {"Muscat"},
	"LB": {"Beirut"},
	"AF": {"Kabul"},
	"KZ": {"Almaty"},
	"UZ": {"Tashkent"},
	"KG": {"Bishkek"},
	"TM": {"Ashgabat"},
	"MN": {"Ulaanbaatar"},

	// Europe
	"DE": {"Frankfurt", "Munich", "Berlin"},
	"FR": {"Paris", "Lyon"},
	"NL": {"Amsterdam"},
	"IT": {"Rome", "Milan"},
	"ES": {"Madrid", "Barcelona"},
	"GB": {"London", "Manchester"},
	"RU": {"Moscow", "Saint Petersburg"},
	"AT": {"Vienna"},
	"BE": {"Brussels"},
	"CH": {"Zurich", "Geneva"},
	"SE": {"Stockholm"},
	"NO": {"Oslo"},
	"DK": {"Copenhagen"},
	"FI": {"Helsinki"},
	"PL": {"Warsaw", "Krakow"},
	"CZ": {"Prague"},
	"HU": {"Budapest"},
	"GR": {"Athens"},
	"PT": {"Lisbon"},
	"RO": {"Bucharest"},
	"BG": {"Sofia"},
	"HR": {"Zagreb"},
	"RS": {"Belgrade"},
	"BA": {"Sarajevo"},
	"ME": {"Podgorica"},
	"SI": {"Ljubljana"},
	"MK": {"Skopje"},
	"AZ": {"Baku"},
	"GE": {"Tbilisi"},
	"MD": {"Chisinau"},
	"EE": {"Tallinn"},
	"LV": {"Riga"},
	"LT": {"Vilnius"},
	"LU": {"Luxembourg"},
	"MT": {"Valletta"},
	"IE": {"Dublin"},

	// Africa
	"EG": {"Cairo", "Alexandria"},
	"KE": {"Nairobi"},
	"ZA": {"Johannesburg", "Cape Town"},
	"MA": {"Casablanca", "Marrakech"},
	"TN": {"Tunis"},
	"DZ": {"Algiers"},
	"LY": {"Tripoli"},
	"ET": {"Addis Ababa"},
	"GH": {"Accra"},
	"NG": {"Lagos", "Abuja"},
	"SN": {"Dakar"},
	"CI": {"Abidjan"},
	"CM": {"Douala"},
	"CD": {"Kinshasa"},
	"AO": {"Luanda"},
	"UG": {"Kampala"},
	"TZ": {"Dar es Salaam"},
	"RW": {"Kigali"},
	"MU": {"Port Louis"},

	// North America
	"US": {"New York", "Los Angeles", "Chicago", "Miami", "San Francisco", "Washington DC", "Seattle", "Boston"},
	"CA": {"Toronto", "Montreal", "Vancouver"},
	"MX": {"Mexico City", "Cancun"},
	"PA": {"Panama City"},

	// South America
	"BR": {"Sao Paulo", "Rio de Janeiro"},
	"AR": {"Buenos Aires"},
	"CO": {"Bogota", "Medellin"},
	"CL": {"Santiago"},
	"VE": {"Caracas"},

	// Oceania
	"AU": {"Melbourne", "Sydney"},
}

// easyVisaCountries is the set of countries with low-friction entry
// (visa-free, visa-on-arrival, or e-visa) for the traveler.
var easyVisaCountries = map[string]bool{
	"IN": true, "AE": true, "QA": true, "ID": true, "TH": true, "MY": true,
	"SG": true, "LK": true, "MV": true, "TR": true, "GE": true, "KE": true,
	"EG": true, "MU": true, "BR": true, "AR": true, "CU": true, "CO": true,
	"BA": true, "RS": true, "ME": true, "MK": true, "MD": true, "AU": true,
	"UZ": true, "ZA": true, "MA": true, "AZ": true, "CA": true, "MX": true,
}

// Dataset is the loaded, validated reference data.
type Dataset struct {
	Continents      []string
	ContinentCities map[string][]City
}

// City is one eligible (country, city) pair within a continent.
type City struct {
	CountryCode string
	Name        string
	EasyVisa    bool
}

// Load restricts the raw mappings to visa-easy countries and validates that
// every required continent still has at least one eligible city. An empty
// continent is a configuration error, not something to recover from at runtime.
func Load() (*Dataset, error) {
	ds := &Dataset{
		Continents:      RequiredContinents,
		ContinentCities: make(map[string][]City, len(RequiredContinents)),
	}

	for _, continent := range RequiredContinents {
		codes, ok := continentCountries[continent]
		if !ok {
			return nil, eris.Errorf("refdata: continent %q missing from country mapping", continent)
		}
		for _, code := range codes {
			if !easyVisaCountries[code] {
				continue
			}
			for _, name := range countryCities[code] {
				ds.ContinentCities[continent] = append(ds.ContinentCities[continent], City{
					CountryCode: code,
					Name:        name,
					EasyVisa:    true,
				})
			}
		}
		if len(ds.ContinentCities[continent]) == 0 {
			return nil, eris.Errorf("refdata: no eligible cities for continent %q after visa filtering", continent)
		}
	}

	return ds, nil
}

// Combinations returns the size of the full cross-product over all continents.
func (d *Dataset) Combinations() int {
	total := 1
	for _, continent := range d.Continents {
		total *= len(d.ContinentCities[continent])
	}
	return total
}
