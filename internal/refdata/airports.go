package refdata

import "strings"

// airportCodes maps city names to their primary airport code.
var airportCodes = map[string]string{
	// Asia
	"Delhi": "DEL", "Mumbai": "BOM", "Hyderabad": "HYD", "Bangalore": "BLR",
	"Dubai": "DXB", "Abu Dhabi": "AUH", "Singapore": "SIN", "Bangkok": "BKK",
	"Phuket": "HKT", "Istanbul": "IST", "Ankara": "ESB", "Jakarta": "CGK",
	"Bali": "DPS", "Doha": "DOH", "Kuala Lumpur": "KUL", "Dhaka": "DAC",
	"Colombo": "CMB", "Male": "MLE", "Beijing": "PEK", "Shanghai": "PVG",
	"Tokyo": "NRT", "Osaka": "KIX", "Seoul": "ICN", "Manila": "MNL",
	"Ho Chi Minh City": "SGN", "Hanoi": "HAN", "Riyadh": "RUH", "Jeddah": "JED",
	"Kuwait City": "KWI", "Manama": "BAH", "Muscat": "MCT", "Beirut": "BEY",
	"Kabul": "KBL", "Almaty": "ALA", "Tashkent": "TAS", "Bishkek": "FRU",
	"Ashgabat": "ASB", "Ulaanbaatar": "ULN", "Kathmandu": "KTM",

	// Europe
	"Frankfurt": "FRA", "Munich": "MUC", "Berlin": "BER", "Paris": "CDG",
	"Lyon": "LYS", "Amsterdam": "AMS", "Rome": "FCO", "Milan": "MXP",
	"Madrid": "MAD", "Barcelona": "BCN", "London": "LHR", "Manchester": "MAN",
	"Moscow": "SVO", "Saint Petersburg": "LED", "Vienna": "VIE", "Brussels": "BRU",
	"Zurich": "ZUR", "Geneva": "GVA", "Stockholm": "ARN", "Oslo": "OSL",
	"Copenhagen": "CPH", "Helsinki": "HEL", "Warsaw": "WAW", "Krakow": "KRK",
	"Prague": "PRG", "Budapest": "BUD", "Athens": "ATH", "Lisbon": "LIS",
	"Bucharest": "OTP", "Sofia": "SOF", "Zagreb": "ZAG", "Belgrade": "BEG",
	"Sarajevo": "SJJ", "Podgorica": "TGD", "Ljubljana": "LJU", "Skopje": "SKP",
	"Baku": "GYD", "Tbilisi": "TBS", "Chisinau": "KIV", "Tallinn": "TLL",
	"Riga": "RIX", "Vilnius": "VNO", "Luxembourg": "LUX", "Valletta": "MLA",
	"Dublin": "DUB",

	// Africa
	"Cairo": "CAI", "Alexandria": "HBE", "Nairobi": "NBO", "Johannesburg": "JNB",
	"Cape Town": "CPT", "Casablanca": "CMN", "Marrakech": "RAK", "Tunis": "TUN",
	"Algiers": "ALG", "Tripoli": "TIP", "Addis Ababa": "ADD", "Accra": "ACC",
	"Lagos": "LOS", "Abuja": "ABV", "Dakar": "DKR", "Abidjan": "ABJ",
	"Douala": "DLA", "Kinshasa": "FIH", "Luanda": "LAD", "Kampala": "EBB",
	"Dar es Salaam": "DAR", "Kigali": "KGL", "Port Louis": "MRU", "Antananarivo": "TNR",

	// North America
	"New York": "JFK", "Los Angeles": "LAX", "Chicago": "ORD", "Miami": "MIA",
	"San Francisco": "SFO", "Washington DC": "DCA", "Seattle": "SEA", "Boston": "BOS",
	"Toronto": "YYZ", "Montreal": "YUL", "Vancouver": "YVR", "Mexico City": "MEX",
	"Cancun": "CUN", "Havana": "HAV", "Panama City": "PTY",

	// South America
	"Sao Paulo": "GRU", "Rio de Janeiro": "GIG", "Buenos Aires": "EZE",
	"Bogota": "BOG", "Medellin": "MDE", "Santiago": "SCL", "Caracas": "CCS",

	// Oceania
	"Melbourne": "MEL", "Sydney": "SYD", "Perth": "PER",
}

// AirportCode returns the primary airport code for a city. Unknown cities
// fall back to the uppercased first three letters, which the flight search
// treats as a free-text query.
func AirportCode(city string) string {
	if code, ok := airportCodes[city]; ok {
		return code
	}
	if len(city) >= 3 {
		return strings.ToUpper(city[:3])
	}
	return strings.ToUpper(city)
}
