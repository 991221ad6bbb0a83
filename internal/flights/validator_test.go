package flights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milesrun/hubhop/internal/model"
)

func turkishSpec() CarrierSpec {
	return CarrierSpec{
		Name:    "Turkish Airlines",
		Aliases: []string{"Turkish Airlines", "Turkish", "THY", "TK"},
		HubCode: "IST",
		HubCity: "Istanbul",
	}
}

func validOffer() model.Offer {
	return model.Offer{
		Airline:  "Turkish Airlines",
		Price:    "₹45,230",
		Duration: "14 hr 30 min",
		Stops:    "1 stop",
		Route:    []string{"DEL", "IST", "JFK"},
	}
}

func TestSelectBest_AcceptsSingleCarrierViaHub(t *testing.T) {
	v := NewValidator(turkishSpec())

	best := v.SelectBest([]model.Offer{validOffer()})
	require.NotNil(t, best)
	assert.Equal(t, "₹45,230", best.Price)
}

func TestSelectBest_RejectsCodeshareMarkers(t *testing.T) {
	v := NewValidator(turkishSpec())

	for _, airline := range []string{
		"Turkish Airlines, Emirates",
		"Turkish Airlines + Lufthansa",
		"Turkish/Emirates",
	} {
		o := validOffer()
		o.Airline = airline
		assert.Nil(t, v.SelectBest([]model.Offer{o}), "airline %q must be rejected", airline)
	}
}

func TestSelectBest_RejectsEmptyAirline(t *testing.T) {
	v := NewValidator(turkishSpec())

	o := validOffer()
	o.Airline = ""
	assert.Nil(t, v.SelectBest([]model.Offer{o}))
}

func TestSelectBest_RejectsOtherCarriers(t *testing.T) {
	v := NewValidator(turkishSpec())

	o := validOffer()
	o.Airline = "Emirates"
	assert.Nil(t, v.SelectBest([]model.Offer{o}))
}

func TestSelectBest_AcceptsBareIATACode(t *testing.T) {
	v := NewValidator(turkishSpec())

	o := validOffer()
	o.Airline = "TK"
	require.NotNil(t, v.SelectBest([]model.Offer{o}))
}

func TestSelectBest_RejectsRouteMissingHub(t *testing.T) {
	v := NewValidator(turkishSpec())

	o := validOffer()
	o.Route = []string{"DEL", "DXB", "JFK"}
	assert.Nil(t, v.SelectBest([]model.Offer{o}))
}

func TestSelectBest_HubInStopAirports(t *testing.T) {
	v := NewValidator(turkishSpec())

	o := validOffer()
	o.Route = []string{"DEL", "JFK"}
	o.StopAirports = []string{"IST"}
	require.NotNil(t, v.SelectBest([]model.Offer{o}))
}

func TestSelectBest_HubCityInFreeText(t *testing.T) {
	v := NewValidator(turkishSpec())

	o := validOffer()
	o.Route = []string{"DEL", "JFK"}
	o.Stops = "1 stop via Istanbul"
	require.NotNil(t, v.SelectBest([]model.Offer{o}))
}

func TestSelectBest_PicksCheapestSurvivor(t *testing.T) {
	v := NewValidator(turkishSpec())

	cheap := validOffer()
	cheap.Price = "₹30,100"
	expensive := validOffer()
	expensive.Price = "₹52,000"
	malformed := validOffer()
	malformed.Price = "N/A"

	best := v.SelectBest([]model.Offer{expensive, malformed, cheap})
	require.NotNil(t, best)
	assert.Equal(t, "₹30,100", best.Price)
}

func TestSelectBest_RealPriceBeatsSentinel(t *testing.T) {
	v := NewValidator(turkishSpec())

	priced := validOffer()
	priced.Price = "₹999,998"
	unpriced := validOffer()
	unpriced.Price = ""

	best := v.SelectBest([]model.Offer{unpriced, priced})
	require.NotNil(t, best)
	assert.Equal(t, "₹999,998", best.Price)
}

func TestParsePrice(t *testing.T) {
	assert.Equal(t, 45230.0, ParsePrice("₹45,230"))
	assert.Equal(t, 1250.5, ParsePrice("$1,250.50"))
	assert.Equal(t, float64(PriceSentinel), ParsePrice("N/A"))
	assert.Equal(t, float64(PriceSentinel), ParsePrice(""))
	assert.Equal(t, float64(PriceSentinel), ParsePrice("call us"))
}

func TestFlattenOffers_PrefersKnownCategories(t *testing.T) {
	categories := map[string][]model.Offer{
		"top_flights": {{Airline: "TK", Price: "₹1"}},
		"all_flights": {{Airline: "TK", Price: "₹2"}},
		"other":       {{Airline: "TK", Price: "₹3"}},
	}

	offers := FlattenOffers(categories)
	assert.Len(t, offers, 2)
}

func TestFlattenOffers_FallsBackToAnyCategory(t *testing.T) {
	categories := map[string][]model.Offer{
		"best_departing_flights": {{Airline: "TK", Price: "₹3"}},
	}

	offers := FlattenOffers(categories)
	assert.Len(t, offers, 1)
}

func TestFlattenOffers_Empty(t *testing.T) {
	assert.Empty(t, FlattenOffers(map[string][]model.Offer{}))
}
