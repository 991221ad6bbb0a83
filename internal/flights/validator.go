package flights

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/milesrun/hubhop/internal/model"
)

// PriceSentinel is what malformed or missing prices parse to. It never beats
// a real price in minimum selection but never fails the comparison either.
const PriceSentinel = 999999

// CarrierSpec describes the target airline and required hub.
type CarrierSpec struct {
	Name    string   // canonical display name, e.g. "Turkish Airlines"
	Aliases []string // accepted spellings: short name, alliance abbreviation, IATA code
	HubCode string   // required transit airport, e.g. "IST"
	HubCity string   // hub city name for free-text matching, e.g. "Istanbul"
}

// codeshareMarkers are the list-join markers that indicate an offer is
// operated by more than one carrier.
var codeshareMarkers = []string{",", "+", "/"}

// Validator filters raw offers down to those flyable on the target carrier
// via the hub, and picks the cheapest survivor.
type Validator struct {
	spec CarrierSpec
	log  *zap.Logger
}

// NewValidator creates a Validator for the given carrier spec.
func NewValidator(spec CarrierSpec) *Validator {
	return &Validator{
		spec: spec,
		log:  zap.L().With(zap.String("component", "flights.validator")),
	}
}

// SelectBest returns the minimum-price offer surviving all filters, or nil
// when nothing survives.
func (v *Validator) SelectBest(offers []model.Offer) *model.Offer {
	var best *model.Offer
	bestPrice := 0.0

	for i := range offers {
		o := &offers[i]
		if !v.valid(o) {
			continue
		}
		price := ParsePrice(o.Price)
		if best == nil || price < bestPrice {
			best = o
			bestPrice = price
		}
	}
	return best
}

// valid applies the filtering pipeline; an offer is rejected at the first
// failing predicate.
func (v *Validator) valid(o *model.Offer) bool {
	airline := strings.TrimSpace(o.Airline)
	if airline == "" {
		v.log.Debug("rejecting offer with no airline")
		return false
	}

	for _, marker := range codeshareMarkers {
		if strings.Contains(airline, marker) {
			v.log.Debug("rejecting codeshare offer", zap.String("airline", airline))
			return false
		}
	}

	if !v.matchesCarrier(airline) {
		v.log.Debug("rejecting off-carrier offer", zap.String("airline", airline))
		return false
	}

	if !v.viaHub(o) {
		v.log.Debug("rejecting offer not via hub",
			zap.String("hub", v.spec.HubCode),
			zap.Strings("route", o.Route),
		)
		return false
	}

	return true
}

func (v *Validator) matchesCarrier(airline string) bool {
	lower := strings.ToLower(airline)
	for _, alias := range v.spec.Aliases {
		if strings.Contains(lower, strings.ToLower(alias)) {
			return true
		}
	}
	return false
}

// viaHub checks the structured airport lists first, then falls back to a
// full-text scan of the offer. Scraped route and stop fields disagree often
// enough that either alone misses valid flights. The free-text match is
// loose: a bare hub code can also surface in unrelated text, e.g. "IST"
// inside an India Standard Time timestamp.
func (v *Validator) viaHub(o *model.Offer) bool {
	for _, code := range o.Route {
		if strings.EqualFold(code, v.spec.HubCode) {
			return true
		}
	}
	for _, code := range o.StopAirports {
		if strings.EqualFold(code, v.spec.HubCode) {
			return true
		}
	}

	text := strings.ToUpper(offerText(o))
	if strings.Contains(text, strings.ToUpper(v.spec.HubCode)) {
		return true
	}
	if v.spec.HubCity != "" && strings.Contains(text, strings.ToUpper(v.spec.HubCity)) {
		return true
	}
	return false
}

// offerText renders every field of the offer for free-text matching.
func offerText(o *model.Offer) string {
	parts := []string{
		o.Airline, o.Price, o.Duration, o.Stops,
		o.DepartureTime, o.ArrivalTime,
	}
	parts = append(parts, o.Route...)
	parts = append(parts, o.StopAirports...)
	return strings.Join(parts, " ")
}

// ParsePrice converts a currency-prefixed price string to a float. The
// currency symbol and thousands separators are stripped; anything that still
// fails to parse (or "N/A"/empty) yields PriceSentinel.
func ParsePrice(price string) float64 {
	price = strings.TrimSpace(price)
	if price == "" || strings.EqualFold(price, "N/A") {
		return PriceSentinel
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.':
			return r
		default:
			return -1
		}
	}, price)

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || cleaned == "" {
		return PriceSentinel
	}
	return f
}
