package model

import (
	"sort"
	"strings"
	"time"
)

// ItineraryStatus represents the terminal state of a route's search.
type ItineraryStatus string

const (
	ItineraryStatusComplete  ItineraryStatus = "complete"
	ItineraryStatusDiscarded ItineraryStatus = "discarded"
	ItineraryStatusErrored   ItineraryStatus = "errored"
)

// Stop is one visited city on a route. Immutable once created by the enumerator.
type Stop struct {
	Continent   string `json:"continent"`
	CountryCode string `json:"country_code"`
	City        string `json:"city"`
	EasyVisa    bool   `json:"easy_visa"`
}

// Route is an ordered sequence of stops, one per required continent.
type Route []Stop

// Signature is the canonical order-independent key identifying a route.
// Two routes visiting the same stops in different order share a signature.
type Signature string

// Signature builds the route's dedup/resume key: the sorted set of
// city|country|continent triples.
func (r Route) Signature() Signature {
	parts := make([]string, len(r))
	for i, s := range r {
		parts[i] = s.City + "|" + s.CountryCode + "|" + s.Continent
	}
	sort.Strings(parts)
	return Signature(strings.Join(parts, ";"))
}

// EasyVisaCount returns how many stops are in visa-easy countries.
func (r Route) EasyVisaCount() int {
	n := 0
	for _, s := range r {
		if s.EasyVisa {
			n++
		}
	}
	return n
}

// Countries returns the set of distinct country codes across the route.
func (r Route) Countries() map[string]bool {
	set := make(map[string]bool, len(r))
	for _, s := range r {
		set[s.CountryCode] = true
	}
	return set
}

// String renders the route as "Delhi (IN) → Cairo (EG) → ...".
func (r Route) String() string {
	parts := make([]string, len(r))
	for i, s := range r {
		parts[i] = s.City + " (" + s.CountryCode + ")"
	}
	return strings.Join(parts, " → ")
}

// Offer is a single flight option as reported by the query client.
// Fields mirror what the results page exposes; anything the page omitted
// is left as its zero value rather than guessed.
type Offer struct {
	Airline       string   `json:"airline"`
	Price         string   `json:"price"` // currency-prefixed, e.g. "₹45,230"; may be "N/A"
	Duration      string   `json:"duration"`
	Stops         string   `json:"stops"` // e.g. "Nonstop", "1 stop"
	Route         []string `json:"route"` // airport codes including intermediates
	StopAirports  []string `json:"stop_airports,omitempty"`
	DepartureTime string   `json:"departure_time,omitempty"`
	ArrivalTime   string   `json:"arrival_time,omitempty"`
}

// SegmentResult pairs one directed city pair with its winning offer.
type SegmentResult struct {
	Segment     string  `json:"segment"` // "Delhi → Cairo"
	Origin      string  `json:"origin"`  // airport code
	Destination string  `json:"destination"`
	Flight      Offer   `json:"flight"`
	Price       float64 `json:"price"`
}

// Itinerary is the terminal record for a fully validated route.
// TotalPrice is only meaningful when Status is complete.
type Itinerary struct {
	RouteIndex  int             `json:"route_index"`
	Route       Route           `json:"route"`
	Segments    []SegmentResult `json:"segments"`
	TotalPrice  float64         `json:"total_price"`
	Status      ItineraryStatus `json:"status"`
	WorkerID    string          `json:"worker_id"`
	CompletedAt time.Time       `json:"completed_at"`
}
