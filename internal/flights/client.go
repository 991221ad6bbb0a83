// Package flights defines the segment query contract and the offer
// validation/selection logic that turns raw scraped offers into a single
// winning flight per segment.
package flights

import (
	"context"

	"github.com/milesrun/hubhop/internal/model"
)

// QueryClient fetches flight offers for one directed segment. A client is
// not safe for concurrent use; each worker owns its own instance.
type QueryClient interface {
	// Query returns offers grouped by result category (e.g. "top_flights",
	// "all_flights"). An empty map means no offers were found.
	Query(ctx context.Context, origin, destination, departureDate string, passengers int) (map[string][]model.Offer, error)
	// Close releases any resources held by the client.
	Close() error
}

// ClientFactory creates a fresh QueryClient for a worker.
type ClientFactory func() (QueryClient, error)

// FlattenOffers collects offers from the preferred categories first, then
// falls back to every remaining category. Result pages are inconsistent
// about which buckets they populate.
func FlattenOffers(categories map[string][]model.Offer) []model.Offer {
	var offers []model.Offer
	for _, key := range []string{"top_flights", "all_flights"} {
		offers = append(offers, categories[key]...)
	}
	if len(offers) == 0 {
		for key, list := range categories {
			if key == "top_flights" || key == "all_flights" {
				continue
			}
			offers = append(offers, list...)
		}
	}
	return offers
}
