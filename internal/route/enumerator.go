// Package route generates and ranks candidate six-continent routes from the
// reference dataset.
package route

import (
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/milesrun/hubhop/internal/model"
	"github.com/milesrun/hubhop/internal/refdata"
)

const (
	// easyVisaWeight is the score bonus per visa-easy stop.
	easyVisaWeight = 10
	// countryReuseBonus rewards routes that revisit a country across stops,
	// a proxy for cheaper connections.
	countryReuseBonus = 5
)

// Enumerator builds the ordered candidate route list.
type Enumerator struct {
	ds *refdata.Dataset

	// Ceiling is the cross-product size above which enumeration falls back
	// to deterministic sampling.
	Ceiling int
	// MaxSampled caps the number of routes returned by the sampling path.
	MaxSampled int
}

// NewEnumerator creates an Enumerator over the given dataset.
func NewEnumerator(ds *refdata.Dataset) *Enumerator {
	return &Enumerator{
		ds:         ds,
		Ceiling:    100000,
		MaxSampled: 4000,
	}
}

// Enumerate returns every candidate route, ranked by score descending with
// ties broken by generation order. Deterministic for a fixed dataset: the
// same call always yields the same list in the same order.
func (e *Enumerator) Enumerate() []model.Route {
	log := zap.L().With(zap.String("component", "route.enumerator"))

	total := e.ds.Combinations()
	if total > e.Ceiling {
		log.Info("cross-product exceeds ceiling, sampling",
			zap.Int("combinations", total),
			zap.Int("ceiling", e.Ceiling),
		)
		return e.sample()
	}

	log.Info("generating full cross-product", zap.Int("combinations", total))
	routes := e.crossProduct()
	sortByScore(routes)
	return routes
}

// crossProduct walks every combination of one city per continent, continents
// in the dataset's fixed order.
func (e *Enumerator) crossProduct() []model.Route {
	routes := make([]model.Route, 0, e.ds.Combinations())
	current := make(model.Route, len(e.ds.Continents))

	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(e.ds.Continents) {
			r := make(model.Route, len(current))
			copy(r, current)
			routes = append(routes, r)
			return
		}
		continent := e.ds.Continents[depth]
		for _, city := range e.ds.ContinentCities[continent] {
			current[depth] = model.Stop{
				Continent:   continent,
				CountryCode: city.CountryCode,
				City:        city.Name,
				EasyVisa:    city.EasyVisa,
			}
			walk(depth + 1)
		}
	}
	walk(0)

	return routes
}

// sample generates routes via a rotation of deterministic selection
// strategies keyed by the attempt counter, so repeated runs produce the same
// sample. Duplicates (by signature) are dropped; generation stops once
// MaxSampled unique routes exist or the attempt budget is spent.
func (e *Enumerator) sample() []model.Route {
	var routes []model.Route
	seen := make(map[model.Signature]bool)

	maxAttempts := e.MaxSampled * 2
	for attempt := 0; attempt < maxAttempts && len(routes) < e.MaxSampled; attempt++ {
		r := e.buildSampledRoute(attempt)
		if len(r) != len(e.ds.Continents) {
			continue
		}
		sig := r.Signature()
		if seen[sig] {
			continue
		}
		seen[sig] = true
		routes = append(routes, r)
	}

	sortByScore(routes)
	return routes
}

// buildSampledRoute picks one city per continent for a single attempt.
// The continent traversal order is shuffled with the attempt as seed; the
// per-continent city choice rotates through four strategies.
func (e *Enumerator) buildSampledRoute(attempt int) model.Route {
	continents := make([]string, len(e.ds.Continents))
	copy(continents, e.ds.Continents)
	rng := rand.New(rand.NewSource(int64(attempt)))
	rng.Shuffle(len(continents), func(i, j int) {
		continents[i], continents[j] = continents[j], continents[i]
	})

	route := make(model.Route, 0, len(continents))
	for _, continent := range continents {
		cities := e.ds.ContinentCities[continent]
		if len(cities) == 0 {
			continue
		}
		selected := selectCity(cities, attempt)
		route = append(route, model.Stop{
			Continent:   continent,
			CountryCode: selected.CountryCode,
			City:        selected.Name,
			EasyVisa:    selected.EasyVisa,
		})
	}
	return route
}

// selectCity rotates through four deterministic strategies so consecutive
// attempts spread across the city space instead of clustering.
func selectCity(cities []refdata.City, attempt int) refdata.City {
	pool := make([]refdata.City, len(cities))
	copy(pool, cities)

	switch attempt % 4 {
	case 0:
		// direct index
		return pool[attempt%len(pool)]
	case 1:
		// alphabetical by city name
		sort.Slice(pool, func(i, j int) bool { return pool[i].Name < pool[j].Name })
		return pool[attempt%len(pool)]
	case 2:
		// by country code
		sort.Slice(pool, func(i, j int) bool { return pool[i].CountryCode < pool[j].CountryCode })
		return pool[attempt%len(pool)]
	default:
		// split-half: alternate between the first and second half of the list
		if len(pool) == 1 {
			return pool[0]
		}
		half := len(pool) / 2
		if attempt%2 == 0 && half > 0 {
			return pool[(attempt/2)%half]
		}
		rest := pool[half:]
		return rest[attempt%len(rest)]
	}
}

// Score ranks a route: a bonus per visa-easy stop, plus a flat bonus when the
// route reuses a country across stops.
func Score(r model.Route) int {
	score := r.EasyVisaCount() * easyVisaWeight
	if len(r.Countries()) < len(r) {
		score += countryReuseBonus
	}
	return score
}

func sortByScore(routes []model.Route) {
	sort.SliceStable(routes, func(i, j int) bool {
		return Score(routes[i]) > Score(routes[j])
	})
}
