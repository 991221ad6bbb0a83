package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milesrun/hubhop/internal/model"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "₹0", formatPrice(0))
	assert.Equal(t, "₹950", formatPrice(950))
	assert.Equal(t, "₹9,500", formatPrice(9500))
	assert.Equal(t, "₹57,000", formatPrice(57000))
	assert.Equal(t, "₹1,234,567", formatPrice(1234567))
}

func TestFilterComplete(t *testing.T) {
	results := []model.Itinerary{
		{Status: model.ItineraryStatusComplete, TotalPrice: 1},
		{Status: model.ItineraryStatusDiscarded},
		{Status: model.ItineraryStatusComplete, TotalPrice: 2},
		{Status: model.ItineraryStatusErrored},
	}

	complete := filterComplete(results)
	assert.Len(t, complete, 2)
	for _, it := range complete {
		assert.Equal(t, model.ItineraryStatusComplete, it.Status)
	}
}
