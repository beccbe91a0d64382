package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cfg(price float64) PriceConfig {
	return PriceConfig{PriceType: PriceTypeBase, AvailableOptions: map[string]float64{"x": price}}
}

func TestPriceConfigurationMerge(t *testing.T) {
	existing := PriceConfiguration{"A": cfg(1), "B": cfg(2)}
	update := PriceConfiguration{"B": cfg(3), "C": cfg(4)}

	merged := existing.Merge(update)

	assert.Equal(t, PriceConfiguration{"A": cfg(1), "B": cfg(3), "C": cfg(4)}, merged)
	// inputs are untouched
	assert.Equal(t, PriceConfiguration{"A": cfg(1), "B": cfg(2)}, existing)
	assert.Len(t, update, 2)
}

func TestPriceConfigurationMergeReplacesWholeValue(t *testing.T) {
	existing := PriceConfiguration{
		"Size": {PriceType: PriceTypeBase, AvailableOptions: map[string]float64{"Small": 400, "Large": 600}},
	}
	update := PriceConfiguration{
		"Size": {PriceType: PriceTypeAdditional, AvailableOptions: map[string]float64{"Medium": 500}},
	}

	merged := existing.Merge(update)

	assert.Equal(t, update["Size"], merged["Size"])
	assert.NotContains(t, merged["Size"].AvailableOptions, "Small")
}

func TestPriceConfigurationMergeNil(t *testing.T) {
	var existing PriceConfiguration
	assert.Equal(t, PriceConfiguration{"A": cfg(1)}, existing.Merge(PriceConfiguration{"A": cfg(1)}))
	assert.Equal(t, PriceConfiguration{"A": cfg(1)}, PriceConfiguration{"A": cfg(1)}.Merge(nil))
}

func TestNewToppingPage(t *testing.T) {
	p := NewToppingPage(nil, 21, 3, 10)

	assert.NotNil(t, p.Data)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.Equal(t, int64(3), p.CurrentPage)
	assert.Equal(t, int64(10), p.PerPage)

	assert.Equal(t, int64(0), NewToppingPage(nil, 0, 1, 10).TotalPages)
}
