package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToppingFiltersNormalize(t *testing.T) {
	tests := []struct {
		name              string
		in                ToppingFilters
		wantPage, wantLim int64
	}{
		{"defaults", ToppingFilters{}, 1, 10},
		{"negative", ToppingFilters{Page: -3, Limit: -1}, 1, 10},
		{"kept", ToppingFilters{Page: 3, Limit: 25}, 3, 25},
		{"capped", ToppingFilters{Page: 2, Limit: 1000}, 2, 100},
		{"huge page", ToppingFilters{Page: math.MaxInt64, Limit: 1000}, MaxPage, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.in
			f.Normalize()
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantLim, f.Limit)
		})
	}
}

func TestToppingFiltersOffset(t *testing.T) {
	f := ToppingFilters{Page: 3, Limit: 10}
	assert.Equal(t, int64(20), f.Offset())

	f = ToppingFilters{Page: math.MaxInt64, Limit: math.MaxInt64}
	f.Normalize()
	assert.Positive(t, f.Offset())
}

func TestUpdateToppingInputIsEmpty(t *testing.T) {
	assert.True(t, (&UpdateToppingInput{ID: "x"}).IsEmpty())
	publish := true
	assert.False(t, (&UpdateToppingInput{ID: "x", IsPublish: &publish}).IsEmpty())
}
