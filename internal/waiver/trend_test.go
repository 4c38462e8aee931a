package waiver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOLSSlopeLinear(t *testing.T) {
	slope := olsSlope([]trendPoint{
		{Week: 3, Value: 2},
		{Week: 4, Value: 4},
		{Week: 5, Value: 6},
	})
	require.NotNil(t, slope)
	assert.InDelta(t, 2.0, *slope, 1e-9)
}

func TestOLSSlopeFlat(t *testing.T) {
	slope := olsSlope([]trendPoint{
		{Week: 3, Value: 5},
		{Week: 5, Value: 5},
	})
	require.NotNil(t, slope)
	assert.InDelta(t, 0.0, *slope, 1e-9)
}

func TestOLSSlopeDecline(t *testing.T) {
	slope := olsSlope([]trendPoint{
		{Week: 1, Value: 10},
		{Week: 2, Value: 7},
		{Week: 3, Value: 4},
	})
	require.NotNil(t, slope)
	assert.InDelta(t, -3.0, *slope, 1e-9)
}

func TestOLSSlopeInsufficientPoints(t *testing.T) {
	assert.Nil(t, olsSlope(nil))
	assert.Nil(t, olsSlope([]trendPoint{{Week: 3, Value: 9}}))
}

func TestOLSSlopeDegenerateWeeks(t *testing.T) {
	assert.Nil(t, olsSlope([]trendPoint{
		{Week: 3, Value: 1},
		{Week: 3, Value: 9},
	}))
}
