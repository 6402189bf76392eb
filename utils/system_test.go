package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNan(t *testing.T) {
	nan := math.NaN()
	assert.True(t, IsNan(nan))
	assert.False(t, IsNan(1.))
	assert.True(t, IsNan(NewVector(2, []float64{1, nan})))
	assert.False(t, IsNan(NewVector(2)))
	assert.True(t, IsNan(NewMatrix(1, 2, []float64{nan, 0})))
	assert.True(t, IsNan(Vec3s{{}, {0, nan, 0}}))
	assert.False(t, IsNan(Vec3s{{}, {}}))
	assert.False(t, IsNan("not numeric"))
	assert.Contains(t, GetMemUsage(), "Alloc")
}
