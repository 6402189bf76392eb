package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector(t *testing.T) {
	// Construction
	{
		v := NewVector(3)
		assert.Equal(t, 3, v.Len())
		assert.Equal(t, []float64{0, 0, 0}, v.Data())
		v = NewVecConst(2, 1.5)
		assert.Equal(t, []float64{1.5, 1.5}, v.Data())
		assert.Panics(t, func() { NewVector(3, []float64{1, 2}) })
		assert.Equal(t, 0, Vector{}.Len())
	}
	// Copies share storage
	{
		v := NewVector(2)
		w := v
		w.AddAt(1, 2)
		assert.Equal(t, 2., v.AtVec(1))
		c := v.Copy()
		c.AddAt(1, 1)
		assert.Equal(t, 2., v.AtVec(1))
		assert.Equal(t, 3., c.AtVec(1))
	}
	// AddVal accumulates, repeated ids included
	{
		v := NewVector(5)
		require.NoError(t, v.AddVal([]float64{1, 2, 3}, Index{4, 0, 4}))
		assert.Equal(t, []float64{2, 0, 0, 0, 4}, v.Data())
		require.NoError(t, v.AddVal([]float64{1, 2, 3}, Index{4, 0, 4}))
		assert.Equal(t, []float64{4, 0, 0, 0, 8}, v.Data())
		assert.Error(t, v.AddVal([]float64{1, 2}, Index{1}))
		assert.Error(t, v.AddVal([]float64{1}, Index{5}))
		assert.Error(t, v.AddVal([]float64{1}, Index{-1}))
		assert.Equal(t, []float64{4, 0, 0, 0, 8}, v.Data())
	}
	// AddValWeighted gathers the weights at the target ids
	{
		v := NewVector(4)
		w := NewVector(4, []float64{10, 20, 30, 40})
		require.NoError(t, v.AddValWeighted([]float64{1, 2}, Index{3, 1}, w))
		assert.Equal(t, []float64{0, 40, 0, 40}, v.Data())
		assert.Error(t, v.AddValWeighted([]float64{1}, Index{3}, NewVector(2)))
	}
	// SetVal overwrites, Zero resets
	{
		v := NewVecConst(3, 7)
		require.NoError(t, v.SetVal([]float64{1, 2}, Index{0, 2}))
		assert.Equal(t, []float64{1, 7, 2}, v.Data())
		assert.Equal(t, 10., v.Sum())
		v.Zero()
		assert.Equal(t, []float64{0, 0, 0}, v.Data())
	}
	// Add and Scale
	{
		v := NewVector(2, []float64{1, 2})
		v.Add(NewVector(2, []float64{3, 4})).Scale(2)
		assert.Equal(t, []float64{8, 12}, v.Data())
		assert.Panics(t, func() { v.Add(NewVector(3)) })
	}
}

func TestVec3s(t *testing.T) {
	// Clean resets every element regardless of prior contents
	{
		v := NewVec3s(4)
		for i := range v {
			v[i] = Vec3{float64(i), -1, 2.5}
		}
		v.Clean()
		assert.Equal(t, 4, len(v))
		for _, p := range v {
			assert.Equal(t, Vec3{}, p)
		}
	}
	// Coefficient major addressing
	{
		v := NewVec3s(2)
		assert.Equal(t, 6, v.Len())
		v.AddAt(0, 1) // node 0, x
		v.AddAt(1, 2) // node 1, x
		v.AddAt(3, 3) // node 1, y
		v.AddAt(4, 4) // node 0, z
		assert.Equal(t, Vec3{1, 0, 4}, v[0])
		assert.Equal(t, Vec3{2, 3, 0}, v[1])
		assert.Equal(t, []float64{1, 2}, v.Component(0))
	}
	// Vec3 helpers
	{
		p := Vec3{1, 2, 3}
		assert.Equal(t, Vec3{2, 4, 6}, p.Scale(2))
		assert.Equal(t, 6., p.Sum())
	}
}
