package utils

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Vector is a dense global vector, one value per degree of freedom. It is a
// value type sharing its storage, so copies mutate the same data.
type Vector struct {
	V *mat.VecDense
}

func NewVector(N int, dataO ...[]float64) (R Vector) {
	if len(dataO) != 0 {
		if len(dataO[0]) != N {
			err := fmt.Errorf("mismatch in allocation: NewVector N = %v, len(data[0]) = %v", N, len(dataO[0]))
			panic(err)
		}
		return Vector{mat.NewVecDense(N, dataO[0])}
	}
	return Vector{mat.NewVecDense(N, make([]float64, N))}
}

func NewVecConst(N int, val float64) (R Vector) {
	return NewVector(N, ConstArray(N, val))
}

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

func (v Vector) Len() int {
	if v.V == nil {
		return 0
	}
	return v.V.Len()
}
func (v Vector) AtVec(i int) float64 { return v.V.AtVec(i) }
func (v Vector) Data() []float64 {
	if v.V == nil {
		return nil
	}
	return v.V.RawVector().Data
}

// AddAt is the scatter-add primitive: data[i] += val
func (v Vector) AddAt(i int, val float64) { v.V.RawVector().Data[i] += val }

// AddVal adds vals[k] into data[ids[k]]
func (v Vector) AddVal(vals []float64, ids Index) (err error) {
	if err = v.checkScatter(vals, ids); err != nil {
		return
	}
	data := v.Data()
	for k, id := range ids {
		data[id] += vals[k]
	}
	return
}

// AddValWeighted adds vals[k] * weights[ids[k]] into data[ids[k]]. The weights
// span the whole target and are gathered at the scatter ids.
func (v Vector) AddValWeighted(vals []float64, ids Index, weights Vector) (err error) {
	if err = v.checkScatter(vals, ids); err != nil {
		return
	}
	if err = ids.CheckBounds(weights.Len()); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	var (
		data = v.Data()
		w    = weights.Data()
	)
	for k, id := range ids {
		data[id] += vals[k] * w[id]
	}
	return
}

// SetVal overwrites data[ids[k]] with vals[k]
func (v Vector) SetVal(vals []float64, ids Index) (err error) {
	if err = v.checkScatter(vals, ids); err != nil {
		return
	}
	data := v.Data()
	for k, id := range ids {
		data[id] = vals[k]
	}
	return
}

func (v Vector) checkScatter(vals []float64, ids Index) (err error) {
	if len(vals) != len(ids) {
		err = fmt.Errorf("dimension mismatch: values and index should have the same length: %d != %d",
			len(vals), len(ids))
		return
	}
	return ids.CheckBounds(v.Len())
}

// Add accumulates a into the receiver element by element
func (v Vector) Add(a Vector) Vector {
	if v.Len() != a.Len() {
		panic(fmt.Errorf("dimension mismatch: %d != %d", v.Len(), a.Len()))
	}
	floats.Add(v.Data(), a.Data())
	return v
}

func (v Vector) Scale(a float64) Vector {
	v.V.ScaleVec(a, v.V)
	return v
}

func (v Vector) Zero() Vector {
	v.V.Zero()
	return v
}

func (v Vector) Sum() float64 { return floats.Sum(v.Data()) }

func (v Vector) Copy() (R Vector) {
	data := make([]float64, v.Len())
	copy(data, v.Data())
	return NewVector(len(data), data)
}
