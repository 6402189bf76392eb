package utils

import (
	"gonum.org/v1/gonum/floats"
)

// Vec3 is a three component position or field value
type Vec3 [3]float64

func (p Vec3) Scale(a float64) Vec3 { return Vec3{a * p[0], a * p[1], a * p[2]} }
func (p Vec3) Sum() float64         { return floats.Sum(p[:]) }

// Vec3s holds one Vec3 per node. As an accumulation target it is addressed in
// coefficient major order: id = c*len(v) + n is component c of node n.
type Vec3s []Vec3

func NewVec3s(N int) Vec3s {
	return make(Vec3s, N)
}

// Clean resets every element to the zero Vec3
func (v Vec3s) Clean() {
	for i := range v {
		v[i] = Vec3{}
	}
}

func (v Vec3s) Len() int { return 3 * len(v) }

func (v Vec3s) AddAt(i int, val float64) {
	var (
		n = len(v)
	)
	v[i%n][i/n] += val
}

// Component returns the values of one component for all nodes
func (v Vec3s) Component(c int) (r []float64) {
	r = make([]float64, len(v))
	for n, p := range v {
		r[n] = p[c]
	}
	return
}
