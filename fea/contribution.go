package fea

import (
	"github.com/james-bowman/sparse"
)

// Contribution is a partial global vector that stores only the degrees of
// freedom it has received. Workers accumulate into their own Contribution and
// the partials are merged into the shared target afterwards.
type Contribution struct {
	M *sparse.DOK // size x 1
}

func NewContribution(size int) *Contribution {
	return &Contribution{M: sparse.NewDOK(size, 1)}
}

func (c *Contribution) Len() (size int) { size, _ = c.M.Dims(); return }
func (c *Contribution) At(i int) float64 { return c.M.At(i, 0) }
func (c *Contribution) NNZ() int         { return c.M.NNZ() }

func (c *Contribution) AddAt(i int, val float64) {
	c.M.Set(i, 0, c.M.At(i, 0)+val)
}

func (c *Contribution) Reset() {
	c.M = sparse.NewDOK(c.Len(), 1)
}

// MergeInto scatter-adds the partial into t
func (c *Contribution) MergeInto(t Target) {
	c.M.DoNonZero(func(i, _ int, v float64) {
		t.AddAt(i, v)
	})
}
