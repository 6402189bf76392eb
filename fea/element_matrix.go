package fea

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gofea/utils"
)

// Entity is the mesh element owning an element matrix
type Entity interface {
	Dim() int
}

// Cell is a minimal Entity carrying only its spatial dimension
type Cell struct {
	Dimension int
}

func (c Cell) Dim() int { return c.Dimension }

// Layout describes how the columns of an element matrix map to field components
type Layout struct {
	NCoeff      int // Number of field components: 1 scalar, 2 or 3 vector/tensor
	DofPerCoeff int // Degrees of freedom of one component block
	Elastic     bool
	OldStyle    bool
}

// Integrator produces the dense local matrix of an element
type Integrator interface {
	Integrate() (utils.Matrix, error)
}

// IntegratorFunc adapts a function to the Integrator interface
type IntegratorFunc func() (utils.Matrix, error)

func (f IntegratorFunc) Integrate() (utils.Matrix, error) { return f() }

// Integrated wraps an already computed matrix
func Integrated(m utils.Matrix) Integrator {
	return IntegratorFunc(func() (utils.Matrix, error) { return m, nil })
}

// Quadrature integrates Basisᵀ · diag(Weights) · Components, where Basis holds
// the test function values (nQ x rows) and Components the field component
// values (nQ x cols) at the quadrature points.
type Quadrature struct {
	Weights    []float64
	Basis      utils.Matrix
	Components utils.Matrix
}

func (q Quadrature) Integrate() (m utils.Matrix, err error) {
	var (
		nq      = len(q.Weights)
		nqB, nr = q.Basis.Dims()
		nqC, nc = q.Components.Dims()
	)
	switch {
	case nq == 0 || nr == 0 || nc == 0:
		err = fmt.Errorf("%w: empty quadrature", ErrShapeMismatch)
		return
	case nqB != nq || nqC != nq:
		err = fmt.Errorf("%w: quadrature has %d weights, basis %d points, components %d points",
			ErrShapeMismatch, nq, nqB, nqC)
		return
	}
	// scale each quadrature point row of the components by its weight
	WC := q.Components.Copy()
	for k, w := range q.Weights {
		floats.Scale(w, WC.Row(k))
	}
	m = q.Basis.Transpose().Mul(WC)
	return
}

// scatterView is the normalized form the accumulation engine walks: rows are
// local degrees of freedom addressed by rowIDs, columns are components.
type scatterView struct {
	mat     utils.Matrix
	rowIDs  utils.Index
	nCoeff  int
	elastic bool
}

func (v *scatterView) dims() (nr, nc int) { return v.mat.Dims() }

/*
ElementMatrix is the local matrix of one mesh element together with the global
ids of its rows. The matrix is produced lazily by Integrate, which is safe to
call repeatedly and from several goroutines.

Old style matrices store a single scalar field either as one column indexed by
RowIDs, or as one row indexed by IDs. Integrate normalizes both to a single
column view indexed by row ids so the accumulation walk is the same for both
conventions.
*/
type ElementMatrix struct {
	layout     Layout
	rowIDs     utils.Index
	ids        utils.Index
	entity     Entity
	integrator Integrator

	mu         sync.Mutex
	integrated bool
	mat        utils.Matrix
	view       scatterView
}

func NewElementMatrix(layout Layout, rowIDs utils.Index, entity Entity, integrator Integrator) *ElementMatrix {
	if layout.NCoeff < 1 {
		layout.NCoeff = 1
	}
	return &ElementMatrix{
		layout:     layout,
		rowIDs:     rowIDs,
		entity:     entity,
		integrator: integrator,
	}
}

// NewLegacyElementMatrix builds an old style scalar matrix. A single column
// matrix scatters at rowIDs, a wider one scatters its first row at ids.
func NewLegacyElementMatrix(rowIDs, ids utils.Index, integrator Integrator) *ElementMatrix {
	em := NewElementMatrix(Layout{NCoeff: 1, DofPerCoeff: len(rowIDs), OldStyle: true},
		rowIDs, nil, integrator)
	em.ids = ids
	return em
}

func (em *ElementMatrix) Integrate() (err error) {
	em.mu.Lock()
	defer em.mu.Unlock()
	if em.integrated {
		return
	}
	if em.integrator == nil {
		return ErrNotIntegrated
	}
	var m utils.Matrix
	if m, err = em.integrator.Integrate(); err != nil {
		return fmt.Errorf("element matrix integration: %w", err)
	}
	if m.IsEmpty() {
		return ErrNotIntegrated
	}
	if err = em.normalize(m); err != nil {
		return
	}
	em.mat = m
	em.integrated = true
	return
}

func (em *ElementMatrix) normalize(m utils.Matrix) (err error) {
	var (
		nr, nc = m.Dims()
	)
	if !em.layout.OldStyle {
		if len(em.rowIDs) != nr {
			return fmt.Errorf("%w: %d row ids for %d rows", ErrShapeMismatch, len(em.rowIDs), nr)
		}
		em.view = scatterView{
			mat:     m,
			rowIDs:  em.rowIDs,
			nCoeff:  em.layout.NCoeff,
			elastic: em.layout.Elastic,
		}
		return
	}
	if nc == 1 {
		if len(em.rowIDs) != nr {
			return fmt.Errorf("%w: %d row ids for %d rows", ErrShapeMismatch, len(em.rowIDs), nr)
		}
		em.view = scatterView{mat: m, rowIDs: em.rowIDs, nCoeff: 1}
		return
	}
	if len(em.ids) != nc {
		return fmt.Errorf("%w: %d ids for %d columns", ErrShapeMismatch, len(em.ids), nc)
	}
	col := make([]float64, nc)
	copy(col, m.Row(0))
	em.view = scatterView{mat: utils.NewMatrix(nc, 1, col), rowIDs: em.ids, nCoeff: 1}
	return
}

// Rows and Cols report the integrated matrix, both are zero before Integrate
func (em *ElementMatrix) Rows() (nr int)      { nr, _ = em.mat.Dims(); return }
func (em *ElementMatrix) Cols() (nc int)      { _, nc = em.mat.Dims(); return }
func (em *ElementMatrix) Mat() utils.Matrix   { return em.mat }
func (em *ElementMatrix) Col(i int) []float64 { return em.mat.Col(i) }
func (em *ElementMatrix) RowIDs() utils.Index { return em.rowIDs }
func (em *ElementMatrix) IDs() utils.Index    { return em.ids }
func (em *ElementMatrix) NCoeff() int         { return em.layout.NCoeff }
func (em *ElementMatrix) DofPerCoeff() int    { return em.layout.DofPerCoeff }
func (em *ElementMatrix) OldStyle() bool      { return em.layout.OldStyle }
func (em *ElementMatrix) Elastic() bool       { return em.layout.Elastic }
func (em *ElementMatrix) Entity() Entity      { return em.entity }
func (em *ElementMatrix) Layout() Layout      { return em.layout }

// spatialDim is the column cap for elastic walks
func (em *ElementMatrix) spatialDim(cols int) (dim int, err error) {
	if em.entity == nil {
		err = ErrMissingEntity
		return
	}
	dim = em.entity.Dim()
	if dim < 1 || dim > cols {
		err = fmt.Errorf("%w: entity dimension %d for %d columns", ErrShapeMismatch, dim, cols)
	}
	return
}

func (em *ElementMatrix) String() string {
	var body = "<not integrated>"
	if !em.mat.IsEmpty() {
		body = em.mat.String()
	}
	return fmt.Sprintf("ElementMatrix{nCoeff: %d, dofPerCoeff: %d, oldStyle: %v, elastic: %v, rowIDs: %v}\n%s",
		em.layout.NCoeff, em.layout.DofPerCoeff, em.layout.OldStyle, em.layout.Elastic, em.rowIDs, body)
}
