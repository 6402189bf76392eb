package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/gofea/fea"
	"github.com/notargets/gofea/utils"
)

// Parameters obtained from the YAML case file
type CaseParameters struct {
	Title    string          `json:"Title"`
	Size     int             `json:"Size"` // Length of the global target vector
	Elements []ElementParams `json:"Elements"`
}

type ElementParams struct {
	Layout LayoutParams `json:"Layout"`
	Dim    int          `json:"Dim,omitempty"` // Spatial dimension of the owning cell, zero for none
	RowIDs []int        `json:"RowIDs,omitempty"`
	IDs    []int        `json:"IDs,omitempty"` // Old style scatter ids
	Matrix [][]float64  `json:"Matrix"`
	Factor *float64     `json:"Factor,omitempty"` // Defaults to 1
	Scale  ScaleParams  `json:"Scale"`
}

type LayoutParams struct {
	NCoeff      int  `json:"NCoeff"`
	DofPerCoeff int  `json:"DofPerCoeff,omitempty"`
	Elastic     bool `json:"Elastic,omitempty"`
	OldStyle    bool `json:"OldStyle,omitempty"`
}

type ScaleParams struct {
	Kind   string      `json:"Kind"`            // Scalar, Vec3, PerDOF or Tensor, defaults to Scalar
	Value  *float64    `json:"Value,omitempty"` // Scalar factor, defaults to 1
	Vector []float64   `json:"Vector,omitempty"`
	Matrix [][]float64 `json:"Matrix,omitempty"`
}

func (cp *CaseParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, cp); err != nil {
		return
	}
	if cp.Size <= 0 {
		err = fmt.Errorf("case %q: Size must be positive, have %d", cp.Title, cp.Size)
	}
	return
}

func (cp *CaseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("[%d]\t\t\t\t= Size\n", cp.Size)
	fmt.Printf("[%d]\t\t\t\t= Elements\n", len(cp.Elements))
	for i, el := range cp.Elements {
		var (
			nr = len(el.Matrix)
			nc int
		)
		if nr > 0 {
			nc = len(el.Matrix[0])
		}
		fmt.Printf("Elements[%d] = %dx%d %+v, Scale[%s]\n", i, nr, nc, el.Layout, el.Scale.kindLabel())
	}
}

// Build converts the case elements into assembly terms
func (cp *CaseParameters) Build() (terms []fea.Term, err error) {
	terms = make([]fea.Term, len(cp.Elements))
	for i, el := range cp.Elements {
		if terms[i], err = el.term(); err != nil {
			err = fmt.Errorf("element %d: %w", i, err)
			return nil, err
		}
		if imax := max(utils.Index(el.RowIDs).Max(), utils.Index(el.IDs).Max()); imax >= cp.Size {
			err = fmt.Errorf("element %d: id %d outside a target of Size %d", i, imax, cp.Size)
			return nil, err
		}
	}
	return
}

func (el ElementParams) term() (term fea.Term, err error) {
	var (
		m utils.Matrix
	)
	if m, err = utils.NewMatrixFromRows(el.Matrix); err != nil {
		return
	}
	var (
		integrator = fea.Integrated(m)
		rowIDs     = utils.Index(el.RowIDs)
	)
	if el.Layout.OldStyle {
		term.Matrix = fea.NewLegacyElementMatrix(rowIDs, utils.Index(el.IDs), integrator)
	} else {
		var entity fea.Entity
		if el.Dim > 0 {
			entity = fea.Cell{Dimension: el.Dim}
		}
		layout := fea.Layout{
			NCoeff:      el.Layout.NCoeff,
			DofPerCoeff: el.Layout.DofPerCoeff,
			Elastic:     el.Layout.Elastic,
		}
		term.Matrix = fea.NewElementMatrix(layout, rowIDs, entity, integrator)
	}
	term.Factor = 1
	if el.Factor != nil {
		term.Factor = *el.Factor
	}
	term.Scale, err = el.Scale.build()
	return
}

func (sp ScaleParams) kindLabel() string {
	if len(sp.Kind) == 0 {
		return fea.ScalarKind.String()
	}
	return sp.Kind
}

func (sp ScaleParams) build() (s fea.Scale, err error) {
	var (
		kind fea.ScaleKind
	)
	if kind, err = fea.NewScaleKind(sp.kindLabel()); err != nil {
		return
	}
	switch kind {
	case fea.ScalarKind:
		s = fea.Scalar(1)
		if sp.Value != nil {
			s = fea.Scalar(*sp.Value)
		}
	case fea.Vec3Kind:
		if len(sp.Vector) > 3 {
			err = fmt.Errorf("vec3 scale has %d components", len(sp.Vector))
			return
		}
		var v fea.Vec3
		copy(v[:], sp.Vector)
		s = v
	case fea.PerDOFKind:
		if len(sp.Vector) == 0 {
			err = fmt.Errorf("per dof scale without values")
			return
		}
		s = fea.PerDOF{Vector: utils.NewVector(len(sp.Vector), sp.Vector).Copy()}
	case fea.TensorKind:
		var m utils.Matrix
		if m, err = utils.NewMatrixFromRows(sp.Matrix); err != nil {
			err = fmt.Errorf("tensor scale: %w", err)
			return
		}
		s = fea.Tensor{Matrix: m}
	}
	return
}
