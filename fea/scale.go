package fea

import (
	"fmt"
	"strings"

	"github.com/notargets/gofea/utils"
)

// ScaleKind labels the four accumulation rules
type ScaleKind uint8

const (
	ScalarKind ScaleKind = iota
	Vec3Kind
	PerDOFKind
	TensorKind
)

var scaleKindNames = []string{"Scalar", "Vec3", "PerDOF", "Tensor"}

func (k ScaleKind) String() string {
	if int(k) < len(scaleKindNames) {
		return scaleKindNames[k]
	}
	return fmt.Sprintf("ScaleKind(%d)", uint8(k))
}

// NewScaleKind parses a kind label, ignoring case
func NewScaleKind(label string) (k ScaleKind, err error) {
	for i, name := range scaleKindNames {
		if strings.EqualFold(label, name) {
			return ScaleKind(i), nil
		}
	}
	err = fmt.Errorf("unknown scale kind %q, must be one of %v", label, scaleKindNames)
	return
}

// Scale selects the accumulation rule applied to an element matrix. The
// concrete types are Scalar, Vec3, PerDOF and Tensor.
type Scale interface {
	Kind() ScaleKind
}

// Scalar multiplies every walked column
type Scalar float64

// Vec3 weights each column block by one spatial axis
type Vec3 utils.Vec3

// PerDOF weights each row by the value at its global id
type PerDOF struct {
	utils.Vector
}

// Tensor contracts an elastic matrix with a full or reduced tensor
type Tensor struct {
	utils.Matrix
}

func (Scalar) Kind() ScaleKind { return ScalarKind }
func (Vec3) Kind() ScaleKind   { return Vec3Kind }
func (PerDOF) Kind() ScaleKind { return PerDOFKind }
func (Tensor) Kind() ScaleKind { return TensorKind }
