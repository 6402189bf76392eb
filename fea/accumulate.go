package fea

import (
	"fmt"

	"github.com/notargets/gofea/utils"
)

// Target is a global vector receiving scatter-adds
type Target interface {
	Len() int
	AddAt(i int, val float64)
}

/*
Accumulate scatter-adds the element matrix A into t under the rule selected by
the type of f. Every call validates the whole walk before touching t, so an
error leaves t unmodified. Calling it twice adds the contribution twice.
*/
func Accumulate(t Target, A *ElementMatrix, f Scale, scale float64) (err error) {
	switch s := f.(type) {
	case Scalar:
		return AddScalar(t, A, float64(s), scale)
	case Vec3:
		return AddVec3(t, A, utils.Vec3(s), scale)
	case PerDOF:
		return AddPerDOF(t, A, s.Vector, scale)
	case Tensor:
		return AddTensor(t, A, s.Matrix, scale)
	case nil:
		return fmt.Errorf("%w: nil scale", ErrNotImplemented)
	}
	return fmt.Errorf("%w: scale kind %v", ErrNotImplemented, f.Kind())
}

// AddSign adds A with a factor of -1 when neg is set, +1 otherwise
func AddSign(t Target, A *ElementMatrix, neg bool) error {
	if neg {
		return AddScalar(t, A, -1, 1)
	}
	return AddScalar(t, A, 1, 1)
}

// AddScalar adds mat(j,i) * f * scale at rowIDs[j] for every walked column i.
// Elastic matrices walk only the first Entity().Dim() columns.
func AddScalar(t Target, A *ElementMatrix, f, scale float64) (err error) {
	if err = A.Integrate(); err != nil {
		return
	}
	var (
		v       = &A.view
		nr, nc  = v.dims()
		colStep = ColStep(v.nCoeff, nc)
		maxCols = nc
	)
	if v.elastic {
		if maxCols, err = A.spatialDim(nc); err != nil {
			return
		}
	}
	if err = checkTarget(t, v.rowIDs); err != nil {
		return
	}
	var (
		raw = v.mat.RawMatrix()
	)
	for i := 0; i < maxCols; i += colStep {
		for j := 0; j < nr; j++ {
			t.AddAt(v.rowIDs[j], raw.Data[j*raw.Stride+i]*f*scale)
		}
	}
	return
}

// AddVec3 adds mat(j,i) * f[i/colStep] * scale, one axis weight per column
// block. Old style and elastic matrices are not supported.
func AddVec3(t Target, A *ElementMatrix, f utils.Vec3, scale float64) (err error) {
	if A.OldStyle() || A.Elastic() {
		return fmt.Errorf("%w: vec3 scale with oldStyle = %v, elastic = %v",
			ErrNotImplemented, A.OldStyle(), A.Elastic())
	}
	if err = A.Integrate(); err != nil {
		return
	}
	var (
		v       = &A.view
		nr, nc  = v.dims()
		colStep = ColStep(v.nCoeff, nc)
	)
	if (nc-1)/colStep > 2 {
		return fmt.Errorf("%w: %d columns with step %d need more than 3 axis weights",
			ErrShapeMismatch, nc, colStep)
	}
	if err = checkTarget(t, v.rowIDs); err != nil {
		return
	}
	var (
		raw = v.mat.RawMatrix()
	)
	for i := 0; i < nc; i += colStep {
		for j := 0; j < nr; j++ {
			t.AddAt(v.rowIDs[j], raw.Data[j*raw.Stride+i]*f[i/colStep]*scale)
		}
	}
	return
}

// AddPerDOF adds mat(j,i) * f[id] * scale at id = rowIDs[j]. The weights span
// either all coefficients (indexed by id) or one coefficient block of
// DofPerCoeff values (indexed by id % DofPerCoeff).
func AddPerDOF(t Target, A *ElementMatrix, f utils.Vector, scale float64) (err error) {
	if err = A.Integrate(); err != nil {
		return
	}
	var (
		v        = &A.view
		nr, nc   = v.dims()
		colStep  = ColStep(v.nCoeff, nc)
		dpc      = A.DofPerCoeff()
		nf       = f.Len()
		wrapped  bool
		wrapSize = 1
	)
	if v.elastic {
		return fmt.Errorf("%w: per dof scale with elastic matrix %dx%d", ErrNotImplemented, nr, nc)
	}
	switch {
	case v.nCoeff == 1 || nf == dpc*v.nCoeff:
		if err = v.rowIDs.CheckBounds(nf); err != nil {
			return fmt.Errorf("%w: scale vector: %v", ErrIndexOutOfRange, err)
		}
	case dpc > 0 && nf == dpc:
		wrapped, wrapSize = true, dpc
	default:
		return fmt.Errorf("%w: scale vector of length %d, expected %d or %d",
			ErrShapeMismatch, nf, dpc*v.nCoeff, dpc)
	}
	if err = checkTarget(t, v.rowIDs); err != nil {
		return
	}
	var (
		raw = v.mat.RawMatrix()
		fd  = f.Data()
	)
	for j := 0; j < nr; j++ {
		var (
			jID = v.rowIDs[j]
			w   float64
		)
		if wrapped {
			w = fd[jID%wrapSize]
		} else {
			w = fd[jID]
		}
		for i := 0; i < nc; i += colStep {
			t.AddAt(jID, raw.Data[j*raw.Stride+i]*w*scale)
		}
	}
	return
}

/*
AddTensor applies a tensor f to an elastic matrix.

When f has the shape of the element matrix every entry is contracted:
mat(j,i) * f(j,i) * scale. When f is a square elasticity tensor (3x3 in 2D,
6x6 in 3D) its first dim row sums, times scale, give one weight per spatial
column and mat(j,i) * weight[i] is added for the first Entity().Dim() columns.
*/
func AddTensor(t Target, A *ElementMatrix, f utils.Matrix, scale float64) (err error) {
	if err = A.Integrate(); err != nil {
		return
	}
	var (
		v      = &A.view
		nr, nc = v.dims()
		fr, fc = f.Dims()
	)
	if !v.elastic {
		return fmt.Errorf("%w: tensor scale on non elastic matrix: A %dx%d, f %dx%d, scale %v",
			ErrNotImplemented, nr, nc, fr, fc, scale)
	}
	if err = checkTarget(t, v.rowIDs); err != nil {
		return
	}
	var (
		raw = v.mat.RawMatrix()
	)
	switch {
	case nc == fc && nr == fr:
		fRaw := f.RawMatrix()
		for j := 0; j < nr; j++ {
			jID := v.rowIDs[j]
			for i := 0; i < nc; i++ {
				t.AddAt(jID, raw.Data[j*raw.Stride+i]*fRaw.Data[j*fRaw.Stride+i]*scale)
			}
		}
	case fc == fr:
		var (
			scaleI  utils.Vec3
			nSum    int
			maxCols int
		)
		switch fc {
		case 3:
			nSum = 2
		case 6:
			nSum = 3
		default:
			return fmt.Errorf("%w: square tensor %dx%d is neither a 2D (3x3) nor 3D (6x6) elasticity tensor",
				ErrNotImplemented, fr, fc)
		}
		if maxCols, err = A.spatialDim(nc); err != nil {
			return
		}
		if maxCols > 3 {
			return fmt.Errorf("%w: entity dimension %d", ErrShapeMismatch, maxCols)
		}
		for k := 0; k < nSum; k++ {
			scaleI[k] = f.RowSum(k) * scale
		}
		for j := 0; j < nr; j++ {
			jID := v.rowIDs[j]
			for i := 0; i < maxCols; i++ {
				t.AddAt(jID, raw.Data[j*raw.Stride+i]*scaleI[i])
			}
		}
	default:
		return fmt.Errorf("%w: A %dx%d, f %dx%d, scale %v", ErrNotImplemented, nr, nc, fr, fc, scale)
	}
	return
}

func checkTarget(t Target, ids utils.Index) (err error) {
	if err = ids.CheckBounds(t.Len()); err != nil {
		err = fmt.Errorf("%w: target: %v", ErrIndexOutOfRange, err)
	}
	return
}
