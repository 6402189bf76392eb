package fea

/*
StrideFor returns the column step used to walk an element matrix whose columns
hold the components of a gradient or tensor. Rows are degrees of freedom,
columns are components.

	nCoeff cols  layout                                    step
	2      4     2D gradient xx, xy, yx, yy                3  -> [0, 3]
	2      3     2D tensor mapping xx, yy, xy              1
	3      9     3D gradient xx, xy, xz, ..., zz           4  -> [0, 4, 8]
	3      6     3D tensor mapping xx, yy, zz, xy, yz, zx  1

Any other pair falls back to a step of 1 with known == false.
*/
func StrideFor(nCoeff, cols int) (step int, known bool) {
	switch {
	case nCoeff == 2 && cols == 4:
		return 3, true
	case nCoeff == 2 && cols == 3:
		return 1, true
	case nCoeff == 3 && cols == 9:
		return 4, true
	case nCoeff == 3 && cols == 6:
		return 1, true
	}
	return 1, false
}

// ColStep is StrideFor without the recognition flag
func ColStep(nCoeff, cols int) (step int) {
	step, _ = StrideFor(nCoeff, cols)
	return
}
