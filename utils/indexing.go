package utils

import (
	"fmt"
)

// Index is an ordered list of global degree of freedom ids
type Index []int

// Max returns the largest id, or -1 for an empty index
func (I Index) Max() (imax int) {
	imax = -1
	for _, val := range I {
		if val > imax {
			imax = val
		}
	}
	return
}

// CheckBounds verifies that every id addresses a slot in [0, size)
func (I Index) CheckBounds(size int) (err error) {
	for k, val := range I {
		switch {
		case val < 0:
			err = fmt.Errorf("dimension bounds error, index < 0: I[%d] = %d", k, val)
			return
		case val > size-1:
			err = fmt.Errorf("dimension bounds error, index > max: I[%d] = %d, max = %d", k, val, size-1)
			return
		}
	}
	return
}
