package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Range returns start, start+step, ... below stop. A non-positive step yields
// an empty Index.
func Range(start, stop, step int) (r Index) {
	r = Index{}
	if step <= 0 {
		return
	}
	for i := start; i < stop; i += step {
		r = append(r, i)
	}
	return
}

func RangeTo(stop int) Index {
	return Range(0, stop, 1)
}

func ParseRange(dim string) (r Index, err error) {
	/*
		Converts phrases including:
			"N"       = 0 to N-1
			"A:B"     = A to B-1
			"A:B:S"   = A to B-1, stepping by S
			":B"      = 0 to B-1
	*/
	var (
		splits            = strings.Split(strings.TrimSpace(dim), ":")
		start, stop, step = 0, 0, 1
	)
	parse := func(s string, dflt int) (val int, err error) {
		if len(s) == 0 {
			return dflt, nil
		}
		if val, err = strconv.Atoi(s); err != nil {
			err = fmt.Errorf("unable to parse range %q: %w", dim, err)
		}
		return
	}
	switch len(splits) {
	case 1:
		if stop, err = parse(splits[0], 0); err != nil {
			return
		}
	case 2, 3:
		if start, err = parse(splits[0], 0); err != nil {
			return
		}
		if stop, err = parse(splits[1], 0); err != nil {
			return
		}
		if len(splits) == 3 {
			if step, err = parse(splits[2], 1); err != nil {
				return
			}
		}
	default:
		err = fmt.Errorf("unable to parse range %q: too many fields", dim)
		return
	}
	if step <= 0 {
		err = fmt.Errorf("unable to parse range %q: step must be positive, have %d", dim, step)
		return
	}
	r = Range(start, stop, step)
	return
}
