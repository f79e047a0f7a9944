package generator

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrArgCount is returned when the number of dimension arguments is not three.
	ErrArgCount = errors.New("generator: expected 3 dimensions (rowsM inner colsN)")

	// ErrBadDimension is returned when a dimension is not a non-negative base-10 integer.
	ErrBadDimension = errors.New("generator: invalid dimension")
)

// Dims holds the shape of both matrices: M is RowsM x Inner, N is Inner x ColsN.
type Dims struct {
	RowsM int
	Inner int
	ColsN int
}

var dimNames = [3]string{"rowsM", "inner", "colsN"}

// ParseDims reads the three positional dimension arguments.
// Zero is allowed and produces an empty matrix file.
func ParseDims(args []string) (Dims, error) {
	if len(args) != 3 {
		return Dims{}, fmt.Errorf("%w, got %d", ErrArgCount, len(args))
	}
	var vals [3]int
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return Dims{}, fmt.Errorf("%w: %s=%q is not an integer", ErrBadDimension, dimNames[i], arg)
		}
		if v < 0 {
			return Dims{}, fmt.Errorf("%w: %s=%d is negative", ErrBadDimension, dimNames[i], v)
		}
		vals[i] = v
	}
	return Dims{RowsM: vals[0], Inner: vals[1], ColsN: vals[2]}, nil
}
