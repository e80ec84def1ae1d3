package geometry

import (
	"errors"
	"fmt"
)

// ErrShapeParameter is matched by every ShapeParameterError.
var ErrShapeParameter = errors.New("invalid shape parameter")

// ShapeParameterError reports a tessellation parameter below its minimum.
type ShapeParameterError struct {
	Shape Shape
	Param string
	Value int
	Min   int
}

func (e *ShapeParameterError) Error() string {
	return fmt.Sprintf("%s: %s %s = %d, need at least %d",
		ErrShapeParameter, e.Shape, e.Param, e.Value, e.Min)
}

// Is reports whether target is ErrShapeParameter.
func (e *ShapeParameterError) Is(target error) bool {
	return target == ErrShapeParameter
}

func checkMin(shape Shape, param string, value, min int) error {
	if value < min {
		return &ShapeParameterError{Shape: shape, Param: param, Value: value, Min: min}
	}
	return nil
}
