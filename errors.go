package mapper

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrInvalidTarget = errors.New("mapper: target must be a non-nil pointer to a struct")
	ErrInvalidSource = errors.New("mapper: source must be a struct or a pointer to a struct")
)

// ConversionError reports a field whose source value could not be converted to the
// target field's type.
type ConversionError struct {
	Field  string
	Source reflect.Type
	Target reflect.Type
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("mapper: converting field %s from %s to %s: %v", e.Field, e.Source, e.Target, rootCause(e.Err))
}

func (e *ConversionError) Unwrap() error { return e.Err }

// rootCause follows Cause down to the error that describes the failure.
func rootCause(err error) error {
	for {
		c, ok := err.(interface{ Cause() error })
		if !ok || c.Cause() == nil {
			return err
		}
		err = c.Cause()
	}
}

// TypePair identifies a compiled mapping function.
type TypePair struct {
	Source reflect.Type
	Target reflect.Type
}

func (p TypePair) String() string {
	return fmt.Sprintf("%v -> %v", p.Source, p.Target)
}

// ConstructionError is returned when no mapping function can be compiled for a type pair.
// It is cached with the pair and returned on every later call.
type ConstructionError struct {
	Pair   TypePair
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("mapper: cannot compile %s: %s", e.Pair, e.Reason)
}
