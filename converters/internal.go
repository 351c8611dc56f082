package converters

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/Station-Manager/errors"
	"github.com/spf13/cast"
)

var (
	stringerType = reflect.TypeFor[fmt.Stringer]()
	errorType    = reflect.TypeFor[error]()
)

// plain returns v as an interface value cast understands. Named basic types are reduced to
// their predeclared type unless they print themselves (fmt.Stringer, error).
func plain(v reflect.Value) any {
	t := v.Type()
	if t.PkgPath() == "" || t.Implements(stringerType) || t.Implements(errorType) {
		if v.CanInterface() {
			return v.Interface()
		}
	}
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint()
	case reflect.Float32:
		return float32(v.Float())
	case reflect.Float64:
		return v.Float()
	case reflect.String:
		return v.String()
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return v.Bytes()
		}
	}
	if v.CanInterface() {
		return v.Interface()
	}
	return nil
}

// textOf returns the bytes of a string or byte slice value.
func textOf(v reflect.Value) ([]byte, bool) {
	switch {
	case v.Kind() == reflect.String:
		return []byte(v.String()), true
	case v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8:
		return v.Bytes(), true
	}
	return nil, false
}

// isComposite reports whether v is a struct, map, array or non-byte slice, i.e. something
// that is carried as JSON when the target wants bytes.
func isComposite(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Struct:
		return v.Type() != timeType
	case reflect.Map, reflect.Array:
		return true
	case reflect.Slice:
		return v.Type().Elem().Kind() != reflect.Uint8
	}
	return false
}

// isNil reports a missing value. Nil maps and slices are empty values, not missing ones.
func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// convertible guards reflect conversions that would panic or reinterpret numbers as runes.
func convertible(v reflect.Value, t reflect.Type) bool {
	if !v.Type().ConvertibleTo(t) {
		return false
	}
	if v.Kind() == reflect.Slice && t.Kind() == reflect.Array {
		return v.Len() >= t.Len()
	}
	return true
}

// CheckString returns src if it is a string.
func CheckString(src any) (string, error) {
	const op errors.Op = "converters.CheckString"
	srcVal, ok := src.(string)
	if !ok {
		return "", errors.New(op).Errorf("Given parameter not a string, got %T", src)
	}
	return srcVal, nil
}

// CheckFloat64 returns src if it is a float64.
func CheckFloat64(src any) (float64, error) {
	const op errors.Op = "converters.CheckFloat64"
	srcVal, ok := src.(float64)
	if !ok {
		return 0, errors.New(op).Errorf("Given parameter not a float64, got %T", src)
	}
	return srcVal, nil
}

// CheckInt64 returns src if it is an int64.
func CheckInt64(src any) (int64, error) {
	const op errors.Op = "converters.CheckInt64"
	srcVal, ok := src.(int64)
	if !ok {
		return 0, errors.New(op).Errorf("Given parameter not an int64, got %T", src)
	}
	return srcVal, nil
}

const (
	twoTo63 = float64(1 << 63)
	twoTo64 = 2 * twoTo63
)

// toInt64 reads v as an int64. Unsigned values above math.MaxInt64 and floats outside the int64
// range fail instead of wrapping.
func toInt64(v reflect.Value) (int64, error) {
	const op errors.Op = "converters.toInt64"
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			return 0, errors.New(op).Errorf("%d overflows int64", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := math.Trunc(v.Float())
		if math.IsNaN(f) || f < -twoTo63 || f >= twoTo63 {
			return 0, errors.New(op).Errorf("%g overflows int64", v.Float())
		}
		return int64(f), nil
	case reflect.String:
		n, err := strconv.ParseInt(strings.TrimSpace(v.String()), 10, 64)
		if err != nil {
			return 0, errors.New(op).Err(err).Msg(err.Error())
		}
		return n, nil
	}
	n, err := cast.ToInt64E(plain(v))
	if err != nil {
		return 0, errors.New(op).Err(err).Msg(err.Error())
	}
	return n, nil
}

// toUint64 reads v as a uint64. Negative numbers and floats of 2^64 or more fail.
func toUint64(v reflect.Value) (uint64, error) {
	const op errors.Op = "converters.toUint64"
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if n < 0 {
			return 0, errors.New(op).Errorf("%d is negative", n)
		}
		return uint64(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint(), nil
	case reflect.Float32, reflect.Float64:
		f := math.Trunc(v.Float())
		if math.IsNaN(f) || f < 0 || f >= twoTo64 {
			return 0, errors.New(op).Errorf("%g overflows uint64", v.Float())
		}
		return uint64(f), nil
	case reflect.String:
		n, err := strconv.ParseUint(strings.TrimSpace(v.String()), 10, 64)
		if err != nil {
			return 0, errors.New(op).Err(err).Msg(err.Error())
		}
		return n, nil
	}
	n, err := cast.ToUint64E(plain(v))
	if err != nil {
		return 0, errors.New(op).Err(err).Msg(err.Error())
	}
	return n, nil
}

func toFloat64(v reflect.Value) (float64, error) {
	const op errors.Op = "converters.toFloat64"
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return 0, errors.New(op).Err(err).Msg(err.Error())
		}
		return f, nil
	}
	f, err := cast.ToFloat64E(plain(v))
	if err != nil {
		return 0, errors.New(op).Err(err).Msg(err.Error())
	}
	return f, nil
}
