// Package converters implements the value conversion rules used when a source field and a
// target field share a name but not a type.
//
// ChangeType applies, in order:
//  1. assignable values are returned unchanged
//  2. nil is scanned into sql.Scanner targets and becomes the zero value of anything else
//  3. driver.Valuer sources (null.String, types.JSON, ...) are unwrapped through Value()
//  4. pointers are dereferenced, pointer targets are allocated
//  5. sql.Scanner targets receive the value through Scan
//  6. bool, string, time.Time and time.Duration targets are coerced with spf13/cast; numeric
//     targets parse text as base 10 and fail on values out of range instead of wrapping
//  7. []byte targets accept structs, maps and slices as JSON; struct, map and slice targets accept JSON text
//  8. anything else Go can convert with reflect is converted
//
// Float to integer conversion truncates toward zero.
package converters

import (
	"database/sql"
	"database/sql/driver"
	"reflect"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

var (
	valuerType   = reflect.TypeFor[driver.Valuer]()
	scannerType  = reflect.TypeFor[sql.Scanner]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

// ChangeType converts v to a value of type t.
func ChangeType(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	const op errors.Op = "converters.ChangeType"
	if t == nil {
		return reflect.Value{}, errors.New(op).Msg(ErrMsgNilTargetType)
	}
	if v.IsValid() && v.Type().AssignableTo(t) {
		return v, nil
	}
	if isNil(v) {
		return nilValue(t)
	}
	if v.Kind() == reflect.Interface {
		return ChangeType(v.Elem(), t)
	}
	if v.Type().Implements(valuerType) && v.CanInterface() {
		raw, err := v.Interface().(driver.Valuer).Value()
		if err != nil {
			return reflect.Value{}, errors.New(op).Err(err)
		}
		return ChangeType(reflect.ValueOf(raw), t)
	}
	if v.Kind() == reflect.Pointer {
		return ChangeType(v.Elem(), t)
	}
	if reflect.PointerTo(t).Implements(scannerType) {
		return scan(v, t)
	}
	if t.Kind() == reflect.Pointer {
		elem, err := ChangeType(v, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		return p, nil
	}
	return coerce(v, t)
}

// To converts v to T with the ChangeType rules.
func To[T any](v any) (T, error) {
	var zero T
	out, err := ChangeType(reflect.ValueOf(v), reflect.TypeFor[T]())
	if err != nil || !out.IsValid() {
		return zero, err
	}
	res, _ := out.Interface().(T)
	return res, nil
}

// nilValue converts a missing value: sql.Scanner targets scan nil, everything else gets its zero value.
func nilValue(t reflect.Type) (reflect.Value, error) {
	const op errors.Op = "converters.nilValue"
	if reflect.PointerTo(t).Implements(scannerType) {
		p := reflect.New(t)
		if err := p.Interface().(sql.Scanner).Scan(nil); err != nil {
			return reflect.Value{}, errors.New(op).Err(err)
		}
		return p.Elem(), nil
	}
	return reflect.Zero(t), nil
}

func scan(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	const op errors.Op = "converters.scan"
	in := plain(v)
	if isComposite(v) {
		data, err := json.Marshal(in)
		if err != nil {
			return reflect.Value{}, errors.New(op).Err(err)
		}
		in = data
	}
	p := reflect.New(t)
	if err := p.Interface().(sql.Scanner).Scan(in); err != nil {
		return reflect.Value{}, errors.New(op).Err(err)
	}
	return p.Elem(), nil
}

func coerce(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	const op errors.Op = "converters.coerce"
	in := plain(v)
	out := reflect.New(t).Elem()

	switch t {
	case durationType:
		d, err := cast.ToDurationE(in)
		if err != nil {
			return reflect.Value{}, errors.New(op).Err(err)
		}
		out.SetInt(int64(d))
		return out, nil
	case timeType:
		tm, err := cast.ToTimeE(in)
		if err != nil {
			return reflect.Value{}, errors.New(op).Err(err)
		}
		out.Set(reflect.ValueOf(tm))
		return out, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		b, err := cast.ToBoolE(in)
		if err != nil {
			return reflect.Value{}, errors.New(op).Err(err)
		}
		out.SetBool(b)
		return out, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := CheckInt64(in)
		if err != nil {
			if n, err = toInt64(v); err != nil {
				return reflect.Value{}, err
			}
		}
		if out.OverflowInt(n) {
			return reflect.Value{}, errors.New(op).Errorf("%d overflows %s", n, t)
		}
		out.SetInt(n)
		return out, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := toUint64(v)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowUint(n) {
			return reflect.Value{}, errors.New(op).Errorf("%d overflows %s", n, t)
		}
		out.SetUint(n)
		return out, nil
	case reflect.Float32, reflect.Float64:
		f, err := CheckFloat64(in)
		if err != nil {
			if f, err = toFloat64(v); err != nil {
				return reflect.Value{}, err
			}
		}
		if out.OverflowFloat(f) {
			return reflect.Value{}, errors.New(op).Errorf("%g overflows %s", f, t)
		}
		out.SetFloat(f)
		return out, nil
	case reflect.String:
		s, err := CheckString(in)
		if err != nil {
			if s, err = cast.ToStringE(in); err != nil {
				return reflect.Value{}, errors.New(op).Err(err).Msg(err.Error())
			}
		}
		out.SetString(s)
		return out, nil
	case reflect.Slice, reflect.Struct, reflect.Map:
		if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
			if !isComposite(v) {
				break
			}
			data, err := json.Marshal(in)
			if err != nil {
				return reflect.Value{}, errors.New(op).Err(err)
			}
			out.SetBytes(data)
			return out, nil
		}
		if text, ok := textOf(v); ok {
			p := reflect.New(t)
			if err := json.Unmarshal(text, p.Interface()); err != nil {
				return reflect.Value{}, errors.New(op).Err(err)
			}
			return p.Elem(), nil
		}
	}

	if convertible(v, t) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, errors.New(op).Errorf("cannot convert %s to %s", v.Type(), t)
}
