package mapper

import "reflect"

// Field describes a struct field as seen by the copiers. Fields are derived from the type on
// demand and are not cached.
type Field struct {
	Name     string
	Type     reflect.Type
	Index    []int
	Readable bool
	Writable bool
}

// Introspector lists and finds struct fields. Hydrate accepts a custom one through
// WithIntrospector, e.g. a generated field table.
type Introspector interface {
	WritableFields(t reflect.Type) []Field
	FieldByName(t reflect.Type, name string) (Field, bool)
}

// ReflectIntrospector is the reflection-backed Introspector used by default.
type ReflectIntrospector struct{}

// WritableFields returns the writable fields of t in declaration order, with promoted
// fields following the embedded struct that declares them.
func (ReflectIntrospector) WritableFields(t reflect.Type) []Field {
	all := structFields(t)
	out := all[:0]
	for _, f := range all {
		if f.Writable {
			out = append(out, f)
		}
	}
	return out
}

// FieldByName finds the field called name following Go's promotion rules.
func (ReflectIntrospector) FieldByName(t reflect.Type, name string) (Field, bool) {
	if t.Kind() != reflect.Struct {
		return Field{}, false
	}
	sf, ok := t.FieldByName(name)
	if !ok || !sf.IsExported() || isEmbeddedStruct(sf) {
		return Field{}, false
	}
	return describe(t, sf), true
}

func structFields(t reflect.Type) []Field {
	if t.Kind() != reflect.Struct {
		return nil
	}
	visible := reflect.VisibleFields(t)
	fields := make([]Field, 0, len(visible))
	for _, sf := range visible {
		if !sf.IsExported() || isEmbeddedStruct(sf) {
			continue
		}
		fields = append(fields, describe(t, sf))
	}
	return fields
}

func isEmbeddedStruct(sf reflect.StructField) bool {
	if !sf.Anonymous {
		return false
	}
	ft := sf.Type
	if ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
	}
	return ft.Kind() == reflect.Struct
}

// describe builds the descriptor for sf. A field behind an embedded pointer to an
// unexported type is readable but not writable: the pointer cannot be allocated.
func describe(root reflect.Type, sf reflect.StructField) Field {
	writable := true
	t := root
	for _, i := range sf.Index[:len(sf.Index)-1] {
		step := t.Field(i)
		ft := step.Type
		if ft.Kind() == reflect.Pointer {
			if !step.IsExported() {
				writable = false
			}
			ft = ft.Elem()
		}
		t = ft
	}
	return Field{Name: sf.Name, Type: sf.Type, Index: sf.Index, Readable: true, Writable: writable}
}

// readField follows index through v. It reports false when a nil embedded pointer is in the way.
func readField(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

// writableField follows index through v, allocating nil embedded pointers on the way.
func writableField(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, v.CanSet()
}

// isAbsent reports whether v is nil or a nil pointer, map, slice, interface, func or chan.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// structElem returns the struct type behind t and whether t was a pointer to it.
// It returns nil for anything that is not a struct or a pointer to a struct.
func structElem(t reflect.Type) (reflect.Type, bool) {
	switch {
	case t.Kind() == reflect.Struct:
		return t, false
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		return t.Elem(), true
	}
	return nil, false
}
