package mapper

import (
	"fmt"
	"reflect"

	"github.com/Station-Manager/mapper/converters"
)

// AfterMapFunc is called once after Hydrate has assigned every field.
// It receives the target and source exactly as they were passed to Hydrate.
type AfterMapFunc func(target, source any) error

// Options holds the settings applied by Hydrate.
type Options struct {
	Ignored      []string     // target field names left untouched
	AfterMap     AfterMapFunc // optional post-copy hook
	Introspector Introspector // defaults to ReflectIntrospector
}

// Option configures a single Hydrate call.
type Option func(*Options)

// WithIgnored adds target field names to skip. Repeated and unknown names are harmless.
func WithIgnored(names ...string) Option {
	return func(o *Options) { o.Ignored = append(o.Ignored, names...) }
}

// WithAfterMap sets the post-copy hook. The last one wins.
func WithAfterMap(fn AfterMapFunc) Option { return func(o *Options) { o.AfterMap = fn } }

// WithIntrospector replaces the field lookup used by Hydrate.
func WithIntrospector(in Introspector) Option { return func(o *Options) { o.Introspector = in } }

// Hydrate copies the fields of source into the struct target points to.
//
// A nil target or source is not an error; nothing is changed and the hook is not called.
// Conversion failures abort the copy with a *ConversionError, leaving earlier fields assigned.
// Errors from the AfterMap hook are returned as they are.
func Hydrate(target, source any, opts ...Option) error {
	if isAbsent(target) || isAbsent(source) {
		return nil
	}
	o := Options{Introspector: ReflectIntrospector{}}
	for _, f := range opts {
		f(&o)
	}

	dstVal := reflect.ValueOf(target)
	if dstVal.Kind() != reflect.Pointer || dstVal.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %T", ErrInvalidTarget, target)
	}
	dstVal = dstVal.Elem()
	srcVal := reflect.Indirect(reflect.ValueOf(source))
	if srcVal.Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %T", ErrInvalidSource, source)
	}

	var ignored map[string]struct{}
	if len(o.Ignored) > 0 {
		ignored = make(map[string]struct{}, len(o.Ignored))
		for _, name := range o.Ignored {
			ignored[name] = struct{}{}
		}
	}

	st := srcVal.Type()
	for _, df := range o.Introspector.WritableFields(dstVal.Type()) {
		if _, skip := ignored[df.Name]; skip {
			continue
		}
		sf, found := o.Introspector.FieldByName(st, df.Name)
		if !found || !sf.Readable {
			continue
		}
		srcField, ok := readField(srcVal, sf.Index)
		if !ok {
			continue
		}
		dstField, ok := writableField(dstVal, df.Index)
		if !ok {
			continue
		}
		if err := hydrateField(dstField, srcField, df, sf); err != nil {
			return err
		}
	}

	if o.AfterMap != nil {
		return o.AfterMap(target, source)
	}
	return nil
}

func hydrateField(dstField, srcField reflect.Value, df, sf Field) error {
	if df.Type == sf.Type {
		dstField.Set(srcField)
		return nil
	}
	converted, err := converters.ChangeType(srcField, df.Type)
	if err != nil {
		return &ConversionError{Field: df.Name, Source: sf.Type, Target: df.Type, Err: err}
	}
	dstField.Set(converted)
	return nil
}
