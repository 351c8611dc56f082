package mapper

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// binding copies the source field at src into the target field at dst.
type binding struct {
	src []int
	dst []int
}

// plan is a compiled mapping for one TypePair. It is never modified once stored.
type plan struct {
	fn  any // func(S) D for the pair's S and D
	err error
}

// Compiler owns the compiled mapping functions, one per TypePair, for as long as it lives.
// The zero value is ready to use.
type Compiler struct {
	plans  sync.Map // map[TypePair]*plan
	builds atomic.Int64
}

var defaultCompiler = NewCompiler()

// DefaultCompiler returns the process-wide Compiler used by Map and MustMap.
func DefaultCompiler() *Compiler { return defaultCompiler }

// NewCompiler returns a Compiler with an empty cache.
func NewCompiler() *Compiler { return &Compiler{} }

// Len returns the number of type pairs compiled so far, including failed ones.
func (c *Compiler) Len() int {
	n := 0
	c.plans.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Map copies source into a new D using the default compiler.
func Map[S, D any](source S) (D, error) { return MapWith[S, D](defaultCompiler, source) }

// MapWith copies source into a new D. Only fields with the same name and the same declared
// type on both sides are copied; every other target field keeps its zero value.
// A nil source returns the zero D without compiling anything.
func MapWith[S, D any](c *Compiler, source S) (D, error) {
	var zero D
	if isAbsent(source) {
		return zero, nil
	}
	fn, err := compiled[S, D](c)
	if err != nil {
		return zero, err
	}
	return fn(source), nil
}

// Precompile compiles the mapping from S to D ahead of its first use.
func Precompile[S, D any](c *Compiler) error {
	_, err := compiled[S, D](c)
	return err
}

func compiled[S, D any](c *Compiler) (func(S) D, error) {
	pair := TypePair{Source: reflect.TypeFor[S](), Target: reflect.TypeFor[D]()}
	cached, ok := c.plans.Load(pair)
	if !ok {
		c.builds.Add(1)
		cached, _ = c.plans.LoadOrStore(pair, compile[S, D](pair))
	}
	p := cached.(*plan)
	if p.err != nil {
		return nil, p.err
	}
	return p.fn.(func(S) D), nil
}

func compile[S, D any](pair TypePair) *plan {
	st, srcPtr := structElem(pair.Source)
	if st == nil {
		return &plan{err: &ConstructionError{Pair: pair, Reason: "source is not a struct or a pointer to a struct"}}
	}
	dt, dstPtr := structElem(pair.Target)
	if dt == nil {
		return &plan{err: &ConstructionError{Pair: pair, Reason: "target is not a struct or a pointer to a struct"}}
	}
	bindings := bind(st, dt)

	fn := func(source S) D {
		sv := reflect.ValueOf(&source).Elem()
		if srcPtr {
			sv = sv.Elem()
		}
		var out D
		dv := reflect.ValueOf(&out).Elem()
		if dstPtr {
			dv.Set(reflect.New(dt))
			dv = dv.Elem()
		}
		for _, b := range bindings {
			from, ok := readField(sv, b.src)
			if !ok {
				continue
			}
			to, ok := writableField(dv, b.dst)
			if !ok {
				continue
			}
			to.Set(from)
		}
		return out
	}
	return &plan{fn: fn}
}

// bind pairs every writable target field with the source field of the same name and the
// identical declared type.
func bind(st, dt reflect.Type) []binding {
	var in ReflectIntrospector
	var bindings []binding
	for _, df := range in.WritableFields(dt) {
		sf, ok := in.FieldByName(st, df.Name)
		if !ok || sf.Type != df.Type {
			continue
		}
		bindings = append(bindings, binding{src: sf.Index, dst: df.Index})
	}
	return bindings
}
