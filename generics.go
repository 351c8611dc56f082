package mapper

// Generic helpers as top-level functions (methods cannot have type parameters yet)

// HydrateNew allocates a D and hydrates it from source.
func HydrateNew[D any](source any, opts ...Option) (*D, error) {
	var d D
	if err := Hydrate(&d, source, opts...); err != nil {
		return nil, err
	}
	return &d, nil
}

// MustMap is Map for type pairs known to compile. It panics with the *ConstructionError otherwise.
func MustMap[S, D any](source S) D {
	d, err := Map[S, D](source)
	if err != nil {
		panic(err)
	}
	return d
}
