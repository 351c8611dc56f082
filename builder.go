package mapper

// Builder pairs one source with one target and collects the settings for a single Hydrate call.
// It is meant to be applied once and discarded, and must not be shared between goroutines.
type Builder[S, D any] struct {
	source   S
	target   D
	ignored  []string
	afterMap func(target D, source S) error
}

// Create starts a fluent mapping of source into target. target is normally a pointer to a struct.
func Create[S, D any](source S, target D) *Builder[S, D] {
	return &Builder[S, D]{source: source, target: target}
}

// WithAfterMap sets the hook run after all fields are copied. Calling it again replaces the hook.
func (b *Builder[S, D]) WithAfterMap(fn func(target D, source S) error) *Builder[S, D] {
	b.afterMap = fn
	return b
}

// Ignore adds target field names to leave untouched. It can be called any number of times.
func (b *Builder[S, D]) Ignore(names ...string) *Builder[S, D] {
	b.ignored = append(b.ignored, names...)
	return b
}

// Apply runs Hydrate with the collected settings.
func (b *Builder[S, D]) Apply() error {
	opts := []Option{WithIgnored(b.ignored...)}
	if fn := b.afterMap; fn != nil {
		opts = append(opts, WithAfterMap(func(any, any) error { return fn(b.target, b.source) }))
	}
	return Hydrate(b.target, b.source, opts...)
}
