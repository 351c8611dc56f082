package mapper

// MapSlice maps every element of src through the compiled S to D function of c.
// Nil elements map to the zero D. A nil slice returns nil.
func MapSlice[S, D any](c *Compiler, src []S) ([]D, error) {
	if src == nil {
		return nil, nil
	}
	fn, err := compiled[S, D](c)
	if err != nil {
		return nil, err
	}
	out := make([]D, len(src))
	for i, s := range src {
		if isAbsent(s) {
			continue
		}
		out[i] = fn(s)
	}
	return out, nil
}
