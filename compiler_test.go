package mapper

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_SameNameSameTypeOnly(t *testing.T) {
	src := person{Name: "Ann", Age: 30, Score: 3.5, Email: "ann@example.com"}

	dst, err := Map[person, personDTO](src)
	require.NoError(t, err)

	assert.Equal(t, "Ann", dst.Name)
	assert.Equal(t, 30, dst.Age)
	// float64 -> float32 is not converted on the compiled path
	assert.Equal(t, float32(0), dst.Score)
}

func TestMap_HydrateConvertsWhatMapSkips(t *testing.T) {
	src := person{Name: "Ann", Age: 30, Score: 3.5}

	mapped, err := Map[person, personDTO](src)
	require.NoError(t, err)

	hydrated := personDTO{}
	require.NoError(t, Hydrate(&hydrated, &src))

	assert.Equal(t, float32(0), mapped.Score)
	assert.Equal(t, float32(3.5), hydrated.Score)
}

func TestMapWith_Pointers(t *testing.T) {
	c := NewCompiler()
	src := &person{Name: "Bo", Age: 4}

	dst, err := MapWith[*person, *personDTO](c, src)
	require.NoError(t, err)
	require.NotNil(t, dst)
	assert.Equal(t, personDTO{Name: "Bo", Age: 4}, *dst)

	other, err := MapWith[*person, *personDTO](c, src)
	require.NoError(t, err)
	assert.NotSame(t, dst, other)
}

func TestMapWith_AbsentSource(t *testing.T) {
	c := NewCompiler()

	dst, err := MapWith[*person, personDTO](c, nil)
	require.NoError(t, err)
	assert.Equal(t, personDTO{}, dst)

	ptr, err := MapWith[*person, *personDTO](c, nil)
	require.NoError(t, err)
	assert.Nil(t, ptr)

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.builds.Load())
}

func TestMapWith_TypeMismatchNeverAssigned(t *testing.T) {
	type wide struct {
		ID    int64
		Label string
	}
	type narrow struct {
		ID    int
		Label string
	}
	c := NewCompiler()
	dst, err := MapWith[wide, narrow](c, wide{ID: 7, Label: "l"})
	require.NoError(t, err)
	assert.Equal(t, narrow{Label: "l"}, dst)
}

func TestMapWith_ConstructionError(t *testing.T) {
	c := NewCompiler()

	_, err := MapWith[int, personDTO](c, 5)
	var consErr *ConstructionError
	require.True(t, errors.As(err, &consErr))
	assert.Equal(t, reflect.TypeOf(0), consErr.Pair.Source)
	assert.Contains(t, err.Error(), "source")

	// cached, not retried
	_, again := MapWith[int, personDTO](c, 6)
	assert.Same(t, err, again)
	assert.Equal(t, int64(1), c.builds.Load())
	assert.Equal(t, 1, c.Len())

	_, err = MapWith[person, map[string]any](c, person{})
	require.True(t, errors.As(err, &consErr))
	assert.Contains(t, consErr.Reason, "target")
}

func TestMapWith_ReusesCompiledFunction(t *testing.T) {
	c := NewCompiler()
	for i := 0; i < 1000; i++ {
		src := person{Name: "n", Age: i, Score: float64(i)}
		dst, err := MapWith[person, personDTO](c, src)
		require.NoError(t, err)
		require.Equal(t, personDTO{Name: "n", Age: i}, dst)
	}
	assert.Equal(t, int64(1), c.builds.Load())
	assert.Equal(t, 1, c.Len())
}

func TestMapWith_DistinctPairs(t *testing.T) {
	c := NewCompiler()
	_, err := MapWith[person, personDTO](c, person{})
	require.NoError(t, err)
	_, err = MapWith[*person, personDTO](c, &person{})
	require.NoError(t, err)
	_, err = MapWith[person, account](c, person{})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestMapWith_SourceIsNotAliased(t *testing.T) {
	type tagged struct {
		Name string
		Tags []string
	}
	c := NewCompiler()
	src := &tagged{Name: "a", Tags: []string{"x"}}
	dst, err := MapWith[*tagged, tagged](c, src)
	require.NoError(t, err)

	src.Name = "b"
	assert.Equal(t, "a", dst.Name)
	// slices are copied by reference, as a plain assignment would
	assert.Equal(t, []string{"x"}, dst.Tags)
}

func TestPrecompile(t *testing.T) {
	c := NewCompiler()
	require.NoError(t, Precompile[person, account](c))
	assert.Equal(t, 1, c.Len())

	dst, err := MapWith[person, account](c, person{Name: "p", Age: 2, Email: "e"})
	require.NoError(t, err)
	assert.Equal(t, account{Name: "p", Age: 2, Email: "e"}, dst)
	assert.Equal(t, int64(1), c.builds.Load())

	assert.Error(t, Precompile[string, account](c))
}

func TestMustMap(t *testing.T) {
	assert.Equal(t, account{Name: "m"}, MustMap[person, account](person{Name: "m"}))
	assert.Panics(t, func() { MustMap[person, []int](person{}) })
}

func TestTypePair_String(t *testing.T) {
	p := TypePair{Source: reflect.TypeOf(person{}), Target: reflect.TypeOf(personDTO{})}
	assert.Equal(t, "mapper.person -> mapper.personDTO", p.String())
}

func TestDefaultCompiler(t *testing.T) {
	type defaultSource struct{ Name string }
	type defaultTarget struct{ Name string }

	c := DefaultCompiler()
	assert.Same(t, c, DefaultCompiler())

	before := c.Len()
	dst, err := Map[defaultSource, defaultTarget](defaultSource{Name: "d"})
	require.NoError(t, err)
	assert.Equal(t, defaultTarget{Name: "d"}, dst)
	assert.Equal(t, before+1, c.Len())
}
