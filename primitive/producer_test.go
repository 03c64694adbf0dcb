package primitive_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixture-generator/primitive"
	"fixture-generator/random"
	"fixture-generator/settings"
)

type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityHigh
	PriorityUrgent
)

func (p Priority) IsValid() bool { return p >= PriorityLow && p <= PriorityUrgent }

type Code string

func TestRegistry_DefaultRanges(t *testing.T) {
	t.Parallel()

	reg := primitive.NewRegistry()
	cfg := settings.Defaults()
	rnd := random.New(42)

	for range 200 {
		v, err := reg.Produce(rnd, &cfg, reflect.TypeFor[int]())
		require.NoError(t, err)
		assert.True(t, v.Int() >= 1 && v.Int() <= 10_000)

		v, err = reg.Produce(rnd, &cfg, reflect.TypeFor[int8]())
		require.NoError(t, err)
		assert.True(t, v.Int() >= 1 && v.Int() <= 127, "clamped to int8")

		v, err = reg.Produce(rnd, &cfg, reflect.TypeFor[uint16]())
		require.NoError(t, err)
		assert.True(t, v.Uint() >= 1 && v.Uint() <= 10_000)

		v, err = reg.Produce(rnd, &cfg, reflect.TypeFor[string]())
		require.NoError(t, err)
		assert.True(t, len(v.String()) >= 3 && len(v.String()) <= 10)

		v, err = reg.Produce(rnd, &cfg, reflect.TypeFor[time.Time]())
		require.NoError(t, err)
		ts := v.Interface().(time.Time)
		assert.False(t, ts.Before(cfg.Time.Min))
		assert.False(t, ts.After(cfg.Time.Max))
	}
}

func TestRegistry_Enums(t *testing.T) {
	t.Parallel()

	reg := primitive.NewRegistry()
	cfg := settings.Defaults()
	rnd := random.New(7)

	seen := map[Priority]bool{}
	for range 100 {
		v, err := reg.Produce(rnd, &cfg, reflect.TypeFor[Priority]())
		require.NoError(t, err)

		p := v.Interface().(Priority)
		assert.True(t, p.IsValid())
		seen[p] = true
	}
	assert.Len(t, seen, 3)

	v, err := reg.Produce(rnd, &cfg, reflect.TypeFor[Code]())
	require.NoError(t, err)
	assert.IsType(t, Code(""), v.Interface())
}

func TestRegistry_AnyIsString(t *testing.T) {
	t.Parallel()

	reg := primitive.NewRegistry()
	cfg := settings.Defaults()

	v, err := reg.Produce(random.New(1), &cfg, reflect.TypeFor[any]())
	require.NoError(t, err)
	assert.IsType(t, "", v.Interface())
}

func TestRegistry_Custom(t *testing.T) {
	t.Parallel()

	reg := primitive.NewRegistry()
	primitive.RegisterFunc(reg, func(*random.Random, *settings.Settings) string { return "fixed" })

	type Point struct{ X, Y int }
	assert.False(t, reg.IsLeaf(reflect.TypeFor[Point]()))
	primitive.RegisterFunc(reg, func(rnd *random.Random, _ *settings.Settings) Point {
		return Point{X: rnd.IntRange(0, 1), Y: 9}
	})
	assert.True(t, reg.IsLeaf(reflect.TypeFor[Point]()))

	cfg := settings.Defaults()
	v, err := reg.Produce(random.New(1), &cfg, reflect.TypeFor[string]())
	require.NoError(t, err)
	assert.Equal(t, "fixed", v.String())

	v, err = reg.Produce(random.New(1), &cfg, reflect.TypeFor[Point]())
	require.NoError(t, err)
	assert.Equal(t, 9, v.Interface().(Point).Y)
}

func TestRegistry_Deterministic(t *testing.T) {
	t.Parallel()

	reg := primitive.NewRegistry()
	cfg := settings.Defaults()

	draw := func() []any {
		rnd := random.New(99)
		var out []any
		for _, rtype := range []reflect.Type{
			reflect.TypeFor[int](), reflect.TypeFor[float64](), reflect.TypeFor[string](),
			reflect.TypeFor[bool](), reflect.TypeFor[time.Duration](),
		} {
			v, err := reg.Produce(rnd, &cfg, rtype)
			require.NoError(t, err)
			out = append(out, v.Interface())
		}
		return out
	}

	assert.Equal(t, draw(), draw())
}
