// Package fixture generates fully populated values of arbitrary types for tests.
//
// A request names a Go type or a declared shape. The generator builds the
// tree of structural positions reachable from it, resolves the overrides
// declared through selectors, and populates every position from a seeded
// source of randomness, so the same seed reproduces the same value.
//
//	order, err := fixture.Create[warehouse.Order](
//		fixture.WithSeed(42),
//		fixture.Set(selector.Field[warehouse.Order]("Currency"), "EUR"),
//		fixture.Ignore(selector.Member("PlacedAt")),
//	)
package fixture

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-logr/logr"

	"fixture-generator/internal/diagnostic"
	"fixture-generator/internal/engine"
	"fixture-generator/node"
	"fixture-generator/primitive"
	"fixture-generator/random"
	"fixture-generator/selector"
	"fixture-generator/settings"
	"fixture-generator/typesig"
)

// Generator is safe for concurrent use: every request owns its graph,
// its matcher and its source of randomness.
type Generator struct {
	universe  *typesig.Universe
	producers *primitive.Registry
	log       logr.Logger
	engine    *engine.Engine
}

type GeneratorOption func(*Generator)

var WithLogger = func(log logr.Logger) GeneratorOption {
	return func(g *Generator) {
		g.log = log
	}
}

var WithUniverse = func(u *typesig.Universe) GeneratorOption {
	return func(g *Generator) {
		g.universe = u
	}
}

var WithProducers = func(p *primitive.Registry) GeneratorOption {
	return func(g *Generator) {
		g.producers = p
	}
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		universe:  typesig.NewUniverse(),
		producers: primitive.NewRegistry(),
		log:       logr.Discard(),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.engine = &engine.Engine{Universe: g.universe, Producers: g.producers, Log: g.log.WithName("engine")}

	return g
}

// Universe holds the shapes and constructors known to the generator.
func (g *Generator) Universe() *typesig.Universe {
	return g.universe
}

// Producers holds the leaf producers known to the generator.
func (g *Generator) Producers() *primitive.Registry {
	return g.producers
}

// Result is the outcome of one request.
type Result struct {
	Value any
	// Seed reproduces the request.
	Seed        uint64
	Graph       *node.Graph
	Diagnostics diagnostic.Diagnostics
	Usage       []selector.Usage
}

// Generate populates one value of req. A nil cfg means the defaults and a
// nil registry declares no overrides. A zero seed falls back to cfg.Seed,
// and to a derived seed when both are zero.
func (g *Generator) Generate(req typesig.Request, cfg *settings.Settings, reg *selector.Registry, seed uint64) (*Result, error) {
	effective := settings.Defaults()
	if cfg != nil {
		effective = *cfg
	}

	if err := effective.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	sig, err := g.universe.Resolve(req)
	if err != nil {
		return nil, err
	}

	if seed == 0 {
		seed = effective.Seed
	}

	rnd := random.New(seed)

	res, err := g.engine.Generate(sig, &effective, reg, rnd)
	if err != nil {
		return nil, fmt.Errorf("generate %s (seed %d): %w", node.Short(sig), rnd.Seed(), err)
	}

	g.log.V(1).Info("Generated", "type", node.Short(sig), "seed", rnd.Seed(), "nodes", res.Graph.Len(),
		"warnings", len(res.Diagnostics.Warnings))

	return &Result{
		Value:       res.Value.Interface(),
		Seed:        rnd.Seed(),
		Graph:       res.Graph,
		Diagnostics: res.Diagnostics,
		Usage:       res.Usage,
	}, nil
}

// Graph resolves req and builds its node graph without populating it.
func (g *Generator) Graph(req typesig.Request, cfg *settings.Settings, reg *selector.Registry) (*node.Graph, error) {
	effective := settings.Defaults()
	if cfg != nil {
		effective = *cfg
	}

	if err := effective.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	sig, err := g.universe.Resolve(req)
	if err != nil {
		return nil, err
	}

	return g.engine.Graph(sig, &effective, reg)
}

var defaultGenerator = sync.OnceValue(func() *Generator { return NewGenerator() })

// Default returns the generator used by Create.
func Default() *Generator {
	return defaultGenerator()
}

// Create generates a value of T.
func Create[T any](opts ...Option) (T, error) {
	var zero T

	res, err := CreateResult[T](opts...)
	if err != nil {
		return zero, err
	}

	v, ok := res.Value.(T)
	if !ok && res.Value != nil {
		return zero, fmt.Errorf("generated %T, want %s", res.Value, reflect.TypeFor[T]())
	}

	return v, nil
}

// CreateResult is Create returning the seed, graph, diagnostics and selector usage too.
func CreateResult[T any](opts ...Option) (*Result, error) {
	r := newRequest(opts)
	if err := r.registry.Err(); err != nil {
		return nil, err
	}

	return r.generator.Generate(typesig.RequestFor[T](), &r.settings, r.registry, r.seed)
}

// MustCreate is Create that panics on error.
func MustCreate[T any](opts ...Option) T {
	v, err := Create[T](opts...)
	if err != nil {
		panic(err)
	}

	return v
}
