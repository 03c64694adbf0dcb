package fixture_test

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fixture "fixture-generator"
	"fixture-generator/selector"
	"fixture-generator/settings"
	"fixture-generator/typesig"
)

type Address struct {
	City    string
	Country string
}

type Person struct {
	Name    string
	Age     int
	Home    *Address
	Friends []Person
}

func TestCreate(t *testing.T) {
	p, err := fixture.Create[Person](
		fixture.WithSeed(11),
		fixture.Set(selector.Field[Address]("Country"), "NL"),
		fixture.Filter(selector.Field[Person]("Age"), func(age int) bool { return age >= 18 && age < 100 }),
		fixture.Configure(func(s *settings.Settings) { s.Integer.Max = 120 }),
	)
	require.NoError(t, err)

	require.NotNil(t, p.Home)
	assert.Equal(t, "NL", p.Home.Country)
	assert.GreaterOrEqual(t, p.Age, 18)
	assert.Less(t, p.Age, 100)
	require.NotEmpty(t, p.Friends)

	for _, f := range p.Friends {
		assert.Equal(t, "NL", f.Home.Country)
		assert.Nil(t, f.Friends)
	}

	again := fixture.MustCreate[Person](
		fixture.WithSeed(11),
		fixture.Set(selector.Field[Address]("Country"), "NL"),
		fixture.Filter(selector.Field[Person]("Age"), func(age int) bool { return age >= 18 && age < 100 }),
		fixture.Configure(func(s *settings.Settings) { s.Integer.Max = 120 }),
	)
	assert.Equal(t, p, again)
}

func TestCreate_Errors(t *testing.T) {
	_, err := fixture.Create[Person](fixture.Set(selector.Field[Person]("Nmae"), "x"))

	var selErr *fixture.SelectorError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, []string{"Name"}, selErr.Suggestions)

	_, err = fixture.Create[Person](fixture.Set(selector.Member("Missing"), 1))

	var unused *fixture.UnusedSelectorError
	require.ErrorAs(t, err, &unused)

	_, err = fixture.Create[Person](fixture.Supply(selector.Member("Age"), 3))
	require.ErrorAs(t, err, &selErr)

	_, err = fixture.Create[Person](fixture.Configure(func(s *settings.Settings) { s.MaxGenerationAttempts = 0 }))
	assert.ErrorContains(t, err, "invalid settings")

	_, err = fixture.Create[fmt.Stringer]()

	var instErr *fixture.InstantiationError
	require.ErrorAs(t, err, &instErr)
}

func TestGenerator_Shapes(t *testing.T) {
	g := fixture.NewGenerator()
	require.NoError(t, g.Universe().Register(typesig.Shape{
		Name:   "Box",
		Params: []string{"T"},
		Slots:  []typesig.Slot{{Name: "Items", Type: typesig.SliceOf(typesig.Param("T"))}},
	}))

	_, err := g.Generate(typesig.ShapeRequest("Box"), nil, nil, 1)

	var unresolved *fixture.UnresolvedTypeError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, 1, unresolved.Want)

	res, err := g.Generate(typesig.ShapeRequest("Box", typesig.RequestFor[int]()), nil, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Seed)

	rec := res.Value.(*typesig.Record)
	items, _ := rec.Get("Items")
	assert.NotEmpty(t, items)
	assert.IsType(t, []int{}, items)
}

func TestGenerator_Concurrent(t *testing.T) {
	g := fixture.NewGenerator()

	results := make([]any, 8)

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()

			res, err := g.Generate(typesig.RequestFor[Person](), nil, nil, 99)
			if err == nil {
				results[i] = res.Value
			}
		}()
	}
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, results[0], v)
	}
	assert.NotNil(t, results[0])
}

func TestCreateResult(t *testing.T) {
	res, err := fixture.CreateResult[Person](
		fixture.Configure(func(s *settings.Settings) { s.Mode = settings.ModeLenient }),
		fixture.Ignore(selector.Member("Unknown")),
		fixture.Subtype(selector.Member("Home"), reflect.TypeFor[*Address]()),
	)
	require.NoError(t, err)

	assert.NotZero(t, res.Seed)
	require.Len(t, res.Usage, 2)
	assert.False(t, res.Usage[0].Used)
	assert.True(t, res.Usage[1].Used)
	assert.Len(t, res.Diagnostics.Warnings, 1)
}

func TestGenerator_Graph(t *testing.T) {
	g := fixture.NewGenerator()

	graph, err := g.Graph(typesig.RequestFor[Person](), nil, nil)
	require.NoError(t, err)
	assert.Len(t, graph.Root().Children, 4)

	_, err = g.Graph(typesig.RequestFor[Person](), nil, selector.NewRegistry().Ignore(selector.Field[Person]("Nmae")))
	var selErr *fixture.SelectorError
	require.ErrorAs(t, err, &selErr)
}

func ExampleCreate() {
	type Point struct{ X, Y int }

	p := fixture.MustCreate[Point](
		fixture.WithSeed(1),
		fixture.Set(selector.Member("X"), 3),
		fixture.Supply(selector.Member("Y"), func() int { return 4 }),
	)

	fmt.Println(p.X, p.Y)
	// Output: 3 4
}
