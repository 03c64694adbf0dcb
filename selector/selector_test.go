package selector_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"fixture-generator/node"
	"fixture-generator/primitive"
	"fixture-generator/selector"
	"fixture-generator/typesig"
)

type Item struct {
	SKU string
	Qty int
}

type Order struct {
	ID    int
	Items []Item
	Tags  map[string]int
	Next  *Order
}

type Animal interface{ Sound() string }

type Dog struct{ Name string }

func (*Dog) Sound() string { return "woof" }

type Pen struct {
	Pet Animal
}

type fixture struct {
	u *typesig.Universe
	g *node.Graph
}

func newFixture(t *testing.T, rtype reflect.Type, subtype node.SubtypeFunc) *fixture {
	t.Helper()

	u := typesig.NewUniverse()
	b := &node.Builder{Universe: u, IsLeaf: primitive.NewRegistry().IsLeaf, Subtype: subtype}

	g, err := b.Build(u.SignatureOf(rtype), 8)
	require.NoError(t, err)

	return &fixture{u: u, g: g}
}

// at returns the node rendered as path.
func (f *fixture) at(t *testing.T, path string) node.Target {
	t.Helper()

	for id := range f.g.Len() {
		if f.g.Path(node.ID(id)) == path {
			return f.g.Ref(node.ID(id))
		}
	}

	require.Failf(t, "no node", "path %s", path)

	return nil
}

func (f *fixture) matcher(reg *selector.Registry) *selector.Matcher {
	return selector.NewMatcher(reg, f.u)
}

func set(res selector.Resolved) any {
	if res.Set == nil {
		return nil
	}

	return res.Set.Override.Value.Interface()
}

func TestMatcher_TypeAndMember(t *testing.T) {
	f := newFixture(t, reflect.TypeFor[Order](), nil)

	m := f.matcher(selector.NewRegistry().
		Set(selector.Type[string](), "any-string").
		Set(selector.Member("SKU"), "member").
		Set(selector.Field[Item]("SKU"), "field"))

	assert.Equal(t, "field", set(m.Resolve(f.at(t, "Order.Items[].SKU"))))
	assert.Equal(t, "any-string", set(m.Resolve(f.at(t, "Order.Tags[key]"))))
	assert.Nil(t, set(m.Resolve(f.at(t, "Order.ID"))))

	usage := m.Usage()
	require.Len(t, usage, 3)
	assert.True(t, usage[0].Used)
	assert.False(t, usage[1].Used)
	assert.True(t, usage[2].Used)
}

func TestMatcher_LastDeclaredWins(t *testing.T) {
	f := newFixture(t, reflect.TypeFor[Order](), nil)

	m := f.matcher(selector.NewRegistry().
		Set(selector.Member("ID"), 1).
		Set(selector.Member("ID"), 2))

	assert.Equal(t, 2, set(m.Resolve(f.at(t, "Order.ID"))))

	var unused *selector.UnusedSelectorError
	require.ErrorAs(t, m.Err(), &unused)
	require.Len(t, unused.Entries, 1)
	assert.Equal(t, 0, unused.Entries[0].Index)
}

func TestMatcher_ScopeCountsTowardsSpecificity(t *testing.T) {
	f := newFixture(t, reflect.TypeFor[Order](), nil)

	m := f.matcher(selector.NewRegistry().
		Set(selector.Member("ID").Within(selector.ScopeField[Order]("Next")), 7).
		Set(selector.Member("ID"), 1))

	assert.Equal(t, 7, set(m.Resolve(f.at(t, "Order.Next.ID"))))
	assert.Equal(t, 1, set(m.Resolve(f.at(t, "Order.ID"))))
	assert.NoError(t, m.Err())
}

func TestMatcher_IgnoreWins(t *testing.T) {
	f := newFixture(t, reflect.TypeFor[Order](), nil)

	m := f.matcher(selector.NewRegistry().
		Ignore(selector.Type[string]()).
		Set(selector.Field[Item]("SKU"), "x").
		Nullable(selector.Member("Items")))

	res := m.Resolve(f.at(t, "Order.Items[].SKU"))
	assert.True(t, res.Ignore)
	assert.Nil(t, res.Set)

	assert.True(t, m.Resolve(f.at(t, "Order.Items")).Nullable)

	unused := m.Unused()
	require.Len(t, unused, 1)
	assert.Equal(t, "SKU", unused[0].Selector.MemberName())

	err := m.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found unused selectors")
	assert.Contains(t, err.Error(), "field(selector_test.Item.SKU)")
}

func TestMatcher_ValueBeatsNullable(t *testing.T) {
	f := newFixture(t, reflect.TypeFor[Order](), nil)

	m := f.matcher(selector.NewRegistry().
		Nullable(selector.Member("Next")).
		Supply(selector.Member("Next"), func() *Order { return nil }).
		FilterExpr(selector.Member("Next"), "value == null"))

	res := m.Resolve(f.at(t, "Order.Next"))
	assert.False(t, res.Nullable)
	require.NotNil(t, res.Supply)
	require.NotNil(t, res.Filter)

	usage := m.Usage()
	assert.False(t, usage[0].Used)
	assert.True(t, usage[1].Used)
	assert.True(t, usage[2].Used)
}

func TestMatcher_Scopes(t *testing.T) {
	f := newFixture(t, reflect.TypeFor[Order](), nil)

	nested := selector.Member("SKU").Within(selector.ScopeField[Order]("Next"))
	wrongOrder := selector.Member("SKU").Within(selector.ScopeMember("Items"), selector.ScopeField[Order]("Next"))
	rightOrder := selector.Member("SKU").Within(selector.ScopeField[Order]("Next"), selector.ScopeMember("Items"))
	deep := selector.Member("SKU").Within(selector.ScopeMember("Items").AtDepth(2))

	m := f.matcher(selector.NewRegistry().
		OnComplete(nested, func(string) {}).
		OnComplete(wrongOrder, func(string) {}).
		OnComplete(rightOrder, func(string) {}).
		OnComplete(deep, func(string) {}))

	assert.Empty(t, m.Resolve(f.at(t, "Order.Items[].SKU")).Callbacks)

	callbacks := m.Resolve(f.at(t, "Order.Next.Items[].SKU")).Callbacks
	require.Len(t, callbacks, 3)
	assert.Equal(t, []int{0, 2, 3}, []int{callbacks[0].Index, callbacks[1].Index, callbacks[2].Index})
}

func TestMatcher_RootAndGroup(t *testing.T) {
	f := newFixture(t, reflect.TypeFor[Order](), nil)

	m := f.matcher(selector.NewRegistry().
		Set(selector.Type[Order](), Order{ID: 2}).
		Set(selector.Root(), Order{ID: 1}).
		Set(selector.Group(selector.Member("Qty"), selector.Keys()), 5))

	assert.Equal(t, Order{ID: 1}, set(m.Resolve(f.at(t, "Order"))))
	assert.Equal(t, Order{ID: 2}, set(m.Resolve(f.at(t, "Order.Next"))))
	assert.Equal(t, 5, set(m.Resolve(f.at(t, "Order.Items[].Qty"))))
	assert.Equal(t, 5, set(m.Resolve(f.at(t, "Order.Tags[key]"))))
	assert.Nil(t, set(m.Resolve(f.at(t, "Order.Tags[]"))))
}

func TestMatcher_Predicate(t *testing.T) {
	f := newFixture(t, reflect.TypeFor[Order](), nil)

	deep := selector.Match("deeper than 2", func(t node.Target) bool { return t.Depth() > 2 })

	m := f.matcher(selector.NewRegistry().
		Set(deep, "deep").
		Set(selector.Type[string](), "typed"))

	assert.Equal(t, "typed", set(m.Resolve(f.at(t, "Order.Next.Items[].SKU"))))
	assert.Equal(t, "deep", set(m.Resolve(f.at(t, "Order.Next.Items[].Qty"))))
	assert.Nil(t, set(m.Resolve(f.at(t, "Order.ID"))))
}

func TestMatcher_Subtype(t *testing.T) {
	reg := selector.NewRegistry().Subtype(selector.Field[Pen]("Pet"), reflect.TypeFor[*Dog]())

	u := typesig.NewUniverse()
	m := selector.NewMatcher(reg, u)

	b := &node.Builder{Universe: u, IsLeaf: primitive.NewRegistry().IsLeaf, Subtype: m.Subtype}
	g, err := b.Build(u.SignatureOf(reflect.TypeFor[Pen]()), 8)
	require.NoError(t, err)

	pet := g.Node(g.Root().Children[0])
	assert.True(t, pet.Subtyped)
	assert.Equal(t, reflect.TypeFor[*Dog](), pet.Type)
	assert.NoError(t, m.Err())
}

func TestMatcher_ShapeField(t *testing.T) {
	u := typesig.NewUniverse()
	require.NoError(t, u.Register(typesig.Shape{
		Name:  "Named",
		Slots: []typesig.Slot{{Name: "Name", Type: typesig.TypeFor[string]()}},
	}))

	extends := typesig.Apply("Named")
	require.NoError(t, u.Register(typesig.Shape{
		Name:    "Person",
		Extends: &extends,
		Slots:   []typesig.Slot{{Name: "Age", Type: typesig.TypeFor[int]()}},
	}))

	sig, err := u.Resolve(typesig.ShapeRequest("Person"))
	require.NoError(t, err)

	b := &node.Builder{Universe: u, IsLeaf: primitive.NewRegistry().IsLeaf}
	g, err := b.Build(sig, 8)
	require.NoError(t, err)

	m := selector.NewMatcher(selector.NewRegistry().
		Set(selector.ShapeField("Named", "Name"), "inherited").
		Set(selector.Shape("Person"), nil), u)

	name := g.Ref(g.Root().Children[0])
	require.Equal(t, "Name", name.Member())
	assert.Equal(t, "inherited", set(m.Resolve(name)))

	res := m.Resolve(g.Ref(0))
	require.NotNil(t, res.Set)
	assert.False(t, res.Set.Override.Value.IsValid())
}

func TestRegistry_Validate(t *testing.T) {
	u := typesig.NewUniverse()

	reg := selector.NewRegistry().
		Set(selector.Field[Item]("Sku"), "x").
		Set(selector.Field[Item]("Qty"), "not a number").
		Set(selector.Field[Item]("SKU"), "ok").
		Ignore(selector.Shape("Missing")).
		Supply(selector.Member("ID"), 42)

	err := reg.Validate(u)
	require.Error(t, err)

	var suggested []string
	for _, e := range multierr.Errors(err) {
		var selErr *selector.SelectorError
		if errors.As(e, &selErr) && len(selErr.Suggestions) > 0 {
			suggested = selErr.Suggestions
		}
	}
	assert.Equal(t, []string{"SKU"}, suggested)
	assert.Contains(t, err.Error(), `has no member "Sku" (did you mean SKU?)`)
	assert.Contains(t, err.Error(), "cannot be assigned to int")
	assert.Contains(t, err.Error(), "unknown shape Missing")
	assert.Contains(t, err.Error(), selector.ErrNotAFunction.Error())
	assert.Len(t, multierr.Errors(err), 4)
}

func TestRegistry_OverrideFuncs(t *testing.T) {
	reg := selector.NewRegistry().
		Supply(selector.Root(), func() (int, error) { return 0, nil }).
		Supply(selector.Root(), func(int) int { return 0 }).
		Filter(selector.Root(), func(v int) bool { return v > 0 }).
		Filter(selector.Root(), func(v int) int { return v }).
		OnComplete(selector.Root(), func(int) error { return nil }).
		OnComplete(selector.Root(), func(int) (int, error) { return 0, nil })

	assert.Equal(t, 3, reg.Len())
	require.Error(t, reg.Err())
	assert.Contains(t, reg.Err().Error(), selector.ErrBadSupplier.Error())
	assert.Contains(t, reg.Err().Error(), selector.ErrBadPredicate.Error())
	assert.Contains(t, reg.Err().Error(), selector.ErrBadCallback.Error())

	accept := reg.Entries()[1].Override.Predicate
	ok, err := accept(reflect.ValueOf(3))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = accept(reflect.ValueOf("3"))
	assert.Error(t, err)
}

type Status string

func TestAdapt(t *testing.T) {
	v, ok := selector.Adapt(reflect.ValueOf("PAID"), reflect.TypeFor[Status]())
	require.True(t, ok)
	assert.Equal(t, Status("PAID"), v.Interface())

	v, ok = selector.Adapt(reflect.ValueOf(3), reflect.TypeFor[*int]())
	require.True(t, ok)
	assert.Equal(t, 3, *v.Interface().(*int))

	n := 4
	v, ok = selector.Adapt(reflect.ValueOf(&n), reflect.TypeFor[int]())
	require.True(t, ok)
	assert.Equal(t, 4, v.Interface())

	v, ok = selector.Adapt(reflect.Value{}, reflect.TypeFor[[]int]())
	require.True(t, ok)
	assert.True(t, v.IsNil())

	_, ok = selector.Adapt(reflect.Value{}, reflect.TypeFor[int]())
	assert.False(t, ok)

	_, ok = selector.Adapt(reflect.ValueOf("x"), reflect.TypeFor[int]())
	assert.False(t, ok)
}

func TestAdapt_Numbers(t *testing.T) {
	v, ok := selector.Adapt(reflect.ValueOf(3), reflect.TypeFor[int64]())
	require.True(t, ok)
	assert.Equal(t, int64(3), v.Interface())

	v, ok = selector.Adapt(reflect.ValueOf(2.0), reflect.TypeFor[uint8]())
	require.True(t, ok)
	assert.Equal(t, uint8(2), v.Interface())

	v, ok = selector.Adapt(reflect.ValueOf(7), reflect.TypeFor[float64]())
	require.True(t, ok)
	assert.Equal(t, 7.0, v.Interface())

	_, ok = selector.Adapt(reflect.ValueOf(2.5), reflect.TypeFor[int]())
	assert.False(t, ok, "fraction")

	_, ok = selector.Adapt(reflect.ValueOf(300), reflect.TypeFor[uint8]())
	assert.False(t, ok, "overflow")

	_, ok = selector.Adapt(reflect.ValueOf(-1), reflect.TypeFor[uint]())
	assert.False(t, ok, "sign")
}

func TestPathSelector(t *testing.T) {
	f := newFixture(t, reflect.TypeFor[Order](), nil)

	sel, err := selector.PathSelector("Items[].SKU")
	require.NoError(t, err)

	keys, err := selector.PathSelector("Next.Tags[key]")
	require.NoError(t, err)

	m := f.matcher(selector.NewRegistry().Set(sel, "path").Set(keys, "k"))

	assert.Equal(t, "path", set(m.Resolve(f.at(t, "Order.Items[].SKU"))))
	assert.Nil(t, set(m.Resolve(f.at(t, "Order.Next.Items[].SKU"))))
	assert.Equal(t, "k", set(m.Resolve(f.at(t, "Order.Next.Tags[key]"))))
	assert.Nil(t, set(m.Resolve(f.at(t, "Order.Tags[key]"))))
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		path string
		want string
		err  string
	}{
		{path: "ID", want: "[ID]"},
		{path: "Items[].SKU", want: "[Items [] SKU]"},
		{path: "Grid[][]", want: "[Grid [] []]"},
		{path: "Tags[key]", want: "[Tags [key]]"},
		{path: "[].Name", want: "[[] Name]"},
		{path: "", err: "empty path"},
		{path: "Items..SKU", err: "empty segment"},
		{path: "Items.[]", err: "empty segment"},
		{path: "1Items", err: "invalid identifier"},
		{path: "Items[0]", err: "unexpected"},
		{path: "Items[", err: "unexpected"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			segments, err := selector.ParsePath(tt.path)
			if tt.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, fmt.Sprint(segments))
		})
	}
}

func ExampleSelector_String() {
	sel := selector.Member("SKU").
		Within(selector.ScopeField[Order]("Items"), selector.ScopeMember("Next").AtDepth(1)).
		AtDepth(3)

	fmt.Println(sel)
	fmt.Println(selector.Group(selector.Root(), selector.Type[int](), selector.Keys()))
	// Output:
	// member(SKU).atDepth(3).within(scope(field(selector_test.Order.Items)), scope(member(Next)@1))
	// group(root(), type(int), keys())
}
