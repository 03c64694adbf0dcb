package command

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"

	"go.uber.org/multierr"

	"fixture-generator/internal/analyze"
	"fixture-generator/internal/match"
	"fixture-generator/store"
	"fixture-generator/typesig"
	"fixture-generator/warehouse"
)

// Catalog names the types the CLI can generate: Go types compiled into the
// binary, declared shapes, and shapes loaded from packages with --pkg.
type Catalog struct {
	types        map[string]reflect.Type
	shapes       map[string]typesig.Shape
	constructors []any
}

var leafTypes = map[string]reflect.Type{
	"bool":          reflect.TypeFor[bool](),
	"string":        reflect.TypeFor[string](),
	"int":           reflect.TypeFor[int](),
	"int32":         reflect.TypeFor[int32](),
	"int64":         reflect.TypeFor[int64](),
	"uint":          reflect.TypeFor[uint](),
	"float32":       reflect.TypeFor[float32](),
	"float64":       reflect.TypeFor[float64](),
	"time.Time":     reflect.TypeFor[time.Time](),
	"time.Duration": reflect.TypeFor[time.Duration](),
}

// pageShape mirrors store.Page so that pages of any catalog type can be
// requested without compiling the instantiation in.
var pageShape = typesig.Shape{
	Name:   "store.Page",
	Params: []string{"T"},
	Slots: []typesig.Slot{
		{Name: "Items", Type: typesig.SliceOf(typesig.Param("T"))},
		{Name: "Total", Type: typesig.TypeFor[int]()},
		{Name: "Cursor", Type: typesig.TypeFor[string]()},
	},
}

// BuiltinCatalog returns the store and warehouse models.
func BuiltinCatalog() *Catalog {
	return &Catalog{
		types: map[string]reflect.Type{
			"store.Product":       reflect.TypeFor[store.Product](),
			"store.Category":      reflect.TypeFor[store.Category](),
			"store.Customer":      reflect.TypeFor[store.Customer](),
			"store.Order":         reflect.TypeFor[store.Order](),
			"store.OrderItem":     reflect.TypeFor[store.OrderItem](),
			"store.EmailNotifier": reflect.TypeFor[store.EmailNotifier](),
			"store.Cart":          reflect.TypeFor[store.Cart](),
			"warehouse.Address":   reflect.TypeFor[warehouse.Address](),
			"warehouse.Customer":  reflect.TypeFor[warehouse.Customer](),
			"warehouse.Product":   reflect.TypeFor[warehouse.Product](),
			"warehouse.Order":     reflect.TypeFor[warehouse.Order](),
			"warehouse.OrderItem": reflect.TypeFor[warehouse.OrderItem](),
			"warehouse.Shipment":  reflect.TypeFor[warehouse.Shipment](),
		},
		shapes:       map[string]typesig.Shape{pageShape.Name: pageShape},
		constructors: []any{store.NewCart},
	}
}

// Merge adds the shapes of a loaded package. They take precedence over
// compiled-in types of the same name.
func (c *Catalog) Merge(loaded *analyze.Catalog) {
	for _, s := range loaded.Shapes {
		c.shapes[s.Name] = s
	}
}

// Register declares the shapes and constructors of the catalog in u.
func (c *Catalog) Register(u *typesig.Universe) error {
	var err error
	for _, name := range slices.Sorted(maps.Keys(c.shapes)) {
		err = multierr.Append(err, u.Register(c.shapes[name]))
	}

	for _, fn := range c.constructors {
		err = multierr.Append(err, u.RegisterConstructor(fn))
	}

	return err
}

// Request resolves a catalog name with optional type arguments, each of
// which is itself a catalog or leaf type name.
func (c *Catalog) Request(name string, args []string) (typesig.Request, error) {
	if _, ok := c.shapes[name]; ok {
		reqs := make([]typesig.Request, 0, len(args))
		for _, arg := range args {
			req, err := c.Request(arg, nil)
			if err != nil {
				return typesig.Request{}, fmt.Errorf("argument %s: %w", arg, err)
			}

			reqs = append(reqs, req)
		}

		return typesig.ShapeRequest(name, reqs...), nil
	}

	t, ok := c.types[name]
	if !ok {
		t, ok = leafTypes[name]
	}

	if !ok {
		err := fmt.Errorf("unknown type %q", name)
		if s := match.Suggest(name, c.Names(), 3); len(s) > 0 {
			err = fmt.Errorf("%w, did you mean %s?", err, strings.Join(s, ", "))
		}

		return typesig.Request{}, err
	}

	if len(args) > 0 {
		return typesig.Request{}, fmt.Errorf("%s takes no type arguments", name)
	}

	return typesig.RequestOf(t), nil
}

// Names returns every requestable name, sorted.
func (c *Catalog) Names() []string {
	names := slices.Collect(maps.Keys(c.types))
	for name := range c.shapes {
		if _, ok := c.types[name]; !ok {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}

// Entry describes one catalog name for listing.
type Entry struct {
	Name   string
	Shape  bool
	Params []string
	Fields int
}

func (e Entry) String() string {
	if len(e.Params) == 0 {
		return e.Name
	}

	return e.Name + "[" + strings.Join(e.Params, ",") + "]"
}

// Entries returns the catalog in name order. Shapes shadow Go types.
func (c *Catalog) Entries() []Entry {
	names := c.Names()
	out := make([]Entry, 0, len(names))

	for _, name := range names {
		if s, ok := c.shapes[name]; ok {
			out = append(out, Entry{Name: name, Shape: true, Params: s.Params, Fields: len(s.Slots)})
			continue
		}

		out = append(out, Entry{Name: name, Fields: c.types[name].NumField()})
	}

	return out
}
