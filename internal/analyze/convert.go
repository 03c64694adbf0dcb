package analyze

import (
	"go/types"
	"reflect"
	"time"

	"fixture-generator/typesig"
)

var basicTypes = map[types.BasicKind]reflect.Type{
	types.Bool:       reflect.TypeFor[bool](),
	types.Int:        reflect.TypeFor[int](),
	types.Int8:       reflect.TypeFor[int8](),
	types.Int16:      reflect.TypeFor[int16](),
	types.Int32:      reflect.TypeFor[int32](),
	types.Int64:      reflect.TypeFor[int64](),
	types.Uint:       reflect.TypeFor[uint](),
	types.Uint8:      reflect.TypeFor[uint8](),
	types.Uint16:     reflect.TypeFor[uint16](),
	types.Uint32:     reflect.TypeFor[uint32](),
	types.Uint64:     reflect.TypeFor[uint64](),
	types.Uintptr:    reflect.TypeFor[uintptr](),
	types.Float32:    reflect.TypeFor[float32](),
	types.Float64:    reflect.TypeFor[float64](),
	types.Complex64:  reflect.TypeFor[complex64](),
	types.Complex128: reflect.TypeFor[complex128](),
	types.String:     reflect.TypeFor[string](),
}

// opaque named types are produced as Go values instead of being converted.
var opaque = map[string]reflect.Type{
	"time.Time":     reflect.TypeFor[time.Time](),
	"time.Duration": reflect.TypeFor[time.Duration](),
}

var unconstrained = typesig.TypeFor[any]()

type converter struct {
	catalog *Catalog
	work    dealer
	names   map[*types.TypeName]string
	taken   map[string]struct{}
}

func newConverter() *converter {
	return &converter{
		catalog: &Catalog{},
		names:   make(map[*types.TypeName]string),
		taken:   make(map[string]struct{}),
	}
}

// nameOf returns the shape name of a named struct type and queues its conversion.
func (c *converter) nameOf(obj *types.TypeName) string {
	if name, ok := c.names[obj]; ok {
		return name
	}

	name := obj.Name()
	if obj.Pkg() != nil {
		name = obj.Pkg().Name() + "." + name
	}

	if _, clash := c.taken[name]; clash {
		name = newStem(name, c.taken).Next()
	}

	c.taken[name] = struct{}{}
	c.names[obj] = name

	named := obj.Type().(*types.Named)
	c.work.Needs(job{
		name:   name,
		st:     named.Underlying().(*types.Struct),
		params: typeParams(named.TypeParams()),
	})

	return name
}

// drain converts queued structs until no new ones are referenced.
func (c *converter) drain() {
	for j, ok := c.work.Next(); ok; j, ok = c.work.Next() {
		shape := typesig.Shape{Name: j.name, Params: j.params}

		for i := range j.st.NumFields() {
			field := j.st.Field(i)
			if !field.Exported() {
				continue
			}

			shape.Slots = append(shape.Slots, typesig.Slot{
				Name: field.Name(),
				Type: c.expr(field.Type(), j, field.Name()),
			})
		}

		c.catalog.Shapes = append(c.catalog.Shapes, shape)
	}
}

// expr converts a field type. owner is the job declaring the field, it names
// anonymous structs and lends them its type parameters.
func (c *converter) expr(t types.Type, owner job, field string) typesig.Expr {
	switch tt := t.(type) {
	case *types.Basic:
		if rt, ok := basicTypes[tt.Kind()]; ok {
			return typesig.Go(rt)
		}

		return unconstrained
	case *types.TypeParam:
		return typesig.Param(tt.Obj().Name())
	case *types.Pointer:
		return typesig.PointerTo(c.expr(tt.Elem(), owner, field))
	case *types.Slice:
		return typesig.SliceOf(c.expr(tt.Elem(), owner, field))
	case *types.Array:
		return typesig.ArrayOf(int(tt.Len()), c.expr(tt.Elem(), owner, field))
	case *types.Map:
		return typesig.MapOf(c.expr(tt.Key(), owner, field), c.expr(tt.Elem(), owner, field))
	case *types.Struct:
		return c.anonymous(tt, owner, field)
	case *types.Alias:
		return c.expr(types.Unalias(tt), owner, field)
	case *types.Named:
		return c.named(tt, owner, field)
	default:
		// interfaces, funcs and channels cannot be realized from a loaded package
		return unconstrained
	}
}

func (c *converter) named(t *types.Named, owner job, field string) typesig.Expr {
	if rt, ok := opaque[qualified(t)]; ok {
		return typesig.Go(rt)
	}

	if _, ok := t.Underlying().(*types.Struct); !ok {
		// named basic types, slices and maps are produced as their underlying type
		return c.expr(t.Underlying(), owner, field)
	}

	name := c.nameOf(t.Origin().Obj())

	args := t.TypeArgs()
	if args == nil || args.Len() == 0 {
		return typesig.Apply(name)
	}

	exprs := make([]typesig.Expr, args.Len())
	for i := range args.Len() {
		exprs[i] = c.expr(args.At(i), owner, field)
	}

	return typesig.Apply(name, exprs...)
}

// anonymous converts an anonymous struct into a synthetic shape with the
// type parameters of its owner.
func (c *converter) anonymous(st *types.Struct, owner job, field string) typesig.Expr {
	name := newStem(owner.name+"."+field, c.taken).Next()
	c.work.Needs(job{name: name, st: st, params: owner.params})

	args := make([]typesig.Expr, len(owner.params))
	for i, p := range owner.params {
		args[i] = typesig.Param(p)
	}

	return typesig.Apply(name, args...)
}

func typeParams(list *types.TypeParamList) []string {
	if list == nil {
		return nil
	}

	out := make([]string, list.Len())
	for i := range list.Len() {
		out[i] = list.At(i).Obj().Name()
	}

	return out
}

func qualified(t *types.Named) string {
	obj := t.Obj()
	if obj.Pkg() == nil {
		return obj.Name()
	}

	return obj.Pkg().Path() + "." + obj.Name()
}

func isOpaque(t *types.Named) bool {
	_, ok := opaque[qualified(t)]
	return ok
}
