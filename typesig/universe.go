package typesig

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of cached descriptors per universe.
const DefaultCacheSize = 4096

// maxExtendsChain limits supertype chains to catch inheritance cycles.
const maxExtendsChain = 64

// Descriptor is the resolved structural view of a signature.
type Descriptor struct {
	Signature Signature
	Kind      KindEnum
	// Type is the Go type values of this signature are realized as.
	Type    reflect.Type
	Members []Member
	Elem    Signature
	Key     Signature
	// Len is the fixed length of arrays.
	Len int
	// Dims counts nested array dimensions, starting at 1 for arrays.
	Dims int
	// Abstract marks types that cannot be allocated without a subtype (interfaces, funcs, channels).
	Abstract bool
	// Shape is set for declared shapes.
	Shape *Shape
	// Constructors are sorted by arity, ties kept in registration order.
	Constructors []Constructor
}

// Member is a named slot of a structural descriptor.
type Member struct {
	Name      string
	Signature Signature
	Type      reflect.Type
	Index     int
	Exported  bool
	Tag       reflect.StructTag
}

// Member returns the member with the given name.
func (d *Descriptor) Member(name string) (Member, bool) {
	for _, m := range d.Members {
		if m.Name == name {
			return m, true
		}
	}

	return Member{}, false
}

// MemberNames returns member names in declaration order.
func (d *Descriptor) MemberNames() []string {
	names := make([]string, 0, len(d.Members))
	for _, m := range d.Members {
		names = append(names, m.Name)
	}

	return names
}

// Universe is the registry of shapes, constructors and known Go types.
// It is safe for concurrent use; descriptors are cached per signature.
type Universe struct {
	mu           sync.RWMutex
	shapes       map[string]*Shape
	goTypes      map[string]reflect.Type
	constructors map[reflect.Type][]Constructor
	cache        *lru.Cache[string, *Descriptor]
}

// NewUniverse creates an empty universe.
func NewUniverse() *Universe {
	cache, err := lru.New[string, *Descriptor](DefaultCacheSize)
	if err != nil {
		panic(fmt.Sprintf("descriptor cache: %v", err))
	}

	return &Universe{
		shapes:       make(map[string]*Shape),
		goTypes:      make(map[string]reflect.Type),
		constructors: make(map[reflect.Type][]Constructor),
		cache:        cache,
	}
}

// Register adds a shape. Shape names must not clash with known Go types or other shapes.
func (u *Universe) Register(shape Shape) error {
	if err := shape.validate(); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if _, exists := u.shapes[shape.Name]; exists {
		return fmt.Errorf("shape %s is already registered", shape.Name)
	}

	if _, exists := u.goTypes[shape.Name]; exists {
		return fmt.Errorf("shape %s clashes with a Go type of the same name", shape.Name)
	}

	shape.Params = slices.Clone(shape.Params)
	shape.Slots = slices.Clone(shape.Slots)
	u.shapes[shape.Name] = &shape

	return nil
}

// RegisterConstructor adds a constructor function for the type it returns.
func (u *Universe) RegisterConstructor(fn any) error {
	ctor, err := ParseConstructor(fn)
	if err != nil {
		return err
	}

	u.mu.Lock()
	u.constructors[ctor.Product] = append(u.constructors[ctor.Product], ctor)
	u.mu.Unlock()

	u.cache.Purge()

	return nil
}

// Shape returns a registered shape.
func (u *Universe) Shape(name string) (*Shape, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	s, ok := u.shapes[name]

	return s, ok
}

// ShapeNames returns registered shape names in sorted order.
func (u *Universe) ShapeNames() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()

	names := make([]string, 0, len(u.shapes))
	for name := range u.shapes {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Resolve turns a request into a canonical signature.
func (u *Universe) Resolve(req Request) (Signature, error) {
	if req.Type != nil {
		if len(req.Args) > 0 {
			return Signature{}, arityError(req.Type.String(), 0, len(req.Args))
		}

		return u.SignatureOf(req.Type), nil
	}

	if req.Shape == "" {
		return Signature{}, &UnresolvedTypeError{Type: req.String(), Reason: "empty type request"}
	}

	shape, ok := u.Shape(req.Shape)
	if !ok {
		return Signature{}, &UnresolvedTypeError{Type: req.String(), Reason: "unknown shape"}
	}

	if len(shape.Params) != len(req.Args) {
		return Signature{}, arityError(req.String(), len(shape.Params), len(req.Args))
	}

	sig := Signature{Base: shape.Name}
	for _, arg := range req.Args {
		argSig, err := u.Resolve(arg)
		if err != nil {
			return Signature{}, err
		}

		sig.Args = append(sig.Args, argSig)
	}

	return sig, nil
}

// SignatureOf canonicalizes a Go type. Unnamed slices, maps, arrays and pointers
// become builtin constructors; every other type is remembered by its base identity.
func (u *Universe) SignatureOf(t reflect.Type) Signature {
	if t.Name() == "" {
		switch t.Kind() {
		case reflect.Pointer:
			return PointerSig(u.SignatureOf(t.Elem()))
		case reflect.Slice:
			return SliceSig(u.SignatureOf(t.Elem()))
		case reflect.Array:
			return ArraySig(t.Len(), u.SignatureOf(t.Elem()))
		case reflect.Map:
			return MapSig(u.SignatureOf(t.Key()), u.SignatureOf(t.Elem()))
		case reflect.Interface:
			if t.NumMethod() == 0 {
				return Any
			}
		}
	}

	base := typeStr(t)

	u.mu.RLock()
	_, known := u.goTypes[base]
	u.mu.RUnlock()

	if !known {
		u.mu.Lock()
		u.goTypes[base] = t
		u.mu.Unlock()
	}

	return Signature{Base: base}
}

// GoType returns the Go type values of sig are realized as.
func (u *Universe) GoType(sig Signature) (reflect.Type, error) {
	switch sig.Base {
	case BaseAny:
		return anyType, nil
	case BasePointer:
		elem, err := u.GoType(sig.Args[0])
		if err != nil {
			return nil, err
		}

		// records are references already
		if elem == recordType {
			return recordType, nil
		}

		return reflect.PointerTo(elem), nil
	case BaseSlice:
		elem, err := u.GoType(sig.Args[0])
		if err != nil {
			return nil, err
		}

		return reflect.SliceOf(elem), nil
	case BaseMap:
		key, err := u.GoType(sig.Args[0])
		if err != nil {
			return nil, err
		}

		if !key.Comparable() {
			return nil, &UnresolvedTypeError{Type: sig.String(), Reason: "map key type " + key.String() + " is not comparable"}
		}

		elem, err := u.GoType(sig.Args[1])
		if err != nil {
			return nil, err
		}

		return reflect.MapOf(key, elem), nil
	}

	if n, ok := sig.ArrayLen(); ok && len(sig.Args) == 1 {
		elem, err := u.GoType(sig.Args[0])
		if err != nil {
			return nil, err
		}

		return reflect.ArrayOf(n, elem), nil
	}

	u.mu.RLock()
	defer u.mu.RUnlock()

	if _, ok := u.shapes[sig.Base]; ok {
		return recordType, nil
	}

	if t, ok := u.goTypes[sig.Base]; ok {
		return t, nil
	}

	return nil, &UnresolvedTypeError{Type: sig.String(), Reason: "unknown type"}
}

// Describe returns the structural descriptor of sig. Pointer signatures are
// described by their pointee.
func (u *Universe) Describe(sig Signature) (*Descriptor, error) {
	sig, _ = sig.Deref()
	key := sig.String()

	if d, ok := u.cache.Get(key); ok {
		return d, nil
	}

	d, err := u.describe(sig, 0)
	if err != nil {
		return nil, err
	}

	u.cache.Add(key, d)

	return d, nil
}

func (u *Universe) describe(sig Signature, chain int) (*Descriptor, error) {
	switch sig.Base {
	case BaseAny:
		return &Descriptor{Signature: sig, Kind: KindLeaf, Type: anyType}, nil
	case BaseSlice, BaseMap:
		t, err := u.GoType(sig)
		if err != nil {
			return nil, err
		}

		d := &Descriptor{Signature: sig, Type: t, Kind: KindCollection, Elem: sig.Args[0]}
		if sig.Base == BaseMap {
			d.Kind, d.Key, d.Elem = KindMap, sig.Args[0], sig.Args[1]
		}

		return d, nil
	}

	if n, ok := sig.ArrayLen(); ok && len(sig.Args) == 1 {
		t, err := u.GoType(sig)
		if err != nil {
			return nil, err
		}

		return &Descriptor{Signature: sig, Type: t, Kind: KindArray, Elem: sig.Args[0], Len: n, Dims: arrayDims(t)}, nil
	}

	if shape, ok := u.Shape(sig.Base); ok {
		return u.describeShape(shape, sig, chain)
	}

	u.mu.RLock()
	t, ok := u.goTypes[sig.Base]
	u.mu.RUnlock()

	if !ok {
		return nil, &UnresolvedTypeError{Type: sig.String(), Reason: "unknown type"}
	}

	return u.describeGoType(sig, t), nil
}

func (u *Universe) describeGoType(sig Signature, t reflect.Type) *Descriptor {
	d := &Descriptor{Signature: sig, Type: t}

	switch t.Kind() {
	case reflect.Struct:
		d.Kind = KindStructural
		for i := range t.NumField() {
			f := t.Field(i)
			if f.Name == "_" {
				continue
			}

			d.Members = append(d.Members, Member{
				Name:      f.Name,
				Signature: u.SignatureOf(f.Type),
				Type:      f.Type,
				Index:     i,
				Exported:  f.IsExported(),
				Tag:       f.Tag,
			})
		}
	case reflect.Slice:
		d.Kind, d.Elem = KindCollection, u.SignatureOf(t.Elem())
	case reflect.Map:
		d.Kind, d.Key, d.Elem = KindMap, u.SignatureOf(t.Key()), u.SignatureOf(t.Elem())
	case reflect.Array:
		d.Kind, d.Elem, d.Len, d.Dims = KindArray, u.SignatureOf(t.Elem()), t.Len(), arrayDims(t)
	case reflect.Interface:
		d.Kind, d.Abstract = KindLeaf, t.NumMethod() > 0
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Pointer:
		d.Kind, d.Abstract = KindLeaf, true
	default:
		d.Kind = KindLeaf
	}

	u.mu.RLock()
	d.Constructors = slices.Clone(u.constructors[t])
	u.mu.RUnlock()

	sort.SliceStable(d.Constructors, func(i, j int) bool {
		return d.Constructors[i].Arity() < d.Constructors[j].Arity()
	})

	return d
}

func (u *Universe) describeShape(shape *Shape, sig Signature, chain int) (*Descriptor, error) {
	if chain > maxExtendsChain {
		return nil, &UnresolvedTypeError{Type: sig.String(), Reason: "supertype chain is too long or cyclic"}
	}

	if len(shape.Params) != len(sig.Args) {
		return nil, arityError(shape.Name, len(shape.Params), len(sig.Args))
	}

	bindings := make(map[string]Signature, len(shape.Params))
	for i, p := range shape.Params {
		bindings[p] = sig.Args[i]
	}

	d := &Descriptor{Signature: sig, Kind: KindStructural, Type: recordType, Shape: shape}

	if shape.Extends != nil {
		superSig, err := u.Substitute(*shape.Extends, bindings)
		if err != nil {
			return nil, err
		}

		super, err := u.describe(superSig, chain+1)
		if err != nil {
			return nil, err
		}

		if super.Shape == nil {
			return nil, &UnresolvedTypeError{Type: sig.String(), Reason: "supertype " + superSig.String() + " is not a shape"}
		}

		d.Members = slices.Clone(super.Members)
	}

	for _, slot := range shape.Slots {
		slotSig, err := u.Substitute(slot.Type, bindings)
		if err != nil {
			return nil, err
		}

		slotType, err := u.GoType(slotSig)
		if err != nil {
			return nil, err
		}

		m := Member{Name: slot.Name, Signature: slotSig, Type: slotType, Exported: true}

		if i := slices.IndexFunc(d.Members, func(inherited Member) bool { return inherited.Name == slot.Name }); i >= 0 {
			d.Members[i] = m
			continue
		}

		d.Members = append(d.Members, m)
	}

	for i := range d.Members {
		d.Members[i].Index = i
	}

	return d, nil
}

// Substitute resolves an expression under the given parameter bindings.
// Parameters without a binding resolve to the unconstrained signature.
func (u *Universe) Substitute(e Expr, bindings map[string]Signature) (Signature, error) {
	switch {
	case e.param != "":
		if sig, ok := bindings[e.param]; ok {
			return sig, nil
		}

		return Any, nil
	case e.goType != nil:
		return u.SignatureOf(e.goType), nil
	}

	args := make([]Signature, 0, len(e.args))
	for _, arg := range e.args {
		sig, err := u.Substitute(arg, bindings)
		if err != nil {
			return Signature{}, err
		}

		args = append(args, sig)
	}

	switch e.ctor {
	case ctorSlice:
		return SliceSig(args[0]), nil
	case ctorPointer:
		return PointerSig(args[0]), nil
	case ctorArray:
		return ArraySig(e.length, args[0]), nil
	case ctorMap:
		return MapSig(args[0], args[1]), nil
	}

	shape, ok := u.Shape(e.shape)
	if !ok {
		return Signature{}, &UnresolvedTypeError{Type: e.String(), Reason: "unknown shape"}
	}

	if len(shape.Params) != len(args) {
		return Signature{}, arityError(e.String(), len(shape.Params), len(args))
	}

	return Signature{Base: shape.Name, Args: args}, nil
}

// Assignable reports whether values of sub can fill a slot declared as super.
// Go types follow Go assignability, shapes follow their Extends chain.
func (u *Universe) Assignable(sub, super Signature) bool {
	if sub.Equal(super) {
		return true
	}

	superBase, _ := super.Deref()
	if superBase.Base == BaseAny {
		return true
	}

	subBase, _ := sub.Deref()
	if _, ok := u.Shape(subBase.Base); ok {
		for cur, chain := subBase, 0; chain <= maxExtendsChain; chain++ {
			if cur.Equal(superBase) {
				return true
			}

			next, ok := u.supertype(cur)
			if !ok {
				return false
			}

			cur = next
		}

		return false
	}

	subType, err := u.GoType(sub)
	if err != nil {
		return false
	}

	superType, err := u.GoType(super)
	if err != nil {
		return false
	}

	return subType.AssignableTo(superType)
}

// Supertypes returns the Extends chain of a shape signature, nearest first.
func (u *Universe) Supertypes(sig Signature) []Signature {
	var out []Signature
	for cur := sig; len(out) <= maxExtendsChain; {
		next, ok := u.supertype(cur)
		if !ok {
			break
		}

		out = append(out, next)
		cur = next
	}

	return out
}

func (u *Universe) supertype(sig Signature) (Signature, bool) {
	shape, ok := u.Shape(sig.Base)
	if !ok || shape.Extends == nil || len(shape.Params) != len(sig.Args) {
		return Signature{}, false
	}

	bindings := make(map[string]Signature, len(shape.Params))
	for i, p := range shape.Params {
		bindings[p] = sig.Args[i]
	}

	super, err := u.Substitute(*shape.Extends, bindings)
	if err != nil {
		return Signature{}, false
	}

	return super, true
}

func arrayDims(t reflect.Type) int {
	dims := 0
	for t.Kind() == reflect.Array {
		dims++
		t = t.Elem()
	}

	return dims
}
