package engine

import (
	"fmt"
	"reflect"

	"fixture-generator/node"
	"fixture-generator/selector"
)

func (r *run) leaf(n *node.Node) (reflect.Value, error) {
	if _, ok := r.Producers.Lookup(n.Base); ok {
		v, err := r.Producers.Produce(r.rnd, r.cfg, n.Base)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%s at %s: %w", node.Short(n.Signature), r.g.Path(n.ID), err)
		}

		return wrap(v, n.Type), nil
	}

	base, ok, err := r.instantiate(n)
	if err != nil || !ok {
		return reflect.Zero(n.Type), err
	}

	return wrap(base, n.Type), nil
}

// structural instantiates n and populates its members in declaration order.
func (r *run) structural(n *node.Node) (reflect.Value, error) {
	base, ok, err := r.instantiate(n)
	if err != nil || !ok {
		return reflect.Zero(n.Type), err
	}

	for _, id := range n.Children {
		child := r.g.Node(id)

		v, err := r.generate(id, r.nullable(child))
		if err != nil {
			return reflect.Value{}, err
		}

		if !v.IsValid() {
			continue
		}

		if err := r.assign(base, child, v); err != nil {
			return reflect.Value{}, err
		}
	}

	return wrap(base, n.Type), nil
}

func (r *run) slice(n *node.Node) (reflect.Value, error) {
	size := r.rnd.IntRange(r.cfg.Collection.MinSize, r.cfg.Collection.MaxSize)
	s := reflect.MakeSlice(n.Base, 0, size)

	elem := r.g.Node(n.Children[0])
	for range size {
		v, err := r.element(elem, n.Base.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		if v.IsValid() {
			s = reflect.Append(s, v)
		}
	}

	return wrap(s, n.Type), nil
}

func (r *run) array(n *node.Node) (reflect.Value, error) {
	a := reflect.New(n.Base).Elem()

	elem := r.g.Node(n.Children[0])
	for i := range n.Base.Len() {
		v, err := r.element(elem, n.Base.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		if v.IsValid() {
			a.Index(i).Set(v)
		}
	}

	return wrap(a, n.Type), nil
}

// mapping fills a map with distinct keys. Duplicate keys are retried until
// the attempts are exhausted, which leaves the map smaller than drawn.
func (r *run) mapping(n *node.Node) (reflect.Value, error) {
	size := r.rnd.IntRange(r.cfg.Map.MinSize, r.cfg.Map.MaxSize)
	m := reflect.MakeMapWithSize(n.Base, size)

	key, value := r.g.Node(n.Children[0]), r.g.Node(n.Children[1])
	for attempts := 0; m.Len() < size && attempts < r.cfg.MaxGenerationAttempts; {
		k, err := r.element(key, n.Base.Key())
		if err != nil {
			return reflect.Value{}, err
		}

		if !k.IsValid() {
			break
		}

		if m.MapIndex(k).IsValid() {
			attempts++
			continue
		}

		v, err := r.element(value, n.Base.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		if !v.IsValid() {
			v = reflect.Zero(n.Base.Elem())
		}

		m.SetMapIndex(k, v)
	}

	if m.Len() < size {
		r.log.V(1).Info("Map is smaller than drawn", "path", r.g.Path(n.ID), "size", m.Len(), "drawn", size)
	}

	return wrap(m, n.Type), nil
}

// element generates one container slot of type want. An invalid value
// means the slot is skipped.
func (r *run) element(n *node.Node, want reflect.Type) (reflect.Value, error) {
	v, err := r.generate(n.ID, r.nullable(n))
	if err != nil || !v.IsValid() {
		return v, err
	}

	out, ok := selector.Adapt(v, want)
	if !ok {
		return reflect.Value{}, r.assignmentFailed(n, fmt.Errorf("value of type %s does not fit %s", v.Type(), want))
	}

	return out, nil
}

// wrap adds the pointer levels between v and t.
func wrap(v reflect.Value, t reflect.Type) reflect.Value {
	if v.Type() == t || v.Type().AssignableTo(t) || t.Kind() != reflect.Pointer {
		return v
	}

	inner := wrap(v, t.Elem())
	p := reflect.New(t.Elem())
	p.Elem().Set(inner)

	return p
}
