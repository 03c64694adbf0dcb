package engine

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"go.uber.org/multierr"

	"fixture-generator/internal/diagnostic"
	"fixture-generator/node"
	"fixture-generator/selector"
	"fixture-generator/typesig"
)

var errAbstract = errors.New("type cannot be allocated without a subtype or a constructor")

// instantiate makes an empty value of n.Base: records are created empty,
// Go types by their constructors in order of arity with zero-valued
// arguments, then by raw allocation. When every way fails the value is
// absent, which is an error only for the root.
func (r *run) instantiate(n *node.Node) (reflect.Value, bool, error) {
	if n.Base == typesig.RecordType() {
		return reflect.ValueOf(typesig.NewRecord(n.Signature, n.Descriptor.MemberNames())), true, nil
	}

	var failures error
	for _, ctor := range n.Descriptor.Constructors {
		v, err := ctor.Call(ctor.ZeroArgs())
		if err == nil {
			return v, true, nil
		}

		failures = multierr.Append(failures, err)
	}

	if !n.Descriptor.Abstract {
		return reflect.New(n.Base).Elem(), true, nil
	}

	failures = multierr.Append(failures, errAbstract)
	path, sig := r.g.Path(n.ID), node.Short(n.Signature)

	if n.Role == node.RoleRoot {
		return reflect.Value{}, false, &InstantiationError{Signature: sig, Path: path, Err: failures}
	}

	r.log.V(1).Info("Leaving value absent", "path", path, "error", failures.Error())
	r.diags.AddInfo(diagnostic.CodeInstantiationFailed, failures.Error(), sig, path)

	return reflect.Value{}, false, nil
}

// assign sets the member child of the structural value base to v.
func (r *run) assign(base reflect.Value, child *node.Node, v reflect.Value) error {
	if rec, ok := base.Interface().(*typesig.Record); ok {
		var value any
		if !isNil(v) {
			value = v.Interface()
		}

		if err := rec.Set(child.Member, value); err != nil {
			return r.assignmentFailed(child, err)
		}

		return nil
	}

	field := base.Field(child.MemberIndex)
	if !field.CanSet() {
		if !field.CanAddr() {
			return r.assignmentFailed(child, fmt.Errorf("field %s is not addressable", child.Member))
		}

		field = reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
	}

	out, ok := selector.Adapt(v, field.Type())
	if !ok {
		return r.assignmentFailed(child, fmt.Errorf("value of type %s does not fit field %s %s", v.Type(), child.Member, field.Type()))
	}

	if err := set(field, out); err != nil {
		return r.assignmentFailed(child, err)
	}

	return nil
}

func set(field, v reflect.Value) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("set %s: %v", field.Type(), p)
		}
	}()

	field.Set(v)

	return nil
}
