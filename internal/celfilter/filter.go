// Package celfilter compiles CEL expressions into value predicates.
//
// The candidate value is bound to the variable "value". Structs become maps
// of their exported fields, slices and arrays become lists, pointers are
// dereferenced and nil becomes null.
package celfilter

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"

	"fixture-generator/typesig"
)

// Variable is the name the candidate value is bound to.
const Variable = "value"

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	recordType   = typesig.RecordType()
)

// Filter is a compiled CEL predicate. It is safe for concurrent use.
type Filter struct {
	expr    string
	program cel.Program
}

// Environment returns the CEL environment filters are compiled in.
func Environment() (*cel.Env, error) {
	return cel.NewEnv(
		ext.Strings(),
		ext.Encoders(),
		cel.OptionalTypes(),
		cel.Variable(Variable, cel.DynType),
	)
}

// Compile compiles expr. The expression must evaluate to a bool.
func Compile(expr string) (*Filter, error) {
	env, err := Environment()
	if err != nil {
		return nil, fmt.Errorf("cel environment: %w", err)
	}

	checked, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error in %q: %w", expr, issues.Err())
	}

	if out := checked.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression %q must return bool, got %s", expr, out)
	}

	prg, err := env.Program(checked)
	if err != nil {
		return nil, fmt.Errorf("program error in %q: %w", expr, err)
	}

	return &Filter{expr: expr, program: prg}, nil
}

func (f *Filter) String() string {
	return f.expr
}

// Accept evaluates the filter against v.
func (f *Filter) Accept(v reflect.Value) (bool, error) {
	out, _, err := f.program.Eval(map[string]any{Variable: Native(v)})
	if err != nil {
		return false, fmt.Errorf("evaluating %q: %w", f.expr, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q did not return bool", f.expr)
	}

	return result, nil
}

// Native converts v into values the default CEL type adapter understands.
func Native(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}

	switch v.Type() {
	case timeType:
		return v.Interface()
	case durationType:
		return time.Duration(v.Int())
	case recordType:
		if v.IsNil() {
			return nil
		}

		rec := v.Interface().(*typesig.Record)
		out := make(map[string]any, len(rec.Names()))
		for _, name := range rec.Names() {
			value, _ := rec.Get(name)
			out[name] = Native(reflect.ValueOf(value))
		}

		return out
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}

		return Native(v.Elem())
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		return v.String()
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil
		}

		out := make([]any, v.Len())
		for i := range out {
			out[i] = Native(v.Index(i))
		}

		return out
	case reflect.Map:
		if v.IsNil() {
			return nil
		}

		if v.Type().Key().Kind() == reflect.String {
			out := make(map[string]any, v.Len())
			for iter := v.MapRange(); iter.Next(); {
				out[iter.Key().String()] = Native(iter.Value())
			}

			return out
		}

		out := make(map[any]any, v.Len())
		for iter := v.MapRange(); iter.Next(); {
			out[Native(iter.Key())] = Native(iter.Value())
		}

		return out
	case reflect.Struct:
		t := v.Type()
		out := make(map[string]any, t.NumField())
		for i := range t.NumField() {
			if f := t.Field(i); f.IsExported() {
				out[f.Name] = Native(v.Field(i))
			}
		}

		return out
	}

	return fmt.Sprint(v.Interface())
}
