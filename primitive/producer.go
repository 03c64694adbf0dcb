package primitive

import (
	"fmt"
	"math"
	"reflect"
	"sync"
	"time"

	"fixture-generator/random"
	"fixture-generator/settings"
	"fixture-generator/utils"
)

// maxEnumProbe bounds the integer values checked against IsValid when
// collecting the members of an integer enum.
const maxEnumProbe = 256

// Producer makes one leaf value of rtype. The returned value must be
// assignable to rtype.
type Producer func(rnd *random.Random, cfg *settings.Settings, rtype reflect.Type) (reflect.Value, error)

type validator interface{ IsValid() bool }

var validatorType = reflect.TypeFor[validator]()

// Registry maps leaf types to producers. Custom producers registered for a
// concrete type win over the kind table. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	custom map[reflect.Type]Producer
	kinds  [KindTotal]Producer
	enums  sync.Map // reflect.Type -> []int64
}

func NewRegistry() *Registry {
	r := &Registry{custom: make(map[reflect.Type]Producer)}

	for _, kind := range []KindEnum{KindInt, KindInt8, KindInt16, KindInt32, KindInt64} {
		r.kinds[kind] = produceSigned
	}
	for _, kind := range []KindEnum{KindUint, KindUint8, KindUint16, KindUint32, KindUint64} {
		r.kinds[kind] = produceUnsigned
	}

	r.kinds[KindFloat32] = produceFloat
	r.kinds[KindFloat64] = produceFloat
	r.kinds[KindComplex64] = produceComplex
	r.kinds[KindComplex128] = produceComplex
	r.kinds[KindBool] = produceBool
	r.kinds[KindString] = produceString
	r.kinds[KindTime] = produceTime
	r.kinds[KindDuration] = produceDuration
	r.kinds[KindPrimitiveEnum] = r.produceEnum
	r.kinds[KindAny] = produceAny

	return r
}

// Register installs a producer for the exact type rtype.
func (r *Registry) Register(rtype reflect.Type, p Producer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.custom[rtype] = p
}

// RegisterFunc installs a typed producer for T.
func RegisterFunc[T any](r *Registry, fn func(rnd *random.Random, cfg *settings.Settings) T) {
	r.Register(reflect.TypeFor[T](), func(rnd *random.Random, cfg *settings.Settings, _ reflect.Type) (reflect.Value, error) {
		return reflect.ValueOf(fn(rnd, cfg)), nil
	})
}

// Lookup returns the producer responsible for rtype.
func (r *Registry) Lookup(rtype reflect.Type) (Producer, bool) {
	if rtype == nil {
		return nil, false
	}

	r.mu.RLock()
	p, ok := r.custom[rtype]
	r.mu.RUnlock()

	if ok {
		return p, true
	}

	kind := FromReflectType(rtype)
	if kind == 0 {
		return nil, false
	}

	return r.kinds[kind], true
}

// IsLeaf reports whether rtype is produced by this registry.
func (r *Registry) IsLeaf(rtype reflect.Type) bool {
	_, ok := r.Lookup(rtype)
	return ok
}

// Produce makes one value of rtype.
func (r *Registry) Produce(rnd *random.Random, cfg *settings.Settings, rtype reflect.Type) (reflect.Value, error) {
	p, ok := r.Lookup(rtype)
	if !ok {
		return reflect.Value{}, fmt.Errorf("no leaf producer for %s", rtype)
	}

	v, err := p(rnd, cfg, rtype)
	if err != nil {
		return reflect.Value{}, err
	}

	if !v.IsValid() {
		return reflect.Zero(rtype), nil
	}

	if !v.Type().AssignableTo(rtype) {
		if !v.Type().ConvertibleTo(rtype) {
			return reflect.Value{}, fmt.Errorf("producer for %s returned %s", rtype, v.Type())
		}
		v = v.Convert(rtype)
	}

	return v, nil
}

func produceSigned(rnd *random.Random, cfg *settings.Settings, rtype reflect.Type) (reflect.Value, error) {
	lo, hi := signedBounds(BasicKind(rtype).Bits())
	hi = min(cfg.Integer.Max, hi)
	lo = utils.Clamp(cfg.Integer.Min, lo, hi)

	v := reflect.New(rtype).Elem()
	v.SetInt(rnd.Int64Range(lo, hi))

	return v, nil
}

func produceUnsigned(rnd *random.Random, cfg *settings.Settings, rtype reflect.Type) (reflect.Value, error) {
	limit := uint64(math.MaxUint64) >> (64 - BasicKind(rtype).Bits())

	var lo, hi uint64
	if cfg.Integer.Min > 0 {
		lo = uint64(cfg.Integer.Min)
	}
	if cfg.Integer.Max > 0 {
		hi = uint64(cfg.Integer.Max)
	}

	hi = min(hi, limit)
	lo = min(lo, hi)

	v := reflect.New(rtype).Elem()
	v.SetUint(rnd.Uint64Range(lo, hi))

	return v, nil
}

func produceFloat(rnd *random.Random, cfg *settings.Settings, rtype reflect.Type) (reflect.Value, error) {
	v := reflect.New(rtype).Elem()
	v.SetFloat(rnd.Float64Range(cfg.Float.Min, cfg.Float.Max))

	return v, nil
}

func produceComplex(rnd *random.Random, cfg *settings.Settings, rtype reflect.Type) (reflect.Value, error) {
	re := rnd.Float64Range(cfg.Float.Min, cfg.Float.Max)
	im := rnd.Float64Range(cfg.Float.Min, cfg.Float.Max)

	v := reflect.New(rtype).Elem()
	v.SetComplex(complex(re, im))

	return v, nil
}

func produceBool(rnd *random.Random, _ *settings.Settings, rtype reflect.Type) (reflect.Value, error) {
	v := reflect.New(rtype).Elem()
	v.SetBool(rnd.Bool())

	return v, nil
}

func produceString(rnd *random.Random, cfg *settings.Settings, rtype reflect.Type) (reflect.Value, error) {
	v := reflect.New(rtype).Elem()
	v.SetString(randomString(rnd, cfg))

	return v, nil
}

func randomString(rnd *random.Random, cfg *settings.Settings) string {
	if rnd.DiceRoll(cfg.String.AllowEmpty) {
		return ""
	}

	return rnd.UpperAlpha(rnd.IntRange(cfg.String.MinLength, cfg.String.MaxLength))
}

func produceTime(rnd *random.Random, cfg *settings.Settings, rtype reflect.Type) (reflect.Value, error) {
	nanos := rnd.Int64Range(cfg.Time.Min.UnixNano(), cfg.Time.Max.UnixNano())

	return reflect.ValueOf(time.Unix(0, nanos).UTC()).Convert(rtype), nil
}

func produceDuration(rnd *random.Random, cfg *settings.Settings, rtype reflect.Type) (reflect.Value, error) {
	d := rnd.Int64Range(int64(cfg.Duration.Min), int64(cfg.Duration.Max))

	return reflect.ValueOf(time.Duration(d)).Convert(rtype), nil
}

func produceAny(rnd *random.Random, cfg *settings.Settings, rtype reflect.Type) (reflect.Value, error) {
	v := reflect.New(rtype).Elem()
	v.Set(reflect.ValueOf(randomString(rnd, cfg)))

	return v, nil
}

// produceEnum picks one of the valid members of an integer enum that
// implements IsValid, and otherwise produces by the underlying kind.
func (r *Registry) produceEnum(rnd *random.Random, cfg *settings.Settings, rtype reflect.Type) (reflect.Value, error) {
	kind := BasicKind(rtype)

	if kind.IsInteger() && rtype.Implements(validatorType) {
		if members := r.enumMembers(rtype, kind); len(members) > 0 {
			v := reflect.New(rtype).Elem()
			pick := members[rnd.OneOf(len(members))]
			if kind.IsSigned() {
				v.SetInt(pick)
			} else {
				v.SetUint(uint64(pick))
			}

			return v, nil
		}
	}

	return r.kinds[kind](rnd, cfg, rtype)
}

func (r *Registry) enumMembers(rtype reflect.Type, kind KindEnum) []int64 {
	if cached, ok := r.enums.Load(rtype); ok {
		return cached.([]int64)
	}

	var members []int64
	v := reflect.New(rtype).Elem()

	for i := range int64(maxEnumProbe) {
		if kind.IsSigned() {
			v.SetInt(i)
		} else {
			v.SetUint(uint64(i))
		}

		// overflowing small kinds wrap around, stop before revisiting
		if kind.IsSigned() && v.Int() != i || kind.IsUnsigned() && v.Uint() != uint64(i) {
			break
		}

		if isValid(v) {
			members = append(members, i)
		}
	}

	actual, _ := r.enums.LoadOrStore(rtype, members)

	return actual.([]int64)
}

func isValid(v reflect.Value) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	return v.Interface().(validator).IsValid()
}

func signedBounds(bits int) (int64, int64) {
	if bits >= 64 {
		return math.MinInt64, math.MaxInt64
	}

	hi := int64(1)<<(bits-1) - 1

	return -hi - 1, hi
}
