package engine

import (
	"fmt"
	"reflect"

	"github.com/go-logr/logr"

	"fixture-generator/internal/diagnostic"
	"fixture-generator/node"
	"fixture-generator/primitive"
	"fixture-generator/random"
	"fixture-generator/selector"
	"fixture-generator/settings"
	"fixture-generator/typesig"
)

// Engine holds the state shared by concurrent requests. It is read-only
// once requests are running.
type Engine struct {
	Universe  *typesig.Universe
	Producers *primitive.Registry
	Log       logr.Logger
}

// Result is the outcome of one request.
type Result struct {
	Value       reflect.Value
	Graph       *node.Graph
	Diagnostics diagnostic.Diagnostics
	Usage       []selector.Usage
}

// run is the state of a single request. It is never shared.
type run struct {
	*Engine
	log     logr.Logger
	g       *node.Graph
	matcher *selector.Matcher
	cfg     *settings.Settings
	rnd     *random.Random
	diags   *diagnostic.Diagnostics
}

// Generate builds the graph of root and populates a value for it.
// cfg must be validated by the caller.
func (e *Engine) Generate(root typesig.Signature, cfg *settings.Settings, reg *selector.Registry, rnd *random.Random) (*Result, error) {
	if reg == nil {
		reg = selector.NewRegistry()
	}

	g, matcher, err := e.build(root, cfg, reg)
	if err != nil {
		return nil, err
	}

	res := &Result{Graph: g}
	r := &run{
		Engine:  e,
		log:     e.Log.WithValues("root", node.Short(root), "seed", rnd.Seed()),
		g:       g,
		matcher: matcher,
		cfg:     cfg,
		rnd:     rnd,
		diags:   &res.Diagnostics,
	}

	r.log.V(1).Info("Generating", "nodes", g.Len(), "selectors", reg.Len())

	v, err := r.generate(0, false)
	if err != nil {
		return nil, err
	}

	if !v.IsValid() {
		v = reflect.Zero(g.Root().Type)
	}

	res.Value, res.Usage = v, matcher.Usage()
	r.reportTerminations()

	if err := r.reportUnused(); err != nil {
		return nil, err
	}

	return res, nil
}

// Graph builds the graph of root with the subtypes declared in reg applied,
// without populating it.
func (e *Engine) Graph(root typesig.Signature, cfg *settings.Settings, reg *selector.Registry) (*node.Graph, error) {
	if reg == nil {
		reg = selector.NewRegistry()
	}

	g, _, err := e.build(root, cfg, reg)

	return g, err
}

func (e *Engine) build(root typesig.Signature, cfg *settings.Settings, reg *selector.Registry) (*node.Graph, *selector.Matcher, error) {
	if err := reg.Validate(e.Universe); err != nil {
		return nil, nil, err
	}

	matcher := selector.NewMatcher(reg, e.Universe)
	builder := &node.Builder{
		Universe:   e.Universe,
		IsLeaf:     e.Producers.IsLeaf,
		Subtype:    matcher.Subtype,
		Unexported: cfg.PopulateUnexported,
	}

	g, err := builder.Build(root, cfg.MaxDepth)
	if err != nil {
		return nil, nil, err
	}

	return g, matcher, nil
}

// generate runs the pipeline of one node. An invalid value means the node
// was ignored and its slot must be left untouched.
func (r *run) generate(id node.ID, nullable bool) (reflect.Value, error) {
	n := r.g.Node(id)
	ref := r.g.Ref(id)
	res := r.matcher.Resolve(ref)

	if res.Ignore {
		r.log.V(2).Info("Ignored", "path", ref.Path())
		return reflect.Value{}, nil
	}

	if res.Set != nil {
		v, err := r.adapt(n, res.Set.Override.Value)
		if err != nil || !v.IsValid() {
			return v, err
		}

		if res.Filter != nil && !isNil(v) {
			ok, err := r.accept(res.Filter, ref.Path(), v)
			if err != nil {
				return reflect.Value{}, err
			}

			if !ok {
				if err := r.exhausted(n, ref.Path(), res.Filter, 1); err != nil {
					return reflect.Value{}, err
				}
			}
		}

		return r.complete(n, v, res)
	}

	var v reflect.Value
	for attempt := 1; ; attempt++ {
		candidate, err := r.candidate(n, res, nullable)
		if err != nil {
			return reflect.Value{}, err
		}

		if res.Filter == nil || !candidate.IsValid() || isNil(candidate) {
			v = candidate
			break
		}

		ok, err := r.accept(res.Filter, ref.Path(), candidate)
		if err != nil {
			return reflect.Value{}, err
		}

		if ok {
			v = candidate
			break
		}

		if attempt < r.cfg.MaxGenerationAttempts {
			continue
		}

		if err := r.exhausted(n, ref.Path(), res.Filter, attempt); err != nil {
			return reflect.Value{}, err
		}

		v = candidate

		break
	}

	if !v.IsValid() {
		return v, nil
	}

	return r.complete(n, v, res)
}

func (r *run) accept(filter *selector.Entry, path string, v reflect.Value) (bool, error) {
	ok, err := filter.Override.Predicate(v)
	if err != nil {
		return false, fmt.Errorf("filter %s at %s: %w", filter.Selector, path, err)
	}

	return ok, nil
}

// exhausted applies the max attempts policy once filter rejected the last
// candidate. A nil error means the rejected value is kept.
func (r *run) exhausted(n *node.Node, path string, filter *selector.Entry, attempts int) error {
	if r.cfg.FailOnMaxAttempts {
		return &MaxAttemptsExceededError{
			Signature: node.Short(n.Signature),
			Path:      path,
			Selector:  filter.String(),
			Attempts:  attempts,
		}
	}

	r.log.Info("Filter rejected every candidate, keeping the last one", "path", path, "attempts", attempts)
	r.diags.AddWarning(diagnostic.CodeFilterFallback,
		fmt.Sprintf("%s rejected %d candidates, kept the last one", filter.Override, attempts),
		node.Short(n.Signature), path)

	return nil
}

// candidate makes one value of n from the first source that applies.
func (r *run) candidate(n *node.Node, res selector.Resolved, nullable bool) (reflect.Value, error) {
	if res.Supply != nil {
		v, err := res.Supply.Override.Supplier(r.rnd)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("supplier %s at %s: %w", res.Supply.Selector, r.g.Path(n.ID), err)
		}

		return r.adapt(n, v)
	}

	if isNillable(n.Type) && r.rnd.DiceRoll(nullable || res.Nullable) {
		return reflect.Zero(n.Type), nil
	}

	if n.IsTerminated() {
		r.log.V(2).Info("Terminated", "path", r.g.Path(n.ID), "reason", n.Termination)
		return reflect.Zero(n.Type), nil
	}

	switch n.Kind {
	case typesig.KindStructural:
		return r.structural(n)
	case typesig.KindCollection:
		return r.slice(n)
	case typesig.KindMap:
		return r.mapping(n)
	case typesig.KindArray:
		return r.array(n)
	default:
		return r.leaf(n)
	}
}

// complete runs the callbacks of an accepted value.
func (r *run) complete(n *node.Node, v reflect.Value, res selector.Resolved) (reflect.Value, error) {
	if isNil(v) {
		return v, nil
	}

	for _, cb := range res.Callbacks {
		if err := cb.Override.Callback(v); err != nil {
			return reflect.Value{}, fmt.Errorf("callback %s at %s: %w", cb.Selector, r.g.Path(n.ID), err)
		}
	}

	return v, nil
}

// adapt fits a declared value to the type of n. A value that does not fit
// is an assignment error.
func (r *run) adapt(n *node.Node, v reflect.Value) (reflect.Value, error) {
	out, ok := selector.Adapt(v, n.Type)
	if ok {
		return out, nil
	}

	return reflect.Value{}, r.assignmentFailed(n, fmt.Errorf("value of type %s does not fit %s", typeName(v), n.Type))
}

// assignmentFailed applies the assignment policy. Under the ignore policy
// the failure is recorded and the slot is left untouched.
func (r *run) assignmentFailed(n *node.Node, err error) error {
	path, sig := r.g.Path(n.ID), node.Short(n.Signature)

	if r.cfg.OnAssignmentError == settings.AssignmentFail {
		return &AssignmentError{Signature: sig, Path: path, Err: err}
	}

	r.log.Info("Ignoring assignment error", "path", path, "error", err.Error())
	r.diags.AddWarning(diagnostic.CodeAssignmentIgnored, err.Error(), sig, path)

	return nil
}

// nullable returns the default nullability of n from the settings.
func (r *run) nullable(n *node.Node) bool {
	switch n.Role {
	case node.RoleRoot:
		return false
	case node.RoleKey:
		return r.cfg.Map.KeysNullable
	case node.RoleValue:
		return r.cfg.Map.ValuesNullable
	case node.RoleElement:
		if r.g.Node(n.Parent).Kind == typesig.KindArray {
			return r.cfg.Array.ElementsNullable
		}

		return r.cfg.Collection.ElementsNullable
	}

	if n.Type == typesig.RecordType() {
		return r.cfg.Record.Nullable
	}

	switch n.Type.Kind() {
	case reflect.Pointer:
		return r.cfg.Pointer.Nullable
	case reflect.Slice:
		return r.cfg.Collection.Nullable
	case reflect.Map:
		return r.cfg.Map.Nullable
	case reflect.Interface:
		return r.cfg.Interface.Nullable
	default:
		return false
	}
}

func (r *run) reportTerminations() {
	r.g.Walk(func(n *node.Node) bool {
		switch n.Termination {
		case node.TerminationCycleDetected:
			r.diags.AddInfo(diagnostic.CodeCycleDetected, "cycle cut", node.Short(n.Signature), r.g.Path(n.ID))
		case node.TerminationMaxDepthExceeded:
			r.diags.AddInfo(diagnostic.CodeMaxDepthExceeded, "max depth reached", node.Short(n.Signature), r.g.Path(n.ID))
		}

		return true
	})
}

// reportUnused fails strict requests with unused selectors and records them
// as diagnostics otherwise.
func (r *run) reportUnused() error {
	err := r.matcher.Err()
	if err == nil {
		return nil
	}

	if r.cfg.Mode == settings.ModeStrict {
		return err
	}

	for _, e := range r.matcher.Unused() {
		r.diags.AddWarning(diagnostic.CodeUnusedSelector, "selector never matched: "+e.String(), "", "")
	}

	return nil
}

func isNillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

func isNil(v reflect.Value) bool {
	return isNillable(v.Type()) && v.IsNil()
}

func typeName(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}

	return v.Type().String()
}
