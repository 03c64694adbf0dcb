package selector

import (
	"fixture-generator/node"
	"fixture-generator/typesig"
)

const (
	classPredicate = iota
	classType
	classMember
	classField
	classRoot
)

// rank orders matching selectors: class first, then the number of scopes,
// then whether a depth is required.
type rank struct {
	class  int
	scopes int
	depth  int
}

func (r rank) less(other rank) bool {
	if r.class != other.class {
		return r.class < other.class
	}

	if r.scopes != other.scopes {
		return r.scopes < other.scopes
	}

	return r.depth < other.depth
}

type compiled struct {
	sel Selector
	// signature of the type predicate, resolved once
	sig *typesig.Signature
	// signature of the declaring Go type of a field selector
	declaring *typesig.Signature
	scopes    []compiled
}

type entryState struct {
	Entry
	alts       []compiled
	subtypeSig typesig.Signature
	used       bool
}

// Resolved are the overrides that apply to one node.
type Resolved struct {
	Ignore   bool
	Set      *Entry
	Supply   *Entry
	Filter   *Entry
	Nullable bool
	// Callbacks run in declaration order.
	Callbacks []Entry
}

// Usage tells whether a declared override took effect at least once.
type Usage struct {
	Entry Entry
	Used  bool
}

// Matcher resolves overrides for the nodes of one request. It records
// usage and is therefore not safe for concurrent use.
type Matcher struct {
	universe *typesig.Universe
	entries  []*entryState
}

func NewMatcher(reg *Registry, u *typesig.Universe) *Matcher {
	m := &Matcher{universe: u}
	if reg == nil {
		return m
	}

	for _, e := range reg.Entries() {
		st := &entryState{Entry: e}
		for _, alt := range e.Selector.alternatives() {
			st.alts = append(st.alts, m.compile(alt))
		}

		switch {
		case e.Override.SubtypeSig != nil:
			st.subtypeSig = *e.Override.SubtypeSig
		case e.Override.Subtype != nil:
			st.subtypeSig = u.SignatureOf(e.Override.Subtype)
		}

		m.entries = append(m.entries, st)
	}

	return m
}

func (m *Matcher) compile(sel Selector) compiled {
	c := compiled{sel: sel}

	switch {
	case sel.goType != nil:
		sig, _ := m.universe.SignatureOf(sel.goType).Deref()
		c.sig = &sig
	case sel.signature != nil:
		c.sig = sel.signature
	}

	if sel.declaringType != nil {
		sig, _ := m.universe.SignatureOf(sel.declaringType).Deref()
		c.declaring = &sig
	}

	for _, scope := range sel.scopes {
		sc := m.compile(scope.target)
		sc.sel.depth = scope.depth
		c.scopes = append(c.scopes, sc)
	}

	return c
}

// Resolve returns the overrides for t and marks the ones that take effect as used.
// For every action the most specific match wins, ties go to the last declared.
// Ignore beats a fixed value, which beats a supplier; force-nullable only
// applies to generated values.
func (m *Matcher) Resolve(t node.Target) Resolved {
	var (
		best      [ActionTotal]*entryState
		bestRank  [ActionTotal]rank
		callbacks []*entryState
	)

	for _, e := range m.entries {
		action := e.Override.Action
		if action == ActionSubtype {
			continue
		}

		r, ok := m.match(e, t)
		if !ok {
			continue
		}

		if action == ActionOnComplete {
			callbacks = append(callbacks, e)
			continue
		}

		if best[action] == nil || !r.less(bestRank[action]) {
			best[action], bestRank[action] = e, r
		}
	}

	var res Resolved

	if ignore := best[ActionIgnore]; ignore != nil {
		ignore.used = true
		res.Ignore = true

		return res
	}

	switch {
	case best[ActionSet] != nil:
		best[ActionSet].used = true
		res.Set = &best[ActionSet].Entry
	case best[ActionSupply] != nil:
		best[ActionSupply].used = true
		res.Supply = &best[ActionSupply].Entry
	case best[ActionNullable] != nil:
		best[ActionNullable].used = true
		res.Nullable = true
	}

	if filter := best[ActionFilter]; filter != nil {
		filter.used = true
		res.Filter = &filter.Entry
	}

	for _, cb := range callbacks {
		cb.used = true
		res.Callbacks = append(res.Callbacks, cb.Entry)
	}

	return res
}

// Subtype returns the subtype declared for t, if any.
func (m *Matcher) Subtype(t node.Target) (typesig.Signature, bool) {
	var (
		best     *entryState
		bestRank rank
	)

	for _, e := range m.entries {
		if e.Override.Action != ActionSubtype {
			continue
		}

		if r, ok := m.match(e, t); ok && (best == nil || !r.less(bestRank)) {
			best, bestRank = e, r
		}
	}

	if best == nil {
		return typesig.Signature{}, false
	}

	best.used = true

	return best.subtypeSig, true
}

// Usage reports every declared override in declaration order.
func (m *Matcher) Usage() []Usage {
	out := make([]Usage, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, Usage{Entry: e.Entry, Used: e.used})
	}

	return out
}

// Unused returns the overrides that never took effect.
func (m *Matcher) Unused() []Entry {
	var out []Entry
	for _, e := range m.entries {
		if !e.used {
			out = append(out, e.Entry)
		}
	}

	return out
}

// Err returns an UnusedSelectorError listing unused overrides, or nil.
func (m *Matcher) Err() error {
	unused := m.Unused()
	if len(unused) == 0 {
		return nil
	}

	return &UnusedSelectorError{Entries: unused}
}

func (m *Matcher) match(e *entryState, t node.Target) (rank, bool) {
	var (
		best  rank
		found bool
	)

	for _, alt := range e.alts {
		if !m.matches(alt, t) {
			continue
		}

		if r := alt.rank(); !found || best.less(r) {
			best, found = r, true
		}
	}

	return best, found
}

func (c compiled) rank() rank {
	r := rank{scopes: len(c.scopes)}
	if c.sel.depth != nil {
		r.depth = 1
	}

	switch {
	case c.sel.root:
		r.class = classRoot
	case c.sel.predicate != nil:
		r.class = classPredicate
	case c.sel.member != "" && (c.declaring != nil || c.sel.declaring != ""):
		r.class = classField
	case c.sel.member != "":
		r.class = classMember
	default:
		r.class = classType
	}

	return r
}

func (m *Matcher) matches(c compiled, t node.Target) bool {
	if !m.matchesTarget(c, t) {
		return false
	}

	if c.sel.depth != nil && t.Depth() != *c.sel.depth {
		return false
	}

	return m.matchesScopes(c.scopes, t)
}

func (m *Matcher) matchesTarget(c compiled, t node.Target) bool {
	sel := c.sel

	switch {
	case sel.root:
		return t.IsRoot()
	case sel.predicate != nil:
		return sel.predicate(t)
	}

	if c.sig != nil && !c.sig.Equal(t.Signature()) {
		return false
	}

	if sel.shape != "" && t.Signature().Base != sel.shape {
		return false
	}

	if sel.role != nil {
		switch *sel.role {
		case node.RoleElement:
			if t.Role() != node.RoleElement && t.Role() != node.RoleValue {
				return false
			}
		default:
			if t.Role() != *sel.role {
				return false
			}
		}
	}

	if sel.member == "" {
		return true
	}

	if t.Role() != node.RoleMember || t.Member() != sel.member {
		return false
	}

	switch {
	case c.declaring != nil:
		return c.declaring.Equal(t.Declaring())
	case sel.declaring != "":
		return m.declaredBy(t.Declaring(), sel.declaring)
	}

	return true
}

// declaredBy reports whether sig is the shape name or extends it.
func (m *Matcher) declaredBy(sig typesig.Signature, name string) bool {
	if sig.Base == name {
		return true
	}

	for _, super := range m.universe.Supertypes(sig) {
		if super.Base == name {
			return true
		}
	}

	return false
}

// matchesScopes walks from t towards the root, consuming scopes innermost
// first. The node itself counts as part of its ancestry.
func (m *Matcher) matchesScopes(scopes []compiled, t node.Target) bool {
	i := len(scopes) - 1

	for cur, ok := t, true; ok && i >= 0; cur, ok = cur.Parent() {
		scope := scopes[i]
		if scope.sel.depth != nil && cur.Depth() < *scope.sel.depth {
			continue
		}

		if m.matchesTarget(scope, cur) {
			i--
		}
	}

	return i < 0
}
