// Package registry holds the declared tree of scenario groups
// and cases. Groups and cases are immutable once declared; the
// tree is strict, so every case belongs to exactly one group.
package registry

import (
	"iter"
	"strings"
	"sync"

	"digital.vasic.corespec/pkg/scenario"
)

// Option configures a group or case declaration.
type Option func(*declaration)

type declaration struct {
	pending bool
}

// Pending marks the declared group or case as pending. A
// pending group skips all of its descendants.
func Pending() Option {
	return PendingIf(true)
}

// PendingIf marks the declaration as pending when cond holds.
func PendingIf(cond bool) Option {
	return func(d *declaration) {
		if cond {
			d.pending = true
		}
	}
}

func apply(opts []Option) declaration {
	var d declaration
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Node is either a *Group or a *Case.
type Node interface {
	Name() string
	Pending() bool
	node()
}

// Group is a named, ordered container of groups and cases.
type Group struct {
	name     string
	pending  bool
	parent   *Group
	children []Node
}

func (*Group) node() {}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// Pending reports the group's own pending flag.
func (g *Group) Pending() bool { return g.pending }

// Parent returns the enclosing group, or nil for a root.
func (g *Group) Parent() *Group { return g.parent }

// Path returns the names of the enclosing groups followed by
// this group's name.
func (g *Group) Path() []string {
	if g.parent == nil {
		return []string{g.name}
	}
	return append(g.parent.Path(), g.name)
}

// Skipped reports whether the group or any ancestor is pending.
func (g *Group) Skipped() bool {
	for cur := g; cur != nil; cur = cur.parent {
		if cur.pending {
			return true
		}
	}
	return false
}

// Case is a named executable example.
type Case struct {
	name    string
	pending bool
	action  scenario.Action
	group   *Group
}

func (*Case) node() {}

// Name returns the case name.
func (c *Case) Name() string { return c.name }

// Pending reports the case's own pending flag.
func (c *Case) Pending() bool { return c.pending }

// Action returns the procedure run for this case. It is nil
// only for pending stubs.
func (c *Case) Action() scenario.Action { return c.action }

// Group returns the group the case belongs to.
func (c *Case) Group() *Group { return c.group }

// Entry is a case as seen during traversal.
type Entry struct {
	// Case is the declared case.
	Case *Case

	// Path holds the names of the enclosing groups, outermost
	// first.
	Path []string

	// Pending is true when the case or any ancestor group is
	// pending.
	Pending bool
}

// FullName joins the path and case name.
func (e Entry) FullName() string {
	return scenario.JoinPath(e.Path, e.Case.name)
}

// Registry is the root of a declaration tree. Declaration is
// safe for concurrent use; once sealed it is read-only.
type Registry struct {
	mu     sync.RWMutex
	roots  []*Group
	groups int
	cases  int
	sealed bool
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// GroupHandle allows declarations nested inside a group.
type GroupHandle struct {
	reg   *Registry
	group *Group
}

// Group returns the declared group.
func (h *GroupHandle) Group() *Group { return h.group }

// DeclareGroup declares a root group.
func (r *Registry) DeclareGroup(
	name string,
	opts ...Option,
) (*GroupHandle, error) {
	return r.declareGroup(nil, name, opts)
}

// DeclareGroup declares a group nested in h.
func (h *GroupHandle) DeclareGroup(
	name string,
	opts ...Option,
) (*GroupHandle, error) {
	return h.reg.declareGroup(h.group, name, opts)
}

// DeclareCase appends a case to the group. A nil action is
// only accepted for pending cases.
func (h *GroupHandle) DeclareCase(
	name string,
	action scenario.Action,
	opts ...Option,
) error {
	d := apply(opts)
	if err := validName("case", name); err != nil {
		return err
	}
	if action == nil && !d.pending {
		return scenario.NewConfigurationError(
			"case "+quote(name), "action must not be nil",
		)
	}

	r := h.reg
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return sealedError("case " + quote(name))
	}
	h.group.children = append(h.group.children, &Case{
		name:    name,
		pending: d.pending,
		action:  action,
		group:   h.group,
	})
	r.cases++
	return nil
}

func (r *Registry) declareGroup(
	parent *Group,
	name string,
	opts []Option,
) (*GroupHandle, error) {
	if err := validName("group", name); err != nil {
		return nil, err
	}
	d := apply(opts)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return nil, sealedError("group " + quote(name))
	}
	g := &Group{name: name, pending: d.pending, parent: parent}
	if parent == nil {
		r.roots = append(r.roots, g)
	} else {
		parent.children = append(parent.children, g)
	}
	r.groups++
	return &GroupHandle{reg: r, group: g}, nil
}

// Seal stops further declarations. It is idempotent.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether the registry accepts declarations.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Roots returns the root groups in declaration order.
func (r *Registry) Roots() []*Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Group(nil), r.roots...)
}

// GroupCount returns the number of declared groups.
func (r *Registry) GroupCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.groups
}

// CaseCount returns the number of declared cases.
func (r *Registry) CaseCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cases
}

// Children returns a snapshot of g's children in declaration
// order.
func (r *Registry) Children(g *Group) []Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Node(nil), g.children...)
}

// AllGroups yields every group depth-first in declaration
// order. The sequence may be ranged over any number of times.
func (r *Registry) AllGroups() iter.Seq[*Group] {
	return func(yield func(*Group) bool) {
		for _, root := range r.Roots() {
			if !r.walkGroups(root, yield) {
				return
			}
		}
	}
}

func (r *Registry) walkGroups(
	g *Group,
	yield func(*Group) bool,
) bool {
	if !yield(g) {
		return false
	}
	for _, child := range r.Children(g) {
		if sub, ok := child.(*Group); ok {
			if !r.walkGroups(sub, yield) {
				return false
			}
		}
	}
	return true
}

// Entries yields every case depth-first in declaration order,
// with its path and effective pending flag.
func (r *Registry) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, root := range r.Roots() {
			if !r.walkEntries(root, nil, false, yield) {
				return
			}
		}
	}
}

func (r *Registry) walkEntries(
	g *Group,
	path []string,
	pending bool,
	yield func(Entry) bool,
) bool {
	path = append(path[:len(path):len(path)], g.name)
	pending = pending || g.pending
	for _, child := range r.Children(g) {
		switch n := child.(type) {
		case *Group:
			if !r.walkEntries(n, path, pending, yield) {
				return false
			}
		case *Case:
			entry := Entry{
				Case:    n,
				Path:    path,
				Pending: pending || n.pending,
			}
			if !yield(entry) {
				return false
			}
		}
	}
	return true
}

func validName(what, name string) error {
	if strings.TrimSpace(name) == "" {
		return scenario.NewConfigurationError(
			what, "name must not be empty",
		)
	}
	return nil
}

func sealedError(subject string) error {
	return scenario.NewConfigurationError(
		subject, "registry is sealed",
	)
}

func quote(s string) string { return `"` + s + `"` }
