package registry

import (
	"errors"

	"digital.vasic.corespec/pkg/scenario"
)

// Declarer is a cursor over a Registry for authoring suites in
// describe/it style. Describe opens a group for the duration of
// its body; It declares into the innermost open group.
//
// Errors do not interrupt authoring. They accumulate and are
// returned, joined, by Err.
type Declarer struct {
	reg   *Registry
	stack []*GroupHandle
	errs  []error
}

// NewDeclarer returns a Declarer that writes into reg.
func NewDeclarer(reg *Registry) *Declarer {
	return &Declarer{reg: reg}
}

// Registry returns the registry being written.
func (d *Declarer) Registry() *Registry { return d.reg }

// Describe declares a group and runs body with it open.
func (d *Declarer) Describe(
	name string,
	body func(),
	opts ...Option,
) {
	var (
		h   *GroupHandle
		err error
	)
	if top := d.current(); top != nil {
		h, err = top.DeclareGroup(name, opts...)
	} else {
		h, err = d.reg.DeclareGroup(name, opts...)
	}
	if err != nil {
		d.errs = append(d.errs, err)
		return
	}
	if body == nil {
		return
	}

	d.stack = append(d.stack, h)
	defer func() { d.stack = d.stack[:len(d.stack)-1] }()
	body()
}

// Context is an alias of Describe.
func (d *Declarer) Context(name string, body func(), opts ...Option) {
	d.Describe(name, body, opts...)
}

// XDescribe declares a pending group. Its body still runs so
// that the skipped cases are counted.
func (d *Declarer) XDescribe(name string, body func()) {
	d.Describe(name, body, Pending())
}

// XContext declares a pending group.
func (d *Declarer) XContext(name string, body func()) {
	d.Describe(name, body, Pending())
}

// It declares a case in the innermost open group.
func (d *Declarer) It(
	name string,
	action scenario.Action,
	opts ...Option,
) {
	top := d.current()
	if top == nil {
		d.errs = append(d.errs, scenario.NewConfigurationError(
			"case "+quote(name), "declared outside of a group",
		))
		return
	}
	if err := top.DeclareCase(name, action, opts...); err != nil {
		d.errs = append(d.errs, err)
	}
}

// XIt declares a pending case. action may be nil.
func (d *Declarer) XIt(name string, action scenario.Action) {
	d.It(name, action, Pending())
}

// Err returns every declaration error joined, or nil.
func (d *Declarer) Err() error {
	return errors.Join(d.errs...)
}

func (d *Declarer) current() *GroupHandle {
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1]
}
