package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.corespec/pkg/expect"
	"digital.vasic.corespec/pkg/scenario"
)

// Operation is a named behaviour under test. It receives the
// receiver and arguments declared in a file and returns the
// observed value or a raised error.
type Operation func(receiver any, args ...any) (any, error)

// Catalog resolves operation names used by declaration files.
type Catalog interface {
	Lookup(name string) (Operation, bool)
}

// Operations is a map-backed Catalog.
type Operations map[string]Operation

// Lookup implements Catalog.
func (o Operations) Lookup(name string) (Operation, bool) {
	op, ok := o[name]
	return op, ok
}

// File is the on-disk structure of a declaration file (YAML or
// JSON).
type File struct {
	Version string `yaml:"version"`
	Name    string `yaml:"name"`
	Groups  []Spec `yaml:"groups"`
}

// Spec is one node of a declaration file: a group when
// Describe is set, a case when It is set.
type Spec struct {
	Describe string              `yaml:"describe,omitempty"`
	It       string              `yaml:"it,omitempty"`
	Pending  bool                `yaml:"pending,omitempty"`
	Children []Spec              `yaml:"children,omitempty"`
	Call     string              `yaml:"call,omitempty"`
	Receiver any                 `yaml:"receiver,omitempty"`
	Args     []any               `yaml:"args,omitempty"`
	Expect   []expect.Definition `yaml:"expect,omitempty"`
	Raises   *RaisesSpec         `yaml:"raises,omitempty"`
}

// RaisesSpec declares an awaited error. An empty Kind accepts
// any error; Pattern is a regular expression.
type RaisesSpec struct {
	Kind    string `yaml:"kind,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
}

// Loader turns declaration files into registry declarations.
type Loader struct {
	catalog Catalog
	engine  expect.Engine
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithEngine sets the engine evaluating expect definitions.
func WithEngine(e expect.Engine) LoaderOption {
	return func(l *Loader) { l.engine = e }
}

// NewLoader creates a Loader resolving calls through catalog.
func NewLoader(catalog Catalog, opts ...LoaderOption) *Loader {
	l := &Loader{catalog: catalog, engine: expect.NewEngine()}
	for _, opt := range opts {
		opt(l)
	}
	if l.catalog == nil {
		l.catalog = Operations{}
	}
	return l
}

// LoadFile reads a declaration file and declares its groups
// into reg.
func (l *Loader) LoadFile(reg *Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf(
			"failed to read declaration file %s: %w", path, err,
		)
	}
	return l.LoadBytes(reg, data, path)
}

// LoadDir loads every .json, .yaml and .yml file in dir, in
// lexical order. It does not recurse into subdirectories.
func (l *Loader) LoadDir(reg *Registry, dir string) error {
	return l.loadFS(reg, os.DirFS(dir), ".", dir)
}

// LoadFS loads every declaration file in dir of fsys.
func (l *Loader) LoadFS(reg *Registry, fsys fs.FS, dir string) error {
	return l.loadFS(reg, fsys, dir, dir)
}

func (l *Loader) loadFS(
	reg *Registry,
	fsys fs.FS,
	dir string,
	display string,
) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf(
			"failed to read directory %s: %w", display, err,
		)
	}

	for _, entry := range entries {
		if entry.IsDir() || !IsDeclarationFile(entry.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf(
				"failed to read %s: %w", entry.Name(), err,
			)
		}
		source := path.Join(display, entry.Name())
		if err := l.LoadBytes(reg, data, source); err != nil {
			return fmt.Errorf("failed to load %s: %w", source, err)
		}
	}
	return nil
}

// IsDeclarationFile reports whether name has a supported
// extension.
func IsDeclarationFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// LoadBytes parses a declaration file and declares its groups
// into reg. When the file has a name, its groups are nested
// under a root group of that name. Nothing is declared when the
// file is malformed.
func (l *Loader) LoadBytes(
	reg *Registry,
	data []byte,
	source string,
) error {
	file, err := ParseFile(data, source)
	if err != nil {
		return err
	}

	// Resolve everything before declaring anything.
	if errs := validateParsed(file, l.catalog, l.engine); len(errs) > 0 {
		return &scenario.ConfigurationError{
			Subject: source,
			Reason:  errs[0].Error(),
		}
	}

	var parent *GroupHandle
	if file.Name != "" {
		if parent, err = reg.DeclareGroup(file.Name); err != nil {
			return err
		}
	}
	for _, spec := range file.Groups {
		if err := l.declare(reg, parent, spec); err != nil {
			return err
		}
	}
	return nil
}

// ParseFile decodes a declaration file. Unknown keys are
// rejected.
func ParseFile(data []byte, source string) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, &scenario.ConfigurationError{
			Subject: source, Reason: "malformed file", Err: err,
		}
	}
	return &file, nil
}

func (l *Loader) declare(reg *Registry, parent *GroupHandle, s Spec) error {
	var opts []Option
	if s.Pending {
		opts = append(opts, Pending())
	}

	if s.Describe != "" {
		var (
			h   *GroupHandle
			err error
		)
		if parent == nil {
			h, err = reg.DeclareGroup(s.Describe, opts...)
		} else {
			h, err = parent.DeclareGroup(s.Describe, opts...)
		}
		if err != nil {
			return err
		}
		for _, child := range s.Children {
			if err := l.declare(reg, h, child); err != nil {
				return err
			}
		}
		return nil
	}

	return parent.DeclareCase(s.It, l.action(s), opts...)
}

// action builds the case procedure. Receiver and arguments are
// copied on every invocation so that repeated runs observe the
// same inputs.
func (l *Loader) action(s Spec) scenario.Action {
	if s.Call == "" {
		return nil
	}
	op, _ := l.catalog.Lookup(s.Call)
	defs := s.Expect

	invoke := func() (any, error) {
		args := make([]any, len(s.Args))
		for i, a := range s.Args {
			args[i] = clone(a)
		}
		return op(clone(s.Receiver), args...)
	}

	if s.Raises != nil {
		kind := expect.AnyError
		if s.Raises.Kind != "" {
			kind = expect.ErrorKind(s.Raises.Kind)
		}
		pattern := s.Raises.Pattern
		return func() error {
			return expect.Raises(func() error {
				_, err := invoke()
				return err
			}, kind, pattern)
		}
	}

	return func() error {
		got, err := invoke()
		if err != nil {
			return err
		}
		return l.engine.Check(defs, got)
	}
}

// clone deep-copies the container shapes produced by decoding.
func clone(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = clone(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = clone(e)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(x))
		for k, e := range x {
			out[k] = clone(e)
		}
		return out
	}
	return v
}
