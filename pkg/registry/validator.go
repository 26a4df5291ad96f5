package registry

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"digital.vasic.corespec/pkg/expect"
)

// ValidationError is a structural problem found in a
// declaration file.
type ValidationError struct {
	// Location is the node path, e.g. "groups[0].children[2]".
	// It is empty for file-level problems.
	Location string
	Field    string
	Message  string
}

func (e ValidationError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s.%s: %s", e.Location, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateFile checks a declaration file without registering
// anything and returns every problem found. Operation names are
// not resolved; use Loader.ValidateFile for that.
func ValidateFile(path string) []ValidationError {
	return validateFile(path, nil, expect.NewEngine())
}

// ValidateFile checks a declaration file, additionally
// resolving operation names through the loader's catalog.
func (l *Loader) ValidateFile(path string) []ValidationError {
	return validateFile(path, l.catalog, l.engine)
}

// ValidateBytes checks declaration file content.
func (l *Loader) ValidateBytes(data []byte, source string) []ValidationError {
	return validateBytes(data, source, l.catalog, l.engine)
}

func validateFile(
	path string,
	catalog Catalog,
	engine expect.Engine,
) []ValidationError {
	data, err := os.ReadFile(path)
	if err != nil {
		return []ValidationError{{Field: "file", Message: err.Error()}}
	}
	return validateBytes(data, path, catalog, engine)
}

func validateBytes(
	data []byte,
	source string,
	catalog Catalog,
	engine expect.Engine,
) []ValidationError {
	file, err := ParseFile(data, source)
	if err != nil {
		return []ValidationError{{Field: "yaml", Message: err.Error()}}
	}
	return validateParsed(file, catalog, engine)
}

func validateParsed(
	file *File,
	catalog Catalog,
	engine expect.Engine,
) []ValidationError {
	v := &validator{catalog: catalog, engine: engine}
	if file.Version == "" {
		v.add("", "version", "version is required")
	}
	if file.Name != "" && blank(file.Name) {
		v.add("", "name", "name must not be blank")
	}
	if len(file.Groups) == 0 {
		v.add("", "groups", "at least one group is required")
	}
	for i, s := range file.Groups {
		v.node(s, fmt.Sprintf("groups[%d]", i), true)
	}
	return v.errs
}

type validator struct {
	catalog Catalog
	engine  expect.Engine
	errs    []ValidationError
}

func (v *validator) add(loc, field, msg string) {
	v.errs = append(v.errs, ValidationError{
		Location: loc, Field: field, Message: msg,
	})
}

func (v *validator) node(s Spec, loc string, root bool) {
	switch {
	case s.Describe != "" && s.It != "":
		v.add(loc, "describe", "describe and it are exclusive")
		return
	case s.Describe == "" && s.It == "":
		v.add(loc, "describe", "describe or it is required")
		return
	}
	if s.Describe != "" && blank(s.Describe) {
		v.add(loc, "describe", "name must not be blank")
	}
	if s.It != "" && blank(s.It) {
		v.add(loc, "it", "name must not be blank")
	}

	if s.Describe != "" {
		if s.Call != "" {
			v.add(loc, "call", "groups cannot call operations")
		}
		if s.Expect != nil || s.Raises != nil {
			v.add(loc, "expect", "groups cannot hold expectations")
		}
		for i, child := range s.Children {
			v.node(child, fmt.Sprintf("%s.children[%d]", loc, i), false)
		}
		return
	}

	if root {
		v.add(loc, "it", "cases must be declared inside a group")
	}
	if len(s.Children) > 0 {
		v.add(loc, "children", "cases cannot have children")
	}
	if s.Call == "" {
		if !s.Pending {
			v.add(loc, "call", "call is required")
		}
		return
	}
	if v.catalog != nil {
		if _, ok := v.catalog.Lookup(s.Call); !ok {
			v.add(loc, "call", "unknown operation "+s.Call)
		}
	}
	if len(s.Expect) == 0 && s.Raises == nil {
		v.add(loc, "expect", "expect or raises is required")
	}
	if len(s.Expect) > 0 && s.Raises != nil {
		v.add(loc, "raises", "expect and raises are exclusive")
	}
	for i, def := range s.Expect {
		if !v.engine.HasEvaluator(def.Type) {
			v.add(loc, fmt.Sprintf("expect[%d].type", i),
				fmt.Sprintf("unknown type %q", def.Type))
		}
		if def.Type == "matches" {
			if _, err := regexp.Compile(def.Pattern); err != nil {
				v.add(loc, fmt.Sprintf("expect[%d].pattern", i),
					err.Error())
			}
		}
	}
	if s.Raises != nil {
		if _, err := regexp.Compile(s.Raises.Pattern); err != nil {
			v.add(loc, "raises.pattern", err.Error())
		}
	}
}

// blank matches the registry's rule for empty names.
func blank(name string) bool {
	return strings.TrimSpace(name) == ""
}
