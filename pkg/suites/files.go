package suites

import (
	"embed"
	"fmt"

	"digital.vasic.corespec/pkg/corelib"
	"digital.vasic.corespec/pkg/registry"
)

//go:embed files/*.yaml
var declarationFiles embed.FS

type fileSuite struct {
	name   string
	loader *registry.Loader
}

// Files returns the suite of embedded declaration files. Their
// operations resolve against the corelib catalog.
func Files() Suite {
	return fileSuite{
		name:   "files",
		loader: registry.NewLoader(corelib.Catalog()),
	}
}

func (s fileSuite) Name() string { return s.name }

func (s fileSuite) Declare(d *registry.Declarer) error {
	if err := s.loader.LoadFS(d.Registry(), declarationFiles, "files"); err != nil {
		return fmt.Errorf("load embedded declarations: %w", err)
	}
	return nil
}
