package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"digital.vasic.corespec/pkg/config"
	"digital.vasic.corespec/pkg/corelib"
	"digital.vasic.corespec/pkg/registry"
	"digital.vasic.corespec/pkg/suites"
)

// errNothingToLoad is returned when neither paths nor built-in
// suites were requested.
var errNothingToLoad = errors.New(
	"no declarations: pass declaration paths, --builtin or --suite",
)

// loadRegistry declares the requested built-in suites followed
// by every declaration file under cfg.Paths.
func loadRegistry(cfg *config.Config) (*registry.Registry, error) {
	if len(cfg.Paths) == 0 && !cfg.Builtin && len(cfg.Suites) == 0 {
		return nil, errNothingToLoad
	}

	reg := registry.New()
	if cfg.Builtin || len(cfg.Suites) > 0 {
		d := registry.NewDeclarer(reg)
		if err := suites.Builtin().DeclareAll(d, cfg.Suites...); err != nil {
			return nil, fmt.Errorf("declare built-in suites: %w", err)
		}
	}

	loader := registry.NewLoader(corelib.Catalog())
	for _, p := range cfg.Paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("declaration path: %w", err)
		}
		if info.IsDir() {
			err = loader.LoadDir(reg, p)
		} else {
			err = loader.LoadFile(reg, p)
		}
		if err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// declarationFiles expands paths into declaration files. A
// directory contributes its direct declaration files in lexical
// order, the same set LoadDir reads.
func declarationFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("declaration path: %w", err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", p, err)
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && registry.IsDeclarationFile(e.Name()) {
				found = append(found, filepath.Join(p, e.Name()))
			}
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
