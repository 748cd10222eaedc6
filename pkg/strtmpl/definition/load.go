package definition

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/randalmurphal/strtmpl/pkg/strtmpl/observability"
)

// LoadDir loads every .yaml, .yml and .json definition in dir, sorted by
// file name. Subdirectories are not visited.
//
// Files that fail to parse are skipped and logged; their errors are joined
// into the returned error alongside the definitions that did load.
// A nil logger disables logging.
func LoadDir(dir string, logger *slog.Logger) ([]*Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read definitions: %w", err)
	}

	var (
		defs []*Definition
		errs []error
	)
	for _, entry := range entries {
		if entry.IsDir() || !isDefinitionFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		def, err := FromFile(path)
		if err != nil {
			observability.LogDefinitionError(logger, entry.Name(), path, err)
			errs = append(errs, err)
			continue
		}
		if def.Name == "" {
			def.Name = strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		}
		observability.LogDefinitionLoaded(logger, def.Name, path, len(def.Slots()))
		defs = append(defs, def)
	}

	return defs, errors.Join(errs...)
}

func isDefinitionFile(name string) bool {
	return slices.Contains([]string{".yaml", ".yml", ".json"}, strings.ToLower(filepath.Ext(name)))
}
