package storefront

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadRegistry restores the prior run's registry from a JSONL snapshot and
// signals the new day: deposit accumulators reset and every listing comes
// off probation. A missing snapshot yields an empty registry, which is how
// the very first run starts.
func LoadRegistry(path string) (*Registry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open registry file %q: %w", path, err)
	}
	defer f.Close()

	reg, err := DecodeRegistry(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode registry file %q: %w", path, err)
	}
	reg.NewDay()
	return reg, nil
}

// SaveRegistry snapshots the registry for the next run.
func SaveRegistry(path string, reg *Registry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for registry %q: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening registry file %q for writing: %w", path, err)
	}
	defer f.Close()

	return EncodeRegistry(f, reg)
}
