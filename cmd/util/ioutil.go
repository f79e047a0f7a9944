package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/plus3it/gorecurcopy"
)

// CleanOrCreateTempFolder makes sure path exists and is empty.
func CleanOrCreateTempFolder(path string) error {
	if _, err := os.Stat(path); err == nil {
		// path exists, start from a clean folder
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("removing temp folder %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking temp folder %s: %w", path, err)
	}
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return fmt.Errorf("creating temp folder %s: %w", path, err)
	}
	return nil
}

// PublishStaged copies the named files from the staging folder into output,
// overwriting anything already there.
func PublishStaged(stagePath, output string, names ...string) error {
	if err := os.MkdirAll(output, os.ModePerm); err != nil {
		return fmt.Errorf("creating output folder %s: %w", output, err)
	}
	for _, name := range names {
		src := filepath.Join(stagePath, name)
		dst := filepath.Join(output, name)
		if err := gorecurcopy.Copy(src, dst); err != nil {
			return fmt.Errorf("copying %s to %s: %w", src, dst, err)
		}
	}
	return nil
}
