package edit

import (
	"fmt"
	"os"
	"path/filepath"
)

// validateInputs confirms every input path exists and is a regular file.
// It runs before any pipeline is built, for every operation kind.
func validateInputs(paths ...string) error {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrMissingInput, p)
		}
		if info.IsDir() {
			return fmt.Errorf("%w: %s is a directory", ErrMissingInput, p)
		}
	}
	return nil
}

// ensureOutputDir creates the output file's directory if needed and
// verifies it is writable. This is the only mutation validation performs.
func ensureOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnwritableOutput, dir, err)
	}
	probe, err := os.CreateTemp(dir, ".writecheck-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnwritableOutput, dir, err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return nil
}
