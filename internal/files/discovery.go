// Package files resolves the export files an extraction run will consume.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "tzzbcli/internal/errors"
)

// Input pairs one export file with the parser variant used to read it.
type Input struct {
	Path    string
	Name    string
	Variant string
}

// ResolveInputs expands the command-line arguments into concrete inputs.
// A file argument must be a supported export file; a directory argument is
// searched for export files. All inputs share the given parser variant.
func ResolveInputs(args []string, variant string) ([]Input, error) {
	if len(args) == 0 {
		return nil, apperrors.NewValidationError("at least one input file is required", nil)
	}

	var inputs []Input
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("cannot access input: %s", arg), err)
		}

		if info.IsDir() {
			found, err := findExportFiles(arg, variant)
			if err != nil {
				return nil, err
			}
			if len(found) == 0 {
				return nil, apperrors.NewValidationError(fmt.Sprintf("no export files in directory: %s", arg), nil)
			}
			inputs = append(inputs, found...)
			continue
		}

		if !supportedExport(info.Name()) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported export file: %s", arg), nil)
		}
		inputs = append(inputs, Input{Path: arg, Name: info.Name(), Variant: variant})
	}

	return inputs, nil
}

// findExportFiles finds all export files in the directory, sorted by name so
// chronologically named exports process in order.
func findExportFiles(dir, variant string) ([]Input, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("failed to read directory: %s", dir), err)
	}

	var inputs []Input
	for _, entry := range entries {
		if entry.IsDir() || !supportedExport(entry.Name()) {
			continue
		}
		inputs = append(inputs, Input{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			Variant: variant,
		})
	}

	sort.Slice(inputs, func(i, j int) bool {
		return inputs[i].Name < inputs[j].Name
	})

	return inputs, nil
}

// supportedExport reports whether the file name looks like a delivery-order
// export the engine can read.
func supportedExport(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".txt")
}
