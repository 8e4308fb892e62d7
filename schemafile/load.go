// Package schemafile loads message and enum declarations from YAML or JSONC
// files into a schema.Registry.
package schemafile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/pbjson/schema"
)

// Format selects the file syntax.
type Format int

const (
	FormatAuto Format = iota // by extension: .json and .jsonc are JSONC, anything else YAML
	FormatYAML
	FormatJSONC
)

// Parse decodes data in the given format. name is only used for FormatAuto
// and error messages.
func Parse(name string, data []byte, format Format) ([]File, error) {
	if format == FormatAuto {
		format = detect(name)
	}
	var (
		files []File
		err   error
	)
	if format == FormatJSONC {
		files, err = ParseJSONC(data)
	} else {
		files, err = ParseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return files, nil
}

// Load reads and links the schema files at paths.
func Load(paths ...string) (*schema.Registry, error) {
	var all []File
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		files, err := Parse(p, data, FormatAuto)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}
	return Build(all...)
}

func detect(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonc":
		return FormatJSONC
	}
	return FormatYAML
}
