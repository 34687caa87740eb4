package asset

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("asset: unsupported file format")

// Format identifies the text encoding of a config or scene description.
type Format uint8

const (
	YAML Format = iota
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Detect the format of a file from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return YAML, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Decode r into v. Keys that do not map to a field of v are rejected and
// fields missing from the document keep their current value. An empty
// document is not an error.
func Decode(r io.Reader, format Format, v any) error {
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && err != io.EOF {
			return err
		}
		return nil
	case TOML:
		return toml.NewDecoder(r).DisallowUnknownFields().Decode(v)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}
