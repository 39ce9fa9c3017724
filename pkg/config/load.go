package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/TanTanDev/shrubbery/pkg/errors"
)

// Format names a preset encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported preset format %q (want toml, yaml or json)", s)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unsupported preset extension %q (want .toml, .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// Load reads, decodes and validates the preset at path. Fields missing from
// the file keep their [Default] values.
func Load(path string) (Preset, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Preset{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Preset{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Preset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "preset %s not found", path)
		}
		return Preset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open preset %s", path)
	}
	defer f.Close()

	p, err := Decode(f, format)
	if err != nil {
		return Preset{}, errors.Wrap(errors.GetCode(err), err, "load preset %s", path)
	}
	return p, nil
}

// Decode reads a preset in the given format on top of [Default] and
// validates it.
func Decode(r io.Reader, format Format) (Preset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Preset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read preset")
	}

	p := Default()
	// Lists replace rather than merge.
	p.Voxelize.GenerationSizes = nil
	switch format {
	case FormatTOML:
		_, err = toml.Decode(string(data), &p)
	case FormatYAML:
		err = yaml.Unmarshal(data, &p)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&p)
	default:
		return Preset{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported preset format %q", format)
	}
	if err != nil {
		return Preset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s preset", format)
	}
	if len(p.Voxelize.GenerationSizes) == 0 && p.Voxelize.BranchSize == 0 {
		p.Voxelize.GenerationSizes = Default().Voxelize.GenerationSizes
	}

	if err := p.Validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Encode writes p in the given format.
func Encode(w io.Writer, p Preset, format Format) error {
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(p)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(p); err == nil {
			err = enc.Close()
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(p)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported preset format %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s preset", format)
	}
	return nil
}
