package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/staffplan/internal/model"
)

// Format identifies an on-disk proposal encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ReadFile loads a proposal from a JSON or TOML file.
func ReadFile(path string) (model.Proposal, error) {
	format, err := FormatOf(path)
	if err != nil {
		return model.Proposal{}, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is user-supplied on purpose
	if err != nil {
		return model.Proposal{}, fmt.Errorf("reading proposal: %w", err)
	}

	if format == FormatJSON {
		return Decode(data)
	}

	var p model.Proposal
	if err := toml.Unmarshal(data, &p); err != nil {
		return model.Proposal{}, fmt.Errorf("parsing proposal %s: %w", path, err)
	}
	normalize(&p)
	return p, nil
}

// WriteFile saves p to path in the format implied by its extension.
func WriteFile(path string, p model.Proposal) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatJSON:
		data, err = Encode(p)
		if err != nil {
			return err
		}
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(p); err != nil {
			return fmt.Errorf("encoding proposal: %w", err)
		}
		data = buf.Bytes()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating proposal dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // proposals are not secrets
		return fmt.Errorf("writing proposal: %w", err)
	}
	return nil
}
