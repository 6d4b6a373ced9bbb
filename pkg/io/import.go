package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridsolve/pkg/errors"
	"github.com/matzehuels/gridsolve/pkg/grid"
	"github.com/matzehuels/gridsolve/pkg/layout"
)

// Format selects the encoding of a request file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported request file %s: want .toml or .json", path)
}

// Request is a decoded layout request.
type Request struct {
	Array  grid.Array           `json:"array" toml:"array"`
	Params layout.Params        `json:"params" toml:"params"`
	Inset  *layout.InsetRequest `json:"inset,omitempty" toml:"inset,omitempty"`
}

// Validate checks the array and parameters.
func (r *Request) Validate() error {
	if _, err := grid.New(r.Array); err != nil {
		return err
	}
	return r.Params.Validate(r.Array)
}

// ReadRequest decodes a request from rd. Parameters missing from the input
// keep their defaults. The request is validated before it is returned.
func ReadRequest(rd io.Reader, format Format) (*Request, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	req := &Request{Params: layout.DefaultParams()}
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(req); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(req); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown request format %q", format)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// ImportRequest reads the request file at path. The format follows the file
// extension.
func ImportRequest(path string) (*Request, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	req, err := ReadRequest(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}
