package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/gridsolve/pkg/layout"
)

type positions struct {
	Subplots []subplot `json:"subplots"`
}

type subplot struct {
	ID int `json:"id"`
	layout.Rect
}

// WritePositions encodes pos as JSON ordered by subplot id and writes it to w.
func WritePositions(pos layout.Positions, w io.Writer) error {
	out := positions{Subplots: make([]subplot, 0, len(pos))}
	for _, id := range pos.IDs() {
		out.Subplots = append(out.Subplots, subplot{ID: id, Rect: pos[id]})
	}
	return encode(out, w)
}

// ExportPositions writes pos to a JSON file at path.
// This is a convenience wrapper around [WritePositions] for file-based output.
func ExportPositions(pos layout.Positions, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePositions(pos, f)
}

// WriteLines encodes grid lines as JSON.
func WriteLines(l layout.Lines, w io.Writer) error {
	return encode(l, w)
}

// WriteInset encodes a solved inset as JSON.
func WriteInset(in layout.Inset, w io.Writer) error {
	return encode(in, w)
}

func encode(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
