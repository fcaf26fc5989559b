package boardflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Instance is one placed node on a board. It references a definition by
// name; the definition itself lives in the registry and is shared.
type Instance struct {
	// ID uniquely identifies the instance within the board.
	ID string `yaml:"id" json:"id"`

	// Node is the definition name resolved through the registry.
	Node string `yaml:"node" json:"node"`

	// Overrides replaces input pin defaults for this instance only.
	// Keyed by pin id; values must match the pin's DataType.
	Overrides map[string]any `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// Endpoint addresses one pin on one instance.
type Endpoint struct {
	// Instance is the instance id.
	Instance string `yaml:"instance" json:"instance"`

	// Pin is the pin id on that instance's definition.
	Pin string `yaml:"pin" json:"pin"`
}

// Edge connects an output pin to an input pin of the identical DataType.
// Exec edges drive execution order; data edges carry values.
type Edge struct {
	From Endpoint `yaml:"from" json:"from"`
	To   Endpoint `yaml:"to" json:"to"`
}

// Board is the persisted description of a flow graph: node instances plus
// the edges between their pins. Boards are produced by the editor and
// consumed by the scheduler; Compile turns one into an executable form.
//
// The exec-edge subgraph need not be acyclic. Loops are legal; the
// scheduler bounds them with a run budget rather than rejecting them.
type Board struct {
	// Name identifies the board in logs and traces.
	Name string `yaml:"name" json:"name"`

	// Entries optionally names the instances a run starts from.
	// When empty, every instance with exec pins and no incoming exec
	// edge is an entry.
	Entries []string `yaml:"entries,omitempty" json:"entries,omitempty"`

	// Terminal optionally designates the instance whose result decides
	// the run's overall outcome.
	Terminal string `yaml:"terminal,omitempty" json:"terminal,omitempty"`

	// Nodes is the set of placed instances.
	Nodes []Instance `yaml:"nodes" json:"nodes"`

	// Edges is the set of pin connections.
	Edges []Edge `yaml:"edges,omitempty" json:"edges,omitempty"`
}

// Instance returns the instance with the given id.
func (b *Board) Instance(id string) (Instance, bool) {
	for _, inst := range b.Nodes {
		if inst.ID == id {
			return inst, true
		}
	}
	return Instance{}, false
}

// Encode serializes the board to YAML.
// Decode(Encode(b)) reproduces an identical node/edge set and identical
// default overrides.
func (b *Board) Encode() ([]byte, error) {
	data, err := yaml.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	return data, nil
}

// EncodeJSON serializes the board to JSON.
func (b *Board) EncodeJSON() ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	return data, nil
}

// Decode parses a YAML board description.
func Decode(data []byte) (*Board, error) {
	var b Board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	return &b, nil
}

// DecodeJSON parses a JSON board description.
// JSON has a single number type, so override values are decoded through
// json.Number and rewritten to the int64/float64 shapes pin validation
// accepts; DecodeJSON(EncodeJSON(b)) reproduces b's overrides exactly.
func DecodeJSON(data []byte) (*Board, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var b Board
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	for i := range b.Nodes {
		b.Nodes[i].Overrides = normalizeOverrides(b.Nodes[i].Overrides)
	}
	return &b, nil
}

// normalizeOverrides rewrites json.Number values inside an override map.
// Integral numbers become int64, the rest float64.
func normalizeOverrides(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeJSONValue(v)
	}
	return out
}

func normalizeJSONValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		return normalizeOverrides(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeJSONValue(e)
		}
		return out
	}
	return v
}

// LoadBoard reads a board from a file, auto-detecting the format by
// extension. Supported extensions: .yaml, .yml, .json
func LoadBoard(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return Decode(data)
	case ".json":
		return DecodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported board file extension: %s", ext)
	}
}
