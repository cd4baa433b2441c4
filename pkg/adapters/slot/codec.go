package slot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jotter/pkg/core"
)

// Codec defines how the note collection is turned into bytes and back.
type Codec interface {
	// Name identifies the codec in configuration ("json", "yaml").
	Name() string
	// Ext is the file extension used by file-based backends.
	Ext() string
	Encode(notes []core.Note) ([]byte, error)
	Decode(data []byte) ([]core.Note, error)
}

// DefaultCodecs returns the standard set of codecs keyed by name.
func DefaultCodecs() map[string]Codec {
	return map[string]Codec{
		"json": NewJSONCodec(true),
		"yaml": NewYAMLCodec(),
	}
}

// --- JSON Codec ---

// JSONCodec encodes the collection as a JSON array of note objects.
type JSONCodec struct {
	// Pretty indents the output for human editing.
	Pretty bool
}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec(pretty bool) *JSONCodec {
	return &JSONCodec{Pretty: pretty}
}

func (c *JSONCodec) Name() string { return "json" }
func (c *JSONCodec) Ext() string  { return ".json" }

func (c *JSONCodec) Encode(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	if c.Pretty {
		return json.MarshalIndent(notes, "", "  ")
	}
	return json.Marshal(notes)
}

func (c *JSONCodec) Decode(data []byte) ([]core.Note, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var notes []core.Note
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&notes); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("invalid json: trailing data after collection")
	}
	return notes, nil
}

// --- YAML Codec ---

// YAMLCodec encodes the collection as a YAML sequence.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

func (c *YAMLCodec) Name() string { return "yaml" }
func (c *YAMLCodec) Ext() string  { return ".yaml" }

func (c *YAMLCodec) Encode(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(notes); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *YAMLCodec) Decode(data []byte) ([]core.Note, error) {
	var notes []core.Note
	if err := yaml.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return notes, nil
}
