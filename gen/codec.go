package gen

import (
	"bytes"
	"encoding/json"

	"github.com/goccy/go-yaml"
)

// Codec decodes input documents and encodes processed output. Relaxed mode
// accepts a JSON superset tolerant of comments and unquoted keys; strict
// mode enforces standard JSON.
type Codec struct {
	Strict bool
}

// Decode unmarshals data into v.
func (c Codec) Decode(data []byte, v any) error {
	if c.Strict {
		return json.Unmarshal(data, v)
	}

	return yaml.Unmarshal(data, v)
}

// Encode marshals v as indented JSON without HTML escaping.
func (c Codec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// String describes the decoding mode for log lines.
func (c Codec) String() string {
	if c.Strict {
		return "strict"
	}

	return "relaxed"
}
