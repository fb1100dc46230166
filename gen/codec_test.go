package gen

import (
	"strings"
	"testing"
)

func TestCodecRelaxed(t *testing.T) {
	input := []byte(`# material list
metals: ["copper", "iron"]
tier: 2
`)

	var doc map[string]any
	if err := (Codec{}).Decode(input, &doc); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	metals, ok := doc["metals"].([]any)
	if !ok || len(metals) != 2 || metals[0] != "copper" {
		t.Errorf("metals = %#v", doc["metals"])
	}
}

func TestCodecStrict(t *testing.T) {
	input := []byte(`{"metals": ["copper"], /* comment */}`)

	var doc map[string]any
	if err := (Codec{Strict: true}).Decode(input, &doc); err == nil {
		t.Error("strict Decode() accepted relaxed input")
	}

	if err := (Codec{Strict: true}).Decode([]byte(`{"tier": 2}`), &doc); err != nil {
		t.Fatalf("strict Decode() error = %v", err)
	}
}

func TestCodecEncode(t *testing.T) {
	out, err := Codec{}.Encode(map[string]any{"path": "game:block/<metal>"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if !strings.Contains(string(out), "<metal>") {
		t.Errorf("Encode() escaped HTML: %s", out)
	}

	if !strings.Contains(string(out), "\n  ") {
		t.Errorf("Encode() not indented: %s", out)
	}
}
