// Package shapes is the batch dialect for shape files: grammars override
// texture paths and mutate face attributes in place rather than generating
// new records.
package shapes

import (
	"log/slog"

	"github.com/vsforge/gram/gen"
	"github.com/vsforge/gram/grammar"
)

// Dialect implements gen.Dialect for shape directories.
type Dialect struct{}

// New returns the shapes dialect.
func New() Dialect { return Dialect{} }

func (Dialect) Name() string { return "shapes" }

func (Dialect) Folders() []string { return []string{"shapes"} }

func (Dialect) StaticFields() []string { return nil }

// Compile builds one file grammar from a merged batch entry.
func (Dialect) Compile(def map[string]any, _ grammar.StaticTable) (gen.FileGrammar, error) {
	fg := &Grammar{}

	if raw, ok := def["textures"]; ok {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, grammar.ErrInvalidFieldType.With(
				slog.String("field", "textures"),
				slog.String("want", "mapping"),
			)
		}

		fg.Textures = map[string]string{}

		for key, value := range m {
			s, ok := value.(string)
			if !ok {
				return nil, grammar.ErrInvalidFieldType.With(
					slog.String("texture", key),
					slog.Any("value", value),
				)
			}

			fg.Textures[key] = s
		}
	}

	if raw, ok := def["elements"]; ok {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, grammar.ErrInvalidFieldType.With(
				slog.String("field", "elements"),
				slog.String("want", "mapping"),
			)
		}

		rules, err := faceRules(m)
		if err != nil {
			return nil, err
		}

		fg.Faces = rules
	}

	return fg, nil
}

func faceRules(elements map[string]any) ([]FaceRule, error) {
	raw, ok := elements["faces"]
	if !ok {
		return nil, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, grammar.ErrInvalidFieldType.With(
			slog.String("field", "elements.faces"),
			slog.String("want", "list"),
		)
	}

	rules := make([]FaceRule, 0, len(list))

	for i, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, grammar.ErrInvalidFieldType.With(
				slog.String("field", "elements.faces"),
				slog.Int("rule", i),
			)
		}

		rule := FaceRule{}

		switch keys := m["keys"].(type) {
		case string:
			rule.Keys = []string{keys}
		case []any:
			for _, key := range keys {
				s, ok := key.(string)
				if !ok {
					return nil, grammar.ErrInvalidFieldType.With(
						slog.String("field", "elements.faces.keys"),
						slog.Any("value", key),
					)
				}

				rule.Keys = append(rule.Keys, s)
			}
		default:
			return nil, grammar.ErrInvalidFieldType.With(
				slog.String("field", "elements.faces.keys"),
				slog.Int("rule", i),
				slog.String("want", "string or list"),
			)
		}

		if add, ok := m["add"].(map[string]any); ok {
			rule.Add = add
		}

		if remove, ok := m["remove"].([]any); ok {
			for _, key := range remove {
				if s, ok := key.(string); ok {
					rule.Remove = append(rule.Remove, s)
				}
			}
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

// FaceRule mutates element faces whose texture reference matches one of
// Keys: listed attributes are removed first, then additions applied.
type FaceRule struct {
	Keys   []string
	Add    map[string]any
	Remove []string
}

func (r FaceRule) matches(texture string) bool {
	for _, key := range r.Keys {
		if key == texture {
			return true
		}
	}

	return false
}

// Grammar applies texture overrides and face rules to one shape document.
type Grammar struct {
	Textures map[string]string
	Faces    []FaceRule
}

// Apply mutates the shape and re-encodes it. Only textures present in both
// the grammar and the shape are overridden; face rules recurse through
// nested child elements.
func (sg *Grammar) Apply(target map[string]any, codec gen.Codec) ([]byte, error) {
	sg.applyTextures(target)

	if elements, ok := target["elements"].([]any); ok {
		sg.applyElements(elements)
	}

	return codec.Encode(target)
}

func (sg *Grammar) applyTextures(shape map[string]any) {
	textures, ok := shape["textures"].(map[string]any)
	if !ok || len(sg.Textures) == 0 {
		return
	}

	for key, value := range sg.Textures {
		if _, ok := textures[key]; ok {
			textures[key] = value
		}
	}
}

func (sg *Grammar) applyElements(elements []any) {
	if len(sg.Faces) == 0 {
		return
	}

	for _, entry := range elements {
		element, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		if faces, ok := element["faces"].(map[string]any); ok {
			sg.applyFaces(faces)
		}

		if children, ok := element["children"].([]any); ok {
			sg.applyElements(children)
		}
	}
}

func (sg *Grammar) applyFaces(faces map[string]any) {
	for _, entry := range faces {
		face, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		texture, _ := face["texture"].(string)

		for _, rule := range sg.Faces {
			if !rule.matches(texture) {
				continue
			}

			for _, key := range rule.Remove {
				delete(face, key)
			}

			for key, value := range rule.Add {
				face[key] = value
			}
		}
	}
}
