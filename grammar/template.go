package grammar

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// copyFromField names another template whose resolved fields seed this one.
const copyFromField = "copyFrom"

// Registry holds named record templates and resolves their copyFrom
// inheritance. Register everything first, then call ResolveAll once;
// Resolve returns fully merged templates after that.
type Registry struct {
	raw      map[string]map[string]any
	resolved map[string]map[string]any
	order    []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		raw:      map[string]map[string]any{},
		resolved: map[string]map[string]any{},
	}
}

// Register adds a template definition. Registering a name twice replaces
// the earlier definition but keeps its position.
func (r *Registry) Register(name string, def map[string]any) {
	if _, ok := r.raw[name]; !ok {
		r.order = append(r.order, name)
	}

	r.raw[name] = def
}

// Len returns the number of registered templates.
func (r *Registry) Len() int { return len(r.order) }

// Names returns the registered template names in registration order.
func (r *Registry) Names() []string { return slices.Clone(r.order) }

// ResolveAll merges every template with its inheritance chain. Bases
// resolve before their dependents regardless of registration order. It
// fails on a copyFrom naming an unregistered template or on a cycle.
func (r *Registry) ResolveAll() error {
	for _, name := range r.order {
		if err := r.resolve(name, nil); err != nil {
			return err
		}
	}

	return nil
}

// Resolve returns the fully merged template for name. The caller receives
// the registry's copy and must not mutate it.
func (r *Registry) Resolve(name string) (map[string]any, error) {
	if _, ok := r.raw[name]; !ok {
		return nil, r.missing(name)
	}

	if err := r.resolve(name, nil); err != nil {
		return nil, err
	}

	return r.resolved[name], nil
}

func (r *Registry) resolve(name string, chain []string) error {
	if _, ok := r.resolved[name]; ok {
		return nil
	}

	if slices.Contains(chain, name) {
		return ErrCircularInheritance.With(
			slog.String("chain", strings.Join(append(chain, name), " -> ")),
		)
	}

	def := r.raw[name]

	merged := map[string]any{}

	if base, ok := def[copyFromField]; ok {
		baseName, ok := base.(string)
		if !ok {
			return ErrInvalidFieldType.With(
				slog.String("template", name),
				slog.String("field", copyFromField),
				slog.Any("value", base),
			)
		}

		if _, ok := r.raw[baseName]; !ok {
			return ErrUnknownBaseTemplate.With(
				slog.String("template", name),
				slog.String(copyFromField, baseName),
			)
		}

		if err := r.resolve(baseName, append(chain, name)); err != nil {
			return err
		}

		merged = DeepCopy(r.resolved[baseName]).(map[string]any)
	}

	// Own fields overwrite inherited ones at the top level only.
	for key, value := range def {
		if key == copyFromField {
			continue
		}

		merged[key] = DeepCopy(value)
	}

	r.resolved[name] = merged

	return nil
}

func (r *Registry) missing(name string) *Error {
	err := ErrMissingTemplateField.With(slog.String("template", name))

	if match := fuzzy.Find(name, r.order); len(match) > 0 {
		err = err.With(slog.String("suggest", match[0].Str))
	}

	return err
}
