package style

import (
	"fmt"
	"sort"

	"github.com/siyuan-infoblox/go-import-sort/pkg/errors"
)

// Registry maps style names to definitions. It is passed explicitly to whoever
// needs to resolve a style name.
type Registry map[string]Definition

// Builtins returns a fresh registry holding the styles shipped with importsort
func Builtins() Registry {
	return Registry{
		StylesLast: StylesLastDefinition(),
		ModuleSort: ModuleDefinition(),
	}
}

// Lookup resolves a style by name
func (r Registry) Lookup(name string) (Definition, error) {
	def, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", errors.ErrUnknownStyle, name, r.Names())
	}
	return def, nil
}

// Register adds or replaces a style after validating it
func (r Registry) Register(name string, def Definition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("style %q: %w", name, err)
	}
	r[name] = def
	return nil
}

// Names returns the registered style names in sorted order
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
