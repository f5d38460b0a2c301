package codegen

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedLanguage is returned when no generator is registered for a language
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Factory creates a generator for the given configuration
type Factory func(cfg Config) Generator

// Registry manages available code generators
type Registry struct {
	generators map[string]Factory
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Factory),
	}
}

// Register adds a new generator factory to the registry. Language names are
// matched case-insensitively.
func (r *Registry) Register(language string, factory Factory) {
	r.generators[normalize(language)] = factory
}

// Get returns a generator for the specified language
func (r *Registry) Get(language string, cfg Config) (Generator, error) {
	factory, exists := r.generators[normalize(language)]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}

	return factory(cfg), nil
}

// Languages returns the registered language names, sorted
func (r *Registry) Languages() []string {
	languages := make([]string, 0, len(r.generators))
	for lang := range r.generators {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}

func normalize(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}
