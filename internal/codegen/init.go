package codegen

import (
	"github.com/cloudmodelgen/ctgen/internal/codegen/csharp"
	"github.com/cloudmodelgen/ctgen/internal/codegen/golang"
	"github.com/cloudmodelgen/ctgen/internal/codegen/typescript"
)

// DefaultRegistry is the global registry instance with pre-registered generators
var DefaultRegistry = NewRegistry()

func init() {
	newCSharp := func(cfg Config) Generator {
		return csharp.NewGenerator(cfg.Namespace, cfg.Partials)
	}
	DefaultRegistry.Register("csharp", newCSharp)
	DefaultRegistry.Register("cs", newCSharp)

	DefaultRegistry.Register("go", func(cfg Config) Generator {
		return golang.NewGenerator(cfg.Namespace)
	})

	newTypeScript := func(cfg Config) Generator {
		return typescript.NewGenerator()
	}
	DefaultRegistry.Register("typescript", newTypeScript)
	DefaultRegistry.Register("ts", newTypeScript)
}
