package codegen

import "github.com/cloudmodelgen/ctgen/internal/schema"

// Generator is the interface that all language-specific code generators must implement
type Generator interface {
	// Language returns the name of the target language (e.g., "csharp", "go")
	Language() string

	// FileExtension returns the file extension for generated files (e.g., ".cs", ".go")
	FileExtension() string

	// SupportsPartials reports whether the language can split a model across a
	// generated file and a hand-edited one
	SupportsPartials() bool

	// ClassName returns the model type name for a content type codename
	ClassName(codename string) string

	// ModelFileName returns the file name of a model; suffix may be empty
	ModelFileName(className, suffix string) string

	// GenerateModel generates the model of one content type. Structured mode
	// uses richer types for rich text and linked items.
	GenerateModel(ct schema.ContentType, structured bool) ([]byte, error)

	// GenerateCustomPartial generates the empty hand-editable half of a partial model
	GenerateCustomPartial(ct schema.ContentType) ([]byte, error)

	// TypeProviderFileName returns the file name of the type provider
	TypeProviderFileName() string

	// GenerateTypeProvider generates the registry mapping codenames to models.
	// modelFiles maps each content type codename to its model file name.
	GenerateTypeProvider(types []schema.ContentType, modelFiles map[string]string) ([]byte, error)
}

// Config contains the options shared by all generators
type Config struct {
	// Namespace is the namespace or package of the generated code; each
	// generator falls back to its own default when empty
	Namespace string

	// Partials makes generated models partial where the language allows it
	Partials bool
}
