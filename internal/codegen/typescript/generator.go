package typescript

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloudmodelgen/ctgen/internal/codegen/naming"
	"github.com/cloudmodelgen/ctgen/internal/codegen/writer"
	"github.com/cloudmodelgen/ctgen/internal/schema"
)

const (
	typeProviderFile = "content-type-map"
	generatedHeader  = "This file was generated by content-types-generator. Do not edit it by hand."

	// structured rich text keeps the HTML plus the codenames of the items it embeds
	richTextType = "{ html: string; linkedItemCodenames: string[] }"
)

// Generator generates TypeScript interfaces. TypeScript modules have no
// namespace, so the configured namespace is ignored.
type Generator struct{}

// NewGenerator creates a new TypeScript code generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "typescript"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".ts"
}

// SupportsPartials returns false; interfaces are extended through declaration
// merging instead
func (g *Generator) SupportsPartials() bool {
	return false
}

// ClassName returns the interface name for a content type codename
func (g *Generator) ClassName(codename string) string {
	return naming.Identifier(naming.PascalCase(codename), "ContentType")
}

// ModelFileName returns e.g. "hosted-video.generated.ts"
func (g *Generator) ModelFileName(className, suffix string) string {
	return naming.FileName(kebab(className), kebab(suffix), g.FileExtension())
}

// TypeProviderFileName returns "content-type-map.ts"
func (g *Generator) TypeProviderFileName() string {
	return typeProviderFile + g.FileExtension()
}

// GenerateModel generates the interface of a single content type
func (g *Generator) GenerateModel(ct schema.ContentType, structured bool) ([]byte, error) {
	if ct.System.Codename == "" {
		return nil, fmt.Errorf("content type %q has no codename", ct.System.Name)
	}

	name := g.ClassName(ct.System.Codename)

	w := writer.NewWriter("  ")
	w.WriteComment(generatedHeader)
	w.BlankLine()

	w.WriteLinef("export const %sCodename = %s;", name, quote(ct.System.Codename))
	w.BlankLine()

	w.WriteJSDoc(ct.System.Name)
	w.WriteBlock("export interface "+name+" {", "}", func() {
		scope := naming.NewScope()
		for _, el := range ct.ValueElements() {
			w.WriteJSDoc(el.Name)
			prop := scope.Name(naming.Identifier(naming.CamelCase(el.Codename), "element"))
			w.WriteLinef("%s: %s;", prop, mapToTSType(el.Type, structured))
		}
	})

	return w.Bytes(), nil
}

// GenerateCustomPartial is not supported for TypeScript
func (g *Generator) GenerateCustomPartial(ct schema.ContentType) ([]byte, error) {
	return nil, fmt.Errorf("typescript models cannot be split into partials")
}

// GenerateTypeProvider generates a module that maps content type codenames to
// their interfaces, with a runtime list of codenames and a type guard
func (g *Generator) GenerateTypeProvider(types []schema.ContentType, modelFiles map[string]string) ([]byte, error) {
	sorted := make([]schema.ContentType, len(types))
	copy(sorted, types)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].System.Codename < sorted[j].System.Codename
	})

	w := writer.NewWriter("  ")
	w.WriteComment(generatedHeader)
	w.BlankLine()

	for _, ct := range sorted {
		name := g.ClassName(ct.System.Codename)
		file, ok := modelFiles[ct.System.Codename]
		if !ok {
			file = g.ModelFileName(name, "")
		}
		w.WriteLinef("import type { %s } from %s;", name, quote("./"+strings.TrimSuffix(file, g.FileExtension())))
	}
	w.BlankLine()

	w.WriteJSDoc("Maps content type codenames to their models")
	w.WriteBlock("export interface ContentTypeMap {", "}", func() {
		for _, ct := range sorted {
			w.WriteLinef("%s: %s;", quote(ct.System.Codename), g.ClassName(ct.System.Codename))
		}
	})
	w.BlankLine()

	w.WriteLine("export type ContentTypeCodename = keyof ContentTypeMap;")
	w.BlankLine()

	w.WriteBlock("export const CONTENT_TYPE_CODENAMES: readonly ContentTypeCodename[] = [", "];", func() {
		for _, ct := range sorted {
			w.WriteLinef("%s,", quote(ct.System.Codename))
		}
	})
	w.BlankLine()

	w.WriteBlock("export function isContentTypeCodename(value: string): value is ContentTypeCodename {", "}", func() {
		w.WriteLine("return (CONTENT_TYPE_CODENAMES as readonly string[]).includes(value);")
	})

	return w.Bytes(), nil
}

// mapToTSType maps an element type to the TypeScript type of its value
func mapToTSType(t schema.ElementType, structured bool) string {
	switch t {
	case schema.ElementRichText:
		if structured {
			return richTextType
		}
		return "string"
	case schema.ElementNumber:
		return "number | null"
	case schema.ElementDateTime:
		// ISO 8601, as delivered
		return "string | null"
	case schema.ElementMultipleChoice, schema.ElementAsset, schema.ElementTaxonomy:
		return "string[]"
	case schema.ElementModularContent:
		if structured {
			return "unknown[]"
		}
		return "string[]"
	default:
		return "string"
	}
}

func kebab(s string) string {
	return strings.ReplaceAll(naming.SnakeCase(s), "_", "-")
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

func quote(s string) string {
	return "'" + stringEscaper.Replace(s) + "'"
}
