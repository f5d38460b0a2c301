// Package csharp generates C# model classes for the Kentico Cloud .NET SDK.
package csharp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloudmodelgen/ctgen/internal/codegen/naming"
	"github.com/cloudmodelgen/ctgen/internal/codegen/writer"
	"github.com/cloudmodelgen/ctgen/internal/schema"
)

const (
	// DefaultNamespace is used when no namespace is configured
	DefaultNamespace = "KenticoCloudModels"

	// TypeProviderClassName is the name of the generated type provider class
	TypeProviderClassName = "CustomTypeProvider"

	indent = "    "
)

// headerLines open every generated model file
var headerLines = []string{
	"This code was generated by content-types-generator.",
	"",
	"Changes to this file may cause incorrect behavior and will be lost if the code is regenerated.",
	"For further modifications of the class, create a separate file with the partial class.",
}

// Generator generates C# classes
type Generator struct {
	namespace string
	partials  bool
}

// NewGenerator creates a new C# code generator
func NewGenerator(namespace string, partials bool) *Generator {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Generator{
		namespace: namespace,
		partials:  partials,
	}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "csharp"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".cs"
}

// SupportsPartials returns true; C# models can be partial classes
func (g *Generator) SupportsPartials() bool {
	return true
}

// Namespace returns the namespace of the generated classes
func (g *Generator) Namespace() string {
	return g.namespace
}

// ClassName returns the class name for a content type codename
func (g *Generator) ClassName(codename string) string {
	return naming.Identifier(naming.PascalCase(codename), "ContentType")
}

// ModelFileName returns e.g. "Article.Generated.cs"
func (g *Generator) ModelFileName(className, suffix string) string {
	return naming.FileName(className, suffix, g.FileExtension())
}

// TypeProviderFileName returns "CustomTypeProvider.cs"
func (g *Generator) TypeProviderFileName() string {
	return TypeProviderClassName + g.FileExtension()
}

// GenerateModel generates the class of a single content type
func (g *Generator) GenerateModel(ct schema.ContentType, structured bool) ([]byte, error) {
	if ct.System.Codename == "" {
		return nil, fmt.Errorf("content type %q has no codename", ct.System.Name)
	}

	className := g.ClassName(ct.System.Codename)
	props := properties(ct, className)

	w := writer.NewWriter(indent)
	for _, line := range headerLines {
		if line == "" {
			w.WriteLine("//")
			continue
		}
		w.WriteLinef("// %s", line)
	}
	w.BlankLine()

	g.writeUsings(w, "System", "System.Collections.Generic", "KenticoCloud.Delivery")

	w.WriteBraceBlock("namespace "+g.namespace, func() {
		w.WriteBraceBlock(g.classHeader(className), func() {
			w.WriteLinef("public const string Codename = %s;", quote(ct.System.Codename))
			for _, p := range props {
				w.WriteLinef("public const string %sCodename = %s;", p.name, quote(p.element.Codename))
			}
			w.BlankLine()

			for _, p := range props {
				w.WriteXMLSummary(p.element.Name)
				w.WriteLinef("public %s %s { get; set; }", propertyType(p.element.Type, structured), p.name)
			}
			w.WriteLine("public ContentItemSystemAttributes System { get; set; }")
		})
	})

	return w.Bytes(), nil
}

// GenerateCustomPartial generates the empty partial class that users extend by hand
func (g *Generator) GenerateCustomPartial(ct schema.ContentType) ([]byte, error) {
	if ct.System.Codename == "" {
		return nil, fmt.Errorf("content type %q has no codename", ct.System.Name)
	}

	w := writer.NewWriter(indent)
	g.writeUsings(w, "System", "System.Collections.Generic", "KenticoCloud.Delivery")

	w.WriteBraceBlock("namespace "+g.namespace, func() {
		w.WriteBraceBlock("public partial class "+g.ClassName(ct.System.Codename), func() {})
	})

	return w.Bytes(), nil
}

// GenerateTypeProvider generates a CustomTypeProvider class that maps content
// type codenames to model classes and back. modelFiles is unused in C# since
// all classes share a namespace.
func (g *Generator) GenerateTypeProvider(types []schema.ContentType, modelFiles map[string]string) ([]byte, error) {
	sorted := sortedByCodename(types)

	w := writer.NewWriter(indent)
	g.writeUsings(w, "System", "System.Collections.Generic", "System.Linq", "KenticoCloud.Delivery")

	w.WriteBraceBlock("namespace "+g.namespace, func() {
		w.WriteBraceBlock("public class "+TypeProviderClassName+" : ICodeFirstTypeProvider", func() {
			w.WriteLine("private static readonly Dictionary<Type, string> _codenames = new Dictionary<Type, string>")
			w.WriteLine("{")
			w.Indent()
			for _, ct := range sorted {
				w.WriteLinef("{typeof(%s), %s},", g.ClassName(ct.System.Codename), quote(ct.System.Codename))
			}
			w.Dedent()
			w.WriteLine("};")
			w.BlankLine()

			w.WriteBraceBlock("public Type GetType(string contentType)", func() {
				w.WriteLine("return _codenames.Keys.FirstOrDefault(type => GetCodename(type).Equals(contentType));")
			})
			w.BlankLine()

			w.WriteBraceBlock("public string GetCodename(Type contentType)", func() {
				w.WriteLine("return _codenames.TryGetValue(contentType, out var codename) ? codename : null;")
			})
		})
	})

	return w.Bytes(), nil
}

func (g *Generator) classHeader(className string) string {
	if g.partials {
		return "public partial class " + className
	}
	return "public class " + className
}

func (g *Generator) writeUsings(w *writer.Writer, namespaces ...string) {
	for _, ns := range namespaces {
		w.WriteLinef("using %s;", ns)
	}
	w.BlankLine()
}

type property struct {
	name    string
	element schema.Element
}

// properties names the value elements of ct. Property names and their
// <Name>Codename constants never clash with the class itself, the System
// property, the Codename constant or each other.
func properties(ct schema.ContentType, className string) []property {
	scope := naming.NewScope(className, "System", "Codename")

	elements := ct.ValueElements()
	props := make([]property, 0, len(elements))
	for _, el := range elements {
		base := naming.Identifier(naming.PascalCase(el.Codename), "Element")
		name := scope.Name(base)
		for scope.Taken(name + "Codename") {
			name = scope.Name(base)
		}
		scope.Reserve(name + "Codename")

		props = append(props, property{name: name, element: el})
	}
	return props
}

// propertyType maps an element type to its .NET SDK type
func propertyType(t schema.ElementType, structured bool) string {
	switch t {
	case schema.ElementRichText:
		if structured {
			return "IRichTextContent"
		}
		return "string"
	case schema.ElementNumber:
		return "decimal?"
	case schema.ElementDateTime:
		return "DateTime?"
	case schema.ElementMultipleChoice:
		return "IEnumerable<MultipleChoiceOption>"
	case schema.ElementAsset:
		return "IEnumerable<Asset>"
	case schema.ElementModularContent:
		return "IEnumerable<object>"
	case schema.ElementTaxonomy:
		return "IEnumerable<TaxonomyTerm>"
	default:
		// text, url_slug, custom and anything the API adds later
		return "string"
	}
}

func sortedByCodename(types []schema.ContentType) []schema.ContentType {
	sorted := make([]schema.ContentType, len(types))
	copy(sorted, types)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].System.Codename < sorted[j].System.Codename
	})
	return sorted
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}
