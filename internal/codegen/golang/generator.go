// Package golang generates Go structs for content types. The output is built
// with jennifer, which also takes care of imports and gofmt.
package golang

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/cloudmodelgen/ctgen/internal/codegen/naming"
	"github.com/cloudmodelgen/ctgen/internal/schema"
)

const (
	// DefaultPackage is used when no namespace is configured
	DefaultPackage = "models"

	typeProviderFile = "custom_type_provider"
	generatedHeader  = "Code generated by content-types-generator. DO NOT EDIT."
)

// ErrPartialsUnsupported is returned when asked for a custom partial
var ErrPartialsUnsupported = errors.New("go models cannot be split into partials")

// Generator generates Go code
type Generator struct {
	packageName string
}

// NewGenerator creates a new Go code generator. The namespace is reduced to a
// valid package name, so "MyApp.Models" becomes "models".
func NewGenerator(namespace string) *Generator {
	return &Generator{
		packageName: PackageName(namespace),
	}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "go"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".go"
}

// SupportsPartials returns false; a Go struct cannot span files
func (g *Generator) SupportsPartials() bool {
	return false
}

// PackageName returns the package of the generated code
func (g *Generator) PackageName() string {
	return g.packageName
}

// ClassName returns the struct name for a content type codename
func (g *Generator) ClassName(codename string) string {
	return exported(naming.GoName(codename), "ContentType")
}

// ModelFileName returns e.g. "hosted_video_generated.go". Names that the go
// tool would treat as test files or as restricted to one GOOS/GOARCH get a
// trailing "_model", so "unit_test" becomes "unit_test_model.go".
func (g *Generator) ModelFileName(className, suffix string) string {
	base := naming.SnakeCase(className)
	if s := naming.SnakeCase(suffix); s != "" {
		base += "_" + s
	}
	if i := strings.LastIndexByte(base, '_'); i >= 0 && buildConstrained[base[i+1:]] {
		base += "_model"
	}
	return base + g.FileExtension()
}

// buildConstrained holds the file name suffixes go/build gives a meaning to:
// "test" and every known GOOS and GOARCH
var buildConstrained = map[string]bool{
	"test": true,

	"aix": true, "android": true, "darwin": true, "dragonfly": true, "freebsd": true,
	"hurd": true, "illumos": true, "ios": true, "js": true, "linux": true, "nacl": true,
	"netbsd": true, "openbsd": true, "plan9": true, "solaris": true, "wasip1": true,
	"windows": true, "zos": true,

	"386": true, "amd64": true, "amd64p32": true, "arm": true, "armbe": true, "arm64": true,
	"arm64be": true, "loong64": true, "mips": true, "mipsle": true, "mips64": true,
	"mips64le": true, "mips64p32": true, "mips64p32le": true, "ppc": true, "ppc64": true,
	"ppc64le": true, "riscv": true, "riscv64": true, "s390": true, "s390x": true,
	"sparc": true, "sparc64": true, "wasm": true,
}

// TypeProviderFileName returns "custom_type_provider.go"
func (g *Generator) TypeProviderFileName() string {
	return typeProviderFile + g.FileExtension()
}

// GenerateModel generates a struct for a single content type along with a
// constant holding its codename
func (g *Generator) GenerateModel(ct schema.ContentType, structured bool) ([]byte, error) {
	if ct.System.Codename == "" {
		return nil, fmt.Errorf("content type %q has no codename", ct.System.Name)
	}

	typeName := g.ClassName(ct.System.Codename)

	f := g.newFile()
	f.Commentf("%s is the codename of the %s content type", typeName+"Codename", displayName(ct))
	f.Const().Id(typeName + "Codename").Op("=").Lit(ct.System.Codename)
	f.Line()

	scope := naming.NewScope()
	fields := make([]jen.Code, 0, len(ct.Elements))
	for _, el := range ct.ValueElements() {
		name := scope.Name(exported(naming.GoName(el.Codename), "Element"))
		field := jen.Id(name).Add(fieldType(el.Type, structured)).Tag(map[string]string{"json": el.Codename})
		if doc := strings.Join(strings.Fields(el.Name), " "); doc != "" {
			field = jen.Comment(doc).Line().Add(field)
		}
		fields = append(fields, field)
	}

	f.Commentf("%s is the model of the %s content type", typeName, displayName(ct))
	f.Type().Id(typeName).Struct(fields...)

	return render(f)
}

// GenerateCustomPartial always fails for Go
func (g *Generator) GenerateCustomPartial(ct schema.ContentType) ([]byte, error) {
	return nil, ErrPartialsUnsupported
}

// GenerateTypeProvider generates a map from content type codenames to the
// reflect.Type of their structs. All models share a package, so modelFiles is
// not needed.
func (g *Generator) GenerateTypeProvider(types []schema.ContentType, modelFiles map[string]string) ([]byte, error) {
	f := g.newFile()

	f.Comment("ContentTypes maps content type codenames to their model types")
	f.Var().Id("ContentTypes").Op("=").Map(jen.String()).Qual("reflect", "Type").Values(jen.DictFunc(func(d jen.Dict) {
		for _, ct := range types {
			typeName := g.ClassName(ct.System.Codename)
			d[jen.Id(typeName+"Codename")] = jen.Qual("reflect", "TypeOf").Call(jen.Id(typeName).Values())
		}
	}))
	f.Line()

	f.Comment("TypeFor returns the model type of a content type codename")
	f.Func().Id("TypeFor").Params(jen.Id("codename").String()).Params(jen.Qual("reflect", "Type"), jen.Bool()).Block(
		jen.List(jen.Id("t"), jen.Id("ok")).Op(":=").Id("ContentTypes").Index(jen.Id("codename")),
		jen.Return(jen.Id("t"), jen.Id("ok")),
	)

	return render(f)
}

func (g *Generator) newFile() *jen.File {
	f := jen.NewFile(g.packageName)
	f.HeaderComment(generatedHeader)
	return f
}

func render(f *jen.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render go source: %w", err)
	}
	return buf.Bytes(), nil
}

// fieldType maps an element type to a Go type
func fieldType(t schema.ElementType, structured bool) *jen.Statement {
	switch t {
	case schema.ElementRichText:
		if structured {
			return jen.Qual("html/template", "HTML")
		}
		return jen.String()
	case schema.ElementNumber:
		return jen.Op("*").Float64()
	case schema.ElementDateTime:
		return jen.Op("*").Qual("time", "Time")
	case schema.ElementMultipleChoice, schema.ElementAsset, schema.ElementTaxonomy:
		return jen.Index().String()
	case schema.ElementModularContent:
		if structured {
			return jen.Index().Interface()
		}
		return jen.Index().String()
	default:
		return jen.String()
	}
}

// PackageName reduces a namespace to a Go package name: the last dot or slash
// separated segment, lower cased, with anything but letters, digits and
// underscores removed
func PackageName(namespace string) string {
	if i := strings.LastIndexAny(namespace, "./"); i >= 0 {
		namespace = namespace[i+1:]
	}

	var b strings.Builder
	for _, r := range strings.ToLower(namespace) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	name := b.String()
	switch {
	case name == "":
		return DefaultPackage
	case unicode.IsDigit([]rune(name)[0]):
		name = "p" + name
	}
	return naming.EscapeGo(name)
}

// exported makes name an exported identifier
func exported(name, fallback string) string {
	if name == "" {
		return fallback
	}
	if !unicode.IsUpper([]rune(name)[0]) {
		return "X" + name
	}
	return name
}

func displayName(ct schema.ContentType) string {
	if ct.System.Name != "" {
		return ct.System.Name
	}
	return ct.System.Codename
}
