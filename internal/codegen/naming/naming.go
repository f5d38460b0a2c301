// Package naming turns content type and element codenames into identifiers
// and file names for the generated code.
package naming

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// goAbbreviations maps lowercase words to their Go-conventional upper case forms
var goAbbreviations = map[string]string{
	"id":   "ID",
	"ids":  "IDs",
	"url":  "URL",
	"urls": "URLs",
	"uri":  "URI",
	"api":  "API",
	"html": "HTML",
	"http": "HTTP",
	"json": "JSON",
	"xml":  "XML",
	"seo":  "SEO",
	"sku":  "SKU",
	"ui":   "UI",
}

// Words splits s into words. Any character that is not a letter or a digit
// separates words, as does a lower-to-upper case change ("postDate").
func Words(s string) []string {
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()

	return words
}

// PascalCase joins the words of s with each word title cased ("post_date" -> "PostDate")
func PascalCase(s string) string {
	caser := newTitler()
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(caser.title(w))
	}
	return b.String()
}

// CamelCase is PascalCase with a lower case first word ("post_date" -> "postDate")
func CamelCase(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	caser := newTitler()

	var b strings.Builder
	b.WriteString(caser.lower.String(words[0]))
	for _, w := range words[1:] {
		b.WriteString(caser.title(w))
	}
	return b.String()
}

// GoName is PascalCase with Go abbreviations upper cased ("page_url" -> "PageURL")
func GoName(s string) string {
	caser := newTitler()
	var b strings.Builder
	for _, w := range Words(s) {
		if upper, ok := goAbbreviations[strings.ToLower(w)]; ok {
			b.WriteString(upper)
			continue
		}
		b.WriteString(caser.title(w))
	}
	return b.String()
}

// titler title cases words. Words that start with a digit are only lower
// cased, so "2nd" stays "2nd".
type titler struct {
	upper cases.Caser
	lower cases.Caser
}

func newTitler() titler {
	return titler{
		upper: cases.Title(language.Und),
		lower: cases.Lower(language.Und),
	}
}

func (t titler) title(word string) string {
	if word == "" || !unicode.IsLetter([]rune(word)[0]) {
		return t.lower.String(word)
	}
	return t.upper.String(word)
}

// SnakeCase joins the lower cased words of s with underscores
func SnakeCase(s string) string {
	lower := cases.Lower(language.Und)
	words := Words(s)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return strings.Join(words, "_")
}

// Identifier makes name usable as an identifier: an empty name becomes
// fallback and a leading digit gets an underscore prefix.
func Identifier(name, fallback string) string {
	if name == "" {
		return fallback
	}
	if unicode.IsDigit([]rune(name)[0]) {
		return "_" + name
	}
	return name
}

// FileName builds base[.suffix]ext, e.g. ("Article", "Generated", ".cs") -> "Article.Generated.cs"
func FileName(base, suffix, ext string) string {
	if suffix == "" {
		return base + ext
	}
	return base + "." + suffix + ext
}

// Scope hands out identifiers that are unique within one generated type or file
type Scope struct {
	used map[string]bool
}

// NewScope creates a scope in which the reserved names are already taken
func NewScope(reserved ...string) *Scope {
	s := &Scope{used: make(map[string]bool, len(reserved))}
	for _, name := range reserved {
		s.used[name] = true
	}
	return s
}

// Name returns candidate, or candidate with the lowest numeric suffix starting
// at 2 that is still free, and marks the result as taken.
func (s *Scope) Name(candidate string) string {
	name := candidate
	for i := 2; s.used[name]; i++ {
		name = candidate + strconv.Itoa(i)
	}
	s.used[name] = true
	return name
}

// Taken reports whether name is already in use
func (s *Scope) Taken(name string) bool {
	return s.used[name]
}

// Reserve marks names as taken
func (s *Scope) Reserve(names ...string) {
	for _, name := range names {
		s.used[name] = true
	}
}
