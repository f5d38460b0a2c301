package naming

// GoKeywords are the reserved Go keywords
var GoKeywords = toSet(
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type",
	"var",
)

// EscapeGo appends an underscore to Go keywords
func EscapeGo(name string) string {
	if GoKeywords[name] {
		return name + "_"
	}
	return name
}

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
