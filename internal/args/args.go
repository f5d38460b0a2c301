// Package args splits a command line into the tokens that belong to known
// flags and the ones that do not. The command line parser rejects unknown
// flags on the first one it meets; running this pass first lets every bad
// token be reported at once.
package args

import (
	"strings"

	"github.com/urfave/cli/v3"
)

// Result is the outcome of Parse
type Result struct {
	// Known holds the tokens of recognized flags and their values, in order
	Known []string

	// Unrecognized holds every token that matched no flag, in order
	Unrecognized []string
}

// Valid reports whether every token was recognized
func (r Result) Valid() bool {
	return len(r.Unrecognized) == 0
}

type valueTaker interface {
	TakesValue() bool
}

// Parse sorts tokens (without the program name) into known and unrecognized
// ones. Flags may be written as -x, --x, -x=value or --x=value; a flag that
// takes a value consumes the next token when no =value is given. When that
// token is itself a defined flag, the value flag is unrecognized instead.
// Bool flags never consume the next token. Positional arguments are not
// accepted, so they and everything after a "--" terminator are unrecognized.
// The help and version flags are always known.
func Parse(tokens []string, flags []cli.Flag) Result {
	takesValue := make(map[string]bool)
	for _, f := range append([]cli.Flag{cli.HelpFlag, cli.VersionFlag}, flags...) {
		if f == nil {
			continue
		}
		vt, ok := f.(valueTaker)
		for _, name := range f.Names() {
			takesValue[name] = ok && vt.TakesValue()
		}
	}

	var r Result
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if tok == "--" {
			r.Unrecognized = append(r.Unrecognized, tokens[i+1:]...)
			break
		}

		name, hasValue := flagName(tok)
		needsValue, known := takesValue[name]
		if name == "" || !known {
			r.Unrecognized = append(r.Unrecognized, tok)
			continue
		}

		r.Known = append(r.Known, tok)
		if !needsValue || hasValue {
			continue
		}
		if i+1 >= len(tokens) || isFlag(tokens[i+1], takesValue) {
			// nothing left to bind the value to
			r.Known = r.Known[:len(r.Known)-1]
			r.Unrecognized = append(r.Unrecognized, tok)
			continue
		}
		i++
		r.Known = append(r.Known, tokens[i])
	}

	return r
}

func isFlag(tok string, flags map[string]bool) bool {
	name, _ := flagName(tok)
	_, ok := flags[name]
	return name != "" && ok
}

// flagName returns the flag name of tok and whether it carries an inline
// value. Tokens that are not flags return an empty name.
func flagName(tok string) (string, bool) {
	var name string
	switch {
	case strings.HasPrefix(tok, "--"):
		name = tok[2:]
	case strings.HasPrefix(tok, "-"):
		name = tok[1:]
	default:
		return "", false
	}

	if name == "" || strings.HasPrefix(name, "-") || strings.HasPrefix(name, "=") {
		return "", false
	}

	if i := strings.IndexByte(name, '='); i >= 0 {
		return name[:i], true
	}
	return name, false
}
