// Package writer builds indented source text for the language generators
package writer

import (
	"fmt"
	"strings"
)

// Writer accumulates generated code and tracks the indentation level
type Writer struct {
	sb          strings.Builder
	indentLevel int
	indentUnit  string
	linePrefix  string
	needsIndent bool
}

// NewWriter creates a writer that indents with indentUnit per level
func NewWriter(indentUnit string) *Writer {
	return &Writer{
		indentUnit:  indentUnit,
		needsIndent: true,
	}
}

// Indent increases the indentation level
func (w *Writer) Indent() {
	w.indentLevel++
	w.linePrefix = strings.Repeat(w.indentUnit, w.indentLevel)
}

// Dedent decreases the indentation level, never below zero
func (w *Writer) Dedent() {
	if w.indentLevel == 0 {
		return
	}
	w.indentLevel--
	w.linePrefix = strings.Repeat(w.indentUnit, w.indentLevel)
}

// Write writes s, indenting it if it starts a line
func (w *Writer) Write(s string) {
	if w.needsIndent && s != "" {
		w.sb.WriteString(w.linePrefix)
		w.needsIndent = false
	}
	w.sb.WriteString(s)
}

// Writef writes a formatted string
func (w *Writer) Writef(format string, args ...any) {
	w.Write(fmt.Sprintf(format, args...))
}

// WriteLine writes s followed by a newline
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

// WriteLinef writes a formatted line
func (w *Writer) WriteLinef(format string, args ...any) {
	w.Writef(format, args...)
	w.Newline()
}

// Newline ends the current line
func (w *Writer) Newline() {
	w.sb.WriteString("\n")
	w.needsIndent = true
}

// BlankLine emits an empty line unless the output is empty, already ends with
// one, or the last line opened a block
func (w *Writer) BlankLine() {
	out := w.sb.String()
	if out == "" || strings.HasSuffix(out, "\n\n") || strings.HasSuffix(out, "{\n") {
		return
	}
	w.Newline()
}

// WriteBlock writes opener on its own line, the indented content, then closer.
// This is the K&R style used for Go and TypeScript.
func (w *Writer) WriteBlock(opener, closer string, content func()) {
	w.WriteLine(opener)
	w.Indent()
	content()
	w.Dedent()
	w.WriteLine(closer)
}

// WriteBraceBlock writes header, then the braces on their own lines around the
// indented content. This is the Allman style used for C#.
func (w *Writer) WriteBraceBlock(header string, content func()) {
	w.WriteLine(header)
	w.WriteLine("{")
	w.Indent()
	content()
	w.Dedent()
	w.WriteLine("}")
}

// WriteComment writes each line of text as a // comment
func (w *Writer) WriteComment(text string) {
	for _, line := range splitLines(text) {
		if line == "" {
			w.WriteLine("//")
			continue
		}
		w.WriteLinef("// %s", line)
	}
}

// WriteXMLSummary writes a C# /// <summary> block. Nothing is written for empty text.
func (w *Writer) WriteXMLSummary(text string) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return
	}
	w.WriteLine("/// <summary>")
	for _, line := range lines {
		w.WriteLinef("/// %s", escapeXML(line))
	}
	w.WriteLine("/// </summary>")
}

// WriteJSDoc writes a /** */ block; a single line stays on one line
func (w *Writer) WriteJSDoc(text string) {
	lines := splitLines(text)
	switch len(lines) {
	case 0:
		return
	case 1:
		w.WriteLinef("/** %s */", strings.ReplaceAll(lines[0], "*/", "* /"))
	default:
		w.WriteLine("/**")
		for _, line := range lines {
			w.WriteLinef(" * %s", strings.ReplaceAll(line, "*/", "* /"))
		}
		w.WriteLine(" */")
	}
}

// String returns the generated code
func (w *Writer) String() string {
	return w.sb.String()
}

// Bytes returns the generated code as a byte slice
func (w *Writer) Bytes() []byte {
	return []byte(w.sb.String())
}

func splitLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
