// Package report prints the messages meant for the person running the tool.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Console writes progress to out and problems to errOut
type Console struct {
	out    io.Writer
	errOut io.Writer

	errColor     *color.Color
	warnColor    *color.Color
	successColor *color.Color
}

// NewConsole creates a console reporter. colored forces colors on or off,
// regardless of whether the writers are terminals.
func NewConsole(out, errOut io.Writer, colored bool) *Console {
	c := &Console{
		out:          out,
		errOut:       errOut,
		errColor:     color.New(color.FgRed, color.Bold),
		warnColor:    color.New(color.FgYellow, color.Bold),
		successColor: color.New(color.FgGreen),
	}

	for _, col := range []*color.Color{c.errColor, c.warnColor, c.successColor} {
		if colored {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// NewStdConsole reports to stdout and stderr, colored when stdout is a terminal
func NewStdConsole() *Console {
	return NewConsole(os.Stdout, os.Stderr, !color.NoColor)
}

// Out returns the writer for regular output
func (c *Console) Out() io.Writer {
	return c.out
}

// Info prints a plain progress line
func (c *Console) Info(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Success prints a line marking a finished step
func (c *Console) Success(format string, args ...any) {
	c.successColor.Fprintf(c.out, format+"\n", args...)
}

// Warn prints a warning line prefixed with "! "
func (c *Console) Warn(format string, args ...any) {
	c.warnColor.Fprint(c.errOut, "! ")
	fmt.Fprintf(c.errOut, format+"\n", args...)
}

// Error prints an error line
func (c *Console) Error(format string, args ...any) {
	c.errColor.Fprintf(c.errOut, format+"\n", args...)
}
