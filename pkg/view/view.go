// Package view delivers progress and error messages to the user. The
// algorithm layers never print directly; they talk to a Sink so the CLI
// decides where the text goes.
package view

import (
	"fmt"
	"io"
)

// Sink receives user-visible messages.
type Sink interface {
	Info(msg string)
	Error(msg string)
}

// Console writes messages line by line to Out.
type Console struct {
	Out io.Writer
}

func (c Console) Info(msg string) {
	fmt.Fprintln(c.Out, msg)
}

func (c Console) Error(msg string) {
	fmt.Fprintln(c.Out, "error:", msg)
}

// Memory records messages in order. Test helper.
type Memory struct {
	Infos  []string
	Errors []string
}

func (m *Memory) Info(msg string) {
	m.Infos = append(m.Infos, msg)
}

func (m *Memory) Error(msg string) {
	m.Errors = append(m.Errors, msg)
}
