package common

import (
	"encoding/csv"
	"io"
	"strings"
)

// Command is one flattened engine command: an optional category token
// followed by the command name and its arguments.
type Command []string

func (c Command) String() string {
	return strings.Join(c, " ")
}

// CommandWriter serializes commands as rows of a comma-separated file,
// one command per line.
type CommandWriter struct {
	w *csv.Writer
}

func NewCommandWriter(w io.Writer) *CommandWriter {
	return &CommandWriter{w: csv.NewWriter(w)}
}

func (cw *CommandWriter) Write(cmd Command) error {
	return cw.w.Write(cmd)
}

// Flush writes any buffered rows to the underlying writer.
func (cw *CommandWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
