// Package format renders tokenized files for the command line.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/svtok/verilog/workspace"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(f *workspace.File) error
}

// NewEncoder returns the encoder for a format name: "line" or "json".
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "line":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}
