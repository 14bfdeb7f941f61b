package format

import (
	"io"
	"strings"

	"github.com/dhamidi/svtok/verilog/workspace"
)

// LineEncoder writes one line per final token, followed by the
// diagnostics of the file.
type LineEncoder struct {
	w    io.Writer
	file *workspace.File
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(f *workspace.File) error {
	e.file = f
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var b strings.Builder
	for _, tok := range e.file.Tokens {
		b.WriteString(tok.String())
		b.WriteByte('\n')
	}
	for _, d := range e.file.Diagnostics {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	if e.file.Err != nil {
		b.WriteString(e.file.Err.Error())
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}
