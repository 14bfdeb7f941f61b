package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/svtok/diag"
	"github.com/dhamidi/svtok/verilog/parser"
	"github.com/dhamidi/svtok/verilog/workspace"
)

type JSONEncoder struct {
	w    io.Writer
	file *workspace.File
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(f *workspace.File) error {
	e.file = f
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = e.w.Write([]byte("\n"))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildFileData(), "", "  ")
}

type jsonFile struct {
	Path        string            `json:"path"`
	Tokens      []jsonToken       `json:"tokens"`
	Diagnostics []jsonDiagnostic  `json:"diagnostics,omitempty"`
	Imports     []string          `json:"imports,omitempty"`
	TimeUnit    string            `json:"timeunit,omitempty"`
	TimePrec    string            `json:"timeprecision,omitempty"`
	ModuleUnits map[string]string `json:"moduleTimeunits,omitempty"`
	Error       string            `json:"error,omitempty"`
}

type jsonToken struct {
	Kind     string       `json:"kind"`
	Terminal string       `json:"terminal"`
	Literal  string       `json:"literal,omitempty"`
	Span     jsonSpan     `json:"span"`
	Location jsonLocation `json:"location"`
	Symbol   string       `json:"symbol,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonLocation struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

type jsonDiagnostic struct {
	Severity string `json:"severity"`
	Code     string `json:"code,omitempty"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
}

func (e *JSONEncoder) buildFileData() jsonFile {
	f := e.file
	data := jsonFile{
		Path:   f.Path,
		Tokens: make([]jsonToken, 0, len(f.Tokens)),
	}

	for _, tok := range f.Tokens {
		jt := jsonToken{
			Kind:     tok.Kind.String(),
			Terminal: tok.Terminal(),
			Literal:  tok.Literal,
			Span: jsonSpan{
				Start: jsonPosition{Line: tok.Span.Start.Line, Column: tok.Span.Start.Column},
				End:   jsonPosition{Line: tok.Span.End.Line, Column: tok.Span.End.Column},
			},
		}
		if tok.Loc != nil {
			jt.Location = jsonLocation{File: tok.Loc.Filename(), Line: tok.Loc.Lineno()}
		}
		if tok.Value.Kind == parser.PayloadSymbol {
			jt.Symbol = tok.Value.Sym.Kind.String()
		}
		data.Tokens = append(data.Tokens, jt)
	}

	for _, d := range f.Diagnostics {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			File:     d.Pos.File,
			Line:     d.Pos.Line,
			Message:  d.Message,
		}
		if d.Code != diag.CodeNone {
			jd.Code = d.Code.String()
		}
		data.Diagnostics = append(data.Diagnostics, jd)
	}

	for _, imp := range f.Imports {
		data.Imports = append(data.Imports, imp.Package+"::"+imp.Item)
	}

	if !f.TimeUnit.IsNone() {
		data.TimeUnit = f.TimeUnit.String()
	}
	if !f.TimePrecision.IsNone() {
		data.TimePrec = f.TimePrecision.String()
	}
	for module, unit := range f.ModuleTimeUnits {
		if data.ModuleUnits == nil {
			data.ModuleUnits = make(map[string]string)
		}
		data.ModuleUnits[module] = unit.String()
	}

	if f.Err != nil {
		data.Error = f.Err.Error()
	}
	return data
}
