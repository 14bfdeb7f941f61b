package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/svtok/diag"
	"github.com/dhamidi/svtok/verilog/workspace"
)

// publishParams converts the diagnostics of f. A diagnostic covers its
// whole line; the pipeline only knows lines.
func publishParams(uri string, f *workspace.File) protocol.PublishDiagnosticsParams {
	diagnostics := []protocol.Diagnostic{}
	for _, d := range f.Diagnostics {
		diagnostics = append(diagnostics, toProtocolDiagnostic(d))
	}
	if f.Err != nil {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    lineRange(1),
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Source:   strPtr(lsName),
			Message:  f.Err.Error(),
		})
	}
	return protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	}
}

func toProtocolDiagnostic(d diag.Diagnostic) protocol.Diagnostic {
	pd := protocol.Diagnostic{
		Range:    lineRange(d.Pos.Line),
		Severity: severityPtr(toProtocolSeverity(d.Severity)),
		Source:   strPtr(lsName),
		Message:  d.Message,
	}
	if d.Code != diag.CodeNone {
		pd.Code = &protocol.IntegerOrString{Value: d.Code.String()}
	}
	return pd
}

func toProtocolSeverity(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.SeverityError:
		return protocol.DiagnosticSeverityError
	case diag.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func lineRange(line int) protocol.Range {
	if line < 1 {
		line = 1
	}
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line - 1), Character: 0},
		End:   protocol.Position{Line: protocol.UInteger(line), Character: 0},
	}
}

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func strPtr(s string) *string {
	return &s
}
