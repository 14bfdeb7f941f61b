package lsp

import (
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/svtok/verilog/parser"
)

// legendTypes is the semantic token legend; indexes into it are what the
// encoded data refers to.
var legendTypes = []string{
	"keyword",
	"type",
	"class",
	"namespace",
	"variable",
	"function",
	"string",
	"number",
	"operator",
}

var semTypes = func() map[string]int {
	m := make(map[string]int, len(legendTypes))
	for i, name := range legendTypes {
		m[name] = i
	}
	return m
}()

// SemanticType maps a final token to its legend entry. Punctuation has
// none.
func SemanticType(tok parser.Token) (string, bool) {
	switch tok.Kind {
	case parser.TokenEOF, parser.TokenError:
		return "", false
	case parser.TokenIdent:
		return identType(tok), true
	case parser.TokenSysIdent:
		return "function", true
	case parser.TokenString:
		return "string", true
	case parser.TokenIntNum, parser.TokenFloatNum, parser.TokenTimeNum:
		return "number", true
	}
	if tok.Kind >= parser.TokenAlways && tok.Kind <= parser.TokenHighz1 {
		return "keyword", true
	}
	switch tok.Kind {
	case parser.TokenEQ, parser.TokenNE, parser.TokenCaseEQ, parser.TokenCaseNE,
		parser.TokenAnd, parser.TokenOr, parser.TokenNot, parser.TokenArrow:
		return "operator", true
	}
	return "", false
}

func identType(tok parser.Token) string {
	if tok.Value.Kind == parser.PayloadSymbol {
		switch tok.Value.Sym.Kind {
		case parser.SymbolClass:
			return "class"
		case parser.SymbolPackage:
			return "namespace"
		case parser.SymbolType, parser.SymbolTypeFwd:
			return "type"
		}
	}
	switch tok.Ref {
	case parser.RefIDType, parser.RefIDCell:
		return "type"
	case parser.RefIDColonColon:
		return "namespace"
	}
	return "variable"
}

// EncodeSemanticTokens produces the relative line/start/length/type
// encoding of textDocument/semanticTokens for toks lexed from content.
// Lines and columns come from the physical position in the document, not
// from `line directives. Columns and lengths count UTF-16 code units.
func EncodeSemanticTokens(content []byte, toks []parser.Token) []protocol.UInteger {
	data := []protocol.UInteger{}
	prevLine, prevChar := 0, 0
	for _, tok := range toks {
		name, ok := SemanticType(tok)
		if !ok {
			continue
		}
		start, end := tok.Span.Start, tok.Span.End
		lineStart := start.Offset - (start.Column - 1)
		if end.Offset <= start.Offset || end.Line != start.Line || lineStart < 0 || end.Offset > len(content) {
			continue
		}
		line := start.Line - 1
		char := utf16Len(content[lineStart:start.Offset])
		length := utf16Len(content[start.Offset:end.Offset])

		deltaLine := line - prevLine
		deltaChar := char
		if deltaLine == 0 {
			deltaChar = char - prevChar
		}
		data = append(data,
			protocol.UInteger(deltaLine),
			protocol.UInteger(deltaChar),
			protocol.UInteger(length),
			protocol.UInteger(semTypes[name]),
			0,
		)
		prevLine, prevChar = line, char
	}
	return data
}

// utf16Len counts the UTF-16 code units of b.
func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, w := utf8.DecodeRune(b)
		b = b[w:]
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
