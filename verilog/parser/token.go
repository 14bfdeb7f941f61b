package parser

import (
	"fmt"

	"github.com/dhamidi/svtok/verilog/fileline"
)

type Position struct {
	Offset int
	Line   int
	Column int
}

type Span struct {
	Start Position
	End   Position
}

// TokenKind is the coarse kind assigned by the raw scanner.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent
	TokenSysIdent
	TokenIntNum
	TokenFloatNum
	TokenTimeNum
	TokenString

	// Keywords
	TokenAlways
	TokenAssign
	TokenBegin
	TokenBit
	TokenCase
	TokenClass
	TokenClocking
	TokenConst
	TokenConstraint
	TokenDefault
	TokenElse
	TokenEnd
	TokenEndcase
	TokenEndclass
	TokenEndclocking
	TokenEndfunction
	TokenEndinterface
	TokenEndmodule
	TokenEndpackage
	TokenEndtask
	TokenEnum
	TokenExtends
	TokenFor
	TokenFork
	TokenFunction
	TokenGlobal
	TokenIf
	TokenImport
	TokenInitial
	TokenInout
	TokenInput
	TokenInt
	TokenInterface
	TokenJoin
	TokenLocal
	TokenLocalparam
	TokenLogic
	TokenModule
	TokenNegedge
	TokenNew
	TokenOutput
	TokenPackage
	TokenParameter
	TokenPosedge
	TokenRef
	TokenReg
	TokenReturn
	TokenStatic
	TokenStruct
	TokenTask
	TokenTimeprecision
	TokenTimeunit
	TokenType
	TokenTypedef
	TokenVirtual
	TokenVoid
	TokenWire
	TokenWith

	// Strength keywords
	TokenChargeStrength
	TokenSupply0
	TokenSupply1
	TokenStrong0
	TokenStrong1
	TokenPull0
	TokenPull1
	TokenWeak0
	TokenWeak1
	TokenHighz0
	TokenHighz1

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenSemicolon
	TokenComma
	TokenDot
	TokenColon
	TokenColonColon
	TokenHash
	TokenAt
	TokenQuestion
	TokenApostrophe
	TokenAssignOp
	TokenEQ
	TokenNE
	TokenCaseEQ
	TokenCaseNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenAnd
	TokenOr
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenShr
	TokenIncrement
	TokenDecrement
	TokenArrow
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:            "EOF",
	TokenError:          "Error",
	TokenIdent:          "Identifier",
	TokenSysIdent:       "SystemIdentifier",
	TokenIntNum:         "IntNumber",
	TokenFloatNum:       "FloatNumber",
	TokenTimeNum:        "TimeNumber",
	TokenString:         "String",
	TokenAlways:         "always",
	TokenAssign:         "assign",
	TokenBegin:          "begin",
	TokenBit:            "bit",
	TokenCase:           "case",
	TokenClass:          "class",
	TokenClocking:       "clocking",
	TokenConst:          "const",
	TokenConstraint:     "constraint",
	TokenDefault:        "default",
	TokenElse:           "else",
	TokenEnd:            "end",
	TokenEndcase:        "endcase",
	TokenEndclass:       "endclass",
	TokenEndclocking:    "endclocking",
	TokenEndfunction:    "endfunction",
	TokenEndinterface:   "endinterface",
	TokenEndmodule:      "endmodule",
	TokenEndpackage:     "endpackage",
	TokenEndtask:        "endtask",
	TokenEnum:           "enum",
	TokenExtends:        "extends",
	TokenFor:            "for",
	TokenFork:           "fork",
	TokenFunction:       "function",
	TokenGlobal:         "global",
	TokenIf:             "if",
	TokenImport:         "import",
	TokenInitial:        "initial",
	TokenInout:          "inout",
	TokenInput:          "input",
	TokenInt:            "int",
	TokenInterface:      "interface",
	TokenJoin:           "join",
	TokenLocal:          "local",
	TokenLocalparam:     "localparam",
	TokenLogic:          "logic",
	TokenModule:         "module",
	TokenNegedge:        "negedge",
	TokenNew:            "new",
	TokenOutput:         "output",
	TokenPackage:        "package",
	TokenParameter:      "parameter",
	TokenPosedge:        "posedge",
	TokenRef:            "ref",
	TokenReg:            "reg",
	TokenReturn:         "return",
	TokenStatic:         "static",
	TokenStruct:         "struct",
	TokenTask:           "task",
	TokenTimeprecision:  "timeprecision",
	TokenTimeunit:       "timeunit",
	TokenType:           "type",
	TokenTypedef:        "typedef",
	TokenVirtual:        "virtual",
	TokenVoid:           "void",
	TokenWire:           "wire",
	TokenWith:           "with",
	TokenChargeStrength: "ChargeStrength",
	TokenSupply0:        "supply0",
	TokenSupply1:        "supply1",
	TokenStrong0:        "strong0",
	TokenStrong1:        "strong1",
	TokenPull0:          "pull0",
	TokenPull1:          "pull1",
	TokenWeak0:          "weak0",
	TokenWeak1:          "weak1",
	TokenHighz0:         "highz0",
	TokenHighz1:         "highz1",
	TokenLParen:         "(",
	TokenRParen:         ")",
	TokenLBracket:       "[",
	TokenRBracket:       "]",
	TokenLBrace:         "{",
	TokenRBrace:         "}",
	TokenSemicolon:      ";",
	TokenComma:          ",",
	TokenDot:            ".",
	TokenColon:          ":",
	TokenColonColon:     "::",
	TokenHash:           "#",
	TokenAt:             "@",
	TokenQuestion:       "?",
	TokenApostrophe:     "'",
	TokenAssignOp:       "=",
	TokenEQ:             "==",
	TokenNE:             "!=",
	TokenCaseEQ:         "===",
	TokenCaseNE:         "!==",
	TokenLT:             "<",
	TokenLE:             "<=",
	TokenGT:             ">",
	TokenGE:             ">=",
	TokenPlus:           "+",
	TokenMinus:          "-",
	TokenStar:           "*",
	TokenSlash:          "/",
	TokenPercent:        "%",
	TokenAnd:            "&&",
	TokenOr:             "||",
	TokenNot:            "!",
	TokenBitAnd:         "&",
	TokenBitOr:          "|",
	TokenBitXor:         "^",
	TokenBitNot:         "~",
	TokenShl:            "<<",
	TokenShr:            ">>",
	TokenIncrement:      "++",
	TokenDecrement:      "--",
	TokenArrow:          "->",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

var keywords = map[string]TokenKind{
	"always":        TokenAlways,
	"assign":        TokenAssign,
	"begin":         TokenBegin,
	"bit":           TokenBit,
	"case":          TokenCase,
	"class":         TokenClass,
	"clocking":      TokenClocking,
	"const":         TokenConst,
	"constraint":    TokenConstraint,
	"default":       TokenDefault,
	"else":          TokenElse,
	"end":           TokenEnd,
	"endcase":       TokenEndcase,
	"endclass":      TokenEndclass,
	"endclocking":   TokenEndclocking,
	"endfunction":   TokenEndfunction,
	"endinterface":  TokenEndinterface,
	"endmodule":     TokenEndmodule,
	"endpackage":    TokenEndpackage,
	"endtask":       TokenEndtask,
	"enum":          TokenEnum,
	"extends":       TokenExtends,
	"for":           TokenFor,
	"fork":          TokenFork,
	"function":      TokenFunction,
	"global":        TokenGlobal,
	"if":            TokenIf,
	"import":        TokenImport,
	"initial":       TokenInitial,
	"inout":         TokenInout,
	"input":         TokenInput,
	"int":           TokenInt,
	"interface":     TokenInterface,
	"join":          TokenJoin,
	"local":         TokenLocal,
	"localparam":    TokenLocalparam,
	"logic":         TokenLogic,
	"module":        TokenModule,
	"negedge":       TokenNegedge,
	"new":           TokenNew,
	"output":        TokenOutput,
	"package":       TokenPackage,
	"parameter":     TokenParameter,
	"posedge":       TokenPosedge,
	"ref":           TokenRef,
	"reg":           TokenReg,
	"return":        TokenReturn,
	"static":        TokenStatic,
	"struct":        TokenStruct,
	"task":          TokenTask,
	"timeprecision": TokenTimeprecision,
	"timeunit":      TokenTimeunit,
	"type":          TokenType,
	"typedef":       TokenTypedef,
	"virtual":       TokenVirtual,
	"void":          TokenVoid,
	"wire":          TokenWire,
	"with":          TokenWith,
	"small":         TokenChargeStrength,
	"medium":        TokenChargeStrength,
	"large":         TokenChargeStrength,
	"supply0":       TokenSupply0,
	"supply1":       TokenSupply1,
	"strong0":       TokenStrong0,
	"strong1":       TokenStrong1,
	"pull0":         TokenPull0,
	"pull1":         TokenPull1,
	"weak0":         TokenWeak0,
	"weak1":         TokenWeak1,
	"highz0":        TokenHighz0,
	"highz1":        TokenHighz1,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

func isStrengthToken(kind TokenKind) bool {
	switch kind {
	case TokenChargeStrength,
		TokenSupply0, TokenSupply1,
		TokenStrong0, TokenStrong1,
		TokenPull0, TokenPull1,
		TokenWeak0, TokenWeak1,
		TokenHighz0, TokenHighz1:
		return true
	}
	return false
}

// Refinement is the tag the classification stages add to a raw kind.
// Kind and Refinement together form the terminal the grammar sees.
type Refinement int

const (
	RefNone Refinement = iota

	RefParenStrength
	RefColonBegin
	RefColonFork
	RefConstRef
	RefConstEtc
	RefGlobalClocking
	RefGlobalEtc
	RefLocalColonColon
	RefLocalEtc
	RefNewParen
	RefNewEtc
	RefStaticConstraint
	RefStaticEtc
	RefTypeEq
	RefTypeEtc
	RefVirtualClass
	RefVirtualInterface
	RefVirtualAnyID
	RefVirtualEtc
	RefWithParen
	RefWithBracket
	RefWithBrace
	RefWithEtc

	// Identifier refinements
	RefIDCell
	RefIDColonColon
	RefIDType
	RefIDEtc
)

var refinementNames = map[Refinement]string{
	RefNone:             "",
	RefParenStrength:    "strength",
	RefColonBegin:       "begin",
	RefColonFork:        "fork",
	RefConstRef:         "ref",
	RefConstEtc:         "etc",
	RefGlobalClocking:   "clocking",
	RefGlobalEtc:        "etc",
	RefLocalColonColon:  "coloncolon",
	RefLocalEtc:         "etc",
	RefNewParen:         "paren",
	RefNewEtc:           "etc",
	RefStaticConstraint: "constraint",
	RefStaticEtc:        "etc",
	RefTypeEq:           "eq",
	RefTypeEtc:          "etc",
	RefVirtualClass:     "class",
	RefVirtualInterface: "interface",
	RefVirtualAnyID:     "anyid",
	RefVirtualEtc:       "etc",
	RefWithParen:        "paren",
	RefWithBracket:      "bracket",
	RefWithBrace:        "brace",
	RefWithEtc:          "etc",
	RefIDCell:           "cell",
	RefIDColonColon:     "coloncolon",
	RefIDType:           "type",
	RefIDEtc:            "etc",
}

func (r Refinement) String() string {
	if name, ok := refinementNames[r]; ok {
		return name
	}
	return "Unknown"
}

type StringHandle int32
type NumberHandle int32

type PayloadKind uint8

const (
	PayloadNone PayloadKind = iota
	PayloadString
	PayloadNumber
	PayloadSymbol
	PayloadText
)

// Payload is the value carried by a token. A symbol payload keeps the
// string handle of the identifier it was resolved from.
type Payload struct {
	Kind PayloadKind
	Str  StringHandle
	Num  NumberHandle
	Sym  LookupResult
	Text string
}

type Token struct {
	Kind    TokenKind
	Ref     Refinement
	Span    Span
	Literal string
	Value   Payload
	Loc     *fileline.FileLine
}

// Terminal is the name of the grammar terminal for the token.
func (t Token) Terminal() string {
	if t.Ref == RefNone {
		return t.Kind.String()
	}
	return t.Kind.String() + "__" + t.Ref.String()
}

// IsIdent reports whether the token is identifier-class.
func (t Token) IsIdent() bool {
	return t.Kind == TokenIdent
}

func (t Token) String() string {
	where := "?"
	if t.Loc != nil {
		where = fmt.Sprintf("%s:%d:%d", t.Loc.Filename(), t.Loc.Lineno(), t.Span.Start.Column)
	}
	s := fmt.Sprintf("TOKEN {%s}=%s", where, t.Terminal())
	if t.IsIdent() {
		s += fmt.Sprintf(" strp='%s'", t.Literal)
	}
	return s
}
