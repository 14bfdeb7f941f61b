package parser

import (
	"strconv"
	"strings"

	"github.com/dhamidi/svtok/verilog/fileline"
)

// Host receives the side effects of raw scanning: locations, literal
// storage and the control text the scanner recognizes but does not
// interpret. *Session is the Host of its lexer.
type Host interface {
	Location() *fileline.FileLine
	NewLine()
	NewString(s string) StringHandle
	NewNumber(text string, kind NumberKind) NumberHandle
	HandleLineDirective(text string)
	HandleControlComment(text string)
	HandleTimescale(text string)
}

// Lexer is the raw SystemVerilog scanner. It expects preprocessed input:
// the only directives it understands are `line and `timescale.
type Lexer struct {
	input  []byte
	host   Host
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, host Host) *Lexer {
	return &Lexer{
		input:  input,
		host:   host,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// Reset rewinds the lexer to the start of its input.
func (l *Lexer) Reset() {
	l.pos = 0
	l.line = 1
	l.column = 1
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
		l.host.NewLine()
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// restOfLine consumes up to, not including, the next newline.
func (l *Lexer) restOfLine() string {
	start := l.pos
	for l.peek() != 0 && l.peek() != '\n' {
		l.advance()
	}
	return string(l.input[start:l.pos])
}

// NextToken returns the next significant token. Whitespace and comments
// are skipped; at end of input it keeps returning TokenEOF.
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		startPos := l.Position()
		loc := l.host.Location()

		if l.pos >= len(l.input) {
			return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}, Loc: loc}
		}

		ch := l.peek()
		var tok Token
		switch {
		case ch == '/' && l.peekN(1) == '/':
			l.restOfLine()
			continue
		case ch == '/' && l.peekN(1) == '*':
			l.scanBlockComment()
			continue
		case ch == '`':
			var ok bool
			if tok, ok = l.scanDirective(startPos); !ok {
				continue
			}
		case isIdentStart(ch):
			tok = l.scanIdentOrKeyword(startPos)
		case ch == '\\':
			tok = l.scanEscapedIdent(startPos)
		case ch == '$' && isIdentChar(l.peekN(1)):
			tok = l.scanSysIdent(startPos)
		case isDigit(ch):
			tok = l.scanNumber(startPos)
		case ch == '\'' && isBaseChar(l.peekN(1), l.peekN(2)):
			tok = l.scanBasedNumber(startPos)
		case ch == '"':
			tok = l.scanString(startPos)
		default:
			tok = l.scanOperator(startPos)
		}
		tok.Loc = loc
		return tok
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f' {
			l.advance()
		} else {
			return
		}
	}
}

func (l *Lexer) scanBlockComment() {
	start := l.pos
	l.advanceN(2)
	for {
		if l.peek() == 0 {
			break
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	text := string(l.input[start:l.pos])
	if strings.HasPrefix(text, "/*verilator") {
		l.host.HandleControlComment(text)
	}
}

// scanDirective handles a backtick directive. It reports false when the
// directive produced no token.
func (l *Lexer) scanDirective(start Position) (Token, bool) {
	begin := l.pos
	l.advance()
	for isIdentChar(l.peek()) {
		l.advance()
	}
	name := string(l.input[begin:l.pos])
	switch name {
	case "`line":
		text := name + l.restOfLine()
		// The directive names the line that follows it, so the newline
		// ending it is not counted.
		if l.peek() == '\n' {
			l.pos++
			l.line++
			l.column = 1
		}
		l.host.HandleLineDirective(text)
		return Token{}, false
	case "`timescale":
		l.host.HandleTimescale(strings.TrimSpace(l.restOfLine()))
		return Token{}, false
	}
	return l.token(TokenError, start), true
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isIdentChar(l.peek()) {
		l.advance()
	}
	literal := string(l.input[start.Offset:l.pos])
	kind := LookupKeyword(literal)
	tok := Token{
		Kind:    kind,
		Span:    Span{Start: start, End: l.Position()},
		Literal: literal,
	}
	if kind == TokenIdent {
		tok.Value = Payload{Kind: PayloadString, Str: l.host.NewString(literal)}
	}
	return tok
}

func (l *Lexer) scanEscapedIdent(start Position) Token {
	l.advance()
	for ch := l.peek(); ch != 0 && ch != ' ' && ch != '\t' && ch != '\r' && ch != '\n'; ch = l.peek() {
		l.advance()
	}
	name := string(l.input[start.Offset+1 : l.pos])
	return Token{
		Kind:    TokenIdent,
		Span:    Span{Start: start, End: l.Position()},
		Literal: name,
		Value:   Payload{Kind: PayloadString, Str: l.host.NewString(name)},
	}
}

func (l *Lexer) scanSysIdent(start Position) Token {
	l.advance()
	for isIdentChar(l.peek()) {
		l.advance()
	}
	tok := l.token(TokenSysIdent, start)
	tok.Value = Payload{Kind: PayloadString, Str: l.host.NewString(tok.Literal)}
	return tok
}

func (l *Lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	if l.peek() == '\'' && isBaseChar(l.peekN(1), l.peekN(2)) {
		return l.scanBasedNumber(start)
	}

	kind := NumberInt
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		kind = NumberFloat
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if (l.peek() == 'e' || l.peek() == 'E') &&
		(isDigit(l.peekN(1)) || (l.peekN(1) == '+' || l.peekN(1) == '-') && isDigit(l.peekN(2))) {
		kind = NumberFloat
		l.advanceN(2)
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if n := l.timeSuffixLen(); n > 0 {
		l.advanceN(n)
		kind = NumberTime
	}

	tokKind := TokenIntNum
	switch kind {
	case NumberFloat:
		tokKind = TokenFloatNum
	case NumberTime:
		tokKind = TokenTimeNum
	}
	tok := l.token(tokKind, start)
	tok.Value = Payload{Kind: PayloadNumber, Num: l.host.NewNumber(tok.Literal, kind)}
	return tok
}

func (l *Lexer) timeSuffixLen() int {
	n := 0
	switch l.peek() {
	case 's':
		n = 1
	case 'm', 'u', 'n', 'p', 'f':
		if l.peekN(1) == 's' {
			n = 2
		}
	}
	if n == 0 || isIdentChar(l.peekN(n)) {
		return 0
	}
	return n
}

func (l *Lexer) scanBasedNumber(start Position) Token {
	l.advance() // '
	if l.peek() == 's' || l.peek() == 'S' {
		l.advance()
	}
	l.advance() // base, or the 0/1/x/z of an unbased fill literal
	for isBasedDigit(l.peek()) {
		l.advance()
	}
	tok := l.token(TokenIntNum, start)
	tok.Value = Payload{Kind: PayloadNumber, Num: l.host.NewNumber(tok.Literal, NumberInt)}
	return tok
}

func (l *Lexer) scanString(start Position) Token {
	l.advance()
	for l.peek() != 0 && l.peek() != '"' && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == '"' {
		l.advance()
	}
	tok := l.token(TokenString, start)
	value, err := strconv.Unquote(tok.Literal)
	if err != nil {
		value = strings.Trim(tok.Literal, "\"")
	}
	tok.Value = Payload{Kind: PayloadString, Str: l.host.NewString(value)}
	return tok
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case '[':
		l.advance()
		return l.token(TokenLBracket, start)
	case ']':
		l.advance()
		return l.token(TokenRBracket, start)
	case '{':
		l.advance()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		return l.token(TokenRBrace, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case '.':
		l.advance()
		return l.token(TokenDot, start)
	case '#':
		l.advance()
		return l.token(TokenHash, start)
	case '@':
		l.advance()
		return l.token(TokenAt, start)
	case '?':
		l.advance()
		return l.token(TokenQuestion, start)
	case '\'':
		l.advance()
		return l.token(TokenApostrophe, start)
	case '~':
		l.advance()
		return l.token(TokenBitNot, start)
	case '^':
		l.advance()
		return l.token(TokenBitXor, start)
	case '*':
		l.advance()
		return l.token(TokenStar, start)
	case '/':
		l.advance()
		return l.token(TokenSlash, start)
	case '%':
		l.advance()
		return l.token(TokenPercent, start)

	case ':':
		if l.peekN(1) == ':' {
			l.advanceN(2)
			return l.token(TokenColonColon, start)
		}
		l.advance()
		return l.token(TokenColon, start)

	case '=':
		if l.peekN(1) == '=' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenCaseEQ, start)
			}
			l.advanceN(2)
			return l.token(TokenEQ, start)
		}
		l.advance()
		return l.token(TokenAssignOp, start)

	case '!':
		if l.peekN(1) == '=' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenCaseNE, start)
			}
			l.advanceN(2)
			return l.token(TokenNE, start)
		}
		l.advance()
		return l.token(TokenNot, start)

	case '<':
		if l.peekN(1) == '<' {
			l.advanceN(2)
			return l.token(TokenShl, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenLE, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenShr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGE, start)
		}
		l.advance()
		return l.token(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenAnd, start)
		}
		l.advance()
		return l.token(TokenBitAnd, start)

	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(TokenOr, start)
		}
		l.advance()
		return l.token(TokenBitOr, start)

	case '+':
		if l.peekN(1) == '+' {
			l.advanceN(2)
			return l.token(TokenIncrement, start)
		}
		l.advance()
		return l.token(TokenPlus, start)

	case '-':
		if l.peekN(1) == '-' {
			l.advanceN(2)
			return l.token(TokenDecrement, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenArrow, start)
		}
		l.advance()
		return l.token(TokenMinus, start)
	}

	l.advance()
	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '$'
}

// isBaseChar reports whether the bytes after a ' start a based or
// unbased-fill number: 'h1F, 'sb0, '0, 'x.
func isBaseChar(ch, next byte) bool {
	switch ch {
	case 's', 'S':
		return isBaseChar(next, 0) && next != 's' && next != 'S'
	case 'b', 'B', 'o', 'O', 'd', 'D', 'h', 'H':
		return true
	case '0', '1', 'x', 'X', 'z', 'Z':
		return !isIdentChar(next)
	}
	return false
}

func isBasedDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F') ||
		ch == 'x' || ch == 'X' || ch == 'z' || ch == 'Z' || ch == '?' || ch == '_'
}
