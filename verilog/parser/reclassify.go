package parser

// needsLookahead lists the raw kinds whose meaning depends on what follows.
func needsLookahead(kind TokenKind) bool {
	switch kind {
	case TokenLParen, TokenColon, TokenConst, TokenGlobal, TokenLocal,
		TokenNew, TokenStatic, TokenType, TokenVirtual, TokenWith, TokenIdent:
		return true
	}
	return false
}

// reclassify refines tok, which was just taken off the front of the
// queue, from the tokens behind it. It never consumes.
func (s *Session) reclassify(tok Token) Token {
	if !needsLookahead(tok.Kind) {
		return tok
	}
	next := s.queue.Peek(0).Kind

	switch tok.Kind {
	case TokenLParen:
		if isStrengthToken(next) {
			tok.Ref = RefParenStrength
		}

	case TokenColon:
		switch next {
		case TokenBegin:
			tok.Ref = RefColonBegin
		case TokenFork:
			tok.Ref = RefColonFork
		}

	case TokenConst:
		tok.Ref = RefConstEtc
		if next == TokenRef {
			tok.Ref = RefConstRef
		}

	case TokenGlobal:
		switch {
		case next == TokenClocking:
			tok.Ref = RefGlobalClocking
		case s.strict:
			tok.Ref = RefGlobalEtc
		default:
			// Pre-2009 code uses "global" as a name.
			tok.Kind = TokenIdent
			tok.Value = Payload{Kind: PayloadString, Str: s.NewString("global")}
		}

	case TokenLocal:
		tok.Ref = RefLocalEtc
		if next == TokenColonColon {
			tok.Ref = RefLocalColonColon
		}

	case TokenNew:
		tok.Ref = RefNewEtc
		if next == TokenLParen {
			tok.Ref = RefNewParen
		}

	case TokenStatic:
		tok.Ref = RefStaticEtc
		if next == TokenConstraint {
			tok.Ref = RefStaticConstraint
		}

	case TokenType:
		// type(...) == type(...) is an expression
		depth := TypeRefGroupScan(s.queue, 0)
		switch s.queue.Peek(depth).Kind {
		case TokenEQ, TokenNE, TokenCaseEQ, TokenCaseNE:
			tok.Ref = RefTypeEq
		default:
			tok.Ref = RefTypeEtc
		}

	case TokenVirtual:
		switch next {
		case TokenClass:
			tok.Ref = RefVirtualClass
		case TokenInterface:
			tok.Ref = RefVirtualInterface
		case TokenIdent:
			tok.Ref = RefVirtualAnyID
		default:
			tok.Ref = RefVirtualEtc
		}

	case TokenWith:
		switch next {
		case TokenLParen:
			tok.Ref = RefWithParen
		case TokenLBracket:
			tok.Ref = RefWithBracket
		case TokenLBrace:
			tok.Ref = RefWithBrace
		default:
			tok.Ref = RefWithEtc
		}

	case TokenIdent:
		tok.Ref = s.classifyIdent(next)
	}
	return tok
}

// classifyIdent applies the structural identifier rules. It returns
// RefNone when the identifier is left to symbol classification.
func (s *Session) classifyIdent(next TokenKind) Refinement {
	switch s.lastFinal.Kind {
	case TokenAt, TokenHash, TokenDot:
	default:
		if CellScan(s.queue, 0) != 0 {
			return RefIDCell
		}
	}
	if next == TokenColonColon {
		return RefIDColonColon
	}
	if next == TokenHash {
		depth := ParamGroupScan(s.queue, 0, false)
		if s.queue.Peek(depth).Kind == TokenColonColon {
			return RefIDColonColon
		}
	}
	return RefNone
}
