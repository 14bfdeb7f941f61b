package parser

// NextFinalToken hands the grammar engine its next terminal. Each call
// consumes exactly one raw token and may look further ahead. The error is
// non-nil only after an internal invariant violation, and then stays set.
func (s *Session) NextFinalToken() (Token, error) {
	if s.fatal != nil {
		return Token{Kind: TokenEOF}, s.fatal
	}

	tok := s.queue.ConsumeFront()
	tok = s.reclassify(tok)
	tok = s.classifySymbol(tok)

	s.afterColonColon = tok.Kind == TokenColonColon
	s.lastFinal = tok
	log.Debugf("tokenToBison %s", tok)

	if s.fatal != nil {
		return tok, s.fatal
	}
	return tok, nil
}

// Tokens drains the session up to and including EOF.
func (s *Session) Tokens() ([]Token, error) {
	var toks []Token
	for {
		tok, err := s.NextFinalToken()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}
