package parser

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("svtok.parser")

// The scanners below look ahead through a Queue without consuming. Each
// returns the position just past the structure it recognizes, or the
// position it was given when the structure is absent. Running into EOF
// inside a structure is a miss; the grammar reports the real error.

// BracketScan matches zero or more consecutive balanced [...] groups.
func BracketScan(q *Queue, depthIn int) int {
	depth := depthIn
	bra := 0
	for q.Peek(depth).Kind == TokenLBracket {
		for {
			switch q.Peek(depth).Kind {
			case TokenEOF:
				log.Debugf("BracketScan hit EOF; probably a syntax error to come")
				return depthIn
			case TokenLBracket:
				bra++
			case TokenRBracket:
				bra--
			}
			depth++
			if bra == 0 {
				break
			}
		}
	}
	return depth
}

// ParamGroupScan matches a parameter value assignment: '#' followed by a
// balanced (...) group. When forCell is set, the legacy short form of '#'
// followed by a single number or identifier is accepted too.
func ParamGroupScan(q *Queue, depthIn int, forCell bool) int {
	depth := depthIn
	if q.Peek(depth).Kind != TokenHash {
		return depthIn
	}
	depth++

	if q.Peek(depth).Kind != TokenLParen {
		if !forCell {
			return depthIn
		}
		switch q.Peek(depth).Kind {
		case TokenIntNum, TokenFloatNum, TokenTimeNum, TokenIdent:
			return depth + 1
		}
		return depthIn
	}

	end, ok := parenGroup(q, depth)
	if !ok {
		log.Debugf("ParamGroupScan hit EOF; probably a syntax error to come")
		return depthIn
	}
	return end
}

// TypeRefGroupScan expects an opening '(' at depth and returns the
// position past its matching ')'.
func TypeRefGroupScan(q *Queue, depth int) int {
	if q.Peek(depth).Kind != TokenLParen {
		return depth
	}
	end, ok := parenGroup(q, depth)
	if !ok {
		log.Debugf("TypeRefGroupScan hit EOF; probably a syntax error to come")
		return depth
	}
	return end
}

// CellScan matches the start of a module, interface or program
// instantiation following a type identifier:
//
//	[ '#' '(' ... ')' | '#' number|id ] id [ '[' ... ']' ]* '('
//
// It returns the position of the '('.
func CellScan(q *Queue, depthIn int) int {
	depth := ParamGroupScan(q, depthIn, true)
	if q.Peek(depth).Kind != TokenIdent {
		return depthIn
	}
	depth++

	depth = BracketScan(q, depth)
	if q.Peek(depth).Kind != TokenLParen {
		return depthIn
	}
	return depth
}

// parenGroup scans a balanced group starting at the '(' at depth.
func parenGroup(q *Queue, depth int) (int, bool) {
	parens := 0
	for {
		switch q.Peek(depth).Kind {
		case TokenEOF:
			return depth, false
		case TokenLParen:
			parens++
		case TokenRParen:
			parens--
		}
		depth++
		if parens == 0 {
			return depth, true
		}
	}
}
