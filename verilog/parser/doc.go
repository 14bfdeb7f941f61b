// Package parser turns preprocessed SystemVerilog text into the token
// stream a grammar consumes, with identifiers and context-dependent
// keywords already disambiguated.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Lexer     │────▶│   Queue     │────▶│ reclassify  │────▶│  classify   │
//	│ (raw toks)  │     │ (lookahead) │     │ (refinement)│     │  (symbols)  │
//	└─────────────┘     └─────────────┘     └─────────────┘     └─────────────┘
//	       │                                                          │
//	       ▼                                                          ▼
//	┌─────────────┐                                            ┌─────────────┐
//	│  fileline   │                                            │ SymbolTable │
//	│   Stack     │                                            │    Unit     │
//	└─────────────┘                                            └─────────────┘
//
// # Tokens
//
// The Lexer reads raw tokens and reports `line directives, `timescale and
// /*verilator*/ control comments back to its Host, which is the Session.
// Every token carries a Kind, a physical Span and a snapshot of the
// logical file location in Loc.
//
// # Refinement
//
// Some tokens mean different things depending on what follows. Before a
// token is handed out, the Session looks ahead through the Queue:
//
//	foo bar (        foo names a cell:        Identifier__cell
//	foo #(8) bar (   the same, with parameters
//	pkg::x           pkg is a scope qualifier: Identifier__coloncolon
//	c #(8)::x        the same, with parameters
//	virtual class    virtual__class
//
// The bracket, parameter and type-reference scanners skip balanced groups
// so that the token after them can be examined. The result is a
// Refinement, and Token.Terminal joins it to the Kind as the terminal
// name a grammar matches on.
//
// # Symbols
//
// Plain identifiers are looked up in the SymbolTable so that type names
// and class names become Identifier__type. A name found only in the std
// package splices "import std::*" into the Unit once. An undeclared
// package or class qualifier warns with PKGNODECL once per run.
//
// # Example Usage
//
//	s := parser.New(src, parser.WithFile("top.sv"), parser.WithSymbols(table))
//	for {
//	    tok, err := s.NextFinalToken()
//	    if err != nil {
//	        return err
//	    }
//	    if tok.Kind == parser.TokenEOF {
//	        break
//	    }
//	    fmt.Println(tok)
//	}
//
// Internal invariant violations end the session with a *diag.FatalError.
package parser
