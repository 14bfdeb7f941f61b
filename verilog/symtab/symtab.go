// Package symtab is an in-memory symbol table for the token pipeline. It
// models nested scopes, the std package and the translation unit.
package symtab

import (
	"strings"

	"github.com/dhamidi/svtok/verilog/fileline"
	"github.com/dhamidi/svtok/verilog/parser"
)

type Scope struct {
	name    string
	kind    parser.SymbolKind
	parent  *Scope
	symbols map[string]*Scope
}

func (s *Scope) ScopeName() string {
	if s.parent == nil || s.parent.parent == nil {
		return s.name
	}
	return s.parent.ScopeName() + "::" + s.name
}

func (s *Scope) Kind() parser.SymbolKind {
	return s.kind
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

// Lookup finds a direct child of s.
func (s *Scope) Lookup(name string) (*Scope, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Import records a package import applied to a scope.
type Import struct {
	Package string
	Item    string
	At      *fileline.FileLine
}

// Table implements parser.SymbolTable and parser.Unit.
type Table struct {
	root    *Scope
	current *Scope
	nextID  *Scope
	std     *Scope
	unit    *Scope
	imports []Import
	stdUsed bool
}

var stdClasses = []string{"mailbox", "process", "semaphore", "weak_reference"}
var stdFunctions = []string{"randomize"}

// New creates a table with $root, $unit and a loaded std package.
func New() *Table {
	root := &Scope{name: "$root", kind: parser.SymbolOther, symbols: make(map[string]*Scope)}
	t := &Table{root: root, current: root}
	t.unit = t.declareIn(root, "$unit", parser.SymbolPackage)
	t.std = t.declareIn(root, "std", parser.SymbolPackage)
	for _, name := range stdClasses {
		t.declareIn(t.std, name, parser.SymbolClass)
	}
	for _, name := range stdFunctions {
		t.declareIn(t.std, name, parser.SymbolOther)
	}
	return t
}

// NewWithoutStd creates a table without the std package.
func NewWithoutStd() *Table {
	t := New()
	delete(t.root.symbols, "std")
	t.std = nil
	return t
}

func (t *Table) declareIn(scope *Scope, name string, kind parser.SymbolKind) *Scope {
	sym := &Scope{name: name, kind: kind, parent: scope, symbols: make(map[string]*Scope)}
	scope.symbols[name] = sym
	return sym
}

func (t *Table) Root() *Scope { return t.root }

// Declare adds name to the current scope and returns its scope node.
// Redeclaring replaces, so a forward typedef can become a class.
func (t *Table) Declare(name string, kind parser.SymbolKind) *Scope {
	return t.declareIn(t.current, name, kind)
}

// Push enters the scope declared as name in the current scope, declaring
// it first if needed. A forward typedef takes the kind of its definition.
func (t *Table) Push(name string, kind parser.SymbolKind) *Scope {
	sym, ok := t.current.Lookup(name)
	if !ok {
		sym = t.Declare(name, kind)
	} else if sym.kind == parser.SymbolTypeFwd {
		sym.kind = kind
	}
	t.current = sym
	return sym
}

// Pop leaves the current scope. Popping the root does nothing.
func (t *Table) Pop() {
	if t.current.parent != nil {
		t.current = t.current.parent
	}
}

// Resolve finds a scope by a "::"-separated path from the root.
func (t *Table) Resolve(path string) (*Scope, bool) {
	sc := t.root
	for _, part := range strings.Split(path, "::") {
		next, ok := sc.Lookup(part)
		if !ok {
			return nil, false
		}
		sc = next
	}
	return sc, true
}

// SetNextID forces the next identifier lookup under scope. The grammar
// does this right after consuming "scope::".
func (t *Table) SetNextID(scope *Scope) {
	t.nextID = scope
}

func (t *Table) TakePendingScopedRoot() (parser.Scope, bool) {
	if t.nextID == nil {
		return nil, false
	}
	sc := t.nextID
	t.nextID = nil
	return sc, true
}

func (t *Table) CurrentScope() parser.Scope {
	return t.current
}

func (t *Table) StdPackage() (parser.Scope, bool) {
	if t.std == nil {
		return nil, false
	}
	return t.std, true
}

func (t *Table) FindFlatUnder(scope parser.Scope, name string) parser.LookupResult {
	sc, ok := scope.(*Scope)
	if !ok || sc == nil {
		return parser.LookupResult{}
	}
	if sym, ok := sc.Lookup(name); ok {
		return result(sym)
	}
	return parser.LookupResult{}
}

func (t *Table) FindWithFallback(scope parser.Scope, name string) parser.LookupResult {
	sc, ok := scope.(*Scope)
	if !ok {
		return parser.LookupResult{}
	}
	for ; sc != nil; sc = sc.parent {
		if sym, ok := sc.Lookup(name); ok {
			return result(sym)
		}
		if sc == t.root {
			if r := t.findImported(name); r.Found() {
				return r
			}
		}
	}
	return parser.LookupResult{}
}

// findImported resolves name through wildcard imports of $unit.
func (t *Table) findImported(name string) parser.LookupResult {
	for _, imp := range t.imports {
		pkg, ok := t.root.Lookup(imp.Package)
		if !ok || (imp.Item != "*" && imp.Item != name) {
			continue
		}
		if sym, ok := pkg.Lookup(name); ok {
			return result(sym)
		}
	}
	return parser.LookupResult{}
}

func result(sym *Scope) parser.LookupResult {
	return parser.LookupResult{Kind: sym.kind, Name: sym.name, Node: sym}
}

func (t *Table) UsesStdPackage() bool {
	return t.stdUsed
}

func (t *Table) MarkStdPackageUsed() {
	t.stdUsed = true
}

func (t *Table) SpliceStdImport(at *fileline.FileLine) {
	t.imports = append(t.imports, Import{Package: "std", Item: "*", At: at})
	t.stdUsed = true
}

// Import makes pkg::item, or every name of pkg for "*", visible in the
// translation unit.
func (t *Table) Import(pkg, item string, at *fileline.FileLine) {
	t.imports = append(t.imports, Import{Package: pkg, Item: item, At: at})
	if pkg == "std" {
		t.stdUsed = true
	}
}

// Imports lists the imports added to the translation unit.
func (t *Table) Imports() []Import {
	return t.imports
}
