// Package workspace keeps the token streams and diagnostics of a tree of
// SystemVerilog sources up to date.
package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/svtok/diag"
	"github.com/dhamidi/svtok/verilog/parser"
	"github.com/dhamidi/svtok/verilog/symtab"
)

var log = commonlog.GetLogger("svtok.workspace")

var sourceExts = map[string]bool{
	".sv":  true,
	".svh": true,
	".v":   true,
	".vh":  true,
}

// IsSource reports whether path names a SystemVerilog or Verilog file.
func IsSource(path string) bool {
	return sourceExts[filepath.Ext(path)]
}

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	opts    []parser.Option
	files   map[string]*File
}

// File is the result of running one source through the token pipeline.
type File struct {
	Path        string
	Content     []byte
	Tokens      []parser.Token
	Diagnostics []diag.Diagnostic
	Imports     []symtab.Import

	// TimeUnit is the compilation unit's time unit after the whole file:
	// the last `timescale, else a top-level timeunit.
	TimeUnit        parser.Timescale
	TimePrecision   parser.Timescale
	ModuleTimeUnits map[string]parser.Timescale

	// Err is set when the pipeline stopped early on an internal error.
	Err error
}

// New creates a workspace rooted at rootDir. opts apply to every file.
func New(rootDir string, opts ...parser.Option) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		opts:    opts,
		files:   make(map[string]*File),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if IsSource(path) {
			w.ScanFile(path)
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile re-tokenizes path from content and returns the new result.
func (w *Workspace) UpdateFile(path string, content []byte) *File {
	f := Tokenize(path, content, w.opts...)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = f
	return f
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Paths lists the known files in lexical order.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Tokenize runs content through a fresh session with its own symbol
// table. Declarations seen earlier in the file are visible to later
// identifiers.
func Tokenize(path string, content []byte, opts ...parser.Option) *File {
	collector := diag.NewCollector()
	table := symtab.New()

	all := append([]parser.Option{parser.WithFile(path)}, opts...)
	all = append(all,
		parser.WithReporter(collector),
		parser.WithSymbols(table),
		parser.WithUnit(table),
	)
	s := parser.New(content, all...)
	tracker := symtab.NewTracker(table)
	tracker.SetTimescaleSink(s)

	f := &File{Path: path, Content: content}
	for {
		tok, err := s.NextFinalToken()
		if err != nil {
			log.Errorf("%s: %s", path, err)
			f.Err = err
			break
		}
		tracker.Observe(tok)
		f.Tokens = append(f.Tokens, tok)
		if tok.Kind == parser.TokenEOF {
			break
		}
	}
	f.Diagnostics = collector.Diagnostics()
	f.Imports = table.Imports()
	f.TimeUnit = s.TimeUnit("")
	f.TimePrecision = s.TimePrecision()
	f.ModuleTimeUnits = s.ModuleTimeUnits()
	log.Debugf("%s: %d tokens, %d diagnostics", path, len(f.Tokens), len(f.Diagnostics))
	return f
}

// Failed reports whether the file produced errors or warnings.
func (f *File) Failed() bool {
	return f.Err != nil || len(f.Diagnostics) > 0
}
