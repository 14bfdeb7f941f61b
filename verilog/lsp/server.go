// Package lsp serves token classifications and pipeline diagnostics to
// editors over the Language Server Protocol.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/svtok/verilog/parser"
	"github.com/dhamidi/svtok/verilog/workspace"
)

const lsName = "svtok"

var log = commonlog.GetLogger("svtok.lsp")

type Server struct {
	workspace *workspace.Workspace
	watcher   *workspace.Watcher
	handler   protocol.Handler
	server    *server.Server
	version   string
	opts      []parser.Option

	mu     sync.Mutex
	notify glsp.NotifyFunc
	open   map[string]string
}

// NewServer creates a server. opts apply to every document it tokenizes.
func NewServer(version string, opts ...parser.Option) *Server {
	ls := &Server{
		version: version,
		opts:    opts,
		open:    make(map[string]string),
	}

	ls.handler = protocol.Handler{
		Initialize:                     ls.initialize,
		Initialized:                    ls.initialized,
		Shutdown:                       ls.shutdown,
		SetTrace:                       ls.setTrace,
		TextDocumentDidOpen:            ls.textDocumentDidOpen,
		TextDocumentDidChange:          ls.textDocumentDidChange,
		TextDocumentDidClose:           ls.textDocumentDidClose,
		TextDocumentDidSave:            ls.textDocumentDidSave,
		TextDocumentSemanticTokensFull: ls.textDocumentSemanticTokensFull,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = workspace.New(rootDir, ls.opts...)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes:     legendTypes,
			TokenModifiers: []string{},
		},
		Full: true,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.mu.Lock()
	ls.notify = ctx.Notify
	ls.mu.Unlock()

	ls.watcher = workspace.NewWatcher(ls.workspace, ls.fileChanged)
	ls.watcher.Start()
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// fileChanged publishes fresh diagnostics for open documents the watcher
// re-tokenized from disk.
func (ls *Server) fileChanged(path string, f *workspace.File) {
	ls.mu.Lock()
	uri, open := ls.open[path]
	notify := ls.notify
	ls.mu.Unlock()

	if !open || f == nil || notify == nil {
		return
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, publishParams(uri, f))
}

func (ls *Server) update(ctx *glsp.Context, uri string, text []byte) {
	path, err := uriToPath(uri)
	if err != nil {
		log.Warningf("bad document URI %s: %s", uri, err)
		return
	}
	ls.mu.Lock()
	ls.open[path] = uri
	ls.mu.Unlock()

	f := ls.workspace.UpdateFile(path, text)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, publishParams(uri, f))
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.mu.Lock()
	delete(ls.open, path)
	ls.mu.Unlock()
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, []byte(*params.Text))
		return nil
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if err := ls.workspace.ScanFile(path); err != nil {
		log.Warningf("rescan %s: %s", path, err)
		return nil
	}
	if f := ls.workspace.GetFile(path); f != nil {
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, publishParams(params.TextDocument.URI, f))
	}
	return nil
}

func (ls *Server) textDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := ls.workspace.GetFile(path)
	if f == nil {
		return &protocol.SemanticTokens{Data: []protocol.UInteger{}}, nil
	}
	return &protocol.SemanticTokens{Data: EncodeSemanticTokens(f.Content, f.Tokens)}, nil
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
