package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Watcher polls the workspace root and re-tokenizes changed sources.
type Watcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     func(path string, f *File)
}

// NewWatcher creates a watcher. onChange, if not nil, is called after a
// file was re-tokenized, and with a nil File after it was removed.
func NewWatcher(w *Workspace, onChange func(path string, f *File)) *Watcher {
	return &Watcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
		onChange:     onChange,
	}
}

func (w *Watcher) Start() {
	go w.run()
}

func (w *Watcher) Stop() {
	close(w.stopCh)
}

func (w *Watcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *Watcher) scan() {
	currentFiles := make(map[string]bool)

	filepath.Walk(w.workspace.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.workspace.RootDir() && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsSource(path) {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			content, err := os.ReadFile(path)
			if err != nil {
				log.Warningf("read %s: %s", path, err)
				return nil
			}
			f := w.workspace.UpdateFile(path, content)
			if w.onChange != nil {
				w.onChange(path, f)
			}
		}
		return nil
	})

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.workspace.RemoveFile(path)
			if w.onChange != nil {
				w.onChange(path, nil)
			}
		}
	}
}
