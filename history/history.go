// history
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const FileName = "history"

// ReadingHistory key is the base filename of book, value is the first line of the last shown page.
// Lines survive a change of lines per page, page numbers don't.
type ReadingHistory struct {
	mux   *sync.RWMutex
	path  string
	lines map[string]int
}

func New(path string) *ReadingHistory {
	return &ReadingHistory{
		mux:   new(sync.RWMutex),
		path:  path,
		lines: make(map[string]int),
	}
}

// Open loads the history at path, a missing file gives an empty history
func Open(path string) (*ReadingHistory, error) {
	h := New(path)
	err := h.Load()
	if os.IsNotExist(err) {
		err = nil
	}
	return h, err
}

func (h *ReadingHistory) Update(book string, startLine int) {
	h.mux.Lock()
	defer h.mux.Unlock()
	h.lines[book] = startLine
}

func (h *ReadingHistory) GetStartLine(book string) int {
	h.mux.RLock()
	defer h.mux.RUnlock()
	if line, ok := h.lines[book]; ok {
		return line
	}
	return 0
}

func (h *ReadingHistory) Save() error {
	h.mux.RLock()
	buf, err := json.MarshalIndent(h.lines, "", "  ")
	h.mux.RUnlock()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(h.path, buf, 0644)
}

func (h *ReadingHistory) Load() error {
	buf, err := os.ReadFile(h.path)
	if err != nil {
		return err
	}
	lines := make(map[string]int)
	if err := json.Unmarshal(buf, &lines); err != nil {
		return err
	}
	h.mux.Lock()
	h.lines = lines
	h.mux.Unlock()
	return nil
}
