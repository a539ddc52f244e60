// Package sink provides output destinations for generated source files.
package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// OutputSink receives generated file content. Implementations must be
// safe for concurrent calls: independent compilation units may generate
// in parallel.
type OutputSink interface {
	// WriteFile writes content to a relative path; the sink determines
	// the actual location.
	WriteFile(path string, content []byte) error
}

// FilesystemSink writes to a directory on the local filesystem. Writes
// are atomic: content lands in a temp file that is renamed into place.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default 0644).
	Mode os.FileMode
}

// NewFilesystemSink creates a FilesystemSink rooted at dir.
func NewFilesystemSink(dir string) *FilesystemSink {
	return &FilesystemSink{Root: dir, Mode: 0644}
}

// WriteFile writes content to path within the root directory, creating
// parent directories as needed.
func (s *FilesystemSink) WriteFile(path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	full := filepath.Join(s.Root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}
	tmp, err := os.CreateTemp(filepath.Dir(full), ".tsgen-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(tmpPath)
		if writeErr != nil {
			return fmt.Errorf("write temp file: %w", writeErr)
		}
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("set file mode: %w", err)
	}
	if err := os.Rename(tmpPath, full); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// MemorySink stores generated files in memory, for tests and dry runs.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under path.
func (s *MemorySink) WriteFile(path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	dup := make([]byte, len(content))
	copy(dup, content)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = dup
	return nil
}

// Get returns the content of a single file, or nil if not written.
func (s *MemorySink) Get(path string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[path]
	if !ok {
		return nil
	}
	dup := make([]byte, len(content))
	copy(dup, content)
	return dup
}

// Paths returns the written paths in no particular order.
func (s *MemorySink) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.files))
	for p := range s.files {
		out = append(out, p)
	}
	return out
}

// ValidatePath checks that a path is relative, clean, and free of
// traversal components.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) {
		return errors.New("absolute paths not allowed")
	}
	if strings.Contains(path, "..") {
		return errors.New("path traversal not allowed")
	}
	if cleaned := filepath.Clean(filepath.ToSlash(path)); cleaned != filepath.ToSlash(path) {
		return fmt.Errorf("path is not clean (expected %q)", cleaned)
	}
	return nil
}
