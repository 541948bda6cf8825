// Package source reads exported SMS inboxes into RawMessages.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/smsledger/internal/model"
)

// Parser converts an SMS export file into RawMessages.
type Parser interface {
	Parse(r io.Reader) ([]model.RawMessage, error)
	Format() string
	Extension() string // including the dot, e.g. ".xml"
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes an export file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// ForFile picks a parser by file extension, falling back to the parser
// for fallbackFormat.
func (r *Registry) ForFile(name, fallbackFormat string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(name))
	for _, format := range r.Formats() {
		if p := r.parsers[format]; p.Extension() == ext {
			return p, nil
		}
	}
	if p := r.Get(fallbackFormat); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("no parser for %s (format %q)", name, fallbackFormat)
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&BackupParser{})
	r.Register(&JSONParser{})
	return r
}

// ReadFile parses the file at path with p.
func ReadFile(p Parser, path string) ([]model.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	msgs, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return msgs, nil
}

// ImportDir is the subdirectory for SMS export files.
const ImportDir = "import"

// ProcessedDir is the subdirectory for processed export files.
const ProcessedDir = "import/processed"

// Scan returns export files in <root>/import/ whose extension some parser
// in reg handles.
func Scan(root string, reg *Registry) ([]FileInfo, error) {
	dir := filepath.Join(root, ImportDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	exts := make(map[string]bool)
	for _, format := range reg.Formats() {
		exts[reg.Get(format).Extension()] = true
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !exts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, ImportDir, fileName)
	dstDir := filepath.Join(root, ProcessedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
