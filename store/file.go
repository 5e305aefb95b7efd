package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"gopkg.in/yaml.v3"
)

// File keeps the tree as a YAML document, xz compressed when the path ends
// in ".xz". Saves go through a temp file and a rename so a crash never
// leaves half a save behind.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Path() string { return f.path }

func (f *File) compressed() bool {
	return strings.HasSuffix(strings.ToLower(f.path), ".xz")
}

func (f *File) Save(_ context.Context, root *Node) error {
	data, err := yaml.Marshal(root)
	if err != nil {
		return fmt.Errorf("marshal save: %w", err)
	}
	if f.compressed() {
		var buf bytes.Buffer
		w, err := xz.NewWriter(&buf)
		if err != nil {
			return fmt.Errorf("compress save: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("compress save: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("compress save: %w", err)
		}
		data = buf.Bytes()
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close save: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}

func (f *File) Load(_ context.Context) (*Node, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read save: %w", err)
	}
	if f.compressed() {
		r, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decompress save %s: %w", f.path, err)
		}
		if data, err = io.ReadAll(r); err != nil {
			return nil, fmt.Errorf("decompress save %s: %w", f.path, err)
		}
	}

	var root Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse save %s: %w", f.path, err)
	}
	return &root, nil
}

func (f *File) Close() error { return nil }
