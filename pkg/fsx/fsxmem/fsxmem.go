// Package fsxmem is an in-process fsx.FileSystem used in development and tests
package fsxmem

import (
	"bytes"
	"context"
	"io"
	"path"
	"slices"
	"sort"
	"sync"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/fsx"
)

type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
}

var _ fsx.FileSystem = (*FileSystem)(nil)

func New() *FileSystem {
	return &FileSystem{files: make(map[string][]byte)}
}

func (f *FileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

func (f *FileSystem) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[clean(name)] = slices.Clone(data)
	return nil
}

func (f *FileSystem) WriteFileStream(ctx context.Context, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errx.Wrap(err, "read upload stream", errx.TypeInternal)
	}
	return f.WriteFile(ctx, name, data)
}

func (f *FileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	data, ok := f.files[clean(name)]
	if !ok {
		return nil, fsx.ErrFileNotFound().WithDetail("path", name)
	}
	return slices.Clone(data), nil
}

func (f *FileSystem) ReadFileStream(ctx context.Context, name string) (io.ReadCloser, error) {
	data, err := f.ReadFile(ctx, name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *FileSystem) DeleteFile(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, clean(name))
	return nil
}

// List returns stored paths with the given prefix, sorted
func (f *FileSystem) List(prefix string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []string
	for k := range f.files {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func clean(name string) string {
	return path.Clean("/" + name)[1:]
}
