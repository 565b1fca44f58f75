package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/Practicas-api/internal/application/ports"
)

var _ ports.FileStorage = (*Local)(nil)

// Local guarda archivos bajo un directorio raíz.
type Local struct {
	root string
	now  func() time.Time
}

// NewLocal crea la raíz si no existe.
func NewLocal(root string) (*Local, error) {
	if root == "" {
		root = "./media"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage local: %w", err)
	}
	return &Local{root: root, now: time.Now}, nil
}

func (s *Local) full(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

func (s *Local) Save(ctx context.Context, folder, name string, r io.Reader) (*ports.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := objectKey(folder, name, s.now())
	dst := s.full(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("storage local: %w", err)
	}
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("storage local: %w", err)
	}
	hr := newHashingReader(r)
	if _, err := io.Copy(f, hr); err != nil {
		f.Close()
		os.Remove(dst)
		return nil, fmt.Errorf("storage local: copiar: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("storage local: %w", err)
	}
	return hr.result(key), nil
}

func (s *Local) Open(_ context.Context, p string) (io.ReadCloser, error) {
	key, err := cleanKey(p)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(s.full(key))
	if err != nil {
		return nil, fmt.Errorf("storage local: %w", err)
	}
	return f, nil
}

// Delete no falla si el archivo ya no existe.
func (s *Local) Delete(_ context.Context, p string) error {
	key, err := cleanKey(p)
	if err != nil {
		return err
	}
	if err := os.Remove(s.full(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage local: %w", err)
	}
	return nil
}
