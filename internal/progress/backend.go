package progress

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/aperture/internal/store"
)

const (
	EngineSQLite = "sqlite"
	EngineJSON   = "json"
)

// KVBackend stores the progress document as a single record in a KVRepo.
type KVBackend struct {
	repo      store.KVRepo
	namespace string
}

// NewKVBackend creates a backend keyed by namespace. An empty namespace
// uses DefaultNamespace.
func NewKVBackend(repo store.KVRepo, namespace string) *KVBackend {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &KVBackend{repo: repo, namespace: namespace}
}

func (b *KVBackend) Read(ctx context.Context) ([]byte, error) {
	data, err := b.repo.Get(ctx, b.namespace)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return data, err
}

func (b *KVBackend) Write(ctx context.Context, data []byte) error {
	return b.repo.Put(ctx, b.namespace, data)
}

// FileBackend stores the progress document as a JSON file.
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend writing to path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// Write replaces the file via a temp file and rename so a failed write never
// truncates the previous document.
func (b *FileBackend) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// OpenBackend selects a backend by engine name. The sqlite engine needs kv;
// the json engine needs path.
func OpenBackend(engine string, kv store.KVRepo, path string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineSQLite:
		if kv == nil {
			return nil, errors.New("sqlite progress engine requires a store")
		}
		return NewKVBackend(kv, DefaultNamespace), nil
	case EngineJSON:
		if path == "" {
			return nil, errors.New("json progress engine requires a file path")
		}
		return NewFileBackend(path), nil
	default:
		return nil, fmt.Errorf("unsupported progress engine: %q", engine)
	}
}
