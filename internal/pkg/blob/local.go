package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned for local paths that are absolute or climb out
// of the store's root.
var ErrOutsideRoot = errors.New("path is outside the data root")

// LocalStore reads and writes files on the local filesystem. A store created
// with NewRootedLocalStore only touches files below its root, symlinks
// included.
type LocalStore struct {
	root string
	dir  *os.Root
}

// NewLocalStore creates a LocalStore that accepts any path.
func NewLocalStore() *LocalStore {
	return &LocalStore{}
}

// NewRootedLocalStore creates a LocalStore confined to root. URIs are taken
// relative to root.
func NewRootedLocalStore(root string) (*LocalStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("%w: empty data root", ErrInvalidURI)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve data root %s: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create data root %s: %w", abs, err)
	}
	dir, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("open data root %s: %w", abs, err)
	}
	return &LocalStore{root: abs, dir: dir}, nil
}

// Close releases the data root. It is a no-op for unconfined stores.
func (s *LocalStore) Close() error {
	if s.dir == nil {
		return nil
	}
	return s.dir.Close()
}

// Root returns the directory the store is confined to, or "" when unconfined.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Read(ctx context.Context, uri string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.readFile(uri)
	if errors.Is(err, ErrInvalidURI) {
		return nil, err
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uri)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}
	return data, nil
}

func (s *LocalStore) readFile(uri string) ([]byte, error) {
	if s.dir == nil {
		return os.ReadFile(localPath(uri))
	}
	rel, err := RelativePath(uri)
	if err != nil {
		return nil, err
	}
	return s.dir.ReadFile(rel)
}

// Write replaces the file at uri, creating parent directories as needed.
func (s *LocalStore) Write(ctx context.Context, uri string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.dir == nil {
		path := localPath(uri)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create directory for %s: %w", uri, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", uri, err)
		}
		return nil
	}

	rel, err := RelativePath(uri)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(rel); dir != "." {
		if err := s.dir.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", uri, err)
		}
	}
	if err := s.dir.WriteFile(rel, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", uri, err)
	}
	return nil
}

// RelativePath cleans a local uri and checks that it stays below whatever
// directory it is resolved against: absolute paths and paths that climb with
// ".." are rejected.
func RelativePath(uri string) (string, error) {
	raw := localPath(uri)
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidURI)
	}

	p := filepath.Clean(filepath.FromSlash(raw))
	if filepath.IsAbs(p) || strings.HasPrefix(raw, "/") || filepath.VolumeName(p) != "" {
		return "", fmt.Errorf("%w: %w: %s", ErrInvalidURI, ErrOutsideRoot, uri)
	}
	if p == ".." || strings.HasPrefix(p, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %w: %s", ErrInvalidURI, ErrOutsideRoot, uri)
	}
	return p, nil
}

func localPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
