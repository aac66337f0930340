package media

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalStorage keeps files under Root and serves them below BaseURL.
type LocalStorage struct {
	Root    string
	BaseURL string
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	if baseURL == "" {
		baseURL = "/media/"
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStorage{Root: root, BaseURL: baseURL}
}

func (s *LocalStorage) fullPath(name string) (string, error) {
	clean := path.Clean("/" + name)
	if clean == "/" {
		return "", errors.Errorf("invalid media name %q", name)
	}
	return filepath.Join(s.Root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (s *LocalStorage) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	full, err := s.fullPath(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.Wrapf(err, "create media directory for %q", name)
	}
	f, err := os.Create(full)
	if err != nil {
		return errors.Wrapf(err, "create media file %q", name)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return errors.Wrapf(err, "write media file %q", name)
	}
	return nil
}

func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	full, err := s.fullPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete media file %q", name)
	}
	return nil
}

func (s *LocalStorage) URL(name string) string {
	if name == "" {
		return ""
	}
	return s.BaseURL + strings.TrimPrefix(name, "/")
}
