package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/Rakhulsr/rainy-catalog/app/helpers"
	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/pkg/errors"
)

// MaxImageSize caps uploaded images.
const MaxImageSize = 10 << 20

var (
	ErrNotAnImage    = errors.New("uploaded file is not a supported image")
	ErrImageTooLarge = fmt.Errorf("image exceeds %d bytes", MaxImageSize)
)

// Storage persists uploaded assets. Names are relative paths such as
// "products/main_images/<uuid>.jpg"; URL turns one into a public reference,
// either absolute or rooted at the media prefix.
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, name string) error
	URL(name string) string
}

// SaveImageUpload sniffs the uploaded file, stores it under prefix with a
// random name and returns the stored relative path.
func SaveImageUpload(ctx context.Context, store Storage, prefix string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxImageSize {
		return "", ErrImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", errors.Wrapf(err, "open upload %q", fh.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return "", errors.Wrapf(err, "read upload %q", fh.Filename)
	}
	return SaveImage(ctx, store, prefix, data)
}

func SaveImage(ctx context.Context, store Storage, prefix string, data []byte) (string, error) {
	if len(data) > MaxImageSize {
		return "", ErrImageTooLarge
	}
	if !filetype.IsImage(data) {
		return "", ErrNotAnImage
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "", ErrNotAnImage
	}

	name := strings.TrimSuffix(prefix, "/") + "/" + uuid.NewString() + "." + kind.Extension
	if err := store.Save(ctx, name, bytes.NewReader(data), int64(len(data)), kind.MIME.Value); err != nil {
		return "", err
	}
	return name, nil
}

// AssetURLs binds store to a request base URL so stored paths resolve to
// absolute URLs.
func AssetURLs(store Storage, base string) func(string) string {
	return func(name string) string {
		ref := store.URL(name)
		if ref == "" {
			return ""
		}
		return helpers.AbsoluteURL(base, ref)
	}
}
