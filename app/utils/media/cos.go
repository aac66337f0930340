package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/tencentyun/cos-go-sdk-v5"
	"go.uber.org/zap"
)

type COSConfig struct {
	BucketURL string
	PublicURL string
	SecretID  string
	SecretKey string
}

// COSStorage stores media in a Tencent COS bucket. Object keys equal the
// relative media names, so rows stay portable between drivers.
type COSStorage struct {
	client     *cos.Client
	publicBase *url.URL
	logger     *zap.Logger
}

func NewCOSStorage(cfg COSConfig, logger *zap.Logger) (*COSStorage, error) {
	if cfg.BucketURL == "" || cfg.SecretID == "" || cfg.SecretKey == "" {
		return nil, errors.New("cos storage requires COS_BUCKET_URL, COS_SECRET_ID and COS_SECRET_KEY")
	}
	bucketURL, err := url.Parse(cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parse COS bucket url %q", cfg.BucketURL)
	}
	publicBase := bucketURL
	if cfg.PublicURL != "" {
		publicBase, err = url.Parse(cfg.PublicURL)
		if err != nil {
			return nil, errors.Wrapf(err, "parse COS public url %q", cfg.PublicURL)
		}
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
		},
	})
	logger.Info("COS media storage initialized",
		zap.String("bucket", bucketURL.String()),
		zap.String("public_base", publicBase.String()))

	return &COSStorage{client: client, publicBase: publicBase, logger: logger}, nil
}

func (s *COSStorage) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	opts := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType:   contentType,
			ContentLength: size,
		},
	}
	resp, err := s.client.Object.Put(ctx, name, r, opts)
	if err != nil {
		s.logger.Error("COSStorage.Save: upload failed", zap.String("key", name), zap.Error(err))
		return errors.Wrapf(err, "upload %q to COS", name)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload %q to COS: status %d: %s", name, resp.StatusCode, string(body))
	}
	return nil
}

func (s *COSStorage) Delete(ctx context.Context, name string) error {
	resp, err := s.client.Object.Delete(ctx, name)
	if err != nil {
		s.logger.Error("COSStorage.Delete: delete failed", zap.String("key", name), zap.Error(err))
		return errors.Wrapf(err, "delete %q from COS", name)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete %q from COS: status %d: %s", name, resp.StatusCode, string(body))
	}
	return nil
}

func (s *COSStorage) URL(name string) string {
	if name == "" {
		return ""
	}
	u := *s.publicBase
	basePath := u.Path
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	u.Path = basePath + strings.TrimPrefix(name, "/")
	return u.String()
}
