// Package gcs 提供与 Google Cloud Storage 交互的基础设施封装。
package gcs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	loader "github.com/bionicotaku/lingo-services-admin/internal/infrastructure/config_loader"

	"cloud.google.com/go/storage"
	"github.com/go-kratos/kratos/v2/log"
)

const defaultUploadTimeout = 2 * time.Minute

// Store 基于 GCS Bucket 实现媒体对象的写入、删除与寻址。
type Store struct {
	bucket        *storage.BucketHandle
	bucketName    string
	publicBaseURL string
	uploadTimeout time.Duration
	log           *log.Helper
}

// Option 定义可选配置。
type Option func(*Store)

// WithUploadTimeout 覆盖单对象上传超时。
func WithUploadTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.uploadTimeout = d
		}
	}
}

// WithPublicBaseURL 覆盖对象公开访问的基础地址。
func WithPublicBaseURL(base string) Option {
	return func(s *Store) {
		if base != "" {
			s.publicBaseURL = strings.TrimRight(base, "/")
		}
	}
}

// NewStore 创建 Store 及其底层 GCS 客户端，返回 Wire cleanup。
func NewStore(ctx context.Context, cfg *loader.Storage, logger log.Logger, opts ...Option) (*Store, func(), error) {
	if cfg == nil || cfg.Bucket == "" {
		return nil, nil, errors.New("storage bucket is required (set GCS_BUCKET)")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("init gcs client: %w", err)
	}

	store := &Store{
		bucket:        client.Bucket(cfg.Bucket),
		bucketName:    cfg.Bucket,
		publicBaseURL: "https://storage.googleapis.com/" + cfg.Bucket,
		uploadTimeout: defaultUploadTimeout,
		log:           log.NewHelper(logger),
	}
	if base := strings.TrimRight(cfg.PublicBaseURL, "/"); base != "" {
		store.publicBaseURL = base
	}
	if d := cfg.UploadTimeout.AsDuration(); d > 0 {
		store.uploadTimeout = d
	}
	for _, opt := range opts {
		opt(store)
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			store.log.Warnf("closing gcs client failed: %v", err)
		}
	}
	return store, cleanup, nil
}

// Put 整体写入对象；重复写入同一路径直接覆盖，保证重试幂等。
func (s *Store) Put(ctx context.Context, path string, data []byte, contentType string) error {
	if path == "" {
		return errors.New("object path is required")
	}
	writeCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	w := s.bucket.Object(path).NewWriter(writeCtx)
	w.ContentType = contentType
	// 单次 PUT 提交，避免小对象走分块协议
	w.ChunkSize = 0

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("commit object %s: %w", path, err)
	}
	return nil
}

// Delete 删除对象；对象不存在视为成功。
func (s *Store) Delete(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("object path is required")
	}
	err := s.bucket.Object(path).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete object %s: %w", path, err)
	}
	return nil
}

// Exists 检查对象是否存在。
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.bucket.Object(path).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat object %s: %w", path, err)
	}
	return true, nil
}

// PublicURL 返回对象的公开访问地址。
func (s *Store) PublicURL(path string) string {
	if path == "" {
		return ""
	}
	return s.publicBaseURL + "/" + path
}
