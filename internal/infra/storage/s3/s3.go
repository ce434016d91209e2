package s3

import (
	"context"
	"errors"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/matlycreative/sample-gate/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

type Storage struct {
	cl     *minio.Client
	bucket string
	log    *log.Logger
}

func New(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, log: logger}, nil
}

// Stat возвращает метаданные объекта (HEAD).
func (s *Storage) Stat(ctx context.Context, key string) (domain.ObjectInfo, error) {
	info, err := s.cl.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return domain.ObjectInfo{}, mapErr(err)
	}
	return domain.ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}, nil
}

// Open открывает поток чтения. start/end — включительные границы,
// start < 0 — весь объект. Диапазон запрашивается у бэкенда,
// объект целиком в память не попадает никогда.
func (s *Storage) Open(ctx context.Context, key string, start, end int64) (io.ReadCloser, error) {
	opts := minio.GetObjectOptions{}
	if start >= 0 {
		if err := opts.SetRange(start, end); err != nil {
			return nil, err
		}
	}
	obj, err := s.cl.GetObject(ctx, s.bucket, key, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	// GetObject ленивый: ошибка "нет объекта" всплывает на первом чтении.
	// Дёргаем Stat по хэндлу, чтобы отдать ErrNotFound сразу.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, mapErr(err)
	}
	return obj, nil
}

func (s *Storage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.cl.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if errors.Is(mapErr(err), domain.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *Storage) List(ctx context.Context, prefix string, max int) ([]string, error) {
	lctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var keys []string
	for obj := range s.cl.ListObjects(lctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, obj.Key)
		if max > 0 && len(keys) >= max {
			break // cancel остановит листинг
		}
	}
	return keys, nil
}

func (s *Storage) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := s.cl.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", mapErr(err)
	}
	return u.String(), nil
}

func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.cl.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	return s.cl.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *Storage) Ping(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		s.log.Printf("ping failed: %v", err)
		return err
	}
	if !ok {
		s.log.Printf("ping: bucket %q is missing", s.bucket)
		return errors.New("bucket does not exist")
	}
	return nil
}

// mapErr переводит minio-ошибки в доменные.
func mapErr(err error) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NotFound", "NoSuchBucket":
		return domain.ErrNotFound
	}
	return err
}
