package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
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

// Storage — PDF-блобы в S3/MinIO. Путь объекта приходит из Note.StoragePath.
type Storage struct {
	cl     *minio.Client
	bucket string
	logger *log.Logger
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

	s := &Storage{cl: cl, bucket: cfg.Bucket, logger: logger}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) ensureBucket(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket check: %w", err)
	}
	if ok {
		return nil
	}
	s.logger.Printf("bucket %q missing, creating", s.bucket)
	return s.cl.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

// Upload кладёт объект по заданному пути; занятый путь — ошибка,
// перезапись загруженных конспектов запрещена.
func (s *Storage) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	if _, err := s.cl.StatObject(ctx, s.bucket, path, minio.StatObjectOptions{}); err == nil {
		s.logger.Printf("upload rejected, object exists: %s", path)
		return fmt.Errorf("object %q already exists", path)
	} else if !isNotFound(err) {
		return fmt.Errorf("stat before upload: %w", err)
	}

	info, err := s.cl.PutObject(ctx, s.bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	s.logger.Printf("uploaded %s size=%d", path, info.Size)
	return nil
}

// Download отдаёт объект целиком: поток, длину и content-type.
// Стриминг диапазонов этому слою не нужен — конспект читается одним куском.
func (s *Storage) Download(ctx context.Context, path string) (io.ReadCloser, int64, string, error) {
	info, err := s.cl.StatObject(ctx, s.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, 0, "", domain.ErrNotFound
		}
		return nil, 0, "", fmt.Errorf("stat object: %w", err)
	}

	obj, err := s.cl.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, "", fmt.Errorf("get object: %w", err)
	}
	return obj, info.Size, info.ContentType, nil
}

func (s *Storage) Delete(ctx context.Context, path string) error {
	return s.cl.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
}

func (s *Storage) Ping(ctx context.Context) error {
	_, err := s.cl.BucketExists(ctx, s.bucket)
	return err
}

func isNotFound(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey" || resp.Code == "NotFound"
	}
	return false
}
