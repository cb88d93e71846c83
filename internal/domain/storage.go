package domain

import (
	"context"
	"io"
)

// Хранилище PDF-блобов (MinIO/S3). Путь задаёт Note.StoragePath.
type BlobStorage interface {
	// Загрузка нового файла; ошибка, если путь уже занят (перезапись запрещена).
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	// Отдача целиком: поток, длина, content-type. Отсутствие → ErrNotFound.
	Download(ctx context.Context, path string) (io.ReadCloser, int64, string, error)
	Delete(ctx context.Context, path string) error
	Ping(ctx context.Context) error
}
