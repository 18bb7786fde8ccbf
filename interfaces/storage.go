package interfaces

import "context"

type StorageService interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// ArchiveService keeps a copy of every uploaded batch in object storage.
type ArchiveService interface {
	ArchiveBatch(ctx context.Context, scenario, batch string) (string, error)
}
