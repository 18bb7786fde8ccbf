package interfaces

import (
	"context"

	"github.com/customeros/ingestgen/dto"
)

type IngestService interface {
	SendBatch(ctx context.Context, batch string) (*dto.UploadResponse, error)
	GetFailures(ctx context.Context, batchID string) (*dto.FailuresResponse, error)
	GetDocumentation(ctx context.Context) (*dto.DocumentationResponse, error)
}
