package interfaces

import (
	"context"

	"github.com/customeros/ingestgen/internal/models"
)

type BatchRepository interface {
	Create(ctx context.Context, batch *models.Batch) (string, error)
	GetByID(ctx context.Context, id string) (*models.Batch, error)
	Count(ctx context.Context) int
}
