package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/ingestgen/interfaces"
	"github.com/customeros/ingestgen/internal/models"
	"github.com/customeros/ingestgen/internal/tracing"
)

// batchRepository keeps sink batches in memory for the lifetime of the process.
type batchRepository struct {
	mu      sync.RWMutex
	batches map[string]*models.Batch
}

func NewBatchRepository() interfaces.BatchRepository {
	return &batchRepository{
		batches: make(map[string]*models.Batch),
	}
}

// Create stores batch under a new id unless it already carries one.
func (r *batchRepository) Create(ctx context.Context, batch *models.Batch) (string, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "batchRepository.Create")
	defer span.Finish()
	tracing.TagComponentRepository(span)

	if batch == nil {
		tracing.TraceErr(span, ErrInvalidInput)
		return "", ErrInvalidInput
	}
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	if batch.ReceivedAt.IsZero() {
		batch.ReceivedAt = time.Now()
	}
	tracing.TagBatch(span, batch.ID)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[batch.ID] = batch
	return batch.ID, nil
}

func (r *batchRepository) GetByID(ctx context.Context, id string) (*models.Batch, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "batchRepository.GetByID")
	defer span.Finish()
	tracing.TagComponentRepository(span)
	tracing.TagBatch(span, id)

	r.mu.RLock()
	defer r.mu.RUnlock()
	batch, ok := r.batches[id]
	if !ok {
		return nil, ErrBatchNotFound
	}
	return batch, nil
}

func (r *batchRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.batches)
}
