package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/customeros/ingestgen/interfaces"
	"github.com/customeros/ingestgen/internal/models"
	"github.com/customeros/ingestgen/internal/tracing"
)

const (
	batchKeyPrefix = "ingestgen:batch:"
	batchIndexKey  = "ingestgen:batches"
)

// batchRedisRepository shares sink batches between sink instances. Batches expire after
// ttl; the index of received ids does not.
type batchRedisRepository struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewBatchRedisRepository(client redis.Cmdable, ttl time.Duration) interfaces.BatchRepository {
	return &batchRedisRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *batchRedisRepository) Create(ctx context.Context, batch *models.Batch) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "batchRedisRepository.Create")
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

	data, err := json.Marshal(batch)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to encode batch")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, batchKeyPrefix+batch.ID, data, r.ttl)
	pipe.SAdd(ctx, batchIndexKey, batch.ID)
	if _, err = pipe.Exec(ctx); err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to store batch")
	}
	return batch.ID, nil
}

func (r *batchRedisRepository) GetByID(ctx context.Context, id string) (*models.Batch, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "batchRedisRepository.GetByID")
	defer span.Finish()
	tracing.TagComponentRepository(span)
	tracing.TagBatch(span, id)

	data, err := r.client.Get(ctx, batchKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBatchNotFound
	}
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to load batch")
	}

	var batch models.Batch
	if err = json.Unmarshal(data, &batch); err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to decode batch")
	}
	return &batch, nil
}

// Count reports 0 when redis cannot be reached.
func (r *batchRedisRepository) Count(ctx context.Context) int {
	n, err := r.client.SCard(ctx, batchIndexKey).Result()
	if err != nil {
		return 0
	}
	return int(n)
}
