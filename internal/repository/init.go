package repository

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/customeros/ingestgen/interfaces"
)

type Repositories struct {
	BatchRepository interfaces.BatchRepository
}

// InitRepositories keeps batches in process memory.
func InitRepositories() *Repositories {
	return &Repositories{
		BatchRepository: NewBatchRepository(),
	}
}

func InitRedisRepositories(client redis.Cmdable, ttl time.Duration) *Repositories {
	return &Repositories{
		BatchRepository: NewBatchRedisRepository(client, ttl),
	}
}
