package handlers

import (
	"github.com/customeros/ingestgen/internal/logger"
	"github.com/customeros/ingestgen/internal/repository"
)

type APIHandlers struct {
	Ingest *IngestHandler
}

func InitHandlers(r *repository.Repositories, log logger.Logger) *APIHandlers {
	return &APIHandlers{
		Ingest: NewIngestHandler(r, log),
	}
}
