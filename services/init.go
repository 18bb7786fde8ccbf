package services

import (
	"github.com/customeros/ingestgen/config"
	"github.com/customeros/ingestgen/interfaces"
	"github.com/customeros/ingestgen/internal/logger"
	"github.com/customeros/ingestgen/services/archive"
	"github.com/customeros/ingestgen/services/ingest"
)

type Services struct {
	IngestService interfaces.IngestService
	// ArchiveService is nil unless ARCHIVE_ENABLED is set.
	ArchiveService interfaces.ArchiveService
}

func InitServices(cfg *config.Config, log logger.Logger) (*Services, error) {
	archiveService, err := archive.NewFromConfig(cfg.ArchiveConfig, log)
	if err != nil {
		return nil, err
	}

	services := Services{
		IngestService: ingest.NewIngestService(&ingest.Config{
			BaseURL: cfg.AppConfig.BaseURL(),
			APIKey:  cfg.AppConfig.APIKey,
		}, log),
		ArchiveService: archiveService,
	}

	return &services, nil
}
