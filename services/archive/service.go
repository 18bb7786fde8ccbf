package archive

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/ingestgen/config"
	"github.com/customeros/ingestgen/interfaces"
	er "github.com/customeros/ingestgen/internal/errors"
	"github.com/customeros/ingestgen/internal/logger"
	"github.com/customeros/ingestgen/internal/tracing"
	"github.com/customeros/ingestgen/internal/utils"
	"github.com/customeros/ingestgen/services/archive/aws_client"
)

const ContentTypeGzip = "application/gzip"

type archiveService struct {
	storage interfaces.StorageService
	prefix  string
	log     logger.Logger
	now     func() time.Time
}

func NewArchiveService(storage interfaces.StorageService, prefix string, log logger.Logger) interfaces.ArchiveService {
	return &archiveService{
		storage: storage,
		prefix:  prefix,
		log:     log,
		now:     time.Now,
	}
}

// NewFromConfig wires the archive against R2 when an account id is configured and S3
// otherwise. It returns nil when archiving is disabled.
func NewFromConfig(cfg *config.ArchiveConfig, log logger.Logger) (interfaces.ArchiveService, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}
	if cfg.Bucket == "" {
		return nil, errors.Wrap(er.ErrArchiveMissing, "ARCHIVE_BUCKET is empty")
	}

	awsCfg := aws_client.S3Config(cfg.Region, cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if cfg.R2AccountID != "" {
		awsCfg = aws_client.R2Config(cfg.R2AccountID, cfg.AccessKeyID, cfg.AccessKeySecret)
	}
	client, err := aws_client.NewS3Client(awsCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create object storage session")
	}
	return NewArchiveService(NewStorageService(client, cfg.Bucket), cfg.Prefix, log), nil
}

// Key lays batches out by day: <prefix>/<yyyy-mm-dd>/<scenario>-<unix>.ndjson.gz
func Key(prefix, scenario string, at time.Time) string {
	at = at.UTC()
	return path.Join(prefix, at.Format("2006-01-02"), fmt.Sprintf("%s-%d.ndjson.gz", scenario, at.Unix()))
}

// ArchiveBatch stores the gzipped batch and returns its object key.
func (s *archiveService) ArchiveBatch(ctx context.Context, scenario, batch string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ArchiveService.ArchiveBatch")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	compressed, err := utils.GzipCompress([]byte(batch))
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to compress batch")
	}

	key := Key(s.prefix, scenario, s.now())
	span.SetTag("storage.key", key)
	if err = s.storage.Upload(ctx, key, compressed, ContentTypeGzip); err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrapf(err, "failed to archive batch to %s", key)
	}

	s.log.Infof("Archived %d bytes to %s", len(compressed), key)
	return key, nil
}
