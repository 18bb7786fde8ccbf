package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	apierrors "github.com/customeros/ingestgen/api/errors"
	"github.com/customeros/ingestgen/dto"
	"github.com/customeros/ingestgen/internal/event"
	"github.com/customeros/ingestgen/internal/logger"
	"github.com/customeros/ingestgen/internal/models"
	"github.com/customeros/ingestgen/internal/repository"
	"github.com/customeros/ingestgen/internal/tracing"
	"github.com/customeros/ingestgen/internal/utils"
)

// IngestHandler emulates the ingest endpoints: it validates uploaded records, keeps the
// per-batch failures and serves documentation built from the local field tables.
type IngestHandler struct {
	repos     *repository.Repositories
	log       logger.Logger
	validator *event.Validator
}

func NewIngestHandler(r *repository.Repositories, log logger.Logger) *IngestHandler {
	return &IngestHandler{
		repos:     r,
		log:       log,
		validator: event.MustNewValidator(),
	}
}

func (h *IngestHandler) Upload() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "IngestHandler.Upload")
		defer span.Finish()

		if ct := c.GetHeader("Content-Type"); !strings.HasPrefix(ct, "application/x-ndjson") {
			c.JSON(http.StatusUnsupportedMediaType, apierrors.NewErrorResponse("Unsupported Media Type", "expected application/x-ndjson, got "+ct))
			return
		}

		payload, err := c.GetRawData()
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, apierrors.NewErrorResponse("Unable to read request body", err.Error()))
			return
		}
		if c.GetHeader("Content-Encoding") == "gzip" {
			payload, err = utils.GzipDecompress(payload)
			if err != nil {
				tracing.TraceErr(span, err)
				c.JSON(http.StatusBadRequest, apierrors.NewErrorResponse("Invalid gzip payload", err.Error()))
				return
			}
		}

		batch := &models.Batch{Bytes: len(payload)}
		for i, line := range event.SplitBatch(string(payload)) {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if _, err := h.validator.Validate(line); err != nil {
				batch.Failures = append(batch.Failures, models.RecordFailure{
					Line:   i + 1,
					Error:  err.Error(),
					Record: strings.TrimSuffix(line, "\n"),
				})
				continue
			}
			batch.Accepted++
		}

		id, err := h.repos.BatchRepository.Create(ctx, batch)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, apierrors.NewErrorResponse("Unable to store batch", err.Error()))
			return
		}
		tracing.TagBatch(span, id)
		span.LogFields(tracingLog.Int("batch.accepted", batch.Accepted), tracingLog.Int("batch.failures", len(batch.Failures)))
		h.log.Infof("Received batch %s: %d accepted, %d failed", id, batch.Accepted, len(batch.Failures))

		var response dto.UploadResults
		response.Results.ID = id
		c.JSON(http.StatusOK, response)
	}
}

// Failures returns the batch failures as gzipped NDJSON, one failure per line.
func (h *IngestHandler) Failures() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "IngestHandler.Failures")
		defer span.Finish()

		id := c.Param("id")
		tracing.TagBatch(span, id)

		batch, err := h.repos.BatchRepository.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrBatchNotFound) {
				c.JSON(http.StatusNotFound, apierrors.NewErrorResponse("resource not found", "batch "+id+" does not exist"))
				return
			}
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, apierrors.NewErrorResponse("Unable to load batch", err.Error()))
			return
		}

		tracing.LogObjectAsJson(span, "batch.failures", batch.Failures)

		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		for _, failure := range batch.Failures {
			if err := enc.Encode(failure); err != nil {
				tracing.TraceErr(span, err)
				c.JSON(http.StatusInternalServerError, apierrors.NewErrorResponse("Unable to encode failures", err.Error()))
				return
			}
		}

		compressed, err := utils.GzipCompress(buf.Bytes())
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, apierrors.NewErrorResponse("Unable to compress failures", err.Error()))
			return
		}
		// no Content-Encoding header: clients receive the gzip bytes untouched
		c.Data(http.StatusOK, "application/gzip", compressed)
	}
}

func (h *IngestHandler) Documentation() gin.HandlerFunc {
	docs := event.Describe()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"results": docs})
	}
}
