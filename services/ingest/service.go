package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/customeros/ingestgen/dto"
	"github.com/customeros/ingestgen/interfaces"
	"github.com/customeros/ingestgen/internal/logger"
	"github.com/customeros/ingestgen/internal/tracing"
	"github.com/customeros/ingestgen/internal/utils"
)

const (
	EventsPath        = "/api/v1/ingest/events"
	FailuresPath      = EventsPath + "/failures/"
	DocumentationPath = EventsPath + "/documentation"

	ContentTypeNDJSON   = "application/x-ndjson"
	ContentEncodingGzip = "gzip"
)

// Config is everything the ingest client needs; it is built once from the app config.
type Config struct {
	// BaseURL is a normalized scheme+host, see utils.NormalizeHost.
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

type ingestService struct {
	cfg        *Config
	log        logger.Logger
	httpClient *http.Client
}

func NewIngestService(cfg *Config, log logger.Logger) interfaces.IngestService {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ingestService{
		cfg:        cfg,
		log:        log,
		httpClient: httpClient,
	}
}

func (s *ingestService) setHeaders(req *http.Request) {
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", s.cfg.APIKey)
	}
	req.Header.Set("Content-Type", ContentTypeNDJSON)
	req.Header.Set("Content-Encoding", ContentEncodingGzip)
}

func (s *ingestService) do(ctx context.Context, span opentracing.Span, method, url string, body io.Reader, extra http.Header) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, errors.Wrap(err, "failed to build request")
	}
	s.setHeaders(req)
	for k, v := range extra {
		req.Header[k] = v
	}
	req = tracing.InjectSpanContextIntoHTTPRequest(req, span)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "%s %s failed", method, url)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, errors.Wrap(err, "failed to read response body")
	}
	span.LogFields(tracingLog.Int("response.status", resp.StatusCode))
	return resp.StatusCode, responseBody, nil
}

// SendBatch gzips the NDJSON batch and posts it. Any status is returned to the caller for
// display; only transport failures are errors.
func (s *ingestService) SendBatch(ctx context.Context, batch string) (*dto.UploadResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IngestService.SendBatch")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)

	compressed, err := utils.GzipCompress([]byte(batch))
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to compress batch")
	}
	span.LogFields(tracingLog.Int("batch.bytes", len(batch)), tracingLog.Int("batch.gzipBytes", len(compressed)))
	s.log.Infof("Uploading %d bytes of gzip event data", len(compressed))

	status, body, err := s.do(ctx, span, http.MethodPost, s.cfg.BaseURL+EventsPath, bytes.NewReader(compressed), nil)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	response := &dto.UploadResponse{
		StatusCode:      status,
		Body:            body,
		UncompressedLen: len(batch),
		CompressedLen:   len(compressed),
	}
	if status >= 200 && status < 300 {
		var results dto.UploadResults
		if json.Unmarshal(body, &results) == nil {
			response.BatchID = results.Results.ID
			tracing.TagBatch(span, response.BatchID)
		}
	} else {
		s.log.Warnf("Ingest upload returned status %d", status)
	}
	return response, nil
}

// GetFailures fetches the failure report of one batch. A 200 body is gzip encoded; when it
// does not decode the raw bytes are kept so they can still be shown.
func (s *ingestService) GetFailures(ctx context.Context, batchID string) (*dto.FailuresResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IngestService.GetFailures")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)
	tracing.TagBatch(span, batchID)

	// an explicit Accept-Encoding keeps the transport from decoding the body itself
	accept := http.Header{}
	accept.Set("Accept-Encoding", ContentEncodingGzip)
	status, body, err := s.do(ctx, span, http.MethodGet, s.cfg.BaseURL+FailuresPath+batchID, nil, accept)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	response := &dto.FailuresResponse{
		BatchID:    batchID,
		StatusCode: status,
		Text:       string(body),
	}
	if status != http.StatusOK {
		return response, nil
	}

	decoded, err := utils.GzipDecompress(body)
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Warnf("Failures for batch %s are not gzip encoded: %v", batchID, err)
		response.DecodeError = err.Error()
		return response, nil
	}
	response.Text = string(decoded)
	response.Decoded = true
	return response, nil
}

func (s *ingestService) GetDocumentation(ctx context.Context) (*dto.DocumentationResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IngestService.GetDocumentation")
	defer span.Finish()
	tracing.SetDefaultClientSpanTags(ctx, span)

	status, body, err := s.do(ctx, span, http.MethodGet, s.cfg.BaseURL+DocumentationPath, nil, nil)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if status != http.StatusOK {
		err = fmt.Errorf("documentation request returned status %d: %s", status, string(body))
		tracing.TraceErr(span, err)
		return nil, err
	}

	var docs dto.DocumentationResponse
	if err = json.Unmarshal(body, &docs); err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to parse documentation response")
	}
	return &docs, nil
}
