package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/ingestgen/interfaces"
	"github.com/customeros/ingestgen/internal/clock"
	"github.com/customeros/ingestgen/internal/enum"
	"github.com/customeros/ingestgen/internal/event"
	"github.com/customeros/ingestgen/internal/logger"
	"github.com/customeros/ingestgen/internal/models"
	"github.com/customeros/ingestgen/internal/repository"
	"github.com/customeros/ingestgen/services/ingest"
)

const testAPIKey = "test-key"

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func newSink(t *testing.T) (*httptest.Server, *repository.Repositories) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repository.InitRepositories()
	router := gin.New()
	RegisterRoutes(router, repos, getLogger(), testAPIKey)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, repos
}

func newClient(baseURL, apiKey string) interfaces.IngestService {
	return ingest.NewIngestService(&ingest.Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
	}, getLogger())
}

func generate(t *testing.T, scenario enum.Scenario, n int) string {
	t.Helper()
	gen := event.NewGenerator(clock.NewLogical(time.Now(), time.Minute), event.DefaultProfile())
	batch, err := gen.Generate(scenario, n)
	require.NoError(t, err)
	return batch
}

func TestHealth(t *testing.T) {
	srv, _ := newSink(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpload_AcceptsGeneratedBatch(t *testing.T) {
	srv, repos := newSink(t)
	client := newClient(srv.URL, testAPIKey)

	batch := generate(t, enum.ScenarioEngagement, 2)
	resp, err := client.SendBatch(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.BatchID)
	assert.Equal(t, len(batch), resp.UncompressedLen)
	assert.Greater(t, resp.CompressedLen, 0)

	stored, err := repos.BatchRepository.GetByID(context.Background(), resp.BatchID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Accepted)
	assert.Empty(t, stored.Failures)
	assert.Equal(t, len(batch), stored.Bytes)
}

func TestUpload_RejectsMissingOrWrongKey(t *testing.T) {
	srv, repos := newSink(t)
	batch := generate(t, enum.ScenarioInbandBounce, 1)

	for _, key := range []string{"", "wrong"} {
		resp, err := newClient(srv.URL, key).SendBatch(context.Background(), batch)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, string(resp.Body), "Unauthorized.")
		assert.Empty(t, resp.BatchID)
	}
	assert.Equal(t, 0, repos.BatchRepository.Count(context.Background()))
}

func TestUpload_RejectsUncompressedGarbage(t *testing.T) {
	srv, _ := newSink(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+ingest.EventsPath, strings.NewReader("not gzip"))
	require.NoError(t, err)
	req.Header.Set("Authorization", testAPIKey)
	req.Header.Set("Content-Type", ingest.ContentTypeNDJSON)
	req.Header.Set("Content-Encoding", ingest.ContentEncodingGzip)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFailures_ReportsInvalidLines(t *testing.T) {
	srv, _ := newSink(t)
	client := newClient(srv.URL, testAPIKey)

	batch := generate(t, enum.ScenarioDelay, 1) +
		`{"msys":{"track_event":{"type":"bounce"}}}` + "\n" +
		"not json\n" +
		`{"msys":{"message_event":{"type":"delivery"}}}` + "\n"
	upload, err := client.SendBatch(context.Background(), batch)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, upload.StatusCode)

	failures, err := client.GetFailures(context.Background(), upload.BatchID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, failures.StatusCode)
	assert.True(t, failures.Decoded)
	assert.Empty(t, failures.DecodeError)

	var got []models.RecordFailure
	scanner := bufio.NewScanner(strings.NewReader(failures.Text))
	for scanner.Scan() {
		var f models.RecordFailure
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &f))
		got = append(got, f)
	}
	require.Len(t, got, 3)
	assert.Equal(t, 3, got[0].Line)
	assert.Equal(t, 4, got[1].Line)
	assert.Equal(t, "not json", got[1].Record)
	// known subtype, but the required attributes are missing
	assert.Equal(t, 5, got[2].Line)
}

func TestFailures_UnknownBatch(t *testing.T) {
	srv, _ := newSink(t)

	failures, err := newClient(srv.URL, testAPIKey).GetFailures(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, failures.StatusCode)
	assert.False(t, failures.Decoded)
	assert.Contains(t, failures.Text, "resource not found")
}

func TestDocumentation_CoversEverySubtype(t *testing.T) {
	srv, _ := newSink(t)

	docs, err := newClient(srv.URL, "").GetDocumentation(context.Background())
	require.NoError(t, err)
	require.Len(t, docs.Results, len(enum.AllEventSubtypes))

	for i, subtype := range enum.AllEventSubtypes {
		doc := docs.Results[i]
		assert.Equal(t, subtype.String(), doc["type"].SampleValue)
		assert.Equal(t, true, doc["timestamp"].Required)
	}
}
