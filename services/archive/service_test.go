package archive

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/ingestgen/config"
	er "github.com/customeros/ingestgen/internal/errors"
	"github.com/customeros/ingestgen/internal/logger"
	"github.com/customeros/ingestgen/internal/utils"
)

type fakeS3Client struct {
	objects map[string][]byte
	types   map[string]string
	failing bool
}

func newFakeS3Client() *fakeS3Client {
	return &fakeS3Client{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3Client) Upload(ctx context.Context, in s3manager.UploadInput) error {
	if f.failing {
		return errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return err
	}
	key := aws.StringValue(in.Bucket) + "/" + aws.StringValue(in.Key)
	f.objects[key] = data
	f.types[key] = aws.StringValue(in.ContentType)
	return nil
}

func (f *fakeS3Client) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func (f *fakeS3Client) Delete(ctx context.Context, bucket, key string) error {
	delete(f.objects, bucket+"/"+key)
	return nil
}

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func TestKey(t *testing.T) {
	at := time.Date(2016, 4, 18, 14, 25, 7, 0, time.UTC)
	assert.Equal(t, "batches/2016-04-18/inband_bounce-1460989507.ndjson.gz", Key("batches", "inband_bounce", at))
	assert.Equal(t, "2016-04-18/delay-1460989507.ndjson.gz", Key("", "delay", at))
}

func TestArchiveBatch_RoundTrip(t *testing.T) {
	client := newFakeS3Client()
	storage := NewStorageService(client, "events")
	svc := NewArchiveService(storage, "batches", getLogger()).(*archiveService)
	svc.now = func() time.Time { return time.Unix(1460989507, 0) }

	const batch = "{\"msys\":{}}\n"
	key, err := svc.ArchiveBatch(context.Background(), "delay", batch)
	require.NoError(t, err)
	assert.Equal(t, "batches/2016-04-18/delay-1460989507.ndjson.gz", key)
	assert.Equal(t, ContentTypeGzip, client.types["events/"+key])

	stored, err := storage.Download(context.Background(), key)
	require.NoError(t, err)
	decoded, err := utils.GzipDecompress(stored)
	require.NoError(t, err)
	assert.Equal(t, batch, string(decoded))

	require.NoError(t, storage.Delete(context.Background(), key))
	_, err = storage.Download(context.Background(), key)
	assert.Error(t, err)
}

func TestArchiveBatch_UploadFailure(t *testing.T) {
	client := newFakeS3Client()
	client.failing = true
	svc := NewArchiveService(NewStorageService(client, "events"), "batches", getLogger())

	_, err := svc.ArchiveBatch(context.Background(), "delay", "x\n")
	assert.ErrorContains(t, err, "bucket unavailable")
}

func TestNewFromConfig(t *testing.T) {
	svc, err := NewFromConfig(&config.ArchiveConfig{Enabled: false}, getLogger())
	require.NoError(t, err)
	assert.Nil(t, svc)

	_, err = NewFromConfig(&config.ArchiveConfig{Enabled: true}, getLogger())
	assert.ErrorIs(t, err, er.ErrArchiveMissing)

	svc, err = NewFromConfig(&config.ArchiveConfig{
		Enabled:         true,
		Bucket:          "events",
		Region:          "us-east-1",
		AccessKeyID:     "id",
		AccessKeySecret: "secret",
	}, getLogger())
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
