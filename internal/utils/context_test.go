package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetScenarioFromContext(ctx))

	ctx = WithCustomContext(ctx, &CustomContext{AppSource: "ingestgen", Command: "send"})
	withScenario := SetScenarioInContext(ctx, "delay")
	withBatch := SetBatchIDInContext(withScenario, "batch-1")

	assert.Equal(t, "ingestgen", GetAppSourceFromContext(withBatch))
	assert.Equal(t, "send", GetCommandFromContext(withBatch))
	assert.Equal(t, "delay", GetScenarioFromContext(withBatch))
	assert.Equal(t, "batch-1", GetBatchIDFromContext(withBatch))

	// parent contexts are not modified
	assert.Equal(t, "", GetScenarioFromContext(ctx))
	assert.Equal(t, "", GetBatchIDFromContext(withScenario))
}
