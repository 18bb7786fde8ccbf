package utils

import (
	"context"
)

// CustomContext carries per-command values that end up as span tags.
type CustomContext struct {
	AppSource string
	Command   string
	Scenario  string
	BatchID   string
}

type customContextKeyType string

const customContextKey customContextKeyType = "CUSTOM_CONTEXT"

func WithCustomContext(ctx context.Context, customContext *CustomContext) context.Context {
	return context.WithValue(ctx, customContextKey, customContext)
}

func GetContext(ctx context.Context) *CustomContext {
	customContext, ok := ctx.Value(customContextKey).(*CustomContext)
	if !ok {
		return new(CustomContext)
	}
	return customContext
}

func GetAppSourceFromContext(ctx context.Context) string {
	return GetContext(ctx).AppSource
}

func GetCommandFromContext(ctx context.Context) string {
	return GetContext(ctx).Command
}

func GetScenarioFromContext(ctx context.Context) string {
	return GetContext(ctx).Scenario
}

func GetBatchIDFromContext(ctx context.Context) string {
	return GetContext(ctx).BatchID
}

func SetScenarioInContext(ctx context.Context, scenario string) context.Context {
	customContext := *GetContext(ctx)
	customContext.Scenario = scenario
	return WithCustomContext(ctx, &customContext)
}

func SetBatchIDInContext(ctx context.Context, batchID string) context.Context {
	customContext := *GetContext(ctx)
	customContext.BatchID = batchID
	return WithCustomContext(ctx, &customContext)
}
