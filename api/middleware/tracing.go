package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go/log"

	"github.com/customeros/ingestgen/internal/tracing"
)

// TracingMiddleware creates a new span for each request and adds common tags
func TracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(
			c.Request.Context(),
			c.Request.Method+" "+c.FullPath(),
			c.Request.Header,
		)
		defer span.Finish()

		tracing.TagComponentRest(span)
		if id := c.Param("id"); id != "" {
			tracing.TagBatch(span, id)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if c.Writer.Status() >= 400 {
			span.SetTag("error", true)
			span.LogFields(log.Int("http.status", c.Writer.Status()))
		}
	}
}
