package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/ingestgen/internal/clock"
	"github.com/customeros/ingestgen/internal/enum"
	er "github.com/customeros/ingestgen/internal/errors"
)

func TestValidator_AcceptsEveryScenario(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	gen := NewGenerator(clock.NewLogical(time.Unix(1460989507, 0), time.Minute), DefaultProfile())
	for _, scenario := range enum.AllScenarios {
		batch, err := gen.Generate(scenario, 1)
		require.NoError(t, err)
		for _, line := range SplitBatch(batch) {
			_, err := v.Validate(line)
			assert.NoError(t, err, "%s: %s", scenario, line)
		}
	}
}

func TestValidator_MissingRequiredAttribute(t *testing.T) {
	v := MustNewValidator()

	gen := NewGenerator(clock.NewLogical(time.Unix(1460989507, 0), time.Minute), DefaultProfile())
	line := gen.Builder().Delivery(Input{Message: Message{
		MsgFrom:   "sender@example.com",
		RcptTo:    "someone@example.org",
		MessageID: "000443ee14578172be22",
	}})

	rec, err := ParseRecord(line)
	require.NoError(t, err)
	delete(rec.Fields, FieldRcptTo)
	stripped, err := rec.Line()
	require.NoError(t, err)

	_, err = v.Validate(stripped)
	assert.ErrorIs(t, err, er.ErrMalformedRecord)
}

func TestValidator_WrongAttributeType(t *testing.T) {
	v := MustNewValidator()

	raw := map[string]any{"msys": map[string]any{"message_event": map[string]any{
		"type": "delivery", "rcpt_to": 42,
	}}}
	line, err := json.Marshal(raw)
	require.NoError(t, err)

	_, err = v.Validate(string(line) + "\n")
	assert.ErrorIs(t, err, er.ErrMalformedRecord)
}

func TestValidator_UnknownSubtype(t *testing.T) {
	_, err := MustNewValidator().Validate(`{"msys":{"message_event":{"type":"carrier_pigeon"}}}`)
	assert.ErrorIs(t, err, er.ErrUnknownSubtype)
}

func TestJSONType(t *testing.T) {
	assert.Equal(t, "string", jsonType("x"))
	assert.Equal(t, "number", jsonType(12))
	assert.Equal(t, "boolean", jsonType(true))
	assert.Equal(t, "object", jsonType(GeoIP{}))
	assert.Equal(t, "array", jsonType([]string{}))
	assert.Equal(t, "", jsonType(nil))
}
