package docs

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/ingestgen/dto"
	"github.com/customeros/ingestgen/internal/enum"
	"github.com/customeros/ingestgen/internal/event"
)

func TestFlatten_QuotesAndOrder(t *testing.T) {
	docs := &dto.DocumentationResponse{
		Results: []map[string]dto.DocumentationAttribute{
			{
				"type":    {Required: true, Reporting: true, SampleValue: "bounce", Description: "Type of event"},
				"rcpt_to": {Required: true, Reporting: false, SampleValue: "a@b.com", Description: `the "to" address`},
				"geo_ip":  {Required: nil, Reporting: 1.0, SampleValue: map[string]any{"city": "Columbia"}, Description: "geo, location"},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Flatten(&buf, docs))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `"type","attribute","required","reporting","sampleValue","description"`, lines[0])
	assert.Equal(t, `"bounce","type","true","true","bounce","Type of event"`, lines[1])
	assert.Equal(t, `"bounce","geo_ip","false","true","{""city"":""Columbia""}","geo, location"`, lines[2])
	assert.Equal(t, `"bounce","rcpt_to","true","false","a@b.com","the ""to"" address"`, lines[3])
}

func TestFlatten_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Flatten(&buf, nil))
	assert.Equal(t, "\"type\",\"attribute\",\"required\",\"reporting\",\"sampleValue\",\"description\"\n", buf.String())
}

func TestFlatten_LocalDocumentation(t *testing.T) {
	// round trip the locally described events through the wire shape
	raw, err := json.Marshal(map[string]any{"results": event.Describe()})
	require.NoError(t, err)
	var docs dto.DocumentationResponse
	require.NoError(t, json.Unmarshal(raw, &docs))

	var buf bytes.Buffer
	require.NoError(t, Flatten(&buf, &docs))

	seen := map[string]bool{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n")[1:] {
		fields := strings.SplitN(line, `","`, 3)
		require.Len(t, fields, 3)
		seen[strings.TrimPrefix(fields[0], `"`)] = true
	}
	for _, subtype := range enum.AllEventSubtypes {
		assert.True(t, seen[subtype.String()], subtype.String())
	}
}
