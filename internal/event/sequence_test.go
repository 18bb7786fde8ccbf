package event

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/ingestgen/internal/clock"
	"github.com/customeros/ingestgen/internal/enum"
	er "github.com/customeros/ingestgen/internal/errors"
)

func newTestGenerator() *Generator {
	return NewGenerator(clock.NewLogical(time.Unix(1700000000, 0), time.Minute), DefaultProfile())
}

func parseLines(t *testing.T, lines []string) []Record {
	t.Helper()
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		rec, err := ParseRecord(line)
		require.NoError(t, err)
		records = append(records, rec)
	}
	return records
}

func TestGenerator_Engagement(t *testing.T) {
	g := newTestGenerator()

	batch, err := g.Generate(enum.ScenarioEngagement, 1)
	require.NoError(t, err)

	lines := SplitBatch(batch)
	require.Len(t, lines, 5)
	records := parseLines(t, lines)

	want := []enum.EventSubtype{
		enum.EventReception, enum.EventDelivery, enum.EventInitialOpen, enum.EventOpen, enum.EventClick,
	}
	for i, rec := range records {
		assert.Equal(t, want[i], rec.Type)
		assert.Equal(t, records[0].MessageID(), rec.MessageID())
		assert.Equal(t, records[0].RcptTo(), rec.RcptTo())
		if i > 0 {
			assert.GreaterOrEqual(t, rec.Timestamp(), records[i-1].Timestamp())
		}
	}
	assert.Len(t, records[0].MessageID(), 20)
	assert.True(t, strings.HasPrefix(records[0].RcptTo(), "test"))
	assert.True(t, strings.HasSuffix(records[0].RcptTo(), "@ingest.example.com"))
}

func TestGenerator_AmpEngagement(t *testing.T) {
	g := newTestGenerator()

	seqs, err := g.Sequences(enum.ScenarioAmpEngagement, 1)
	require.NoError(t, err)
	require.Len(t, seqs, 1)

	records := parseLines(t, seqs[0].Lines)
	var types []enum.EventSubtype
	for _, rec := range records {
		types = append(types, rec.Type)
	}
	assert.Equal(t, []enum.EventSubtype{
		enum.EventReception, enum.EventDelivery, enum.EventAmpInitialOpen, enum.EventAmpOpen, enum.EventAmpClick,
	}, types)
}

func TestGenerator_Rejection(t *testing.T) {
	g := newTestGenerator()

	batch, err := g.Generate(enum.ScenarioRejection, 1)
	require.NoError(t, err)
	records := parseLines(t, SplitBatch(batch))
	require.Len(t, records, 3)

	assert.Equal(t, enum.EventRejection, records[0].Type)
	assert.Equal(t, enum.EventGenRejection, records[1].Type)
	assert.Equal(t, enum.EventGenFail, records[2].Type)
	assert.False(t, records[2].Has(FieldMessageID))

	// the three sub-cases are unrelated
	assert.NotEqual(t, records[0].RcptTo(), records[1].RcptTo())
	assert.NotEqual(t, records[0].MessageID(), records[1].MessageID())

	seqs, err := g.Sequences(enum.ScenarioRejection, 1)
	require.NoError(t, err)
	require.Len(t, seqs, 3)
	assert.Empty(t, seqs[2].MessageID)
	assert.NotEmpty(t, seqs[0].MessageID)
}

func TestGenerator_AllScenariosKeepThreadsConsistent(t *testing.T) {
	g := newTestGenerator()

	for _, scenario := range enum.AllScenarios {
		t.Run(scenario.String(), func(t *testing.T) {
			seqs, err := g.Sequences(scenario, 3)
			require.NoError(t, err)
			assert.Len(t, seqs, 3*len(threads[scenario]))

			recipients := map[string]struct{}{}
			for _, seq := range seqs {
				records := parseLines(t, seq.Lines)
				for _, rec := range records {
					assert.Equal(t, CategoryOf(rec.Type), rec.Category)
					assert.Equal(t, seq.RcptTo, rec.RcptTo())
					if rec.Has(FieldMessageID) {
						assert.Equal(t, seq.MessageID, rec.MessageID())
					}
				}
				recipients[seq.RcptTo] = struct{}{}
			}
			assert.Len(t, recipients, len(seqs))
		})
	}
}

func TestGenerator_TimestampsAcrossBatch(t *testing.T) {
	g := newTestGenerator()

	batch, err := g.Generate(enum.ScenarioSpamComplaint, 4)
	require.NoError(t, err)
	records := parseLines(t, SplitBatch(batch))
	require.Len(t, records, 12)

	for i := 1; i < len(records); i++ {
		assert.Equal(t, records[i-1].Timestamp()+60, records[i].Timestamp())
	}
}

func TestGenerator_ScenarioOrders(t *testing.T) {
	assert.Equal(t, []enum.EventSubtype{enum.EventReception, enum.EventInband}, Subtypes(enum.ScenarioInbandBounce))
	assert.Equal(t, []enum.EventSubtype{enum.EventReception, enum.EventDelivery, enum.EventOutOfBand}, Subtypes(enum.ScenarioOutOfBandBounce))
	assert.Equal(t, []enum.EventSubtype{enum.EventReception, enum.EventDelivery, enum.EventFeedback}, Subtypes(enum.ScenarioSpamComplaint))
	assert.Equal(t, []enum.EventSubtype{enum.EventReception, enum.EventTempFail}, Subtypes(enum.ScenarioDelay))
	assert.Equal(t, []enum.EventSubtype{enum.EventReception, enum.EventLink, enum.EventList}, Subtypes(enum.ScenarioUnsubscribe))
}

func TestGenerator_InvalidInput(t *testing.T) {
	g := newTestGenerator()

	_, err := g.Generate(enum.Scenario("nope"), 1)
	assert.ErrorIs(t, err, er.ErrUnknownScenario)

	_, err = g.Generate(enum.ScenarioDelay, 0)
	assert.ErrorIs(t, err, er.ErrInvalidCount)
}

func TestGenerator_EmptyRecipientDomain(t *testing.T) {
	p := DefaultProfile()
	p.RecipientDomain = ""
	g := NewGenerator(clock.Wall{}, p)

	// an empty domain still yields "local@", which has a (blank) routing domain
	assert.NotPanics(t, func() { _, _ = g.Generate(enum.ScenarioDelay, 1) })
}

func TestSplitBatch_RoundTrip(t *testing.T) {
	g := newTestGenerator()

	first, err := g.Sequences(enum.ScenarioEngagement, 1)
	require.NoError(t, err)
	second, err := g.Sequences(enum.ScenarioUnsubscribe, 1)
	require.NoError(t, err)

	batch := JoinSequences(append(first, second...))
	lines := SplitBatch(batch)
	require.Len(t, lines, len(first[0].Lines)+len(second[0].Lines))
	assert.Equal(t, first[0].Lines, lines[:len(first[0].Lines)])
	assert.Equal(t, second[0].Lines, lines[len(first[0].Lines):])
	assert.Equal(t, first[0].String()+second[0].String(), batch)
}

func TestSplitBatch_Edges(t *testing.T) {
	assert.Nil(t, SplitBatch(""))
	assert.Equal(t, []string{"a\n", "b"}, SplitBatch("a\nb"))
	assert.Equal(t, []string{"a\n"}, SplitBatch("a\n"))
}
