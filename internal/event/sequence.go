package event

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/customeros/ingestgen/internal/clock"
	"github.com/customeros/ingestgen/internal/enum"
	er "github.com/customeros/ingestgen/internal/errors"
	"github.com/customeros/ingestgen/internal/utils"
)

// threads lists, per scenario, the correlated record chains produced by one repetition.
// Every chain gets its own recipient and message id. The rejection scenario yields
// three unrelated single-record chains.
var threads = map[enum.Scenario][][]enum.EventSubtype{
	enum.ScenarioEngagement: {
		{enum.EventReception, enum.EventDelivery, enum.EventInitialOpen, enum.EventOpen, enum.EventClick},
	},
	enum.ScenarioAmpEngagement: {
		{enum.EventReception, enum.EventDelivery, enum.EventAmpInitialOpen, enum.EventAmpOpen, enum.EventAmpClick},
	},
	enum.ScenarioInbandBounce: {
		{enum.EventReception, enum.EventInband},
	},
	enum.ScenarioOutOfBandBounce: {
		{enum.EventReception, enum.EventDelivery, enum.EventOutOfBand},
	},
	enum.ScenarioSpamComplaint: {
		{enum.EventReception, enum.EventDelivery, enum.EventFeedback},
	},
	enum.ScenarioDelay: {
		{enum.EventReception, enum.EventTempFail},
	},
	enum.ScenarioRejection: {
		{enum.EventRejection},
		{enum.EventGenRejection},
		{enum.EventGenFail},
	},
	enum.ScenarioUnsubscribe: {
		{enum.EventReception, enum.EventLink, enum.EventList},
	},
}

// Subtypes returns the record order of one repetition of scenario.
func Subtypes(scenario enum.Scenario) []enum.EventSubtype {
	var out []enum.EventSubtype
	for _, chain := range threads[scenario] {
		out = append(out, chain...)
	}
	return out
}

// Sequence is the serialized records of one logical message, in generation order.
type Sequence struct {
	MessageID string
	RcptTo    string
	Lines     []string
}

func (s Sequence) String() string {
	return strings.Join(s.Lines, "")
}

// Generator composes record builders into scenarios. All records of a batch draw their
// timestamps from the same clock, so ordering holds across the whole batch.
type Generator struct {
	builder *Builder
	profile Profile
	now     func() time.Time
}

func NewGenerator(c clock.Clock, profile Profile) *Generator {
	return &Generator{
		builder: NewBuilder(c),
		profile: profile,
		now:     time.Now,
	}
}

func (g *Generator) Builder() *Builder {
	return g.builder
}

func (g *Generator) Profile() Profile {
	return g.profile
}

// Sequences runs scenario n times and returns every generated message thread.
func (g *Generator) Sequences(scenario enum.Scenario, n int) ([]Sequence, error) {
	chains, ok := threads[scenario]
	if !ok {
		return nil, errors.Wrapf(er.ErrUnknownScenario, "%q", scenario)
	}
	if n < 1 {
		return nil, errors.Wrapf(er.ErrInvalidCount, "got %d", n)
	}

	sequences := make([]Sequence, 0, n*len(chains))
	for i := 0; i < n; i++ {
		for _, chain := range chains {
			sequences = append(sequences, g.thread(chain))
		}
	}
	return sequences, nil
}

// Generate runs scenario n times and returns the batch text.
func (g *Generator) Generate(scenario enum.Scenario, n int) (string, error) {
	sequences, err := g.Sequences(scenario, n)
	if err != nil {
		return "", err
	}
	return JoinSequences(sequences), nil
}

func (g *Generator) newMessage() Message {
	p := g.profile
	return Message{
		MsgFrom:      p.MsgFrom,
		FriendlyFrom: p.FriendlyFrom,
		RcptTo:       utils.BuildAddress(utils.NewRecipientLocalPart(p.RecipientPrefix), p.RecipientDomain),
		MessageID:    utils.NewMessageID(g.now()),
		CampaignID:   p.CampaignID,
		Subject:      p.Subject,
		SendingIP:    p.SendingIP,
	}
}

func (g *Generator) thread(chain []enum.EventSubtype) Sequence {
	msg := g.newMessage()
	seq := Sequence{RcptTo: msg.RcptTo, Lines: make([]string, 0, len(chain))}

	for _, subtype := range chain {
		in := Input{
			Message: msg,
			Bounce:  g.profile.bounceFor(subtype),
			Engagement: Engagement{
				GeoIP:         g.profile.GeoIP,
				UserAgent:     g.profile.UserAgent,
				TargetLinkURL: g.profile.TargetLinkURL,
			},
		}
		seq.Lines = append(seq.Lines, g.builder.Build(subtype, in))
	}

	// a chain made only of generation failures never received a message id
	for _, subtype := range chain {
		if subtype != enum.EventGenFail {
			seq.MessageID = msg.MessageID
			break
		}
	}
	return seq
}

// JoinSequences concatenates the records of all sequences into one batch. Every line
// already ends in a newline.
func JoinSequences(sequences []Sequence) string {
	var b strings.Builder
	for _, s := range sequences {
		for _, line := range s.Lines {
			b.WriteString(line)
		}
	}
	return b.String()
}

// SplitBatch splits batch text back into its lines, each keeping its trailing newline.
func SplitBatch(batch string) []string {
	if batch == "" {
		return nil
	}
	lines := strings.SplitAfter(batch, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
