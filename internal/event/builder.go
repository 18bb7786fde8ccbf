package event

import (
	"fmt"

	"github.com/customeros/ingestgen/internal/clock"
	"github.com/customeros/ingestgen/internal/enum"
)

// Message carries the fields shared by every event of one logical message.
type Message struct {
	MsgFrom      string
	FriendlyFrom string
	RcptTo       string
	MessageID    string
	CampaignID   string
	Subject      string
	SendingIP    string
	// RecvMethod defaults to smtp.
	RecvMethod string
}

// Bounce describes a failed or deferred delivery attempt.
type Bounce struct {
	Code  string
	Class enum.BounceClass
	// Reason is the canonicalized response; RawReason defaults to it when empty.
	Reason    string
	RawReason string
}

// Engagement describes the recipient's client for track and unsubscribe events.
type Engagement struct {
	GeoIP         GeoIP
	UserAgent     string
	TargetLinkURL string
}

type Input struct {
	Message
	Bounce     Bounce
	Engagement Engagement
}

// Builder turns inputs into records, drawing one timestamp per record from its clock.
// Builders do not validate their input: a recipient without a domain panics.
type Builder struct {
	clock clock.Clock
}

func NewBuilder(c clock.Clock) *Builder {
	return &Builder{clock: c}
}

// Record builds the record for subtype from its field table.
func (b *Builder) Record(subtype enum.EventSubtype, in Input) Record {
	s, ok := schemas[subtype]
	if !ok {
		panic(fmt.Sprintf("no field table for event subtype %q", subtype))
	}

	ts := b.clock.Next()
	fields := make(map[string]any, len(s.fields)+1)
	fields[FieldType] = subtype.String()
	for _, name := range s.fields {
		if v, ok := s.fixed[name]; ok {
			fields[name] = v
			continue
		}
		fields[name] = attributes[name].resolve(&in, ts)
	}
	return Record{Category: s.category, Type: subtype, Fields: fields}
}

// Build returns the record for subtype as one NDJSON line.
func (b *Builder) Build(subtype enum.EventSubtype, in Input) string {
	line, err := b.Record(subtype, in).Line()
	if err != nil {
		// fields are strings, bools, ints and GeoIP, which always encode
		panic(err)
	}
	return line
}

// Reception is reported as "injection".
func (b *Builder) Reception(in Input) string {
	return b.Build(enum.EventReception, in)
}

func (b *Builder) Delivery(in Input) string {
	return b.Build(enum.EventDelivery, in)
}

func (b *Builder) InitialOpen(in Input) string {
	return b.Build(enum.EventInitialOpen, in)
}

func (b *Builder) Open(in Input) string {
	return b.Build(enum.EventOpen, in)
}

func (b *Builder) Click(in Input) string {
	return b.Build(enum.EventClick, in)
}

func (b *Builder) AmpInitialOpen(in Input) string {
	return b.Build(enum.EventAmpInitialOpen, in)
}

func (b *Builder) AmpOpen(in Input) string {
	return b.Build(enum.EventAmpOpen, in)
}

func (b *Builder) AmpClick(in Input) string {
	return b.Build(enum.EventAmpClick, in)
}

// InbandBounce is reported as "bounce".
func (b *Builder) InbandBounce(in Input) string {
	return b.Build(enum.EventInband, in)
}

// OutOfBandBounce is reported as "out_of_band".
func (b *Builder) OutOfBandBounce(in Input) string {
	return b.Build(enum.EventOutOfBand, in)
}

// SpamComplaint is ingested as "feedback".
func (b *Builder) SpamComplaint(in Input) string {
	return b.Build(enum.EventFeedback, in)
}

// Delay is ingested as "tempfail".
func (b *Builder) Delay(in Input) string {
	return b.Build(enum.EventTempFail, in)
}

// PolicyRejection is ingested as "rejection".
func (b *Builder) PolicyRejection(in Input) string {
	return b.Build(enum.EventRejection, in)
}

func (b *Builder) GenerationRejection(in Input) string {
	return b.Build(enum.EventGenRejection, in)
}

// GenerationFailure never carries a message id.
func (b *Builder) GenerationFailure(in Input) string {
	return b.Build(enum.EventGenFail, in)
}

// LinkUnsubscribe is ingested as "link".
func (b *Builder) LinkUnsubscribe(in Input) string {
	return b.Build(enum.EventLink, in)
}

// ListUnsubscribe is ingested as "list".
func (b *Builder) ListUnsubscribe(in Input) string {
	return b.Build(enum.EventList, in)
}
