package event

import (
	"time"

	"github.com/customeros/ingestgen/internal/clock"
	"github.com/customeros/ingestgen/internal/enum"
)

// AttributeDoc is the documentation entry for one attribute of one event type, in the
// shape served by the ingest documentation endpoint.
type AttributeDoc struct {
	Required    bool   `json:"required"`
	Reporting   bool   `json:"reporting"`
	SampleValue any    `json:"sampleValue"`
	Description string `json:"description"`
}

// EventDoc maps attribute name to its documentation; the "type" entry's sample value is
// the subtype tag.
type EventDoc map[string]AttributeDoc

const (
	sampleRecipient = "recipient@example.com"
	sampleMessageID = "000443ee14578172be22"
	sampleTimestamp = 1460989507
)

// Describe documents every subtype from the field tables, with sample values produced
// by building a record from the default profile.
func Describe() []EventDoc {
	profile := DefaultProfile()
	builder := NewBuilder(clock.NewSequence(time.Unix(sampleTimestamp, 0)))

	docs := make([]EventDoc, 0, len(enum.AllEventSubtypes))
	for _, subtype := range enum.AllEventSubtypes {
		rec := builder.Record(subtype, Input{
			Message: Message{
				MsgFrom:      profile.MsgFrom,
				FriendlyFrom: profile.FriendlyFrom,
				RcptTo:       sampleRecipient,
				MessageID:    sampleMessageID,
				CampaignID:   profile.CampaignID,
				Subject:      profile.Subject,
				SendingIP:    profile.SendingIP,
			},
			Bounce: profile.bounceFor(subtype),
			Engagement: Engagement{
				GeoIP:         profile.GeoIP,
				UserAgent:     profile.UserAgent,
				TargetLinkURL: profile.TargetLinkURL,
			},
		})

		doc := EventDoc{
			FieldType: {
				Required:    true,
				Reporting:   true,
				SampleValue: subtype.String(),
				Description: "Type of event this record describes",
			},
		}
		for _, name := range schemas[subtype].fields {
			attr := attributes[name]
			doc[name] = AttributeDoc{
				Required:    !attr.optional,
				Reporting:   attr.reporting,
				SampleValue: rec.Fields[name],
				Description: attr.description,
			}
		}
		docs = append(docs, doc)
	}
	return docs
}
