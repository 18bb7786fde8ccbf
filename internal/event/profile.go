package event

import "github.com/customeros/ingestgen/internal/enum"

// Profile holds the scenario parameters shared by every generated message.
type Profile struct {
	MsgFrom         string
	FriendlyFrom    string
	CampaignID      string
	Subject         string
	SendingIP       string
	RecipientPrefix string
	RecipientDomain string

	GeoIP         GeoIP
	UserAgent     string
	TargetLinkURL string

	InbandBounce        Bounce
	OutOfBandBounce     Bounce
	Delay               Bounce
	PolicyRejection     Bounce
	GenerationRejection Bounce
	GenerationFailure   Bounce
}

func DefaultProfile() Profile {
	return Profile{
		MsgFrom:         "sp-event-agent@test.sparkpost.com",
		FriendlyFrom:    "sp-event-agent@test.sparkpost.com",
		CampaignID:      "ingest-test",
		Subject:         "sp event agent checking in",
		SendingIP:       "10.0.0.1",
		RecipientPrefix: "test",
		RecipientDomain: "ingest.example.com",
		GeoIP: GeoIP{
			Country:    "US",
			Region:     "MD",
			City:       "Columbia",
			Latitude:   39.1749,
			Longitude:  -76.8375,
			Zip:        21046,
			PostalCode: "21046",
		},
		UserAgent:     "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko)",
		TargetLinkURL: "https://example.com",
		InbandBounce: Bounce{
			Code:      "551",
			Class:     enum.BounceClassInvalidRecipient,
			Reason:    "551 5.7.0 [internal] recipient blackholed",
			RawReason: "551 5.7.0 User has gone away, so should you",
		},
		OutOfBandBounce: Bounce{
			Code:   "550",
			Class:  enum.BounceClassInvalidRecipient,
			Reason: "550 5.1.1 <recipient>... User unknown",
		},
		Delay: Bounce{
			Code:   "452",
			Class:  enum.BounceClassMailboxFull,
			Reason: "452 4.2.2 The email account that you tried to reach is over quota",
		},
		PolicyRejection: Bounce{
			Code:   "554",
			Class:  enum.BounceClassAdminFailure,
			Reason: "554 5.7.1 [internal] recipient address was suppressed due to system policy",
		},
		GenerationRejection: Bounce{
			Code:   "554",
			Class:  enum.BounceClassAdminFailure,
			Reason: "554 5.7.1 recipient address suppressed due to customer policy",
		},
		GenerationFailure: Bounce{
			Code:   "554",
			Reason: "554 5.3.3 [internal] Error while rendering part html: substitution value 'name' did not exist or was null",
		},
	}
}

// bounceFor picks the bounce parameters a subtype reports. Subtypes that are not
// failures get a zero Bounce.
func (p Profile) bounceFor(subtype enum.EventSubtype) Bounce {
	switch subtype {
	case enum.EventInband:
		return p.InbandBounce
	case enum.EventOutOfBand:
		return p.OutOfBandBounce
	case enum.EventTempFail:
		return p.Delay
	case enum.EventRejection:
		return p.PolicyRejection
	case enum.EventGenRejection:
		return p.GenerationRejection
	case enum.EventGenFail:
		return p.GenerationFailure
	}
	return Bounce{}
}
