package event

import (
	"strconv"
	"time"

	"github.com/customeros/ingestgen/internal/enum"
	"github.com/customeros/ingestgen/internal/utils"
)

const (
	FieldType            = "type"
	FieldBinding         = "binding"
	FieldBindingGroup    = "binding_group"
	FieldBounceClass     = "bounce_class"
	FieldCampaignID      = "campaign_id"
	FieldDelvMethod      = "delv_method"
	FieldErrorCode       = "error_code"
	FieldEventID         = "event_id"
	FieldFbType          = "fbtype"
	FieldFriendlyFrom    = "friendly_from"
	FieldFriendlyName    = "friendly_name"
	FieldGeoIP           = "geo_ip"
	FieldMessageID       = "message_id"
	FieldMsgFrom         = "msg_from"
	FieldMsgSize         = "msg_size"
	FieldNumRetries      = "num_retries"
	FieldOpenTracking    = "open_tracking"
	FieldQueueTime       = "queue_time"
	FieldRawRcptTo       = "raw_rcpt_to"
	FieldRawReason       = "raw_reason"
	FieldRcptTo          = "rcpt_to"
	FieldReason          = "reason"
	FieldRecvMethod      = "recv_method"
	FieldReportBy        = "report_by"
	FieldRoutingDomain   = "routing_domain"
	FieldSendingIP       = "sending_ip"
	FieldSubaccountID    = "subaccount_id"
	FieldSubject         = "subject"
	FieldTargetLinkURL   = "target_link_url"
	FieldTemplateID      = "template_id"
	FieldTemplateVersion = "template_version"
	FieldTimestamp       = "timestamp"
	FieldUserAgent       = "user_agent"
)

const (
	defaultBinding         = "mta1"
	defaultBindingGroup    = "hot chili"
	defaultMsgSize         = "315"
	defaultMethod          = "smtp"
	generationRecvMethod   = "rest"
	defaultFbType          = "abuse"
	defaultTemplateID      = "template_123456"
	defaultTemplateVersion = "0"
)

// attribute describes how one field is filled in and how it is documented.
type attribute struct {
	resolve     func(in *Input, ts time.Time) any
	description string
	optional    bool
	// reporting marks attributes surfaced in reporting and health scores.
	reporting bool
}

func constant(v any) func(*Input, time.Time) any {
	return func(*Input, time.Time) any { return v }
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// attributes is the catalog of every field any subtype may carry.
var attributes = map[string]attribute{
	FieldBinding:      {resolve: constant(defaultBinding), description: "Name of the binding used to deliver the message", optional: true},
	FieldBindingGroup: {resolve: constant(defaultBindingGroup), description: "Name of the binding group used to deliver the message", optional: true},
	FieldBounceClass: {
		resolve:     func(in *Input, _ time.Time) any { return in.Bounce.Class.String() },
		description: "Classification code for a given message",
		reporting:   true,
	},
	FieldCampaignID: {
		resolve:     func(in *Input, _ time.Time) any { return in.CampaignID },
		description: "Campaign of which this message was a part",
		optional:    true,
		reporting:   true,
	},
	FieldDelvMethod: {resolve: constant(defaultMethod), description: "Protocol by which the message was delivered"},
	FieldErrorCode: {
		resolve:     func(in *Input, _ time.Time) any { return in.Bounce.Code },
		description: "Error code by which the remote server described a failed delivery attempt",
		reporting:   true,
	},
	FieldEventID: {
		resolve:     func(*Input, time.Time) any { return utils.NewEventID() },
		description: "Unique event identifier",
	},
	FieldFbType: {resolve: constant(defaultFbType), description: "Type of spam report entered against this message"},
	FieldFriendlyFrom: {
		resolve:     func(in *Input, _ time.Time) any { return in.FriendlyFrom },
		description: "Friendly sender or 'From' header in the original email",
	},
	FieldFriendlyName: {resolve: constant(""), description: "Display name portion of the 'From' header", optional: true},
	FieldGeoIP: {
		resolve:     func(in *Input, _ time.Time) any { return in.Engagement.GeoIP },
		description: "Geographic location based on the IP address, including latitude, longitude, city, country, and region",
		optional:    true,
	},
	FieldMessageID: {
		resolve:     func(in *Input, _ time.Time) any { return in.MessageID },
		description: "Message ID shared by all events of one message",
		reporting:   true,
	},
	FieldMsgFrom: {
		resolve:     func(in *Input, _ time.Time) any { return in.MsgFrom },
		description: "Sender address used on this message's SMTP envelope",
	},
	FieldMsgSize:      {resolve: constant(defaultMsgSize), description: "Message's size in bytes", optional: true},
	FieldNumRetries:   {resolve: constant("0"), description: "Number of failed attempts before this message was successfully delivered", optional: true},
	FieldOpenTracking: {resolve: constant(true), description: "Whether open tracking was enabled for this message", optional: true, reporting: true},
	FieldQueueTime:    {resolve: constant("0"), description: "Delay, expressed in milliseconds, between this message's injection and delivery", optional: true},
	FieldRawRcptTo: {
		resolve:     func(in *Input, _ time.Time) any { return in.RcptTo },
		description: "Actual recipient address used, preserving the original case",
	},
	FieldRawReason: {
		resolve:     func(in *Input, _ time.Time) any { return orDefault(in.Bounce.RawReason, in.Bounce.Reason) },
		description: "Unmodified, exact response returned by the remote server",
	},
	FieldRcptTo: {
		resolve:     func(in *Input, _ time.Time) any { return in.RcptTo },
		description: "Lowercase version of the recipient address used on this message's SMTP envelope",
		reporting:   true,
	},
	FieldReason: {
		resolve:     func(in *Input, _ time.Time) any { return in.Bounce.Reason },
		description: "Canonicalized text of the response returned by the remote server",
	},
	FieldRecvMethod: {
		resolve:     func(in *Input, _ time.Time) any { return orDefault(in.RecvMethod, defaultMethod) },
		description: "Protocol by which the message was injected",
	},
	FieldReportBy: {resolve: constant(""), description: "Address of the entity reporting the spam complaint", optional: true},
	FieldRoutingDomain: {
		resolve:     func(in *Input, _ time.Time) any { return utils.RoutingDomain(in.RcptTo) },
		description: "Domain receiving the message",
		optional:    true,
		reporting:   true,
	},
	FieldSendingIP: {
		resolve:     func(in *Input, _ time.Time) any { return in.SendingIP },
		description: "IP address through which this message was sent",
		optional:    true,
		reporting:   true,
	},
	FieldSubaccountID: {resolve: constant(0), description: "Unique subaccount identifier", reporting: true},
	FieldSubject: {
		resolve:     func(in *Input, _ time.Time) any { return in.Subject },
		description: "Subject line from the email header",
		optional:    true,
	},
	FieldTargetLinkURL: {
		resolve:     func(in *Input, _ time.Time) any { return in.Engagement.TargetLinkURL },
		description: "URL of the link that was clicked",
	},
	FieldTemplateID:      {resolve: constant(defaultTemplateID), description: "Slug of the template used to construct this message", optional: true},
	FieldTemplateVersion: {resolve: constant(defaultTemplateVersion), description: "Version of the template used to construct this message", optional: true},
	FieldTimestamp: {
		resolve:     func(_ *Input, ts time.Time) any { return strconv.FormatInt(ts.Unix(), 10) },
		description: "Event date and time, in Unix timestamp format",
		reporting:   true,
	},
	FieldUserAgent: {
		resolve:     func(in *Input, _ time.Time) any { return in.Engagement.UserAgent },
		description: "User agent of the recipient's client",
		optional:    true,
	},
}

// schema is the field table for one subtype.
type schema struct {
	category enum.EventCategory
	fields   []string
	// fixed overrides the catalog resolver for this subtype only.
	fixed map[string]any
}

var (
	trackFields = []string{
		FieldDelvMethod, FieldEventID, FieldGeoIP, FieldMessageID, FieldRcptTo,
		FieldSubaccountID, FieldTimestamp, FieldUserAgent,
	}
	clickFields = append(append([]string{}, trackFields...), FieldTargetLinkURL)
)

// schemas is the single source of truth for the subtype to category mapping and the
// field set of every subtype.
var schemas = map[enum.EventSubtype]schema{
	enum.EventReception: {
		category: enum.CategoryMessage,
		fields: []string{
			FieldBinding, FieldBindingGroup, FieldCampaignID, FieldEventID, FieldFriendlyFrom,
			FieldFriendlyName, FieldMessageID, FieldMsgFrom, FieldMsgSize, FieldOpenTracking,
			FieldRcptTo, FieldRecvMethod, FieldRoutingDomain, FieldSendingIP, FieldSubaccountID,
			FieldSubject, FieldTimestamp,
		},
	},
	enum.EventDelivery: {
		category: enum.CategoryMessage,
		fields: []string{
			FieldBinding, FieldBindingGroup, FieldCampaignID, FieldDelvMethod, FieldEventID,
			FieldFriendlyFrom, FieldFriendlyName, FieldMessageID, FieldMsgFrom, FieldMsgSize,
			FieldNumRetries, FieldOpenTracking, FieldRcptTo, FieldRecvMethod, FieldRoutingDomain,
			FieldSendingIP, FieldSubaccountID, FieldSubject, FieldTimestamp,
		},
		fixed: map[string]any{FieldRecvMethod: defaultMethod},
	},
	enum.EventInband: {
		category: enum.CategoryMessage,
		fields: []string{
			FieldBinding, FieldBindingGroup, FieldBounceClass, FieldCampaignID, FieldErrorCode,
			FieldEventID, FieldFriendlyFrom, FieldFriendlyName, FieldMessageID, FieldMsgFrom,
			FieldMsgSize, FieldNumRetries, FieldOpenTracking, FieldRawReason, FieldRcptTo,
			FieldReason, FieldRecvMethod, FieldRoutingDomain, FieldSendingIP, FieldSubaccountID,
			FieldSubject, FieldTimestamp,
		},
	},
	enum.EventOutOfBand: {
		category: enum.CategoryMessage,
		fields: []string{
			FieldBounceClass, FieldDelvMethod, FieldErrorCode, FieldEventID, FieldFriendlyFrom,
			FieldMessageID, FieldMsgFrom, FieldRawReason, FieldRcptTo, FieldReason, FieldRecvMethod,
			FieldSubaccountID, FieldTimestamp,
		},
	},
	enum.EventFeedback: {
		category: enum.CategoryMessage,
		fields: []string{
			FieldDelvMethod, FieldEventID, FieldFbType, FieldFriendlyFrom, FieldMessageID,
			FieldMsgFrom, FieldRcptTo, FieldReportBy, FieldSendingIP, FieldSubaccountID,
			FieldTimestamp,
		},
	},
	enum.EventTempFail: {
		category: enum.CategoryMessage,
		fields: []string{
			FieldBinding, FieldBindingGroup, FieldBounceClass, FieldCampaignID, FieldDelvMethod,
			FieldErrorCode, FieldEventID, FieldFriendlyFrom, FieldFriendlyName, FieldMessageID,
			FieldMsgFrom, FieldMsgSize, FieldNumRetries, FieldOpenTracking, FieldQueueTime,
			FieldRawReason, FieldRcptTo, FieldReason, FieldRecvMethod, FieldRoutingDomain,
			FieldSendingIP, FieldSubaccountID, FieldSubject, FieldTimestamp,
		},
	},
	enum.EventRejection: {
		category: enum.CategoryMessage,
		fields: []string{
			FieldBounceClass, FieldErrorCode, FieldEventID, FieldFriendlyFrom, FieldMessageID,
			FieldMsgFrom, FieldRawRcptTo, FieldRawReason, FieldRcptTo, FieldReason, FieldRecvMethod,
			FieldSubaccountID, FieldTimestamp,
		},
	},
	enum.EventGenRejection: {
		category: enum.CategoryGeneration,
		fields: []string{
			FieldBounceClass, FieldCampaignID, FieldErrorCode, FieldEventID, FieldFriendlyFrom,
			FieldMessageID, FieldMsgFrom, FieldRawRcptTo, FieldRawReason, FieldRcptTo, FieldReason,
			FieldRecvMethod, FieldSubaccountID, FieldSubject, FieldTemplateID, FieldTemplateVersion,
			FieldTimestamp,
		},
		fixed: map[string]any{FieldRecvMethod: generationRecvMethod},
	},
	// Generation failures happen before a message id is assigned.
	enum.EventGenFail: {
		category: enum.CategoryGeneration,
		fields: []string{
			FieldCampaignID, FieldErrorCode, FieldEventID, FieldFriendlyFrom, FieldMsgFrom,
			FieldRawRcptTo, FieldRawReason, FieldRcptTo, FieldReason, FieldRecvMethod,
			FieldSubaccountID, FieldTemplateID, FieldTemplateVersion, FieldTimestamp,
		},
		fixed: map[string]any{FieldRecvMethod: generationRecvMethod},
	},
	enum.EventInitialOpen:    {category: enum.CategoryTrack, fields: trackFields},
	enum.EventOpen:           {category: enum.CategoryTrack, fields: trackFields},
	enum.EventClick:          {category: enum.CategoryTrack, fields: clickFields},
	enum.EventAmpInitialOpen: {category: enum.CategoryTrack, fields: trackFields},
	enum.EventAmpOpen:        {category: enum.CategoryTrack, fields: trackFields},
	enum.EventAmpClick:       {category: enum.CategoryTrack, fields: clickFields},
	enum.EventLink: {
		category: enum.CategoryUnsubscribe,
		fields: []string{
			FieldDelvMethod, FieldEventID, FieldMessageID, FieldRecvMethod, FieldRcptTo,
			FieldSubaccountID, FieldTimestamp, FieldUserAgent,
		},
	},
	enum.EventList: {
		category: enum.CategoryUnsubscribe,
		fields: []string{
			FieldDelvMethod, FieldEventID, FieldMessageID, FieldRecvMethod, FieldRcptTo,
			FieldSubaccountID, FieldTimestamp,
		},
	},
}

// CategoryOf returns the wrapper key for a subtype, or "" for an unknown subtype.
func CategoryOf(subtype enum.EventSubtype) enum.EventCategory {
	return schemas[subtype].category
}

// FieldsOf returns the attribute names a subtype carries besides "type".
func FieldsOf(subtype enum.EventSubtype) []string {
	return append([]string{}, schemas[subtype].fields...)
}
