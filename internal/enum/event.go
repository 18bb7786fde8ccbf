package enum

// EventSubtype is the ingest "type" tag of a record. The ingest names differ from the
// reporting names for some subtypes (reception is reported as injection, inband as bounce).
type EventSubtype string

const (
	EventReception      EventSubtype = "reception"
	EventDelivery       EventSubtype = "delivery"
	EventInband         EventSubtype = "inband"
	EventOutOfBand      EventSubtype = "outofband"
	EventFeedback       EventSubtype = "feedback"
	EventTempFail       EventSubtype = "tempfail"
	EventRejection      EventSubtype = "rejection"
	EventGenRejection   EventSubtype = "gen_rejection"
	EventGenFail        EventSubtype = "gen_fail"
	EventInitialOpen    EventSubtype = "initial_open"
	EventOpen           EventSubtype = "open"
	EventClick          EventSubtype = "click"
	EventAmpInitialOpen EventSubtype = "amp_initial_open"
	EventAmpOpen        EventSubtype = "amp_open"
	EventAmpClick       EventSubtype = "amp_click"
	EventLink           EventSubtype = "link"
	EventList           EventSubtype = "list"
)

func (t EventSubtype) String() string {
	return string(t)
}

// AllEventSubtypes lists every subtype in documentation order.
var AllEventSubtypes = []EventSubtype{
	EventReception,
	EventDelivery,
	EventInband,
	EventOutOfBand,
	EventFeedback,
	EventTempFail,
	EventRejection,
	EventGenRejection,
	EventGenFail,
	EventInitialOpen,
	EventOpen,
	EventClick,
	EventAmpInitialOpen,
	EventAmpOpen,
	EventAmpClick,
	EventLink,
	EventList,
}

func GetEventSubtype(s string) (EventSubtype, bool) {
	for _, t := range AllEventSubtypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

type EventCategory string

const (
	CategoryMessage     EventCategory = "message_event"
	CategoryTrack       EventCategory = "track_event"
	CategoryUnsubscribe EventCategory = "unsubscribe_event"
	CategoryGeneration  EventCategory = "gen_event"
)

func (c EventCategory) String() string {
	return string(c)
}

func GetEventCategory(s string) (EventCategory, bool) {
	switch EventCategory(s) {
	case CategoryMessage, CategoryTrack, CategoryUnsubscribe, CategoryGeneration:
		return EventCategory(s), true
	}
	return "", false
}
