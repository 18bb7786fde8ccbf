package event

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"

	"github.com/customeros/ingestgen/internal/enum"
	er "github.com/customeros/ingestgen/internal/errors"
)

// envelopeKey wraps every ingest record: {"msys": {"<category>": {...}}}.
const envelopeKey = "msys"

// GeoIP is the only nested value a record may carry.
type GeoIP struct {
	Country    string  `json:"country"`
	Region     string  `json:"region"`
	City       string  `json:"city"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Zip        int     `json:"zip"`
	PostalCode string  `json:"postal_code"`
}

// Record is one ingest event. Fields holds the flat attribute map, "type" included.
type Record struct {
	Category enum.EventCategory
	Type     enum.EventSubtype
	Fields   map[string]any
}

func (r Record) StringField(name string) string {
	v, ok := r.Fields[name]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (r Record) Has(name string) bool {
	_, ok := r.Fields[name]
	return ok
}

func (r Record) EventID() string {
	return r.StringField(FieldEventID)
}

func (r Record) MessageID() string {
	return r.StringField(FieldMessageID)
}

func (r Record) RcptTo() string {
	return r.StringField(FieldRcptTo)
}

// Timestamp returns the unix seconds carried by the record, or 0 when absent or unparsable.
func (r Record) Timestamp() int64 {
	ts, err := strconv.ParseInt(r.StringField(FieldTimestamp), 10, 64)
	if err != nil {
		return 0
	}
	return ts
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]map[string]any{
		envelopeKey: {r.Category.String(): r.Fields},
	})
}

// Line serializes the record as a single NDJSON line terminated by exactly one newline.
func (r Record) Line() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]map[string]map[string]any{
		envelopeKey: {r.Category.String(): r.Fields},
	}); err != nil {
		return "", errors.Wrap(err, "failed to encode record")
	}
	return buf.String(), nil
}

// ParseRecord decodes one NDJSON line and checks that it has a single known category
// wrapper holding a known subtype that belongs to that category.
func ParseRecord(line string) (Record, error) {
	var envelope map[string]map[string]map[string]any
	if err := json.Unmarshal([]byte(line), &envelope); err != nil {
		return Record{}, errors.Wrap(er.ErrMalformedRecord, err.Error())
	}
	if len(envelope) != 1 {
		return Record{}, errors.Wrapf(er.ErrMalformedRecord, "expected one top-level key, got %d", len(envelope))
	}
	body, ok := envelope[envelopeKey]
	if !ok {
		return Record{}, errors.Wrapf(er.ErrMalformedRecord, "missing %q envelope", envelopeKey)
	}
	if len(body) != 1 {
		return Record{}, errors.Wrapf(er.ErrMalformedRecord, "expected one category wrapper, got %d", len(body))
	}

	var rec Record
	for key, fields := range body {
		category, ok := enum.GetEventCategory(key)
		if !ok {
			return Record{}, errors.Wrapf(er.ErrMalformedRecord, "unknown category %q", key)
		}
		typeTag, _ := fields[FieldType].(string)
		subtype, ok := enum.GetEventSubtype(typeTag)
		if !ok {
			return Record{}, errors.Wrapf(er.ErrUnknownSubtype, "%q", typeTag)
		}
		if CategoryOf(subtype) != category {
			return Record{}, errors.Wrapf(er.ErrMalformedRecord, "subtype %s does not belong to %s", subtype, category)
		}
		rec = Record{Category: category, Type: subtype, Fields: fields}
	}
	return rec, nil
}
