package event

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/customeros/ingestgen/internal/enum"
	er "github.com/customeros/ingestgen/internal/errors"
)

const schemaBaseURL = "https://ingestgen.local/schemas/"

// Validator checks records against JSON schemas derived from the documentation tables:
// every required attribute must be present and every attribute must have the JSON type
// of its sample value.
type Validator struct {
	schemas map[enum.EventSubtype]*jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	v := &Validator{schemas: make(map[enum.EventSubtype]*jsonschema.Schema, len(enum.AllEventSubtypes))}

	for _, doc := range Describe() {
		subtype := enum.EventSubtype(fmt.Sprint(doc[FieldType].SampleValue))
		category := CategoryOf(subtype)

		raw, err := json.Marshal(recordSchema(category, subtype, doc))
		if err != nil {
			return nil, err
		}

		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		url := schemaBaseURL + subtype.String() + ".schema.json"
		if err = c.AddResource(url, bytes.NewReader(raw)); err != nil {
			return nil, errors.Wrapf(err, "schema load failed for %s", subtype)
		}
		compiled, err := c.Compile(url)
		if err != nil {
			return nil, errors.Wrapf(err, "schema compile failed for %s", subtype)
		}
		v.schemas[subtype] = compiled
	}
	return v, nil
}

func MustNewValidator() *Validator {
	v, err := NewValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate parses line and checks it against the schema of its subtype.
func (v *Validator) Validate(line string) (Record, error) {
	rec, err := ParseRecord(line)
	if err != nil {
		return Record{}, err
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(line)))
	dec.UseNumber()
	var doc any
	if err = dec.Decode(&doc); err != nil {
		return Record{}, errors.Wrap(er.ErrMalformedRecord, err.Error())
	}
	if err = v.schemas[rec.Type].Validate(doc); err != nil {
		return Record{}, errors.Wrap(er.ErrMalformedRecord, err.Error())
	}
	return rec, nil
}

func recordSchema(category enum.EventCategory, subtype enum.EventSubtype, doc EventDoc) map[string]any {
	properties := make(map[string]any, len(doc))
	required := make([]string, 0, len(doc))
	for name, attr := range doc {
		prop := map[string]any{}
		if t := jsonType(attr.SampleValue); t != "" {
			prop["type"] = t
		}
		properties[name] = prop
		if attr.Required {
			required = append(required, name)
		}
	}
	properties[FieldType] = map[string]any{"const": subtype.String()}

	return map[string]any{
		"$schema":  "https://json-schema.org/draft/2020-12/schema",
		"type":     "object",
		"required": []string{"msys"},
		"properties": map[string]any{
			"msys": map[string]any{
				"type":     "object",
				"required": []string{category.String()},
				"properties": map[string]any{
					category.String(): map[string]any{
						"type":       "object",
						"required":   required,
						"properties": properties,
					},
				},
			},
		},
	}
}

// jsonType names the JSON type a sample value encodes to; unknown or null samples get no
// type constraint.
func jsonType(sample any) string {
	raw, err := json.Marshal(sample)
	if err != nil || len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return ""
	}
	return "number"
}
