package docs

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/customeros/ingestgen/dto"
)

const typeAttribute = "type"

var header = []string{"type", "attribute", "required", "reporting", "sampleValue", "description"}

// Flatten writes one row per (event type, attribute) pair. Every value is double quoted so
// sample values containing commas survive; embedded quotes are doubled.
func Flatten(w io.Writer, docs *dto.DocumentationResponse) error {
	if err := writeRow(w, header...); err != nil {
		return err
	}
	if docs == nil {
		return nil
	}

	for _, ev := range docs.Results {
		eventType := formatValue(ev[typeAttribute].SampleValue)
		for _, name := range attributeOrder(ev) {
			attr := ev[name]
			err := writeRow(w,
				eventType,
				name,
				strconv.FormatBool(truthy(attr.Required)),
				strconv.FormatBool(truthy(attr.Reporting)),
				formatValue(attr.SampleValue),
				attr.Description,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// attributeOrder puts "type" first and sorts the rest, since JSON objects carry no order.
func attributeOrder(ev map[string]dto.DocumentationAttribute) []string {
	names := make([]string, 0, len(ev))
	for name := range ev {
		if name != typeAttribute {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := ev[typeAttribute]; ok {
		names = append([]string{typeAttribute}, names...)
	}
	return names
}

func writeRow(w io.Writer, values ...string) error {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	if _, err := fmt.Fprintln(w, strings.Join(quoted, ",")); err != nil {
		return errors.Wrap(err, "failed to write documentation row")
	}
	return nil
}

// formatValue renders strings as-is and anything else as compact JSON.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}
