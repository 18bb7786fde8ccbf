package event

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/customeros/ingestgen/internal/clock"
	"github.com/customeros/ingestgen/internal/enum"
)

// Property: any scenario repeated n times yields n times its record order, every line
// validates and timestamps never go backwards.
func TestGenerate_Properties(t *testing.T) {
	validator := MustNewValidator()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("generated batches are well formed and ordered", prop.ForAll(
		func(scenarioIdx, n int, stepSeconds int64) bool {
			scenario := enum.AllScenarios[scenarioIdx]
			g := NewGenerator(
				clock.NewLogical(time.Unix(1460989507, 0), time.Duration(stepSeconds)*time.Second),
				DefaultProfile(),
			)
			batch, err := g.Generate(scenario, n)
			if err != nil {
				return false
			}

			lines := SplitBatch(batch)
			order := Subtypes(scenario)
			if len(lines) != n*len(order) {
				return false
			}

			var last int64
			for i, line := range lines {
				rec, err := validator.Validate(line)
				if err != nil {
					return false
				}
				if rec.Type != order[i%len(order)] {
					return false
				}
				if rec.Timestamp() < last {
					return false
				}
				last = rec.Timestamp()
			}
			return true
		},
		gen.IntRange(0, len(enum.AllScenarios)-1),
		gen.IntRange(1, 4),
		gen.Int64Range(0, 3600),
	))

	properties.TestingRun(t)
}
