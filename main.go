package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

const AppSource = "ingestgen"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("%s: %v", AppSource, err)
	}
}

func newApp() *cli.App {
	rt := &runtime{}

	scenarioFlag := &cli.StringFlag{
		Name:    "scenario",
		Aliases: []string{"s"},
		Usage:   fmt.Sprintf("scenario to generate, one of %v", scenarioNames()),
		Value:   "engagement",
	}
	countFlag := &cli.IntFlag{
		Name:    "count",
		Aliases: []string{"n"},
		Usage:   "number of repetitions of the scenario",
		Value:   1,
	}

	return &cli.App{
		Name:  AppSource,
		Usage: "generate synthetic SparkPost events and exercise the ingest API",
		Before: func(c *cli.Context) error {
			return rt.init(c)
		},
		After: func(c *cli.Context) error {
			rt.close()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "print a generated NDJSON batch to stdout",
				Flags:  []cli.Flag{scenarioFlag, countFlag},
				Action: rt.generate,
			},
			{
				Name:   "send",
				Usage:  "generate a batch and upload it to the ingest endpoint",
				Flags:  []cli.Flag{scenarioFlag, countFlag},
				Action: rt.send,
			},
			{
				Name:      "failures",
				Usage:     "fetch the failure report of one or more batches",
				ArgsUsage: "<batch id> [batch id...]",
				Action:    rt.failures,
			},
			{
				Name:   "docs",
				Usage:  "flatten the event documentation into a quoted, comma separated report",
				Action: rt.docs,
			},
			{
				Name:   "agent",
				Usage:  "send a check-in batch on the CRON_SCHEDULE_AGENT schedule",
				Action: rt.agent,
			},
			{
				Name:   "sink",
				Usage:  "run a local server that emulates the ingest endpoints",
				Action: rt.sink,
			},
		},
	}
}
