package agent

import (
	"context"
	"sync"
	"time"

	cronv3 "github.com/robfig/cron/v3"

	"github.com/customeros/ingestgen/config"
	"github.com/customeros/ingestgen/interfaces"
	"github.com/customeros/ingestgen/internal/clock"
	"github.com/customeros/ingestgen/internal/enum"
	"github.com/customeros/ingestgen/internal/event"
	"github.com/customeros/ingestgen/internal/logger"
	"github.com/customeros/ingestgen/internal/tracing"
	"github.com/customeros/ingestgen/internal/utils"
)

const JobCheckIn = "check_in"

// Agent periodically sends a small generated batch so a live ingest pipeline always has
// fresh events to look at.
type Agent struct {
	cfg       *config.AgentConfig
	generator *config.GeneratorConfig
	log       logger.Logger
	ingest    interfaces.IngestService
	archive   interfaces.ArchiveService

	mu     sync.Mutex
	cron   *cronv3.Cron
	jobIDs map[string]cronv3.EntryID
	now    func() time.Time
}

// NewAgent builds an agent; archive may be nil.
func NewAgent(cfg *config.AgentConfig, generator *config.GeneratorConfig, log logger.Logger, ingest interfaces.IngestService, archive interfaces.ArchiveService) *Agent {
	return &Agent{
		cfg:       cfg,
		generator: generator,
		log:       log,
		ingest:    ingest,
		archive:   archive,
		jobIDs:    make(map[string]cronv3.EntryID),
		now:       time.Now,
	}
}

// Start schedules the check-in job. Schedules take a seconds field.
func (a *Agent) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.log.Info("Starting event agent")
	c := cronv3.New(
		cronv3.WithSeconds(),
		cronv3.WithChain(
			cronv3.SkipIfStillRunning(cronv3.DefaultLogger),
			cronv3.Recover(cronv3.DefaultLogger),
		),
	)
	id, err := c.AddFunc(a.cfg.Schedule, func() {
		defer tracing.RecoverAndLogToJaeger(a.log)
		if _, err := a.CheckIn(context.Background()); err != nil {
			a.log.Errorf("Event agent check-in failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	a.jobIDs[JobCheckIn] = id
	a.log.Infof("Registered check-in job with schedule: %s", a.cfg.Schedule)

	c.Start()
	a.cron = c
	return nil
}

// Stop waits for a running check-in to finish.
func (a *Agent) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cron != nil {
		a.log.Info("Stopping event agent")
		<-a.cron.Stop().Done()
		a.cron = nil
	}
}

// CheckIn generates one batch of the configured scenario and uploads it.
func (a *Agent) CheckIn(ctx context.Context) (string, error) {
	scenario := enum.Scenario(a.cfg.Scenario)
	ctx = utils.SetScenarioInContext(ctx, scenario.String())

	span, ctx := tracing.StartTracerSpan(ctx, "Agent.CheckIn")
	defer span.Finish()
	tracing.TagComponentCronJob(span)

	gen := event.NewGenerator(clock.NewLogical(a.now(), a.generator.ClockStep), a.generator.Profile())
	batch, err := gen.Generate(scenario, a.cfg.Count)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	if a.archive != nil {
		key, err := a.archive.ArchiveBatch(ctx, scenario.String(), batch)
		if err != nil {
			// the upload still goes out
			tracing.TraceErr(span, err)
			a.log.Warnf("Could not archive batch: %v", err)
		} else {
			span.SetTag("archive.key", key)
		}
	}

	resp, err := a.ingest.SendBatch(ctx, batch)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if resp.BatchID != "" {
		tracing.TagBatch(span, resp.BatchID)
	}
	a.log.Infof("Event agent checked in: status %d, batch %q, %d bytes", resp.StatusCode, resp.BatchID, resp.CompressedLen)
	return resp.BatchID, nil
}
