package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/customeros/ingestgen/config"
	"github.com/customeros/ingestgen/internal/clock"
	"github.com/customeros/ingestgen/internal/enum"
	er "github.com/customeros/ingestgen/internal/errors"
	"github.com/customeros/ingestgen/internal/event"
	"github.com/customeros/ingestgen/internal/logger"
	"github.com/customeros/ingestgen/internal/tracing"
	"github.com/customeros/ingestgen/internal/utils"
	"github.com/customeros/ingestgen/server"
	"github.com/customeros/ingestgen/services"
	"github.com/customeros/ingestgen/services/agent"
	"github.com/customeros/ingestgen/services/docs"
)

const apiKeyMissingMessage = "Environment variable SPARKPOST_API_KEY not set - stopping."

// runtime holds what every command shares once the config is loaded.
type runtime struct {
	cfg          *config.Config
	log          logger.Logger
	services     *services.Services
	tracerCloser io.Closer
	now          func() time.Time
}

func (rt *runtime) init(c *cli.Context) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return err
	}
	rt.cfg = cfg

	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()
	rt.log = appLogger

	tracer, closer, err := tracing.NewJaegerTracer(cfg.Tracing, rt.log)
	if err != nil {
		return errors.Wrap(err, "could not initialize jaeger tracer")
	}
	opentracing.SetGlobalTracer(tracer)
	rt.tracerCloser = closer

	if rt.now == nil {
		rt.now = time.Now
	}

	svcs, err := services.InitServices(cfg, rt.log)
	if err != nil {
		return err
	}
	rt.services = svcs
	return nil
}

func (rt *runtime) close() {
	if rt.tracerCloser != nil {
		_ = rt.tracerCloser.Close()
	}
	if rt.log != nil {
		_ = rt.log.Sync()
	}
}

func (rt *runtime) context(c *cli.Context, scenario string) context.Context {
	return utils.WithCustomContext(c.Context, &utils.CustomContext{
		AppSource: AppSource,
		Command:   c.Command.Name,
		Scenario:  scenario,
	})
}

func (rt *runtime) requireAPIKey() error {
	if err := rt.cfg.AppConfig.RequireAPIKey(); err != nil {
		return cli.Exit(apiKeyMissingMessage, 1)
	}
	return nil
}

func scenarioNames() []string {
	names := make([]string, 0, len(enum.AllScenarios))
	for _, s := range enum.AllScenarios {
		names = append(names, s.String())
	}
	return names
}

// batch validates the flags and the sender, then generates the requested scenario.
func (rt *runtime) batch(c *cli.Context) (enum.Scenario, string, error) {
	scenario, ok := enum.GetScenario(c.String("scenario"))
	if !ok {
		return "", "", cli.Exit(errors.Wrapf(er.ErrUnknownScenario, "%q, expected one of %v", c.String("scenario"), scenarioNames()).Error(), 2)
	}
	if err := rt.cfg.GeneratorConfig.Validate(); err != nil {
		return "", "", cli.Exit(err.Error(), 2)
	}

	gen := event.NewGenerator(
		clock.NewLogical(rt.now(), rt.cfg.GeneratorConfig.ClockStep),
		rt.cfg.GeneratorConfig.Profile(),
	)
	batch, err := gen.Generate(scenario, c.Int("count"))
	if err != nil {
		return "", "", cli.Exit(err.Error(), 2)
	}
	return scenario, batch, nil
}

func (rt *runtime) generate(c *cli.Context) error {
	_, batch, err := rt.batch(c)
	if err != nil {
		return err
	}
	_, err = io.WriteString(c.App.Writer, batch)
	return err
}

func (rt *runtime) send(c *cli.Context) error {
	if err := rt.requireAPIKey(); err != nil {
		return err
	}
	scenario, batch, err := rt.batch(c)
	if err != nil {
		return err
	}
	ctx := rt.context(c, scenario.String())

	if rt.services.ArchiveService != nil {
		if _, err := rt.services.ArchiveService.ArchiveBatch(ctx, scenario.String(), batch); err != nil {
			rt.log.Warnf("Could not archive batch: %v", err)
		}
	}

	resp, err := rt.services.IngestService.SendBatch(ctx, batch)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "%d %s\n", resp.StatusCode, resp.Body)
	return err
}

func (rt *runtime) failures(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("at least one batch id is required", 2)
	}
	if err := rt.requireAPIKey(); err != nil {
		return err
	}
	ctx := rt.context(c, "")

	for _, batchID := range c.Args().Slice() {
		resp, err := rt.services.IngestService.GetFailures(utils.SetBatchIDInContext(ctx, batchID), batchID)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Batch %q, check status: %d\n\n", batchID, resp.StatusCode)
		if resp.DecodeError != "" {
			fmt.Fprintln(c.App.Writer, resp.DecodeError)
		}
		fmt.Fprintln(c.App.Writer, resp.Text)
	}
	return nil
}

func (rt *runtime) docs(c *cli.Context) error {
	documentation, err := rt.services.IngestService.GetDocumentation(rt.context(c, ""))
	if err != nil {
		return err
	}
	return docs.Flatten(c.App.Writer, documentation)
}

func (rt *runtime) agent(c *cli.Context) error {
	if err := rt.requireAPIKey(); err != nil {
		return err
	}
	if _, ok := enum.GetScenario(rt.cfg.AgentConfig.Scenario); !ok {
		return cli.Exit(errors.Wrapf(er.ErrUnknownScenario, "AGENT_SCENARIO %q", rt.cfg.AgentConfig.Scenario).Error(), 2)
	}
	if err := rt.cfg.GeneratorConfig.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	a := agent.NewAgent(rt.cfg.AgentConfig, rt.cfg.GeneratorConfig, rt.log, rt.services.IngestService, rt.services.ArchiveService)
	if err := a.Start(); err != nil {
		return errors.Wrap(err, "could not schedule event agent")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	a.Stop()
	return nil
}

func (rt *runtime) sink(c *cli.Context) error {
	return server.NewServer(rt.cfg.SinkConfig, rt.log).Run(c.Context)
}
