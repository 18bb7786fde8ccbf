package config

import (
	"strings"
	"time"

	"github.com/customeros/mailsherpa/mailvalidate"
	"github.com/pkg/errors"

	er "github.com/customeros/ingestgen/internal/errors"
	"github.com/customeros/ingestgen/internal/event"
	"github.com/customeros/ingestgen/internal/utils"
)

type AppConfig struct {
	APIKey string `env:"SPARKPOST_API_KEY"`
	Host   string `env:"SPARKPOST_HOST" envDefault:"api.sparkpost.com"`
	// BaseURLOverride is used verbatim, e.g. http://localhost:12222 for the local sink.
	BaseURLOverride string `env:"SPARKPOST_BASE_URL"`
}

// BaseURL is the normalized scheme+host that versioned API paths are appended to.
func (c *AppConfig) BaseURL() string {
	if c.BaseURLOverride != "" {
		return strings.TrimSuffix(c.BaseURLOverride, "/")
	}
	return utils.NormalizeHost(c.Host)
}

// RequireAPIKey fails when no API key was configured.
func (c *AppConfig) RequireAPIKey() error {
	if c.APIKey == "" {
		return er.ErrAPIKeyMissing
	}
	return nil
}

type GeneratorConfig struct {
	MsgFrom         string        `env:"GENERATOR_MSG_FROM"`
	FriendlyFrom    string        `env:"GENERATOR_FRIENDLY_FROM"`
	CampaignID      string        `env:"GENERATOR_CAMPAIGN_ID"`
	Subject         string        `env:"GENERATOR_SUBJECT"`
	SendingIP       string        `env:"GENERATOR_SENDING_IP"`
	RecipientPrefix string        `env:"GENERATOR_RECIPIENT_PREFIX"`
	RecipientDomain string        `env:"GENERATOR_RECIPIENT_DOMAIN"`
	UserAgent       string        `env:"GENERATOR_USER_AGENT"`
	TargetLinkURL   string        `env:"GENERATOR_TARGET_LINK_URL"`
	ClockStep       time.Duration `env:"GENERATOR_CLOCK_STEP" envDefault:"60s"`
}

// Profile overlays the configured values on the default scenario parameters.
func (c *GeneratorConfig) Profile() event.Profile {
	p := event.DefaultProfile()
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.MsgFrom, c.MsgFrom)
	set(&p.FriendlyFrom, c.FriendlyFrom)
	set(&p.CampaignID, c.CampaignID)
	set(&p.Subject, c.Subject)
	set(&p.SendingIP, c.SendingIP)
	set(&p.RecipientPrefix, c.RecipientPrefix)
	set(&p.RecipientDomain, c.RecipientDomain)
	set(&p.UserAgent, c.UserAgent)
	set(&p.TargetLinkURL, c.TargetLinkURL)
	if c.FriendlyFrom == "" && c.MsgFrom != "" {
		p.FriendlyFrom = c.MsgFrom
	}
	return p
}

// Validate checks the sender address syntax before anything is generated.
func (c *GeneratorConfig) Validate() error {
	p := c.Profile()
	validation := mailvalidate.ValidateEmailSyntax(p.MsgFrom)
	if !validation.IsValid {
		return errors.Wrapf(er.ErrInvalidSender, "%q", p.MsgFrom)
	}
	if p.RecipientDomain == "" {
		return errors.New("recipient domain is empty")
	}
	return nil
}

// ArchiveConfig points at an S3 compatible bucket that keeps a copy of every uploaded
// batch. Setting R2AccountID targets Cloudflare R2 instead of AWS.
type ArchiveConfig struct {
	Enabled         bool   `env:"ARCHIVE_ENABLED" envDefault:"false"`
	Bucket          string `env:"ARCHIVE_BUCKET"`
	Prefix          string `env:"ARCHIVE_PREFIX" envDefault:"batches"`
	Region          string `env:"ARCHIVE_REGION" envDefault:"us-east-1"`
	Endpoint        string `env:"ARCHIVE_ENDPOINT"`
	AccessKeyID     string `env:"ARCHIVE_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"ARCHIVE_ACCESS_KEY_SECRET"`
	R2AccountID     string `env:"CLOUDFLARE_R2_ACCOUNT_ID"`
}

type AgentConfig struct {
	// every five minutes
	Schedule string `env:"CRON_SCHEDULE_AGENT" envDefault:"0 */5 * * * *"`
	Scenario string `env:"AGENT_SCENARIO" envDefault:"inband_bounce"`
	Count    int    `env:"AGENT_COUNT" envDefault:"1"`
}

type SinkConfig struct {
	Port   string `env:"SINK_PORT" envDefault:"12222"`
	APIKey string `env:"SINK_API_KEY"`
	// RedisAddr shares batches between sink instances; empty keeps them in memory.
	RedisAddr     string        `env:"SINK_REDIS_ADDR"`
	RedisPassword string        `env:"SINK_REDIS_PASSWORD"`
	RedisDB       int           `env:"SINK_REDIS_DB" envDefault:"0"`
	BatchTTL      time.Duration `env:"SINK_BATCH_TTL" envDefault:"24h"`
}
