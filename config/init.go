package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/customeros/ingestgen/internal/logger"
	"github.com/customeros/ingestgen/internal/tracing"
)

type Config struct {
	AppConfig       *AppConfig
	Logger          *logger.Config
	Tracing         *tracing.JaegerConfig
	GeneratorConfig *GeneratorConfig
	ArchiveConfig   *ArchiveConfig
	AgentConfig     *AgentConfig
	SinkConfig      *SinkConfig
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:       &AppConfig{},
		Logger:          &logger.Config{},
		Tracing:         &tracing.JaegerConfig{},
		GeneratorConfig: &GeneratorConfig{},
		ArchiveConfig:   &ArchiveConfig{},
		AgentConfig:     &AgentConfig{},
		SinkConfig:      &SinkConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		return nil, errors.Wrap(err, "error loading ingestgen config")
	}

	return config, nil
}
