package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/erc7824/nitrolite/relayer/pkg/log"
)

const (
	configDirPathEnv     = "RELAYER_CONFIG_DIR_PATH"
	defaultConfigDirPath = "."
)

// ErrConfigurationMissing is returned when a required setting is absent.
var ErrConfigurationMissing = fmt.Errorf("configuration missing")

// Config is built once at startup and passed to the components that need it.
type Config struct {
	PrivateKey  string     `env:"PK"`
	RPCURL      string     `env:"RPC_URL"`
	MetricsAddr string     `env:"METRICS_ADDR" validate:"omitempty,hostname_port"`
	Log         log.Config
}

// String never prints the private key.
func (c Config) String() string {
	pk := "<unset>"
	if c.PrivateKey != "" {
		pk = "<redacted>"
	}
	return fmt.Sprintf("Config{PrivateKey:%s RPCURL:%s MetricsAddr:%s Log:%+v}", pk, c.RPCURL, c.MetricsAddr, c.Log)
}

// LoadConfig loads <RELAYER_CONFIG_DIR_PATH>/.env, if present, and reads the
// configuration from the environment.
func LoadConfig(logger log.Logger) (*Config, error) {
	logger = logger.WithName("config")

	configDirPath := os.Getenv(configDirPathEnv)
	if configDirPath == "" {
		configDirPath = defaultConfigDirPath
	}

	configDotEnvPath := filepath.Join(configDirPath, ".env")
	logger.Info("loading .env file", "path", configDotEnvPath)
	if err := godotenv.Load(configDotEnvPath); err != nil {
		logger.Warn(".env file not found", "path", configDotEnvPath)
	}

	var conf Config
	if err := cleanenv.ReadEnv(&conf); err != nil {
		logger.Error("failed to read env", "error", err)
		return nil, err
	}

	var missing []string
	if strings.TrimSpace(conf.PrivateKey) == "" {
		missing = append(missing, "PK")
	}
	if strings.TrimSpace(conf.RPCURL) == "" {
		missing = append(missing, "RPC_URL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrConfigurationMissing, strings.Join(missing, ", "))
	}

	if err := validator.New().Struct(conf); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("configuration loaded", "metricsAddr", conf.MetricsAddr)
	return &conf, nil
}
