package activeredis

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config carries connection and logging settings for Connect. Populate it
// from the environment with LoadEnv, from a YAML file with LoadFile, or by
// hand.
type Config struct {
	RedisURL string    `envconfig:"REDIS_URL" yaml:"redis_url"`
	Log      LogConfig `envconfig:"LOG" yaml:"log"`
}

// LogConfig controls the logger Connect builds.
type LogConfig struct {
	// Level is a zerolog level name; empty means info.
	Level string `envconfig:"LEVEL" yaml:"level"`
	// Format is "json" or "console"; empty means json.
	Format string `envconfig:"FORMAT" yaml:"format"`
	// Output is "stdout" or "stderr"; empty means stderr.
	Output string `envconfig:"OUTPUT" yaml:"output"`
}

// LoadEnv populates a Config from the process environment.
func LoadEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}
	return &cfg, nil
}

// LoadFile populates a Config from a YAML file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// BuildLogger constructs a zerolog logger per the configuration.
func (lc LogConfig) BuildLogger() (zerolog.Logger, error) {
	levelName := lc.Level
	if levelName == "" {
		levelName = "info"
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}

	var output io.Writer
	switch strings.ToLower(lc.Output) {
	case "stdout":
		output = os.Stdout
	default:
		output = os.Stderr
	}
	if strings.ToLower(lc.Format) == "console" {
		output = zerolog.ConsoleWriter{Out: output}
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}
