package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix = "S3UPLOAD"

	transportAWS   = "aws"
	transportMinIO = "minio"
)

// settings holds the CLI configuration. Every key can be set in the optional
// config file named by S3UPLOAD_CONFIG or overridden by S3UPLOAD_<KEY>, with
// dots replaced by underscores (S3UPLOAD_LOG_LEVEL).
type settings struct {
	Transport   string
	Concurrency int
	PartSize    int64
	Workspace   string
	LogLevel    slog.Level
	LogFormat   string
	Include     []string
	Exclude     []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("transport", transportAWS)
	v.SetDefault("concurrency", 5)
	v.SetDefault("part_size", 0)
	v.SetDefault("workspace", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("include", []string{})
	v.SetDefault("exclude", []string{})
}

// loadSettings reads settings from the environment and the optional config file.
func loadSettings() (*settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if file := os.Getenv(envPrefix + "_CONFIG"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	s := &settings{
		Transport:   strings.ToLower(v.GetString("transport")),
		Concurrency: v.GetInt("concurrency"),
		PartSize:    v.GetInt64("part_size"),
		Workspace:   v.GetString("workspace"),
		LogFormat:   strings.ToLower(v.GetString("log.format")),
		Include:     v.GetStringSlice("include"),
		Exclude:     v.GetStringSlice("exclude"),
	}

	if err := s.LogLevel.UnmarshalText([]byte(v.GetString("log.level"))); err != nil {
		return nil, fmt.Errorf("invalid log.level: %w", err)
	}

	switch s.Transport {
	case transportAWS, transportMinIO:
	default:
		return nil, fmt.Errorf("invalid transport %q: must be %s or %s", s.Transport, transportAWS, transportMinIO)
	}

	switch s.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log.format %q: must be text or json", s.LogFormat)
	}

	if s.Concurrency < 1 {
		return nil, fmt.Errorf("invalid concurrency %d: must be at least 1", s.Concurrency)
	}
	if s.PartSize < 0 {
		return nil, fmt.Errorf("invalid part_size %d: must not be negative", s.PartSize)
	}

	return s, nil
}

func (s *settings) logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: s.LogLevel}
	if s.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
