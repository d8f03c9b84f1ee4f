// SPDX-License-Identifier: MIT

// Package config loads the nhoodkit run configuration from YAML, applies
// environment overrides and turns it into nhoods and codec options.
//
// Precedence, lowest first: Default(), the YAML file, NHOODKIT_* environment
// variables, then whatever the caller sets on the returned value (CLI flags).
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/milo/codec"
	"github.com/katalvlaran/milo/logging"
	"github.com/katalvlaran/milo/nhoods"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "NHOODKIT"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full nhoodkit configuration.
type Config struct {
	Log LogConfig `yaml:"log"`

	// Assay names the expression assay; also the primary assay name of
	// experiments built from standalone matrices.
	Assay string `yaml:"assay"`
	// Overlap is the minimum number of shared cells for an adjacency entry.
	Overlap int `yaml:"overlap"`
	// EmptyPolicy is "error" or "nan".
	EmptyPolicy string `yaml:"empty_policy"`
	// Workers bounds internal parallelism; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
	// Features restricts expression aggregation to these feature names.
	Features []string `yaml:"features,omitempty"`
	// Compression is the codec for written matrices: none, lz4 or zstd.
	Compression string `yaml:"compression"`
	// ZstdLevel is the zstd level (1-22) for compression "zstd"; 0 keeps
	// the encoder default.
	ZstdLevel int `yaml:"zstd_level,omitempty"`
}

// LogConfig selects the CLI logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:         LogConfig{Level: "info", Format: "text"},
		Assay:       nhoods.DefaultAssay,
		Overlap:     nhoods.DefaultOverlap,
		EmptyPolicy: nhoods.DefaultEmptyPolicy.String(),
		Compression: codec.CompressionZSTD.String(),
	}
}

// Load reads path over Default() and applies environment overrides. An empty
// path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvPrefix + "_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvPrefix + "_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(EnvPrefix + "_ASSAY"); v != "" {
		c.Assay = v
	}
	if v := os.Getenv(EnvPrefix + "_OVERLAP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s_OVERLAP=%q: %w", EnvPrefix, v, ErrInvalid)
		}
		c.Overlap = n
	}
	if v := os.Getenv(EnvPrefix + "_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s_WORKERS=%q: %w", EnvPrefix, v, ErrInvalid)
		}
		c.Workers = n
	}
	if v := os.Getenv(EnvPrefix + "_ZSTD_LEVEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s_ZSTD_LEVEL=%q: %w", EnvPrefix, v, ErrInvalid)
		}
		c.ZstdLevel = n
	}
	if v := os.Getenv(EnvPrefix + "_FEATURES"); v != "" {
		c.Features = strings.Split(v, ",")
	}

	return nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.Assay == "" {
		return fmt.Errorf("assay is required: %w", ErrInvalid)
	}
	if c.Overlap < 1 {
		return fmt.Errorf("overlap %d must be >= 1: %w", c.Overlap, ErrInvalid)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d must be >= 0: %w", c.Workers, ErrInvalid)
	}
	if _, err := c.emptyPolicy(); err != nil {
		return err
	}
	if _, err := codec.ParseCompression(c.Compression); err != nil {
		return fmt.Errorf("compression: %w", errors.Join(err, ErrInvalid))
	}
	if c.ZstdLevel < 0 || c.ZstdLevel > 22 {
		return fmt.Errorf("zstd_level %d must be in [0,22]: %w", c.ZstdLevel, ErrInvalid)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q: %w", c.Log.Format, ErrInvalid)
	}

	return nil
}

func (c *Config) emptyPolicy() (nhoods.EmptyPolicy, error) {
	switch strings.ToLower(c.EmptyPolicy) {
	case "error", "":
		return nhoods.EmptyError, nil
	case "nan":
		return nhoods.EmptyNaN, nil
	}

	return 0, fmt.Errorf("empty_policy %q: %w", c.EmptyPolicy, ErrInvalid)
}

// NhoodOptions turns the configuration into nhoods options. Call Validate first.
func (c *Config) NhoodOptions(l *logging.Logger) []nhoods.Option {
	p, _ := c.emptyPolicy()
	opts := []nhoods.Option{nhoods.WithAssay(c.Assay), nhoods.WithEmptyPolicy(p)}
	if c.Workers > 0 {
		opts = append(opts, nhoods.WithWorkers(c.Workers))
	}
	if len(c.Features) > 0 {
		opts = append(opts, nhoods.WithSubset(nhoods.ByName(c.Features...)))
	}
	if l != nil {
		opts = append(opts, nhoods.WithLogger(l))
	}

	return opts
}

// CodecOptions turns the configuration into codec options. Call Validate first.
func (c *Config) CodecOptions() []codec.Option {
	ct, _ := codec.ParseCompression(c.Compression)
	opts := []codec.Option{codec.WithCompression(ct)}
	if c.ZstdLevel > 0 {
		opts = append(opts, codec.WithZstdLevel(zstd.EncoderLevelFromZstd(c.ZstdLevel)))
	}

	return opts
}

// Logger builds the logger described by Log, writing to w.
func (c *Config) Logger(w io.Writer) *logging.Logger {
	return logging.Setup(w, c.Log.Level, c.Log.Format)
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
