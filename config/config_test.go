package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/milo/codec"
	"github.com/katalvlaran/milo/config"
	"github.com/katalvlaran/milo/matrix"
	"github.com/katalvlaran/milo/nhoods"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nhoodkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, nhoods.DefaultAssay, cfg.Assay)
	require.Equal(t, nhoods.DefaultOverlap, cfg.Overlap)
	require.Equal(t, "error", cfg.EmptyPolicy)
	require.Equal(t, "zstd", cfg.Compression)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
log:
  level: debug
  format: json
assay: counts
overlap: 3
empty_policy: nan
features: [g1, g0]
compression: lz4
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, "counts", cfg.Assay)
	require.Equal(t, 3, cfg.Overlap)
	require.Equal(t, []string{"g1", "g0"}, cfg.Features)
	require.Len(t, cfg.NhoodOptions(nil), 3)
	require.Len(t, cfg.CodecOptions(), 1)

	// unset keys keep defaults
	require.Equal(t, 0, cfg.Workers)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "overlap: 3\nassay: counts\n")
	t.Setenv("NHOODKIT_OVERLAP", "5")
	t.Setenv("NHOODKIT_FEATURES", "a,b")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Overlap)
	require.Equal(t, "counts", cfg.Assay)
	require.Equal(t, []string{"a", "b"}, cfg.Features)

	t.Setenv("NHOODKIT_WORKERS", "many")
	_, err = config.Load(path)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = config.Load(writeFile(t, "overlap: [1"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *config.Config){
		"assay":       func(c *config.Config) { c.Assay = "" },
		"overlap":     func(c *config.Config) { c.Overlap = 0 },
		"workers":     func(c *config.Config) { c.Workers = -1 },
		"policy":      func(c *config.Config) { c.EmptyPolicy = "skip" },
		"compression": func(c *config.Config) { c.Compression = "gzip" },
		"format":      func(c *config.Config) { c.Log.Format = "xml" },
		"zstd low":    func(c *config.Config) { c.ZstdLevel = -1 },
		"zstd high":   func(c *config.Config) { c.ZstdLevel = 23 },
	}
	for name, mutate := range cases {
		cfg := config.Default()
		mutate(cfg)
		require.ErrorIs(t, cfg.Validate(), config.ErrInvalid, name)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Features = []string{"x"}
	data, err := cfg.Marshal()
	require.NoError(t, err)
	got, err := config.Load(writeFile(t, string(data)))
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestZstdLevel_FeedsCodec(t *testing.T) {
	cfg, err := config.Load(writeFile(t, "zstd_level: 19\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, 19, cfg.ZstdLevel)
	opts := cfg.CodecOptions()
	require.Len(t, opts, 2)

	x, err := matrix.NewIndicator(3, [][]int{{0, 1}, {2}}, []string{"n0", "n1"})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, codec.WriteMatrix(&buf, x, opts...))
	got, err := codec.ReadMatrix(&buf)
	require.NoError(t, err)
	require.Equal(t, []string{"n0", "n1"}, got.ColNames())

	t.Setenv("NHOODKIT_ZSTD_LEVEL", "3")
	cfg, err = config.Load("")
	require.NoError(t, err)
	require.Equal(t, 3, cfg.ZstdLevel)

	t.Setenv("NHOODKIT_ZSTD_LEVEL", "max")
	_, err = config.Load("")
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestLogger_FollowsLogConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Log = config.LogConfig{Level: "warn", Format: "json"}

	var buf bytes.Buffer
	l := cfg.Logger(&buf)
	l.Info("hidden")
	require.Empty(t, buf.String())
	l.Warn("shown", "overlap", cfg.Overlap)
	require.Contains(t, buf.String(), `"msg":"shown"`)
	require.Contains(t, buf.String(), `"overlap":1`)
}
