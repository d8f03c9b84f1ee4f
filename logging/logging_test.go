package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/milo/logging"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		require.Equal(t, want, logging.ParseLevel(in), "level %q", in)
	}
}

func TestSetup_JSONAndText(t *testing.T) {
	var buf bytes.Buffer
	logging.Setup(&buf, "info", "json").WithOp("adjacency").Info("done", "nhoods", 3)
	require.True(t, strings.HasPrefix(buf.String(), "{"))
	require.Contains(t, buf.String(), `"op":"adjacency"`)
	require.Contains(t, buf.String(), `"nhoods":3`)

	buf.Reset()
	logging.Setup(&buf, "info", "text").WithShape(2, 5).Info("shape")
	require.Contains(t, buf.String(), "rows=2")
	require.Contains(t, buf.String(), "cols=5")
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := logging.Setup(&buf, "warn", "text")
	l.Info("hidden")
	require.Empty(t, buf.String())
	l.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestNoop_Discards(t *testing.T) {
	l := logging.Noop()
	require.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestNew_NilHandlerIsInfo(t *testing.T) {
	l := logging.New(nil)
	require.True(t, l.Enabled(context.Background(), slog.LevelInfo))
	require.False(t, l.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewJSONLogger(&buf, slog.LevelDebug)
	l.WithOp("expression").WithShape(4, 2).Debug("means")
	require.True(t, strings.HasPrefix(buf.String(), "{"))
	require.Contains(t, buf.String(), `"op":"expression"`)
	require.Contains(t, buf.String(), `"rows":4`)
	require.NotContains(t, buf.String(), `"source"`)
}
