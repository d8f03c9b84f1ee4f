// Package main implements nhoodkit, a command-line front end for the
// neighbourhood transforms: overlap adjacency, mean expression and sizes,
// reading and writing codec matrix files.
//
// Usage:
//
//	nhoodkit [-config file.yaml] [-log-level info] [-log-format text] <command> [flags]
//
// Commands:
//
//	adjacency   -nhoods X -out A [-overlap N]
//	expression  -nhoods X -expr E -out M [-features g1,g2] [-empty error|nan]
//	sizes       -nhoods X
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/katalvlaran/milo/config"
	"github.com/katalvlaran/milo/logging"
)

// Version is the nhoodkit release.
const Version = "0.1.0"

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			_, _ = fmt.Fprintf(os.Stderr, "nhoodkit: %v\n", err)
		}
		os.Exit(1)
	}
}

// env bundles what every command needs.
type env struct {
	cfg    *config.Config
	log    *logging.Logger
	stdout io.Writer
}

type command func(e *env, args []string) error

var commands = map[string]command{
	"adjacency":  runAdjacency,
	"expression": runExpression,
	"sizes":      runSizes,
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("nhoodkit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", os.Getenv(config.EnvPrefix+"_CONFIG"), "YAML configuration file (env: NHOODKIT_CONFIG)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error (overrides config)")
	logFormat := fs.String("log-format", "", "log format: json, text (overrides config)")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() { printUsage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *showVersion {
		_, _ = fmt.Fprintf(stdout, "nhoodkit %s\n", Version)

		return nil
	}
	if fs.NArg() == 0 {
		fs.Usage()

		return errUsage
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", fs.Arg(0))
		fs.Usage()

		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	e := &env{cfg: cfg, log: cfg.Logger(stderr), stdout: stdout}
	e.log.Debug("starting", "command", fs.Arg(0), "version", Version, "config", *configPath)

	return cmd(e, fs.Args()[1:])
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	_, _ = fmt.Fprintf(w, "usage: nhoodkit [flags] <%s> [command flags]\n\nflags:\n", strings.Join(sortedStrings(names), "|"))
	fs.PrintDefaults()
}
