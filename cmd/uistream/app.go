package main

import (
	"io"

	"github.com/fwojciec/uistream"
	"github.com/fwojciec/uistream/log"
	"github.com/fwojciec/uistream/yaml"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// newApp builds the command tree. Environment lookups go through getenv so
// tests never touch the process environment.
func newApp(stdout, stderr io.Writer, getenv func(string) string) *cli.App {
	return &cli.App{
		Name:      "uistream",
		Usage:     "Accumulate AI SDK UI message streams",
		Writer:    stdout,
		ErrWriter: stderr,
		// Errors are reported by main.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
		},
		Commands: []*cli.Command{
			replayCommand(),
			chatCommand(getenv),
		},
	}
}

// loadConfig reads the config file, if any, and applies flag overrides.
// Flags the current command does not define are ignored.
func loadConfig(c *cli.Context) (uistream.Config, error) {
	cfg := uistream.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := yaml.Load(path)
		if err != nil {
			return uistream.Config{}, err
		}
		cfg = loaded
	}

	if c.IsSet("backend") {
		cfg.Backend = uistream.Backend(c.String("backend"))
	}
	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("provider") {
		cfg.Provider = c.String("provider")
	}
	if c.IsSet("model") {
		cfg.Model = c.String("model")
	}
	if c.IsSet("lenient") {
		cfg.Lenient = c.Bool("lenient")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, nil
}

func newLogger(c *cli.Context, cfg uistream.Config) (*zap.Logger, error) {
	return log.New(c.App.ErrWriter, cfg.LogLevel)
}
