package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/uistream"
	uistreamjson "github.com/fwojciec/uistream/json"
	"github.com/fwojciec/uistream/sse"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "Materialize recorded event streams",
		ArgsUsage: "PATTERN...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "lenient",
				Usage: "Skip malformed chunks instead of failing",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Write one JSON file per stream into `DIR` instead of stdout",
			},
		},
		Action: replayAction,
	}
}

func replayAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("replay: at least one PATTERN is required")
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(c, cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	paths, err := expandPatterns(c.Args().Slice())
	if err != nil {
		return err
	}

	p := uistream.NewPipeline(uistreamjson.NewDecoder(),
		uistream.WithLogger(logger),
		uistream.WithLenient(cfg.Lenient),
	)
	out := c.String("out")
	for _, path := range paths {
		msg, err := replayFile(c.Context, p, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("replayed stream",
			zap.String("path", path),
			zap.String("message_id", msg.ID),
			zap.Int("parts", len(msg.Parts)),
		)

		if out != "" {
			dest := filepath.Join(out, streamName(path)+".json")
			if err := uistreamjson.SaveMessage(dest, msg); err != nil {
				return fmt.Errorf("%s: save: %w", path, err)
			}
			continue
		}
		data, err := uistreamjson.MarshalMessageIndent(msg)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintln(c.App.Writer, string(data))
	}
	return nil
}

// expandPatterns resolves doublestar patterns to a sorted, de-duplicated
// list of files. A pattern matching nothing is an error.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %s", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	slices.Sort(paths)
	return paths, nil
}

// replayFile runs one recorded stream. The file name stands in as the
// message id when the stream never sends a start chunk.
func replayFile(ctx context.Context, p *uistream.Pipeline, path string) (uistream.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return uistream.Message{}, err
	}
	defer f.Close()
	return p.Run(ctx, sse.NewReader(f), uistream.WithDefaultMessageID(streamName(path)))
}

func streamName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
