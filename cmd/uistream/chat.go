package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fwojciec/uistream"
	"github.com/fwojciec/uistream/bubbletea"
	uistreamjson "github.com/fwojciec/uistream/json"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

func chatCommand(getenv func(string) string) *cli.Command {
	return &cli.Command{
		Name:      "chat",
		Usage:     "Stream a reply from a backend",
		ArgsUsage: "[PROMPT]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Backend: proxy, gemini",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Proxy base URL",
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   "Upstream provider key sent to the proxy",
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Model ID",
			},
			&cli.StringFlag{
				Name:  "session",
				Usage: "Conversation file to resume and update",
			},
			&cli.BoolFlag{
				Name:  "lenient",
				Usage: "Skip malformed chunks instead of failing",
			},
		},
		Action: chatAction(getenv),
	}
}

func chatAction(getenv func(string) string) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		logger, err := newLogger(c, cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		provider, err := resolveProvider(c.Context, cfg, getenv("GEMINI_API_KEY"))
		if err != nil {
			return err
		}
		model, err := resolveModel(cfg)
		if err != nil {
			return err
		}

		sessionPath := c.String("session")
		history, err := loadHistory(sessionPath)
		if err != nil {
			return err
		}

		p := uistream.NewPipeline(uistreamjson.NewDecoder(),
			uistream.WithLogger(logger),
			uistream.WithLenient(cfg.Lenient),
		)
		chat := func(ctx context.Context, history []uistream.Message, prompt string, onUpdate func(uistream.Message)) (uistream.Message, error) {
			req := uistream.Request{
				Provider: cfg.Provider,
				Model:    model,
				Messages: history,
				Prompt:   prompt,
			}
			return p.Stream(ctx, provider, req, uistream.WithUpdateHandler(onUpdate))
		}

		if c.NArg() > 0 {
			prompt := strings.Join(c.Args().Slice(), " ")
			reply, err := chat(c.Context, history, prompt, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, reply.Text())
			history = append(history,
				uistream.NewTextMessage(uuid.NewString(), uistream.RoleUser, prompt),
				reply,
			)
		} else {
			m := bubbletea.New(chat, uistream.DefaultTheme(), bubbletea.WithHistory(history))
			final, err := bubbletea.Run(c.Context, m)
			if err != nil {
				return fmt.Errorf("TUI: %w", err)
			}
			history = final.History()
		}

		if sessionPath == "" {
			return nil
		}
		if err := uistreamjson.Save(sessionPath, history); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		return nil
	}
}

// loadHistory reads a saved conversation. A missing file starts a new one.
func loadHistory(path string) ([]uistream.Message, error) {
	if path == "" {
		return nil, nil
	}
	msgs, err := uistreamjson.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return msgs, nil
}
