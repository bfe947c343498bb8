package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/uistream"
	"github.com/fwojciec/uistream/gemini"
	"github.com/fwojciec/uistream/proxy"
)

// resolveProvider constructs the backend named by cfg. The Gemini key is
// passed in; env is only read by the caller.
func resolveProvider(ctx context.Context, cfg uistream.Config, geminiKey string) (uistream.Provider, error) {
	switch cfg.Backend {
	case uistream.BackendProxy:
		return proxy.New(proxy.WithBaseURL(cfg.BaseURL)), nil
	case uistream.BackendGemini:
		if geminiKey == "" {
			return nil, errors.New("GEMINI_API_KEY not set")
		}
		var opts []gemini.Option
		if cfg.Model != "" {
			opts = append(opts, gemini.WithModel(cfg.Model))
		}
		client, err := gemini.New(ctx, geminiKey, opts...)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown backend %q: must be \"proxy\" or \"gemini\"", cfg.Backend)
	}
}

// resolveModel fills in the backend default when no model is configured.
func resolveModel(cfg uistream.Config) (string, error) {
	switch {
	case cfg.Model != "":
		return cfg.Model, nil
	case cfg.Backend == uistream.BackendGemini:
		return gemini.DefaultModel, nil
	default:
		return "", errors.New("no model configured: use --model or set model in the config file")
	}
}
