// Command uistream turns Vercel AI SDK UI message streams into messages.
//
// Usage:
//
//	uistream [--config FILE] [--log-level LEVEL] replay [--lenient] [--out DIR] PATTERN...
//	uistream [--config FILE] [--log-level LEVEL] chat [flags] [PROMPT]
//
// replay reads recorded server-sent event files and prints each resulting
// message as JSON. chat sends PROMPT to a proxy or Gemini backend and prints
// the reply text; without PROMPT it opens an interactive TUI.
//
// The gemini backend reads its API key from GEMINI_API_KEY.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newApp(os.Stdout, os.Stderr, os.Getenv).RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "uistream: %v\n", err)
		os.Exit(1)
	}
}
