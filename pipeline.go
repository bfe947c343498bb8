package uistream

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Pipeline wires an EventStream through a ChunkDecoder into an Accumulator.
type Pipeline struct {
	decoder ChunkDecoder
	logger  *zap.Logger
	lenient bool
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithLenient controls the malformed-chunk policy. When enabled, payloads
// that fail to decode are logged at warn level and skipped; otherwise the
// first decode error ends the run.
func WithLenient(lenient bool) PipelineOption {
	return func(p *Pipeline) {
		p.lenient = lenient
	}
}

// NewPipeline creates a Pipeline decoding payloads with dec.
func NewPipeline(dec ChunkDecoder, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{decoder: dec, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunOption configures a single Run invocation.
type RunOption func(*runConfig)

type runConfig struct {
	onChunk  func(Chunk)
	onUpdate func(Message)
	accOpts  []AccumulatorOption
}

// WithChunkHandler sets a callback that receives each decoded chunk before
// it is processed.
func WithChunkHandler(h func(Chunk)) RunOption {
	return func(c *runConfig) {
		c.onChunk = h
	}
}

// WithUpdateHandler sets a callback that receives a fresh materialization
// after every processed chunk.
func WithUpdateHandler(h func(Message)) RunOption {
	return func(c *runConfig) {
		c.onUpdate = h
	}
}

// WithDefaultMessageID sets the message id used until the stream supplies
// one.
func WithDefaultMessageID(id string) RunOption {
	return func(c *runConfig) {
		c.accOpts = append(c.accOpts, WithMessageID(id))
	}
}

// Run consumes events until the stream ends and returns the materialized
// message. On error the best-effort message built so far is returned
// alongside it. Cancellation is checked between events.
func (p *Pipeline) Run(ctx context.Context, events EventStream, opts ...RunOption) (Message, error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	acc := NewAccumulator(cfg.accOpts...)

	var skipped int
	for {
		if err := ctx.Err(); err != nil {
			return acc.Message(), err
		}
		evt, err := events.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return acc.Message(), fmt.Errorf("read event: %w", err)
		}
		if evt.Done() {
			break
		}

		chunk, err := p.decoder.Decode(evt.Data)
		if err != nil {
			if !p.lenient {
				return acc.Message(), err
			}
			skipped++
			p.logger.Warn("skipping malformed chunk", zap.Error(err))
			continue
		}

		if cfg.onChunk != nil {
			cfg.onChunk(chunk)
		}
		acc.Process(chunk)
		if cfg.onUpdate != nil {
			cfg.onUpdate(acc.Message())
		}
	}

	msg := acc.Message()
	p.logger.Debug("stream complete",
		zap.String("message_id", msg.ID),
		zap.Int("parts", len(msg.Parts)),
		zap.Int("skipped", skipped),
	)
	return msg, nil
}

// Stream validates req, opens a stream with provider and runs it. The
// stream is always closed before Stream returns.
func (p *Pipeline) Stream(ctx context.Context, provider Provider, req Request, opts ...RunOption) (Message, error) {
	if err := req.Validate(); err != nil {
		return Message{}, err
	}
	events, err := provider.Stream(ctx, req)
	if err != nil {
		return Message{}, err
	}
	defer events.Close()

	p.logger.Debug("stream opened",
		zap.String("provider", req.Provider),
		zap.String("model", req.Model),
		zap.Int("messages", len(req.Messages)),
	)
	return p.Run(ctx, events, opts...)
}
