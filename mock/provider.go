// Package mock provides test doubles for uistream interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/uistream"
)

// Interface compliance check.
var _ uistream.Provider = (*Provider)(nil)

// Provider is a test double for uistream.Provider.
// Set StreamFn before calling Stream.
type Provider struct {
	StreamFn func(ctx context.Context, req uistream.Request) (uistream.EventStream, error)
}

// Stream delegates to StreamFn.
func (p *Provider) Stream(ctx context.Context, req uistream.Request) (uistream.EventStream, error) {
	return p.StreamFn(ctx, req)
}
