package repo

import (
	"context"

	"github.com/varun-a1/odlparent/pkg/errors"
)

// Chain tries each resolver in order and returns the first success.
// The usual arrangement is local repositories first, remote ones after.
type Chain struct {
	resolvers []Resolver
}

// NewChain creates a Chain over the given resolvers.
func NewChain(resolvers ...Resolver) *Chain {
	return &Chain{resolvers: resolvers}
}

// Resolve returns the first successful resolution. When every resolver
// fails, the last failure is wrapped with UNRESOLVABLE_COORDINATE.
func (c *Chain) Resolve(ctx context.Context, coordinate string) (string, error) {
	var lastErr error
	for _, r := range c.resolvers {
		path, err := r.Resolve(ctx, coordinate)
		if err == nil {
			return path, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		return "", errors.New(errors.ErrCodeUnresolvableCoordinate, "no resolvers configured")
	}
	return "", errors.Wrap(errors.ErrCodeUnresolvableCoordinate, lastErr, "resolving %s", coordinate)
}

var _ Resolver = (*Chain)(nil)
