package closure

import (
	"context"

	"github.com/varun-a1/odlparent/pkg/feature"
	"github.com/varun-a1/odlparent/pkg/repo"
)

// ArtifactLoader loads descriptors by resolving their coordinate to a local
// file and parsing it. It is the default Loader wired into the CLI and API.
type ArtifactLoader struct {
	resolver repo.Resolver
}

// NewArtifactLoader creates a loader backed by the given artifact resolver.
func NewArtifactLoader(resolver repo.Resolver) *ArtifactLoader {
	return &ArtifactLoader{resolver: resolver}
}

// Load resolves the coordinate to a local file and parses it as a feature
// descriptor. Failure kinds: UNRESOLVABLE_COORDINATE from resolution,
// NOT_FOUND or MALFORMED_DESCRIPTOR from reading.
func (l *ArtifactLoader) Load(ctx context.Context, coordinate string) (*feature.Features, error) {
	path, err := l.resolver.Resolve(ctx, coordinate)
	if err != nil {
		return nil, err
	}
	return feature.Read(path)
}

var _ Loader = (*ArtifactLoader)(nil)
