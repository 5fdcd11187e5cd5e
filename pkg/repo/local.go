package repo

import (
	"context"
	"os"
	"path/filepath"

	"github.com/varun-a1/odlparent/pkg/coord"
	"github.com/varun-a1/odlparent/pkg/errors"
)

// Local resolves coordinates against one or more local repository roots,
// returning the first root that holds the artifact.
type Local struct {
	roots []string
}

// NewLocal creates a Local resolver over the given repository roots.
// Roots are searched in order.
func NewLocal(roots ...string) *Local {
	return &Local{roots: roots}
}

// DefaultLocalRoot returns the conventional local Maven repository,
// ~/.m2/repository.
func DefaultLocalRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".m2", "repository"), nil
}

// Resolve looks the coordinate up in each root in order.
func (l *Local) Resolve(ctx context.Context, coordinate string) (string, error) {
	c, err := coord.FromString(coordinate)
	if err != nil {
		return "", err
	}

	rel := filepath.FromSlash(Layout(c))
	for _, root := range l.roots {
		p := filepath.Join(root, rel)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", errors.New(errors.ErrCodeUnresolvableCoordinate,
		"artifact %s not found in %d local repositories", coordinate, len(l.roots))
}

var _ Resolver = (*Local)(nil)
