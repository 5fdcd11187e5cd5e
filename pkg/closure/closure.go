// Package closure discovers the transitive closure of feature descriptors.
//
// Starting from one or more parsed descriptors, the Resolver follows every
// repository reference, loading descriptors it has not seen before and
// recursing into them. A visited coordinate set threaded through the whole
// traversal guarantees each unique coordinate is loaded at most once, which
// bounds the recursion even when repository references form a cycle.
package closure

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/varun-a1/odlparent/pkg/coord"
	"github.com/varun-a1/odlparent/pkg/feature"
)

// Loader loads the feature descriptor identified by a coordinate.
//
// Implementations are expected to be deterministic: repeated loads of the
// same coordinate must return equivalent descriptors. Any blocking I/O
// happens behind this seam; the traversal itself is synchronous.
type Loader interface {
	Load(ctx context.Context, coordinate string) (*feature.Features, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, coordinate string) (*feature.Features, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, coordinate string) (*feature.Features, error) {
	return f(ctx, coordinate)
}

// Hooks receives traversal events. All fields are optional; nil hooks are
// not called. Hooks run synchronously inside the traversal.
type Hooks struct {
	// Discovered fires after a not-yet-visited coordinate was loaded.
	Discovered func(parent *feature.Features, coordinate string, loaded *feature.Features)
	// Skipped fires when a repository reference is already in the visited set.
	Skipped func(parent *feature.Features, coordinate string)
}

// Resolver walks repository references depth-first.
//
// A Resolver is stateless between calls; all traversal state lives in the
// visited set passed to Resolve, so independent resolutions can share one
// Resolver. A single visited set must not be used from multiple goroutines.
type Resolver struct {
	loader Loader
	logger *log.Logger
	hooks  Hooks
}

// NewResolver creates a Resolver using the given loader.
// A nil logger falls back to the default logger.
func NewResolver(loader Loader, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{loader: loader, logger: logger}
}

// WithHooks returns a copy of the Resolver that emits traversal events.
func (r *Resolver) WithHooks(hooks Hooks) *Resolver {
	clone := *r
	clone.hooks = hooks
	return &clone
}

// Resolve discovers every descriptor transitively reachable from f through
// repository references, excluding coordinates already in visited.
//
// visited is mutated in place: every newly discovered coordinate is added,
// before its descriptor is loaded, so cyclic references terminate. The
// returned slice holds newly loaded descriptors in discovery order; f itself
// is not included. The first collaborator failure aborts the traversal with
// no partial result.
func (r *Resolver) Resolve(ctx context.Context, f *feature.Features, visited *coord.Set) ([]*feature.Features, error) {
	r.logger.Debug("resolving closure", "descriptor", f.Name, "known", visited.Len())

	coords, err := feature.RepositoryCoords(f)
	if err != nil {
		return nil, err
	}

	var result []*feature.Features
	for _, c := range coords.Values() {
		if !visited.Add(c) {
			r.logger.Debug("skipping known coordinate", "coord", c)
			if r.hooks.Skipped != nil {
				r.hooks.Skipped(f, c)
			}
			continue
		}

		loaded, err := r.loader.Load(ctx, c)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("discovered descriptor", "coord", c, "name", loaded.Name)
		if r.hooks.Discovered != nil {
			r.hooks.Discovered(f, c, loaded)
		}
		result = append(result, loaded)

		nested, err := r.Resolve(ctx, loaded, visited)
		if err != nil {
			return nil, err
		}
		result = append(result, nested...)
	}
	return result, nil
}

// ResolveAll runs Resolve over each root with one shared visited set, so
// cross-references between the roots are de-duplicated too. Results are
// unioned in root order.
func (r *Resolver) ResolveAll(ctx context.Context, roots []*feature.Features, visited *coord.Set) ([]*feature.Features, error) {
	var result []*feature.Features
	for _, f := range roots {
		found, err := r.Resolve(ctx, f, visited)
		if err != nil {
			return nil, err
		}
		result = append(result, found...)
	}
	return result, nil
}

// ResolveFresh discovers everything reachable from roots, starting from an
// empty visited set.
func (r *Resolver) ResolveFresh(ctx context.Context, roots []*feature.Features) ([]*feature.Features, error) {
	return r.ResolveAll(ctx, roots, coord.NewSet())
}
