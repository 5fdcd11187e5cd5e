package repo

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/varun-a1/odlparent/pkg/cache"
	"github.com/varun-a1/odlparent/pkg/coord"
	"github.com/varun-a1/odlparent/pkg/errors"
	"github.com/varun-a1/odlparent/pkg/httputil"
)

// Remote downloads artifacts from remote repository base URLs into a local
// download directory laid out like a Maven repository. Downloaded bytes are
// kept in a byte cache so repeated resolutions of the same coordinate skip
// the network.
type Remote struct {
	baseURLs []string
	dir      string
	http     *http.Client
	cache    cache.Cache
	ttl      time.Duration
}

// NewRemote creates a Remote resolver that downloads from baseURLs into dir.
// Pass a [cache.NullCache] to disable byte caching.
func NewRemote(baseURLs []string, dir string, c cache.Cache, ttl time.Duration) *Remote {
	return &Remote{
		baseURLs: baseURLs,
		dir:      dir,
		http:     httputil.NewHTTPClient(),
		cache:    c,
		ttl:      ttl,
	}
}

// Dir returns the download directory.
func (r *Remote) Dir() string { return r.dir }

// Resolve downloads the artifact if it is not already present, returning
// the path of the local copy.
func (r *Remote) Resolve(ctx context.Context, coordinate string) (string, error) {
	c, err := coord.FromString(coordinate)
	if err != nil {
		return "", err
	}

	rel := Layout(c)
	target := filepath.Join(r.dir, filepath.FromSlash(rel))
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		return target, nil
	}

	key := "artifact:" + coordinate
	if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		if err := writeFile(target, data); err != nil {
			return "", err
		}
		return target, nil
	}

	var lastErr error
	for _, base := range r.baseURLs {
		url := strings.TrimSuffix(base, "/") + "/" + rel
		data, err := r.download(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		if err := writeFile(target, data); err != nil {
			return "", err
		}
		_ = r.cache.Set(ctx, key, data, r.ttl)
		return target, nil
	}

	if lastErr == nil {
		lastErr = errors.New(errors.ErrCodeUnresolvableCoordinate, "no remote repositories configured")
	}
	return "", errors.Wrap(errors.ErrCodeUnresolvableCoordinate, lastErr,
		"artifact %s not found in %d remote repositories", coordinate, len(r.baseURLs))
}

func (r *Remote) download(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := r.http.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetching %s", url)}
		}
		defer resp.Body.Close()

		if err := httputil.CheckStatus(resp.StatusCode); err != nil {
			return err
		}
		data, err = io.ReadAll(resp.Body)
		return err
	})
	return data, err
}

func writeFile(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

var _ Resolver = (*Remote)(nil)
