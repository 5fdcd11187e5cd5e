package closure

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/varun-a1/odlparent/pkg/coord"
	"github.com/varun-a1/odlparent/pkg/errors"
	"github.com/varun-a1/odlparent/pkg/feature"
	"github.com/varun-a1/odlparent/pkg/repo"
)

// seedDescriptor writes a features XML into a Maven-layout repository root.
func seedDescriptor(t *testing.T, root, coordinate, xml string) {
	t.Helper()
	c, err := coord.FromString(coordinate)
	if err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(root, filepath.FromSlash(repo.Layout(c)))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(xml), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestArtifactLoader(t *testing.T) {
	root := t.TempDir()
	seedDescriptor(t, root, "org.test:base:xml:features:1.0",
		`<features name="base"><repository>mvn:org.test/leaf/1.0/xml/features</repository></features>`)
	seedDescriptor(t, root, "org.test:leaf:xml:features:1.0",
		`<features name="leaf"/>`)

	loader := NewArtifactLoader(repo.NewLocal(root))

	f, err := loader.Load(context.Background(), "org.test:base:xml:features:1.0")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if f.Name != "base" {
		t.Errorf("Name = %q, want base", f.Name)
	}

	// Full traversal through the loader against the on-disk repository.
	r := NewResolver(loader, nil)
	found, err := r.ResolveFresh(context.Background(), []*feature.Features{f})
	if err != nil {
		t.Fatalf("ResolveFresh error: %v", err)
	}
	if len(found) != 1 || found[0].Name != "leaf" {
		t.Errorf("closure = %v, want {leaf}", names(found))
	}
}

func TestArtifactLoaderUnresolvable(t *testing.T) {
	loader := NewArtifactLoader(repo.NewLocal(t.TempDir()))
	_, err := loader.Load(context.Background(), "org.test:absent:xml:features:1.0")
	if !errors.Is(err, errors.ErrCodeUnresolvableCoordinate) {
		t.Errorf("error code = %q, want UNRESOLVABLE_COORDINATE", errors.GetCode(err))
	}
}

func TestArtifactLoaderMalformedDescriptor(t *testing.T) {
	root := t.TempDir()
	seedDescriptor(t, root, "org.test:bad:xml:features:1.0", "<features><repository>unclosed")

	loader := NewArtifactLoader(repo.NewLocal(root))
	_, err := loader.Load(context.Background(), "org.test:bad:xml:features:1.0")
	if !errors.Is(err, errors.ErrCodeMalformedDescriptor) {
		t.Errorf("error code = %q, want MALFORMED_DESCRIPTOR", errors.GetCode(err))
	}
}
