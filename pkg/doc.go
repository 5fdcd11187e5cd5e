// Package pkg provides the core libraries for featclose closure resolution.
//
// # Overview
//
// Featclose resolves the transitive closure of Karaf feature descriptors:
// starting from one or more descriptor files, it follows every <repository>
// reference, loads the referenced descriptors, and keeps going until no new
// descriptor appears. The pkg directory is organized by concern:
//
//   - [coord] - Maven coordinate parsing and normalization (mvn: URLs,
//     wrap: handler prefixes, canonical coordinate strings, ordered sets)
//   - [feature] - Karaf feature descriptor XML model and coordinate extraction
//   - [closure] - The transitive closure resolver and descriptor loader
//   - [repo] - Artifact resolution against local and remote Maven repositories
//   - [cache] - Byte caches (file, redis, null) backing remote resolution
//   - [httputil] - HTTP client with retry and backoff
//   - [render] - Repository reference graph collection and DOT/SVG output
//   - [errors] - Structured errors with stable codes
//   - [buildinfo] - Build metadata injected via ldflags
//
// # Architecture
//
// The typical data flow:
//
//	descriptor file(s)
//	         ↓
//	    [feature] package (parse XML, extract repository coordinates)
//	         ↓
//	    [closure] package (visited set, recursive traversal)
//	         ↓
//	    [repo] package (coordinate → artifact file, local first then remote)
//	         ↓
//	    closure report / DOT / SVG output
//
// # Quick Start
//
// Resolve the closure of a descriptor file:
//
//	import (
//	    "context"
//	    "github.com/varun-a1/odlparent/pkg/closure"
//	    "github.com/varun-a1/odlparent/pkg/feature"
//	    "github.com/varun-a1/odlparent/pkg/repo"
//	)
//
//	root, _ := feature.Read("features.xml")
//	local := repo.NewLocal("/home/user/.m2/repository")
//	resolver := closure.NewResolver(closure.NewArtifactLoader(local), nil)
//	found, _ := resolver.ResolveFresh(context.Background(), []*feature.Features{root})
//
// [coord]: https://pkg.go.dev/github.com/varun-a1/odlparent/pkg/coord
// [feature]: https://pkg.go.dev/github.com/varun-a1/odlparent/pkg/feature
// [closure]: https://pkg.go.dev/github.com/varun-a1/odlparent/pkg/closure
// [repo]: https://pkg.go.dev/github.com/varun-a1/odlparent/pkg/repo
// [cache]: https://pkg.go.dev/github.com/varun-a1/odlparent/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/varun-a1/odlparent/pkg/httputil
// [render]: https://pkg.go.dev/github.com/varun-a1/odlparent/pkg/render
// [errors]: https://pkg.go.dev/github.com/varun-a1/odlparent/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/varun-a1/odlparent/pkg/buildinfo
package pkg
