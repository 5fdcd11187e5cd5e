// Package repo resolves artifact coordinates to local files.
//
// Resolution follows the standard Maven repository layout. A Local resolver
// looks coordinates up in local repository roots (such as ~/.m2/repository),
// a Remote resolver downloads them from remote repository base URLs into a
// local directory, and Chain composes resolvers first-success.
package repo

import (
	"context"
	"path"
	"strings"

	"github.com/varun-a1/odlparent/pkg/coord"
)

// Resolver turns an artifact coordinate into a local file path.
type Resolver interface {
	// Resolve returns the local path of the artifact identified by the
	// canonical coordinate string. Fails with an
	// [errors.ErrCodeUnresolvableCoordinate] error when the artifact
	// cannot be located.
	Resolve(ctx context.Context, coordinate string) (string, error)
}

// Layout returns the Maven repository layout path for a coordinate,
// relative to a repository root and using forward slashes:
//
//	group/dirs/artifact/version/artifact-version[-classifier].type
//
// The type defaults to "jar" when the coordinate does not carry one.
func Layout(c coord.Coord) string {
	typ := c.Type
	if typ == "" {
		typ = "jar"
	}
	file := c.Artifact + "-" + c.Version
	if c.Classifier != "" {
		file += "-" + c.Classifier
	}
	file += "." + typ

	groupPath := strings.ReplaceAll(c.Group, ".", "/")
	return path.Join(groupPath, c.Artifact, c.Version, file)
}
