// Package coord parses Maven-style artifact locations and produces canonical
// artifact coordinates.
//
// A location is a URL of the form
//
//	[wrap:]mvn:[repositoryURL!]group/artifact[/version[/type[/classifier]]]
//
// as used by Karaf feature descriptors for repository, bundle and configfile
// references. The canonical coordinate form is
//
//	group:artifact[:type][:classifier]:version
//
// with any unresolved build-property suffix ("$...") stripped from the
// version. Coordinates are plain strings; equality is string equality.
package coord

import (
	"strings"

	"github.com/varun-a1/odlparent/pkg/errors"
)

const (
	mvnPrefix  = "mvn:"
	wrapPrefix = "wrap:"
)

// Coord holds the parsed segments of a Maven artifact location.
// Type and Classifier may be empty; Group, Artifact and Version never are.
type Coord struct {
	Group      string
	Artifact   string
	Version    string
	Type       string
	Classifier string
}

// String returns the canonical coordinate "group:artifact[:type][:classifier]:version".
func (c Coord) String() string {
	var b strings.Builder
	b.WriteString(c.Group)
	b.WriteByte(':')
	b.WriteString(c.Artifact)
	if c.Type != "" {
		b.WriteByte(':')
		b.WriteString(c.Type)
	}
	if c.Classifier != "" {
		b.WriteByte(':')
		b.WriteString(c.Classifier)
	}
	b.WriteByte(':')
	b.WriteString(c.Version)
	return b.String()
}

// Parse parses a location URL into its coordinate segments.
//
// The leading "wrap:" transport prefix is stripped if present (literal match),
// then the remainder must carry the "mvn:" scheme. An optional repository URL
// part terminated by "!" is discarded. The version is cut at the first "$",
// which removes unresolved build-time property placeholders.
//
// Returns an error with code [errors.ErrCodeMalformedLocation] when the
// location cannot be parsed.
func Parse(location string) (Coord, error) {
	s := strings.TrimSpace(location)
	s = strings.Replace(s, wrapPrefix, "", 1)

	if !strings.Contains(s, mvnPrefix) {
		return Coord{}, errors.New(errors.ErrCodeMalformedLocation, "not a mvn URL: %s", location)
	}
	s = strings.Replace(s, mvnPrefix, "", 1)

	// Discard an optional "repositoryURL!" part.
	if idx := strings.LastIndex(s, "!"); idx != -1 {
		s = s[idx+1:]
	}

	parts := strings.Split(s, "/")
	if len(parts) < 3 || len(parts) > 5 {
		return Coord{}, errors.New(errors.ErrCodeMalformedLocation,
			"expected group/artifact/version[/type[/classifier]]: %s", location)
	}

	c := Coord{
		Group:    parts[0],
		Artifact: parts[1],
		Version:  stripProperty(parts[2]),
	}
	if len(parts) > 3 {
		c.Type = parts[3]
	}
	if len(parts) > 4 {
		c.Classifier = parts[4]
	}

	if c.Group == "" || c.Artifact == "" || c.Version == "" {
		return Coord{}, errors.New(errors.ErrCodeMalformedLocation,
			"empty coordinate segment in %s", location)
	}
	return c, nil
}

// Normalize converts a location URL to its canonical coordinate string.
// It is a pure function: the same location always yields the same coordinate.
func Normalize(location string) (string, error) {
	c, err := Parse(location)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// NormalizeAll converts a list of locations to coordinates, preserving order.
// The first malformed location fails the whole conversion.
func NormalizeAll(locations []string) ([]string, error) {
	result := make([]string, 0, len(locations))
	for _, loc := range locations {
		c, err := Normalize(loc)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}

// FromString parses a canonical coordinate string
// "group:artifact[:type][:classifier]:version" back into its segments.
// The inverse of [Coord.String].
func FromString(s string) (Coord, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 5 {
		return Coord{}, errors.New(errors.ErrCodeMalformedLocation,
			"expected group:artifact[:type][:classifier]:version: %s", s)
	}
	c := Coord{
		Group:    parts[0],
		Artifact: parts[1],
		Version:  parts[len(parts)-1],
	}
	if len(parts) > 3 {
		c.Type = parts[2]
	}
	if len(parts) > 4 {
		c.Classifier = parts[3]
	}
	for _, seg := range []string{c.Group, c.Artifact, c.Version} {
		if seg == "" {
			return Coord{}, errors.New(errors.ErrCodeMalformedLocation,
				"empty coordinate segment in %s", s)
		}
	}
	return c, nil
}

// stripProperty cuts the version at the first "$" property-substitution
// marker, leaving only the literal resolved version text.
func stripProperty(version string) string {
	if idx := strings.Index(version, "$"); idx != -1 {
		return version[:idx]
	}
	return version
}
