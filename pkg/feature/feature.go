// Package feature models Karaf feature descriptors and extracts the artifact
// coordinates they reference.
//
// A descriptor (a "features" XML document) names further descriptors through
// repository locations and installable units through bundle and configfile
// locations. The package is deliberately lax about descriptor content: beyond
// well-formed XML it only cares about the three location kinds.
package feature

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/varun-a1/odlparent/pkg/errors"
)

// Features is a parsed feature descriptor: an ordered name plus repository
// references and feature entries. The resolver treats it as read-only.
type Features struct {
	XMLName    xml.Name  `xml:"features"`
	Name       string    `xml:"name,attr"`
	Repository []string  `xml:"repository"`
	Feature    []Feature `xml:"feature"`
}

// Feature is a named unit within a descriptor listing installable bundles
// and configuration files. Both lists may be empty.
type Feature struct {
	Name       string       `xml:"name,attr"`
	Version    string       `xml:"version,attr"`
	Bundle     []Bundle     `xml:"bundle"`
	ConfigFile []ConfigFile `xml:"configfile"`
}

// Bundle is an installable unit addressed by a location URL.
type Bundle struct {
	Location   string `xml:",chardata"`
	StartLevel int    `xml:"start-level,attr"`
	Dependency bool   `xml:"dependency,attr"`
}

// ConfigFile is a configuration file addressed by a location URL.
type ConfigFile struct {
	Location  string `xml:",chardata"`
	FinalName string `xml:"finalname,attr"`
	Override  bool   `xml:"override,attr"`
}

// Parse unmarshals a feature descriptor from r. The source identifier is
// only used in error messages.
//
// Returns an error with code [errors.ErrCodeMalformedDescriptor] when the
// content is not a well-formed features document.
func Parse(source string, r io.Reader) (*Features, error) {
	var f Features
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDescriptor, err, "parsing %s", source)
	}

	// Location text comes back with the surrounding XML whitespace.
	for i := range f.Repository {
		f.Repository[i] = strings.TrimSpace(f.Repository[i])
	}
	for i := range f.Feature {
		ft := &f.Feature[i]
		for j := range ft.Bundle {
			ft.Bundle[j].Location = strings.TrimSpace(ft.Bundle[j].Location)
		}
		for j := range ft.ConfigFile {
			ft.ConfigFile[j].Location = strings.TrimSpace(ft.ConfigFile[j].Location)
		}
	}
	return &f, nil
}

// Read loads and parses the feature descriptor at path.
//
// Returns an error with code [errors.ErrCodeNotFound] if the file is missing
// or unreadable, or [errors.ErrCodeMalformedDescriptor] if it does not parse.
func Read(path string) (*Features, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "opening descriptor %s", path)
	}
	defer file.Close()
	return Parse(path, file)
}
