// Package pkg holds project metadata and the locations of per-user files.
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of cfgl, embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It also names the configuration and cache
	// directories.
	Name = "cfgl"
	// Description is the one-line summary shown in help output.
	Description = "Render YAML and JSON documents as block-structured configuration"
)

// AuthorInfo identifies an author.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the authors of cfgl.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
