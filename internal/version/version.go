// Package version carries the build metadata of the gobeam binary.
package version

import "fmt"

// Name and Description identify the tool in banners and version output.
const (
	Name        = "gobeam"
	Description = "Beam Reaction, Shear and Moment Analysis Tool"
)

// Build metadata, overridden with -ldflags at link time:
//
//	go build -ldflags "-X github.com/alexiusacademia/gobeam/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
	Author    = "Alexius Academia"
	Year      = "2026"
)

// Short returns "gobeam v<version>".
func Short() string {
	return fmt.Sprintf("%s v%s", Name, Version)
}

// Build describes when and from which commit the binary was built.
func Build() string {
	return fmt.Sprintf("Build: %s (commit %s)", BuildTime, GitCommit)
}

// Copyright returns the copyright line shown by the root command.
func Copyright() string {
	return fmt.Sprintf("Copyright © %s %s. All rights reserved.", Year, Author)
}
