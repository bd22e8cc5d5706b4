// Package csharp is the C# language adapter: a thin regex pattern pack over
// internal/adapters/regexlang, matching `using Namespace.Path;` directives.
package csharp

import (
	"regexp"

	"github.com/reachvet/engine/internal/adapters/regexlang"
	"github.com/reachvet/engine/internal/patterns"
)

var reUsing = regexp.MustCompile(`^\s*using\s+(?:static\s+)?([A-Za-z0-9_.]+)\s*;`)

// New returns the C# adapter. canHandle falls back to *.csproj/*.sln
// presence is approximated by discovering .cs source files directly, since
// NuGet package manifests vary across SDK-style and classic project formats.
func New() *regexlang.Adapter {
	return regexlang.New(regexlang.Config{
		Language:    "csharp",
		Extensions:  []string{".cs"},
		ImportRegex: reUsing,
	}, patterns.MustLoadPatterns("csharp"))
}
