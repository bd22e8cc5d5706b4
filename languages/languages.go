// Package languages embeds the per-language curated package→namespace maps
// used by the non-JS adapters. Each YAML file defines, for one ecosystem,
// the package names whose source-level import namespace differs from the
// package name itself — adding a new adapter language is a matter of
// dropping in a new *.yaml file and registering the adapter with
// internal/adapter.NewDispatcher.
package languages

import "embed"

// FS is an embed.FS containing every *.yaml file in this directory.
//
//go:embed *.yaml
var FS embed.FS
