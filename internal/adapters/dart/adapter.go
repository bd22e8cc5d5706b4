// Package dart is the Dart language adapter: a thin regex pattern pack over
// internal/adapters/regexlang, matching `import 'package:name/path.dart';`
// directives.
package dart

import (
	"regexp"

	"github.com/reachvet/engine/internal/adapters/regexlang"
	"github.com/reachvet/engine/internal/patterns"
)

// The capturing group includes the "package:" prefix so the captured source
// lines up with the "package:x" form used in languages/dart.yaml.
var reImport = regexp.MustCompile(`^\s*import\s+['"](package:[A-Za-z0-9_./]+)['"]`)

// New returns the Dart adapter.
func New() *regexlang.Adapter {
	return regexlang.New(regexlang.Config{
		Language:     "dart",
		Extensions:   []string{".dart"},
		ManifestFile: "pubspec.yaml",
		ImportRegex:  reImport,
	}, patterns.MustLoadPatterns("dart"))
}
