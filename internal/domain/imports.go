package domain

// ImportKind enumerates every import/require form the JS/TS parser
// recognizes (spec §4.2).
type ImportKind string

const (
	ImportNamed               ImportKind = "named"
	ImportDefault             ImportKind = "default"
	ImportNamespace           ImportKind = "namespace"
	ImportSideEffect          ImportKind = "side-effect"
	ImportDynamic             ImportKind = "dynamic"
	ImportRequire             ImportKind = "require"
	ImportRequireDestructure  ImportKind = "require-destructure"
	ImportRequireProperty     ImportKind = "require-property"
	ImportTypeOnly            ImportKind = "type-only"
	ImportReExport            ImportKind = "re-export"
)

// Binding is one imported/bound name, mapping the name as exported by the
// module ("imported") to the local identifier it is bound to ("local").
// Imported is "*" for namespace imports.
type Binding struct {
	Imported string `json:"imported"`
	Local    string `json:"local"`
}

// ImportRecord is one parsed import/require statement. Every non-side-effect
// import carries at least one Binding, except a dynamic import() that is not
// assigned to a local name (its bindings are unknown). Type-only imports are excluded from
// runtime reachability regardless of what else they would otherwise imply.
type ImportRecord struct {
	Kind       ImportKind `json:"kind"`
	Source     string     `json:"source"`
	Bindings   []Binding  `json:"bindings,omitempty"`
	Alias      string     `json:"alias,omitempty"`
	IsTypeOnly bool       `json:"isTypeOnly"`
	Location   Location   `json:"location"`
	// Guarded marks an import statement whose enclosing block is a try/catch
	// or an if-gate over the returned value (spec §4.5 step 7, §9 ambiguity:
	// "any require nested in a guarded block").
	Guarded bool `json:"guarded,omitempty"`
}
