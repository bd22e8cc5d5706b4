// Package componentlist parses the engine's component-list input (spec §6):
// either a flat array of components, or a CycloneDX/SPDX SBOM, auto-detected
// by key presence. This is ingestion only — producing an SBOM is out of
// scope (spec §1's Non-goals).
//
// Grounded on internal/sbom/sbom.go's BOM/Component/BOMMetadata struct
// shapes, used here in reverse: that package only ever marshaled a BOM it
// generated, so its JSON tags already document the exact CycloneDX field
// names this package now parses.
package componentlist

import (
	"encoding/json"
	"fmt"

	"github.com/reachvet/engine/internal/domain"
)

// ParseError is an input error per spec §7: malformed component list input,
// fatal at the entry.
type ParseError struct {
	Index   int // -1 when not associated with a specific entry
	Message string
}

func (e *ParseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("componentlist: entry %d: %s", e.Index, e.Message)
	}
	return "componentlist: " + e.Message
}

// flatEntry is one element of the flat-array input form.
type flatEntry struct {
	Name          string               `json:"name"`
	Version       string               `json:"version"`
	Ecosystem     string               `json:"ecosystem"`
	Vulnerabilities []flatVulnerability `json:"vulnerabilities"`
}

type flatVulnerability struct {
	ID                string   `json:"id"`
	Severity          string   `json:"severity"`
	AffectedFunctions []string `json:"affectedFunctions"`
	FixedVersion      string   `json:"fixedVersion"`
	Description       string   `json:"description"`
}

// cyclonedxDoc captures the subset of CycloneDX fields this engine reads,
// detected by the presence of "bomFormat"/"specVersion"/"components".
type cyclonedxDoc struct {
	BOMFormat   string             `json:"bomFormat"`
	SpecVersion string             `json:"specVersion"`
	Components  []cyclonedxEntry   `json:"components"`
}

type cyclonedxEntry struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	PackageURL string `json:"purl"`
	Type       string `json:"type"`
}

// spdxDoc captures the subset of SPDX fields this engine reads, detected by
// the presence of "spdxVersion"/"packages".
type spdxDoc struct {
	SPDXVersion string       `json:"spdxVersion"`
	Packages    []spdxEntry  `json:"packages"`
}

type spdxEntry struct {
	Name           string `json:"name"`
	VersionInfo    string `json:"versionInfo"`
	PackageURL     string `json:"-"` // not populated; spdxPURL reads ExternalRefs directly
	ExternalRefs   []spdxExternalRef `json:"externalRefs"`
}

type spdxExternalRef struct {
	ReferenceCategory string `json:"referenceCategory"`
	ReferenceType      string `json:"referenceType"`
	ReferenceLocator   string `json:"referenceLocator"`
}

// Parse auto-detects and parses one of the three accepted input shapes.
func Parse(data []byte) ([]domain.Component, error) {
	var probe map[string]json.RawMessage
	isObject := json.Unmarshal(data, &probe) == nil

	switch {
	case isObject && hasAny(probe, "bomFormat", "specVersion") && hasKey(probe, "components"):
		return parseCycloneDX(data)
	case isObject && hasAny(probe, "spdxVersion") && hasKey(probe, "packages"):
		return parseSPDX(data)
	case isObject:
		return nil, &ParseError{Index: -1, Message: "object input is neither a CycloneDX nor an SPDX document (missing bomFormat/specVersion/components or spdxVersion/packages)"}
	default:
		return parseFlat(data)
	}
}

func hasKey(m map[string]json.RawMessage, key string) bool {
	_, ok := m[key]
	return ok
}

func hasAny(m map[string]json.RawMessage, keys ...string) bool {
	for _, k := range keys {
		if hasKey(m, k) {
			return true
		}
	}
	return false
}

func parseFlat(data []byte) ([]domain.Component, error) {
	var entries []flatEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &ParseError{Index: -1, Message: "input is not a JSON array: " + err.Error()}
	}

	out := make([]domain.Component, 0, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return nil, &ParseError{Index: i, Message: "missing name"}
		}
		if e.Version == "" {
			return nil, &ParseError{Index: i, Message: "missing version"}
		}
		eco := e.Ecosystem
		if eco == "" {
			eco = domain.DefaultEcosystem
		}
		purl := ""
		if eco != "unknown" {
			purl = fmt.Sprintf("pkg:%s/%s@%s", eco, e.Name, e.Version)
		}

		var vulns []domain.Vulnerability
		for _, v := range e.Vulnerabilities {
			sev := v.Severity
			if sev == "" {
				sev = string(domain.SeverityUnknown)
			}
			vulns = append(vulns, domain.Vulnerability{
				ID:                v.ID,
				Severity:          domain.Severity(sev),
				AffectedFunctions: v.AffectedFunctions,
				FixedVersion:      v.FixedVersion,
				Description:       v.Description,
			})
		}

		out = append(out, domain.Component{
			Name: e.Name, Version: e.Version, Ecosystem: eco, PURL: purl,
			Vulnerabilities: vulns,
		})
	}
	return out, nil
}

func parseCycloneDX(data []byte) ([]domain.Component, error) {
	var doc cyclonedxDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Index: -1, Message: "invalid CycloneDX document: " + err.Error()}
	}
	out := make([]domain.Component, 0, len(doc.Components))
	for i, c := range doc.Components {
		if c.Name == "" {
			return nil, &ParseError{Index: i, Message: "missing name"}
		}
		if c.Version == "" {
			return nil, &ParseError{Index: i, Message: "missing version"}
		}
		eco, name := ecosystemFromPURL(c.PackageURL, c.Name)
		out = append(out, domain.Component{
			Name: name, Version: c.Version, Ecosystem: eco, PURL: c.PackageURL,
		})
	}
	return out, nil
}

func parseSPDX(data []byte) ([]domain.Component, error) {
	var doc spdxDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Index: -1, Message: "invalid SPDX document: " + err.Error()}
	}
	out := make([]domain.Component, 0, len(doc.Packages))
	for i, p := range doc.Packages {
		if p.Name == "" {
			return nil, &ParseError{Index: i, Message: "missing name"}
		}
		if p.VersionInfo == "" {
			return nil, &ParseError{Index: i, Message: "missing versionInfo"}
		}
		purl := spdxPURL(p)
		eco, name := ecosystemFromPURL(purl, p.Name)
		out = append(out, domain.Component{
			Name: name, Version: p.VersionInfo, Ecosystem: eco, PURL: purl,
		})
	}
	return out, nil
}

func spdxPURL(p spdxEntry) string {
	for _, ref := range p.ExternalRefs {
		if ref.ReferenceCategory == "PACKAGE-MANAGER" && ref.ReferenceType == "purl" {
			return ref.ReferenceLocator
		}
	}
	return ""
}

// ecosystemFromPURL derives ecosystem and bare package name from a "pkg:"
// URL (e.g. "pkg:npm/lodash@4.17.21" → "npm", "lodash"); falls back to the
// default ecosystem and the given name when purl is absent or unrecognized.
func ecosystemFromPURL(purl, fallbackName string) (ecosystem, name string) {
	const prefix = "pkg:"
	if len(purl) <= len(prefix) || purl[:len(prefix)] != prefix {
		return domain.DefaultEcosystem, fallbackName
	}
	rest := purl[len(prefix):]
	slash := -1
	for i, r := range rest {
		if r == '/' {
			slash = i
			break
		}
	}
	if slash < 0 {
		return domain.DefaultEcosystem, fallbackName
	}
	eco := rest[:slash]
	tail := rest[slash+1:]
	at := -1
	for i := len(tail) - 1; i >= 0; i-- {
		if tail[i] == '@' {
			at = i
			break
		}
	}
	if at < 0 {
		return eco, tail
	}
	return eco, tail[:at]
}
