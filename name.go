package appconfig

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Identifier is a canonical lowercase, underscore-separated token derived
// from a subject's display name. It doubles as an environment-variable
// prefix and a config-file base name.
type Identifier string

var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	wordBoundary    = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// Underscore converts a qualified display name into its canonical
// identifier: compound-word boundaries become underscores, namespace
// separators ("::" and "/") collapse to underscores, and the result is
// lower-cased. The transform is deterministic and idempotent.
func Underscore(name string) Identifier {
	s := strings.ReplaceAll(name, "::", "/")
	s = acronymBoundary.ReplaceAllString(s, "${1}_${2}")
	s = wordBoundary.ReplaceAllString(s, "${1}_${2}")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return Identifier(strings.ToLower(s))
}

// IdentifierFrom derives the canonical identifier for a subject reference.
//
// Tokens pass through unchanged. Paths contribute their file stem with the
// extension stripped but are otherwise untouched; callers wanting the usual
// transform must pre-normalize. Names and types go through Underscore, with
// anonymous types degrading to the generic root name.
func IdentifierFrom(ref Ref) Identifier {
	switch r := ref.(type) {
	case TokenRef:
		return Identifier(r)
	case PathRef:
		return Identifier(pathStem(string(r)))
	case NameRef:
		return Underscore(string(r))
	case TypeRef:
		return Underscore(r.String())
	case ValueRef:
		return Underscore(r.String())
	default:
		return Underscore(ref.String())
	}
}

// FileStemFrom derives the config-file base name for a subject reference.
// It is the same transform as IdentifierFrom; the locator appends the
// configured extensions to the stem.
func FileStemFrom(ref Ref) Identifier {
	return IdentifierFrom(ref)
}

// pathStem returns the base name of path with any extension removed.
func pathStem(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
