// Package appconfig resolves environment-specific application configuration
// for any identifiable unit: a type, a qualified name, or an instance.
//
// Given a subject, the resolver determines the active runtime environment by
// probing <PREFIX>_ENV variables, locates the applicable configuration file
// across an ordered set of search directories, and merges the
// environment-specific section of that file over its shared defaults.
// Prefixes and search behavior cascade along the subject's namespace or
// declared supertype chain, so a library's configuration can inherit from
// the application embedding it without hard-wiring either relationship.
//
// Quick start:
//
//	r := appconfig.New()
//	s := r.Subject(appconfig.Named("Acme/Widget"))
//
//	env := s.Environment()        // ACME_WIDGET_ENV, APP_ENV, GO_ENV, else "development"
//	cfg, err := s.Config()        // first of config/acme_widget.yml etc.
//	if err != nil {
//	    log.Fatal(err)
//	}
//	color, _ := cfg.String("color")
//
// Configuration files are mappings keyed by environment name plus the
// reserved "shared" section:
//
//	shared:
//	  color: blue
//	  size: 1
//	development:
//	  color: green
//
// Resolving the development environment yields {color: green, size: 1}.
// YAML is the primary format; TOML and JSON files load the same way, and
// file text may embed ${VAR} expressions expanded from the process
// environment before parsing.
//
// Inheritance styles control how a subject's ancestor chain is computed:
// lexically (StyleNamespace), through declared supertypes (StyleClass),
// neither (StyleNone), or both in either order. Every chain except
// StyleNone ends at the resolver's root sentinel, whose fallback prefixes
// give the conventional APP_ENV / GO_ENV pair.
//
// Resolution never substitutes defaults for missing or malformed files:
// absence fails with ErrConfigNotFound listing every path searched, and a
// file that exists but cannot be parsed fails with ErrLoadFailed wrapping
// the parser error. Only a missing environment section inside a valid file
// is soft, falling back to the shared section alone.
//
// Subjects cache their resolved environment and config; a changed
// environment variable has no effect on an already-resolved subject until
// Reload is called. Mutators on a single Subject must be serialized by the
// caller in concurrent hosts; warm read paths are safe to share.
package appconfig
