package appconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// SharedKey is the reserved top-level section merged under every
// environment's specific section.
const SharedKey = "shared"

// ResolveRequest carries the optional overrides for a single resolution.
// The zero value resolves the subject's own names against its own
// environment.
type ResolveRequest struct {
	// Name overrides the subject's config-name list for this resolution.
	Name Ref

	// Env overrides the subject's resolved environment name.
	Env string

	// Fallback is tried when none of Name's candidates exist.
	Fallback Ref
}

// LoadRaw reads and parses a single configuration file into its raw nested
// document. File text passes through environment-variable template
// expansion before structural parsing. A missing file yields a
// NotFoundError; a present but unparsable file yields a LoadError wrapping
// the parser failure.
func (r *Resolver) LoadRaw(path string) (map[string]any, error) {
	data, err := afero.ReadFile(r.opts.Fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Searched: []string{path}}
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	expanded := []byte(expandEnvTemplate(string(data)))

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(expanded)
		if format == "" {
			format = "yaml"
		}
	}

	document := make(map[string]any)
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(expanded, &document); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
	case "toml":
		if err := toml.Unmarshal(expanded, &document); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(expanded))
		decoder.UseNumber()
		if err := decoder.Decode(&document); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
	}
	return normalizeDocument(document), nil
}

// Resolve locates, loads, and merges configuration for a subject: the
// section keyed by the active environment deep-merged over the shared
// section. A missing environment section falls back to shared alone; a
// scalar environment section is returned verbatim; both absent yields empty
// settings, not an error.
func (r *Resolver) Resolve(s *Subject, req ResolveRequest) (*Settings, error) {
	path, searched := r.Locate(s, req.Name, req.Fallback)
	if path == "" {
		return nil, &NotFoundError{Searched: searched}
	}

	document, err := r.LoadRaw(path)
	if err != nil {
		return nil, err
	}

	env := req.Env
	if env == "" {
		env = s.Environment()
	}

	return mergeSections(document, env)
}

// mergeSections extracts the environment and shared sections from a raw
// document and combines them, environment keys winning recursively.
func mergeSections(document map[string]any, env string) (*Settings, error) {
	section, hasSection := document[env]
	shared, _ := document[SharedKey].(map[string]any)

	if !hasSection || section == nil {
		return newSettings(deepCopyMap(shared)), nil
	}

	envMap, ok := section.(map[string]any)
	if !ok {
		// Scalar environment section: returned verbatim, shared ignored.
		return newScalarSettings(section), nil
	}

	merged := deepCopyMap(envMap)
	if merged == nil {
		merged = make(map[string]any)
	}
	if base := deepCopyMap(shared); base != nil {
		if err := mergo.Merge(&merged, base); err != nil {
			return nil, err
		}
		// The fill merge cannot tell an explicit zero value in the
		// environment section apart from an absent key, so environment
		// keys are reasserted afterwards.
		reassertKeys(merged, envMap)
	}
	return newSettings(merged), nil
}

// expandEnvTemplate resolves embedded ${VAR}, $VAR, and ${env:VAR}
// expressions against process environment variables. Unset variables expand
// to the empty string, matching os.Expand semantics.
func expandEnvTemplate(text string) string {
	return os.Expand(text, func(key string) string {
		key = strings.TrimPrefix(key, "env:")
		return os.Getenv(key)
	})
}

// detectFileFormat determines the document format from the file extension.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return "yaml"
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	default:
		return ""
	}
}

// detectFormatFromContent attempts format detection by parsing. JSON is
// checked first since YAML is a superset of it.
func detectFormatFromContent(data []byte) string {
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	return ""
}
