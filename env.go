package appconfig

import (
	"os"
	"strings"
)

// EnvKey builds the environment-variable name probed for a prefix:
// "my_app" maps to "MY_APP_ENV".
func EnvKey(prefix Identifier) string {
	return strings.ToUpper(string(prefix)) + "_ENV"
}

// EnvironmentName probes each prefix in order and returns the first present,
// non-blank environment value. Earlier prefixes take priority: a subject's
// own prefix beats inherited ones, and inherited ones beat the fallback
// pair. When no prefix yields a value the resolver default applies.
//
// The probe is pure; caching the result is the subject's responsibility.
func (r *Resolver) EnvironmentName(prefixes []Identifier) string {
	for _, prefix := range prefixes {
		if value, ok := os.LookupEnv(EnvKey(prefix)); ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return r.opts.DefaultEnvironment
}
