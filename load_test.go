package appconfig

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveMergeSemantics tests environment-over-shared merging
func TestResolveMergeSemantics(t *testing.T) {
	t.Run("EnvironmentKeysWin", func(t *testing.T) {
		r, fs := newMemResolver(t, Options{})
		writeFile(t, fs, "/work/config/widget.yml", `
shared:
  color: blue
  size: 1
development:
  color: green
`)
		s := r.Subject(Named("Widget"))
		cfg, err := s.Config()
		require.NoError(t, err)

		color, err := cfg.String("color")
		require.NoError(t, err)
		assert.Equal(t, "green", color)

		size, err := cfg.Int(" size")
		assert.Error(t, err) // keys are exact
		size, err = cfg.Int("size")
		require.NoError(t, err)
		assert.Equal(t, 1, size)
	})

	t.Run("NoSharedSection", func(t *testing.T) {
		r, fs := newMemResolver(t, Options{})
		writeFile(t, fs, "/work/config/widget.yml", `
development:
  color: green
`)
		cfg, err := r.Subject(Named("Widget")).Config()
		require.NoError(t, err)

		assert.Equal(t, map[string]any{"color": "green"}, cfg.ToMap())
	})

	t.Run("MissingEnvironmentFallsBackToShared", func(t *testing.T) {
		r, fs := newMemResolver(t, Options{})
		writeFile(t, fs, "/work/config/widget.yml", `
shared:
  color: blue
production:
  color: red
`)
		cfg, err := r.Subject(Named("Widget")).Config()
		require.NoError(t, err)

		color, err := cfg.String("color")
		require.NoError(t, err)
		assert.Equal(t, "blue", color)
	})

	t.Run("BothAbsentYieldsEmptyNotError", func(t *testing.T) {
		r, fs := newMemResolver(t, Options{})
		writeFile(t, fs, "/work/config/widget.yml", `
production:
  color: red
`)
		cfg, err := r.Subject(Named("Widget")).Config()
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.Len())
	})

	t.Run("NestedMapsMergeRecursively", func(t *testing.T) {
		r, fs := newMemResolver(t, Options{})
		writeFile(t, fs, "/work/config/widget.yml", `
shared:
  server:
    host: localhost
    port: 8080
development:
  server:
    host: devhost
`)
		cfg, err := r.Subject(Named("Widget")).Config()
		require.NoError(t, err)

		host, err := cfg.GetPath("server.host")
		require.NoError(t, err)
		assert.Equal(t, "devhost", host)

		port, err := cfg.GetPath("server.port")
		require.NoError(t, err)
		assert.Equal(t, 8080, port)
	})

	t.Run("ExplicitFalseOverridesShared", func(t *testing.T) {
		r, fs := newMemResolver(t, Options{})
		writeFile(t, fs, "/work/config/widget.yml", `
shared:
  verbose: true
development:
  verbose: false
`)
		cfg, err := r.Subject(Named("Widget")).Config()
		require.NoError(t, err)

		verbose, err := cfg.Bool("verbose")
		require.NoError(t, err)
		assert.False(t, verbose)
	})

	t.Run("NestedZeroValuesOverrideShared", func(t *testing.T) {
		r, fs := newMemResolver(t, Options{})
		writeFile(t, fs, "/work/config/widget.yml", `
shared:
  server:
    debug: true
    port: 8080
    banner: welcome
development:
  server:
    debug: false
    banner: ""
`)
		cfg, err := r.Subject(Named("Widget")).Config()
		require.NoError(t, err)

		debug, err := cfg.GetPath("server.debug")
		require.NoError(t, err)
		assert.Equal(t, false, debug)

		banner, err := cfg.GetPath("server.banner")
		require.NoError(t, err)
		assert.Equal(t, "", banner)

		port, err := cfg.GetPath("server.port")
		require.NoError(t, err)
		assert.Equal(t, 8080, port)
	})

	t.Run("ExplicitNullOverridesShared", func(t *testing.T) {
		r, fs := newMemResolver(t, Options{})
		writeFile(t, fs, "/work/config/widget.yml", `
shared:
  color: blue
development:
  color: null
`)
		cfg, err := r.Subject(Named("Widget")).Config()
		require.NoError(t, err)

		color, err := cfg.GetPath("color")
		require.NoError(t, err)
		assert.Nil(t, color)
	})

	t.Run("ScalarEnvironmentSectionReturnedVerbatim", func(t *testing.T) {
		r, fs := newMemResolver(t, Options{})
		writeFile(t, fs, "/work/config/widget.yml", `
shared:
  color: blue
development: enabled
`)
		cfg, err := r.Subject(Named("Widget")).Config()
		require.NoError(t, err)

		assert.True(t, cfg.IsScalar())
		assert.Equal(t, "enabled", cfg.Value())
	})
}

// TestResolveErrorModes tests the not-found versus malformed distinction
func TestResolveErrorModes(t *testing.T) {
	t.Run("NotFoundListsEveryAttemptedPath", func(t *testing.T) {
		r, _ := newMemResolver(t, Options{Extensions: []string{".yml"}})
		s := r.Subject(Named("Ghost"))
		s.AddDirectory("/etc/ghost")

		_, err := s.Config()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfigNotFound)

		var notFound *NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, []string{"/etc/ghost/ghost.yml", "/work/config/ghost.yml"}, notFound.Searched)
	})

	t.Run("NotFoundIncludesFallbackPaths", func(t *testing.T) {
		r, _ := newMemResolver(t, Options{Extensions: []string{".yml"}})
		s := r.Subject(Named("Ghost"))

		_, err := r.Resolve(s, ResolveRequest{Name: Named("Primary"), Fallback: Named("Backup")})
		var notFound *NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Contains(t, notFound.Searched, "/work/config/primary.yml")
		assert.Contains(t, notFound.Searched, "/work/config/backup.yml")
	})

	t.Run("MalformedFileIsLoadError", func(t *testing.T) {
		r, fs := newMemResolver(t, Options{})
		writeFile(t, fs, "/work/config/widget.yml", "development: [unclosed\n")

		_, err := r.Subject(Named("Widget")).Config()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLoadFailed)
		assert.NotErrorIs(t, err, ErrConfigNotFound)

		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Equal(t, "/work/config/widget.yml", loadErr.Path)
		assert.NotNil(t, loadErr.Err)
	})
}

// TestResolveRequestOverrides tests name, env, and fallback overrides
func TestResolveRequestOverrides(t *testing.T) {
	r, fs := newMemResolver(t, Options{})
	writeFile(t, fs, "/work/config/alternate.yml", `
shared:
  origin: alternate
staging:
  origin: alternate-staging
`)
	s := r.Subject(Named("Widget"))

	t.Run("NameOverride", func(t *testing.T) {
		cfg, err := r.Resolve(s, ResolveRequest{Name: Named("Alternate")})
		require.NoError(t, err)
		origin, _ := cfg.String("origin")
		assert.Equal(t, "alternate", origin)
	})

	t.Run("EnvOverride", func(t *testing.T) {
		cfg, err := r.Resolve(s, ResolveRequest{Name: Named("Alternate"), Env: "staging"})
		require.NoError(t, err)
		origin, _ := cfg.String("origin")
		assert.Equal(t, "alternate-staging", origin)
	})

	t.Run("FallbackUsedWhenPrimaryAbsent", func(t *testing.T) {
		cfg, err := r.Resolve(s, ResolveRequest{Fallback: Named("Alternate")})
		require.NoError(t, err)
		origin, _ := cfg.String("origin")
		assert.Equal(t, "alternate", origin)
	})
}

// TestLoadRawFormats tests multi-format parsing and template expansion
func TestLoadRawFormats(t *testing.T) {
	t.Run("TOML", func(t *testing.T) {
		r, fs := newMemResolver(t, Options{})
		writeFile(t, fs, "/work/config/widget.toml", `
[shared]
color = "blue"

[development]
color = "green"
`)
		cfg, err := r.Subject(Named("Widget")).Config()
		require.NoError(t, err)
		color, _ := cfg.String("color")
		assert.Equal(t, "green", color)
	})

	t.Run("JSON", func(t *testing.T) {
		r, fs := newMemResolver(t, Options{})
		writeFile(t, fs, "/work/config/widget.json",
			`{"shared": {"size": 2}, "development": {"color": "green"}}`)
		cfg, err := r.Subject(Named("Widget")).Config()
		require.NoError(t, err)

		size, err := cfg.Int("size")
		require.NoError(t, err)
		assert.Equal(t, 2, size)
	})

	t.Run("EnvTemplateExpansion", func(t *testing.T) {
		t.Setenv("WIDGET_DB_HOST", "db.internal")

		r, fs := newMemResolver(t, Options{})
		writeFile(t, fs, "/work/config/widget.yml", `
development:
  host: ${WIDGET_DB_HOST}
  alt: ${env:WIDGET_DB_HOST}
  unset: "${NO_SUCH_VARIABLE_SET}"
`)
		cfg, err := r.Subject(Named("Widget")).Config()
		require.NoError(t, err)

		host, _ := cfg.String("host")
		assert.Equal(t, "db.internal", host)
		alt, _ := cfg.String("alt")
		assert.Equal(t, "db.internal", alt)
		unset, _ := cfg.String("unset")
		assert.Equal(t, "", unset)
	})

	t.Run("LoadRawMissingFile", func(t *testing.T) {
		r, _ := newMemResolver(t, Options{})
		_, err := r.LoadRaw("/nope/widget.yml")
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("LoadRawWholeDocument", func(t *testing.T) {
		r, fs := newMemResolver(t, Options{})
		writeFile(t, fs, "/work/config/widget.yml", "shared:\n  a: 1\ndevelopment:\n  b: 2\n")

		doc, err := r.LoadRaw("/work/config/widget.yml")
		require.NoError(t, err)
		assert.Len(t, doc, 2)
		assert.Contains(t, doc, "shared")
		assert.Contains(t, doc, "development")
	})
}
