package appconfig

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemResolver(t *testing.T, opts Options) (*Resolver, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	opts.Fs = fs
	if opts.WorkingDir == "" {
		opts.WorkingDir = "/work"
	}
	return NewWithOptions(opts), fs
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

// TestSearchDirectories tests directory assembly order and deduplication
func TestSearchDirectories(t *testing.T) {
	r, fs := newMemResolver(t, Options{
		FrameworkRoots: []string{"/fw/config", "/fw/missing"},
	})
	require.NoError(t, fs.MkdirAll("/fw/config", 0755))

	ns := r.Subject(Named("NS"))
	ns.AddDirectory("/ns/config")
	leaf := r.Subject(Named("NS::Leaf"))
	leaf.AddDirectory("/leaf/config")
	leaf.AddDirectory("/ns/config") // duplicate of the inherited directory

	dirs := r.SearchDirectories(leaf)
	assert.Equal(t, []string{"/fw/config", "/ns/config", "/leaf/config", "/work/config"}, dirs,
		"framework roots first, then progenitor paths, own dirs, cwd fallback; duplicates keep first occurrence")
}

// TestCandidateFiles tests the directory-major, name-minor matrix
func TestCandidateFiles(t *testing.T) {
	r, _ := newMemResolver(t, Options{Extensions: []string{".yml", ".toml"}})

	s := r.Subject(Named("My::Service"))
	s.AddDirectory("/etc/svc")
	s.AddConfigName("overrides")

	candidates := r.CandidateFiles(s)
	assert.Equal(t, []string{
		"/etc/svc/my_service.yml",
		"/etc/svc/my_service.toml",
		"/etc/svc/overrides.yml",
		"/etc/svc/overrides.toml",
		"/work/config/my_service.yml",
		"/work/config/my_service.toml",
		"/work/config/overrides.yml",
		"/work/config/overrides.toml",
	}, candidates)
}

// TestCandidateFilesPathTarget verifies a path ref is used verbatim
func TestCandidateFilesPathTarget(t *testing.T) {
	r, _ := newMemResolver(t, Options{})

	t.Run("ExplicitPathRef", func(t *testing.T) {
		s := r.Subject(Named("Anything"))
		candidates := r.CandidateFiles(s, FilePath("/etc/exact/some_app.yml"))
		assert.Equal(t, []string{"/etc/exact/some_app.yml"}, candidates)
	})

	t.Run("PathSubject", func(t *testing.T) {
		s := r.Subject(FilePath("/etc/exact/some_app.yml"))
		candidates := r.CandidateFiles(s)
		assert.Equal(t, []string{"/etc/exact/some_app.yml"}, candidates)
	})
}

// TestLocate tests first-match semantics and the fallback name
func TestLocate(t *testing.T) {
	r, fs := newMemResolver(t, Options{Extensions: []string{".yml"}})

	s := r.Subject(Named("Widget"))
	s.AddDirectory("/primary")
	s.AddDirectory("/secondary")

	t.Run("NothingFound", func(t *testing.T) {
		found, searched := r.Locate(s, nil, nil)
		assert.Empty(t, found)
		assert.Equal(t, []string{
			"/primary/widget.yml",
			"/secondary/widget.yml",
			"/work/config/widget.yml",
		}, searched)
	})

	t.Run("EarlierDirectoryWins", func(t *testing.T) {
		writeFile(t, fs, "/secondary/widget.yml", "shared: {}\n")
		found, _ := r.Locate(s, nil, nil)
		assert.Equal(t, "/secondary/widget.yml", found)

		writeFile(t, fs, "/primary/widget.yml", "shared: {}\n")
		found, _ = r.Locate(s, nil, nil)
		assert.Equal(t, "/primary/widget.yml", found)
	})

	t.Run("FallbackNameTried", func(t *testing.T) {
		writeFile(t, fs, "/primary/defaults.yml", "shared: {}\n")

		found, searched := r.Locate(s, Named("Absent"), Named("Defaults"))
		assert.Equal(t, "/primary/defaults.yml", found)
		// Every primary-name candidate was probed before the fallback hit.
		assert.Contains(t, searched, "/primary/absent.yml")
		assert.Contains(t, searched, "/work/config/absent.yml")
	})

	t.Run("Exists", func(t *testing.T) {
		assert.True(t, r.Exists(s, nil, nil))
		assert.False(t, r.Exists(s, Named("NoSuch"), nil))
		assert.True(t, r.Exists(s, Named("NoSuch"), Named("Defaults")))
	})
}
