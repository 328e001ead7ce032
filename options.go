package appconfig

import (
	"sync"

	"github.com/spf13/afero"
)

// Options is the process-scoped configuration for a Resolver. It replaces
// ambient global defaults: everything the resolver treats as "the default"
// lives here and is fixed at construction.
type Options struct {
	// FallbackPrefixes are probed after every subject-derived prefix when
	// resolving the environment name. The defaults give the conventional
	// APP_ENV / GO_ENV pair.
	FallbackPrefixes []Identifier

	// DefaultEnvironment is returned when no prefix resolves to an
	// environment name.
	DefaultEnvironment string

	// DefaultStyle applies when neither the caller nor the subject declares
	// an inheritance style.
	DefaultStyle Style

	// Extensions are tried, in order, when combining a file stem with a
	// search directory.
	Extensions []string

	// FrameworkRoots are candidate config directories contributed by a host
	// framework. Only the ones that exist are searched; they take priority
	// over every other directory.
	FrameworkRoots []string

	// WorkingDir overrides the process working directory used for the final
	// "<cwd>/config" search fallback. Empty means os.Getwd.
	WorkingDir string

	// Fs is the filesystem used for existence checks and file reads.
	// Defaults to the OS filesystem; tests substitute a memory-backed one.
	Fs afero.Fs
}

// DefaultOptions returns the standard resolver options.
func DefaultOptions() Options {
	return Options{
		FallbackPrefixes:   []Identifier{"app", "go"},
		DefaultEnvironment: "development",
		DefaultStyle:       StyleNamespace,
		Extensions:         []string{".yml", ".yaml", ".toml", ".json"},
		Fs:                 afero.NewOsFs(),
	}
}

// Resolver resolves environments and configuration files for subjects. It
// owns the registry of participating subjects and the global root sentinel
// that terminates every inheritance chain.
type Resolver struct {
	opts Options

	mutex    sync.RWMutex
	subjects map[string]*Subject
	root     *Subject
}

// New creates a Resolver with DefaultOptions.
func New() *Resolver {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a Resolver with explicit options. Zero-valued
// fields fall back to their defaults.
func NewWithOptions(opts Options) *Resolver {
	def := DefaultOptions()
	if opts.FallbackPrefixes == nil {
		opts.FallbackPrefixes = def.FallbackPrefixes
	}
	if opts.DefaultEnvironment == "" {
		opts.DefaultEnvironment = def.DefaultEnvironment
	}
	if opts.DefaultStyle == "" {
		opts.DefaultStyle = def.DefaultStyle
	}
	if opts.Extensions == nil {
		opts.Extensions = def.Extensions
	}
	if opts.Fs == nil {
		opts.Fs = def.Fs
	}

	r := &Resolver{
		opts:     opts,
		subjects: make(map[string]*Subject),
	}

	root := &Subject{
		resolver: r,
		name:     "app",
		prefixes: append([]Identifier(nil), opts.FallbackPrefixes...),
		names:    []Identifier{"app"},
		style:    StyleNone,
	}
	r.root = root
	r.subjects[root.name] = root

	return r
}

// Options returns a copy of the resolver's options.
func (r *Resolver) Options() Options { return r.opts }

// Root returns the global root sentinel subject. Its prefixes are the
// fallback pair probed after all inherited prefixes.
func (r *Resolver) Root() *Subject { return r.root }
