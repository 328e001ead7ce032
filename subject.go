package appconfig

import "sync"

// Subject is a unit participating in configuration resolution. It holds the
// per-subject mutable state: prefix list, config base names, extra search
// directories, declared inheritance style, and the cached environment and
// config. State is created lazily on first access through Resolver.Subject
// and mutated only through the explicit methods below; caches invalidate
// only on Reload, never behind the caller's back.
type Subject struct {
	resolver *Resolver
	name     string
	target   string // non-empty when created from a PathRef: exact file target

	mutex      sync.RWMutex
	prefixes   []Identifier
	names      []Identifier
	dirs       []string
	parentName string
	style      Style

	env    string
	config *Settings
}

func newSubject(r *Resolver, name string, ref Ref) *Subject {
	s := &Subject{
		resolver: r,
		name:     name,
		prefixes: []Identifier{IdentifierFrom(ref)},
		names:    []Identifier{FileStemFrom(ref)},
	}
	if p, ok := ref.(PathRef); ok {
		s.target = string(p)
	}
	return s
}

// Name returns the subject's qualified name.
func (s *Subject) Name() string { return s.name }

// Resolver returns the resolver this subject belongs to.
func (s *Subject) Resolver() *Resolver { return s.resolver }

// ParentName returns the declared supertype name, or "".
func (s *Subject) ParentName() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.parentName
}

// SetParent declares the subject's supertype for class-style inheritance.
// The parent participates in resolution only once it is itself registered.
func (s *Subject) SetParent(ref Ref) *Subject {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.parentName = subjectName(ref)
	return s
}

// Style returns the declared inheritance style, or "" when the resolver
// default applies.
func (s *Subject) Style() Style {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.style
}

// SetStyle declares the inheritance style used when resolution methods are
// called without an explicit style.
func (s *Subject) SetStyle(style Style) error {
	verified, err := s.resolver.VerifyStyle(style, nil)
	if err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.style = verified
	return nil
}

// Prefixes returns the subject's own environment prefixes, in search order.
func (s *Subject) Prefixes() []Identifier {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]Identifier(nil), s.prefixes...)
}

// AddPrefix appends an environment prefix, ignoring duplicates.
func (s *Subject) AddPrefix(prefix Identifier) *Subject {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.prefixes = appendUnique(s.prefixes, prefix)
	return s
}

// InsertPrefix puts an environment prefix at the front of the search order,
// removing any existing occurrence first.
func (s *Subject) InsertPrefix(prefix Identifier) *Subject {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.prefixes = append([]Identifier{prefix}, removeIdentifier(s.prefixes, prefix)...)
	return s
}

// RemovePrefix removes an environment prefix.
func (s *Subject) RemovePrefix(prefix Identifier) *Subject {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.prefixes = removeIdentifier(s.prefixes, prefix)
	return s
}

// ConfigNames returns the config file base names tried for this subject.
func (s *Subject) ConfigNames() []Identifier {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]Identifier(nil), s.names...)
}

// AddConfigName appends a config file base name, ignoring duplicates.
func (s *Subject) AddConfigName(name Identifier) *Subject {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.names = appendUnique(s.names, name)
	return s
}

// RemoveConfigName removes a config file base name.
func (s *Subject) RemoveConfigName(name Identifier) *Subject {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.names = removeIdentifier(s.names, name)
	return s
}

// Directories returns the subject's extra search directories, in the order
// added.
func (s *Subject) Directories() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]string(nil), s.dirs...)
}

// AddDirectory appends an extra config search directory.
func (s *Subject) AddDirectory(dir string) *Subject {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, existing := range s.dirs {
		if existing == dir {
			return s
		}
	}
	s.dirs = append(s.dirs, dir)
	return s
}

// EnvPrefixes returns the fully combined probe list: the subject's own
// prefixes, then each progenitor's prefixes in chain order, ending with the
// root sentinel's fallback pair. Earlier entries win; duplicates keep their
// first position.
func (s *Subject) EnvPrefixes() []Identifier {
	combined := s.Prefixes()
	progenitors, err := s.resolver.ProgenitorsOf(s, "")
	if err != nil {
		// The subject's declared style is verified at SetStyle time, so the
		// chain computation cannot reject it here.
		progenitors = nil
	}
	for _, p := range progenitors {
		combined = append(combined, p.Prefixes()...)
	}
	return dedupeKeepFirst(combined)
}

// Environment resolves and caches the active environment name. A changed
// environment variable does not affect an already-resolved subject until
// Reload is called.
func (s *Subject) Environment() string {
	s.mutex.RLock()
	cached := s.env
	s.mutex.RUnlock()
	if cached != "" {
		return cached
	}

	resolved := s.resolver.EnvironmentName(s.EnvPrefixes())

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.env == "" {
		s.env = resolved
	}
	return s.env
}

// SetEnvironment pins the environment name, bypassing variable probing
// until Reload.
func (s *Subject) SetEnvironment(env string) *Subject {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.env = env
	return s
}

// Config resolves and caches the subject's settings: first existing
// candidate file, parsed, with the active environment section merged over
// the shared section.
func (s *Subject) Config() (*Settings, error) {
	s.mutex.RLock()
	cached := s.config
	s.mutex.RUnlock()
	if cached != nil {
		return cached, nil
	}

	resolved, err := s.resolver.Resolve(s, ResolveRequest{})
	if err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.config == nil {
		s.config = resolved
	}
	return s.config, nil
}

// Reload drops the cached environment and config so the next access
// re-resolves from the current process state.
func (s *Subject) Reload() *Subject {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.env = ""
	s.config = nil
	return s
}

func appendUnique(list []Identifier, id Identifier) []Identifier {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}

func removeIdentifier(list []Identifier, id Identifier) []Identifier {
	result := list[:0:0]
	for _, existing := range list {
		if existing != id {
			result = append(result, existing)
		}
	}
	return result
}

func dedupeKeepFirst(list []Identifier) []Identifier {
	seen := make(map[Identifier]bool, len(list))
	result := make([]Identifier, 0, len(list))
	for _, id := range list {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}
