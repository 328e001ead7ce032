package appconfig

import "strings"

// Configurable lets a value carry its own resolution subject.
// Resolver.Subject consults it before falling back to type-based
// derivation, so application objects can participate in resolution
// directly.
type Configurable interface {
	ConfigSubject(r *Resolver) *Subject
}

// ParentFunc maps a qualified name to its parent name, returning "" when the
// chain is exhausted. NearestAncestor climbs with whichever ParentFunc the
// caller supplies.
type ParentFunc func(name string) string

// NamespaceParentName trims the last namespace segment from a qualified
// name: "A::B::C" yields "A::B", "a/b" yields "a". Names without a
// separator have no namespace parent and yield "".
func NamespaceParentName(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		return name[:i]
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[:i]
	}
	return ""
}

// Subject returns the participating subject for ref, creating and
// registering it on first access. Subjects are keyed by qualified name, so
// repeated lookups through equivalent refs share state.
func (r *Resolver) Subject(ref Ref) *Subject {
	if v, ok := ref.(ValueRef); ok {
		if c, ok := v.Value.(Configurable); ok {
			return c.ConfigSubject(r)
		}
	}

	name := subjectName(ref)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if s, ok := r.subjects[name]; ok {
		return s
	}
	s := newSubject(r, name, ref)
	r.subjects[name] = s
	return s
}

// Lookup returns the registered subject for a qualified name, if one
// participates in resolution. Unlike Subject it never creates.
func (r *Resolver) Lookup(name string) (*Subject, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	s, ok := r.subjects[name]
	return s, ok
}

// NamespaceParentOf resolves the lexical container one level up from s,
// returning nil when no subject participates under that name.
func (r *Resolver) NamespaceParentOf(s *Subject) *Subject {
	parent := NamespaceParentName(s.Name())
	if parent == "" {
		return nil
	}
	if p, ok := r.Lookup(parent); ok {
		return p
	}
	return nil
}

// TypeParentOf resolves the declared supertype of s, returning nil when none
// is declared or the declared name has no participating subject.
func (r *Resolver) TypeParentOf(s *Subject) *Subject {
	parent := s.ParentName()
	if parent == "" {
		return nil
	}
	if p, ok := r.Lookup(parent); ok {
		return p
	}
	return nil
}

// NearestAncestor climbs from a qualified name using parent until it reaches
// a participating subject or exhausts the chain.
func (r *Resolver) NearestAncestor(name string, parent ParentFunc) *Subject {
	for {
		name = parent(name)
		if name == "" {
			return nil
		}
		if s, ok := r.Lookup(name); ok {
			return s
		}
	}
}

// nearestNamespaceAncestor climbs lexical containers, skipping names nothing
// participates under.
func (r *Resolver) nearestNamespaceAncestor(name string) *Subject {
	return r.NearestAncestor(name, NamespaceParentName)
}

// nearestTypeAncestor climbs declared supertypes. Parent links are declared
// per subject, so the climb follows registered subjects only.
func (r *Resolver) nearestTypeAncestor(s *Subject) *Subject {
	name := s.ParentName()
	if name == "" {
		return nil
	}
	// A declared but unregistered parent carries no further links.
	if p, ok := r.Lookup(name); ok {
		return p
	}
	return nil
}

// subjectName derives the registry key for a ref. Paths key by their stem;
// everything else keys by its qualified display name.
func subjectName(ref Ref) string {
	if p, ok := ref.(PathRef); ok {
		return pathStem(string(p))
	}
	return ref.String()
}
