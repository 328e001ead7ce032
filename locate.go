package appconfig

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// SearchDirectories assembles the ordered directory list searched for a
// subject's config files:
//
//  1. host-framework config roots that exist on disk
//  2. directories contributed by the subject's progenitors
//  3. the subject's own extra directories, in the order added
//  4. the working directory's "config" subdirectory
//
// Duplicates collapse to their first occurrence after absolute-path
// normalization.
func (r *Resolver) SearchDirectories(s *Subject) []string {
	var dirs []string

	for _, root := range r.opts.FrameworkRoots {
		if ok, _ := afero.DirExists(r.opts.Fs, root); ok {
			dirs = append(dirs, root)
		}
	}

	progenitors, err := r.ProgenitorsOf(s, "")
	if err == nil {
		for _, p := range progenitors {
			dirs = append(dirs, p.Directories()...)
		}
	}

	dirs = append(dirs, s.Directories()...)

	if cwd := r.workingDir(); cwd != "" {
		dirs = append(dirs, filepath.Join(cwd, "config"))
	}

	return dedupeDirs(dirs)
}

// CandidateFiles enumerates every config file path that will be tried for a
// subject, in search order. Base names come from explicit refs when given,
// else from the subject's own config-name list. Path refs are file targets
// and appear unmodified; every other ref contributes a stem combined with
// each search directory and extension, directory-major, name-minor.
func (r *Resolver) CandidateFiles(s *Subject, explicit ...Ref) []string {
	var targets []string
	var stems []Identifier

	if len(explicit) > 0 {
		for _, ref := range explicit {
			if p, ok := ref.(PathRef); ok {
				targets = append(targets, string(p))
				continue
			}
			stems = append(stems, FileStemFrom(ref))
		}
	} else {
		if s.target != "" {
			targets = append(targets, s.target)
		} else {
			stems = s.ConfigNames()
		}
	}

	candidates := targets
	for _, dir := range r.SearchDirectories(s) {
		for _, stem := range stems {
			for _, ext := range r.opts.Extensions {
				candidates = append(candidates, filepath.Join(dir, string(stem)+ext))
			}
		}
	}
	return candidates
}

// Locate returns the first candidate file that exists for the subject. When
// the primary name yields nothing and a fallback ref is given, the fallback's
// candidates are tried next. The second return lists every path probed, in
// order, across both attempts.
func (r *Resolver) Locate(s *Subject, name, fallback Ref) (string, []string) {
	candidates := r.candidatesFor(s, name)
	if fallback != nil {
		candidates = append(candidates, r.candidatesFor(s, fallback)...)
	}

	for i, candidate := range candidates {
		if ok, _ := afero.Exists(r.opts.Fs, candidate); ok {
			return candidate, candidates[:i+1]
		}
	}
	return "", candidates
}

// Exists reports whether any config file exists for the subject, honoring
// the same name/fallback semantics as Locate.
func (r *Resolver) Exists(s *Subject, name, fallback Ref) bool {
	found, _ := r.Locate(s, name, fallback)
	return found != ""
}

func (r *Resolver) candidatesFor(s *Subject, name Ref) []string {
	if name == nil {
		return r.CandidateFiles(s)
	}
	return r.CandidateFiles(s, name)
}

func (r *Resolver) workingDir() string {
	if r.opts.WorkingDir != "" {
		return r.opts.WorkingDir
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return cwd
}

func dedupeDirs(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	result := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		normalized := dir
		if abs, err := filepath.Abs(dir); err == nil {
			normalized = abs
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		result = append(result, dir)
	}
	return result
}
