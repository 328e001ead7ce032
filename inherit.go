package appconfig

import "strings"

// Style selects how a subject's inheritance chain is computed: by lexical
// namespace, by declared supertype, neither, or both in either order.
type Style string

const (
	// StyleNone disables inheritance entirely.
	StyleNone Style = "none"
	// StyleNamespace climbs lexical containers only.
	StyleNamespace Style = "namespace"
	// StyleClass climbs declared supertypes only.
	StyleClass Style = "class"
	// StyleNamespaceClass concatenates the namespace walk, then the class walk.
	StyleNamespaceClass Style = "namespace_class"
	// StyleClassNamespace concatenates the class walk, then the namespace walk.
	StyleClassNamespace Style = "class_namespace"
)

// ValidStyles enumerates every recognized inheritance style.
func ValidStyles() []Style {
	return []Style{StyleNone, StyleNamespace, StyleClass, StyleNamespaceClass, StyleClassNamespace}
}

// VerifyStyle canonicalizes and validates an inheritance style. An empty
// style falls back to the subject's declared style when one exists, then to
// the resolver default. Anything outside the enumerated set fails with an
// InvalidStyleError carrying the offending value and the valid set.
func (r *Resolver) VerifyStyle(style Style, subject *Subject) (Style, error) {
	if style == "" {
		if subject != nil {
			if declared := subject.Style(); declared != "" {
				style = declared
			}
		}
		if style == "" {
			style = r.opts.DefaultStyle
		}
	}

	canonical := Style(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(string(style))), "-", "_"))
	for _, valid := range ValidStyles() {
		if canonical == valid {
			return canonical, nil
		}
	}
	return "", &InvalidStyleError{Value: string(style), Valid: ValidStyles()}
}

// ProgenitorOf resolves the next subject up the inheritance chain, walking
// in the direction of the style's leading component and climbing past
// non-participating ancestors. Returns nil when the chain is exhausted.
func (r *Resolver) ProgenitorOf(subject *Subject, style Style) (*Subject, error) {
	style, err := r.VerifyStyle(style, subject)
	if err != nil {
		return nil, err
	}
	if style == StyleNone {
		return nil, nil
	}

	lead := style
	if parts := strings.SplitN(string(style), "_", 2); len(parts) == 2 {
		lead = Style(parts[0])
	}

	chain := r.walk(subject, lead)
	if len(chain) == 0 {
		return nil, nil
	}
	return chain[0], nil
}

// ProgenitorsOf computes the ordered ancestor chain whose prefixes and
// config behavior the subject inherits. Compound styles run both sub-walks,
// concatenate them in style order, and deduplicate keeping the last
// occurrence so the entry closest to the root wins. Every style except
// StyleNone terminates with the global root sentinel.
func (r *Resolver) ProgenitorsOf(subject *Subject, style Style) ([]*Subject, error) {
	style, err := r.VerifyStyle(style, subject)
	if err != nil {
		return nil, err
	}

	var chain []*Subject
	switch style {
	case StyleNone:
		return nil, nil
	case StyleNamespace, StyleClass:
		chain = r.walk(subject, style)
	case StyleNamespaceClass, StyleClassNamespace:
		parts := strings.SplitN(string(style), "_", 2)
		chain = append(r.walk(subject, Style(parts[0])), r.walk(subject, Style(parts[1]))...)
		chain = dedupeKeepLast(chain)
	}

	if len(chain) == 0 || chain[len(chain)-1] != r.root {
		chain = append(chain, r.root)
	}
	return chain, nil
}

// walk climbs a single direction (namespace or class) from subject,
// collecting every participating ancestor below the root sentinel.
func (r *Resolver) walk(subject *Subject, style Style) []*Subject {
	var chain []*Subject
	seen := map[*Subject]bool{subject: true}

	current := subject
	for {
		var next *Subject
		switch style {
		case StyleNamespace:
			next = r.nearestNamespaceAncestor(current.Name())
		case StyleClass:
			next = r.nearestTypeAncestor(current)
		}
		if next == nil || next == r.root || seen[next] {
			return chain
		}
		seen[next] = true
		chain = append(chain, next)
		current = next
	}
}

// dedupeKeepLast removes duplicate subjects, keeping the final occurrence of
// each so closest-to-root placement survives.
func dedupeKeepLast(chain []*Subject) []*Subject {
	counts := make(map[*Subject]int, len(chain))
	for _, s := range chain {
		counts[s]++
	}
	result := make([]*Subject, 0, len(chain))
	for _, s := range chain {
		counts[s]--
		if counts[s] == 0 {
			result = append(result, s)
		}
	}
	return result
}
