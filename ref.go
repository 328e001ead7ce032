package appconfig

import (
	"fmt"
	"path"
	"reflect"
)

// Ref identifies a subject. It is a closed union: the only implementations
// are TypeRef, NameRef, TokenRef, PathRef, and ValueRef. Every resolution
// entry point accepts a Ref; RefOf converts arbitrary Go values into the
// appropriate variant.
type Ref interface {
	fmt.Stringer

	// ref seals the interface to the variants defined in this package.
	ref()
}

// TypeRef identifies a subject by a Go type.
type TypeRef struct {
	Type reflect.Type
}

// NameRef identifies a subject by a fully-qualified name. Both "::" and "/"
// act as namespace separators.
type NameRef string

// TokenRef identifies a subject by a pre-interned short identifier. Tokens
// pass through name derivation unchanged.
type TokenRef string

// PathRef identifies a subject by a filesystem path. Used as a file target
// the path is returned unmodified; used as a name source only its stem
// contributes.
type PathRef string

// ValueRef identifies a subject by an arbitrary instance. The identifier
// derives from the nearest named type of the value.
type ValueRef struct {
	Value any
}

func (r TypeRef) ref()  {}
func (r NameRef) ref()  {}
func (r TokenRef) ref() {}
func (r PathRef) ref()  {}
func (r ValueRef) ref() {}

func (r TypeRef) String() string  { return qualifiedTypeName(r.Type) }
func (r NameRef) String() string  { return string(r) }
func (r TokenRef) String() string { return string(r) }
func (r PathRef) String() string  { return string(r) }
func (r ValueRef) String() string { return qualifiedTypeName(reflect.TypeOf(r.Value)) }

// OfType builds a TypeRef from a value's dynamic type. Pass a zero value or
// a (*T)(nil) pointer to reference a type without an instance.
func OfType(v any) TypeRef {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return TypeRef{Type: t}
}

// Named builds a NameRef from a qualified name string.
func Named(name string) NameRef { return NameRef(name) }

// Token builds a TokenRef from a pre-interned identifier.
func Token(tok string) TokenRef { return TokenRef(tok) }

// FilePath builds a PathRef from a filesystem path.
func FilePath(path string) PathRef { return PathRef(path) }

// RefOf converts an arbitrary value into the matching Ref variant. Refs pass
// through unchanged; reflect.Type becomes TypeRef; strings become NameRefs;
// anything else is wrapped as a ValueRef.
func RefOf(v any) Ref {
	switch x := v.(type) {
	case Ref:
		return x
	case reflect.Type:
		return TypeRef{Type: x}
	case string:
		return NameRef(x)
	default:
		return ValueRef{Value: v}
	}
}

// qualifiedTypeName returns the package-qualified name of t, walking to the
// nearest named type. Unnamed types degrade to the generic root name rather
// than failing.
func qualifiedTypeName(t reflect.Type) string {
	for t != nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
			if t.Name() != "" {
				return typeDisplayName(t)
			}
			t = t.Elem()
			continue
		}
		if t.Name() != "" {
			return typeDisplayName(t)
		}
		// Unnamed struct, map, func, or interface: no further ancestry
		// to walk in Go's type system.
		return rootTypeName
	}
	return rootTypeName
}

func typeDisplayName(t reflect.Type) string {
	if pkg := t.PkgPath(); pkg != "" {
		return path.Base(pkg) + "/" + t.Name()
	}
	return t.Name()
}

// rootTypeName stands in for anonymous types with no derivable name,
// mirroring how a dynamic object model bottoms out at its root type.
const rootTypeName = "object"
