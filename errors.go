package appconfig

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is matching. The typed errors below carry the
// detail; these exist so callers can branch without unpacking.
var (
	// ErrConfigNotFound indicates no candidate configuration file exists
	// anywhere in the search space.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrLoadFailed indicates a configuration file was located but could
	// not be parsed.
	ErrLoadFailed = errors.New("configuration load failed")

	// ErrInvalidStyle indicates an unrecognized inheritance style token.
	ErrInvalidStyle = errors.New("invalid inheritance style")

	// ErrKeyNotFound indicates a settings key lookup failed.
	ErrKeyNotFound = errors.New("key not found")
)

// NotFoundError reports that no configuration file exists for a subject.
// Searched lists every path that was tried, across all directories, names,
// and any fallback name.
type NotFoundError struct {
	Searched []string
}

func (e *NotFoundError) Error() string {
	if len(e.Searched) == 0 {
		return "no configuration file found"
	}
	return fmt.Sprintf("no configuration file found, searched: %s", strings.Join(e.Searched, ", "))
}

func (e *NotFoundError) Is(target error) bool { return target == ErrConfigNotFound }

// LoadError reports that a located configuration file could not be parsed.
// Path identifies the exact file; the underlying parser failure is wrapped.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load configuration file %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoadFailed }

// InvalidStyleError reports an inheritance style outside the enumerated set.
type InvalidStyleError struct {
	Value string
	Valid []Style
}

func (e *InvalidStyleError) Error() string {
	valid := make([]string, len(e.Valid))
	for i, s := range e.Valid {
		valid[i] = string(s)
	}
	return fmt.Sprintf("invalid inheritance style %q, valid styles: %s", e.Value, strings.Join(valid, ", "))
}

func (e *InvalidStyleError) Is(target error) bool { return target == ErrInvalidStyle }

// MissingKeyError reports a read of a settings key that is not present.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("settings key %q not found", e.Key)
}

func (e *MissingKeyError) Is(target error) bool { return target == ErrKeyNotFound }
