package appconfig

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// Settings is the resolved configuration handed back to application code: a
// read/write key-value view of the environment section merged over shared.
// Reads of unknown keys fail with a MissingKeyError rather than returning a
// zero value, so absent configuration surfaces instead of propagating
// silently.
//
// When a document maps an environment name to a bare scalar instead of a
// mapping, the scalar is carried verbatim; IsScalar and Value expose it.
type Settings struct {
	mutex  sync.RWMutex
	data   map[string]any
	scalar any
	bare   bool
}

func newSettings(data map[string]any) *Settings {
	if data == nil {
		data = make(map[string]any)
	}
	return &Settings{data: data}
}

func newScalarSettings(value any) *Settings {
	return &Settings{data: make(map[string]any), scalar: value, bare: true}
}

// IsScalar reports whether the resolved environment section was a bare
// scalar rather than a mapping.
func (s *Settings) IsScalar() bool { return s.bare }

// Value returns the verbatim scalar for bare sections, or nil.
func (s *Settings) Value() any { return s.scalar }

// Get returns the value for a key. Missing keys fail with a MissingKeyError
// satisfying errors.Is(err, ErrKeyNotFound).
func (s *Settings) Get(key string) (any, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, &MissingKeyError{Key: key}
	}
	return value, nil
}

// GetPath returns the value at a dot-separated path through nested
// mappings, failing with a MissingKeyError when any segment is absent.
func (s *Settings) GetPath(path string) (any, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, ok := navigateToPath(s.data, path)
	if !ok {
		return nil, &MissingKeyError{Key: path}
	}
	return value, nil
}

// Set writes a key.
func (s *Settings) Set(key string, value any) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data[key] = value
}

// Has reports whether a key is present.
func (s *Settings) Has(key string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	_, ok := s.data[key]
	return ok
}

// Keys returns all top-level keys, sorted.
func (s *Settings) Keys() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of top-level keys.
func (s *Settings) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// ToMap returns a deep copy of the settings as a nested map.
func (s *Settings) ToMap() map[string]any {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return deepCopyMap(s.data)
}

// String retrieves a key as a string, converting common types.
func (s *Settings) String(key string) (string, error) {
	value, err := s.Get(key)
	if err != nil {
		return "", err
	}
	result, err := cast.ToStringE(value)
	if err != nil {
		return "", fmt.Errorf("settings key %q: %w", key, err)
	}
	return result, nil
}

// Int retrieves a key as an int.
func (s *Settings) Int(key string) (int, error) {
	value, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	result, err := cast.ToIntE(value)
	if err != nil {
		return 0, fmt.Errorf("settings key %q: %w", key, err)
	}
	return result, nil
}

// Int64 retrieves a key as an int64.
func (s *Settings) Int64(key string) (int64, error) {
	value, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	result, err := cast.ToInt64E(value)
	if err != nil {
		return 0, fmt.Errorf("settings key %q: %w", key, err)
	}
	return result, nil
}

// Bool retrieves a key as a bool.
func (s *Settings) Bool(key string) (bool, error) {
	value, err := s.Get(key)
	if err != nil {
		return false, err
	}
	result, err := cast.ToBoolE(value)
	if err != nil {
		return false, fmt.Errorf("settings key %q: %w", key, err)
	}
	return result, nil
}

// Float64 retrieves a key as a float64.
func (s *Settings) Float64(key string) (float64, error) {
	value, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	result, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, fmt.Errorf("settings key %q: %w", key, err)
	}
	return result, nil
}

// Duration retrieves a key as a time.Duration.
func (s *Settings) Duration(key string) (time.Duration, error) {
	value, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	result, err := cast.ToDurationE(value)
	if err != nil {
		return 0, fmt.Errorf("settings key %q: %w", key, err)
	}
	return result, nil
}

// StringSlice retrieves a key as a []string.
func (s *Settings) StringSlice(key string) ([]string, error) {
	value, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	result, err := cast.ToStringSliceE(value)
	if err != nil {
		return nil, fmt.Errorf("settings key %q: %w", key, err)
	}
	return result, nil
}

// Scan decodes the settings under a dot-separated base path into the target
// struct or map pointer. Fields map through the "yaml" struct tag, with
// lenient type conversion and duration/time/slice decode hooks.
func (s *Settings) Scan(basePath string, target any) error {
	s.mutex.RLock()
	section, found := navigateToPath(s.data, basePath)
	s.mutex.RUnlock()

	sectionMap, ok := section.(map[string]any)
	if !ok {
		if !found || section == nil {
			sectionMap = make(map[string]any)
		} else {
			return fmt.Errorf("settings path %q refers to non-map value (type %T)", basePath, section)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create settings decoder: %w", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("failed to scan settings path %q into %T: %w", basePath, target, err)
	}
	return nil
}
