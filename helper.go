package appconfig

import (
	"fmt"
	"strings"
)

// deepCopyMap returns a recursive copy of a nested map so merges never
// mutate the parsed document.
func deepCopyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = deepCopyValue(value)
	}
	return dst
}

func deepCopyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return deepCopyMap(v)
	case []any:
		copied := make([]any, len(v))
		for i, item := range v {
			copied[i] = deepCopyValue(item)
		}
		return copied
	default:
		return value
	}
}

// reassertKeys forces every key present in overlay back onto merged,
// recursing through mappings present on both sides. Keys the overlay holds
// with zero or null values regain precedence over values filled in from the
// shared section.
func reassertKeys(merged, overlay map[string]any) {
	for key, value := range overlay {
		if sub, ok := value.(map[string]any); ok {
			if dst, ok := merged[key].(map[string]any); ok {
				reassertKeys(dst, sub)
				continue
			}
			merged[key] = deepCopyMap(sub)
			continue
		}
		merged[key] = deepCopyValue(value)
	}
}

// normalizeDocument coerces parser output into uniformly string-keyed
// nested maps. YAML documents can surface map[any]any for nested mappings;
// downstream merge and navigation assume map[string]any throughout.
func normalizeDocument(document map[string]any) map[string]any {
	normalized := make(map[string]any, len(document))
	for key, value := range document {
		normalized[key] = normalizeValue(value)
	}
	return normalized
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeDocument(v)
	case map[any]any:
		converted := make(map[string]any, len(v))
		for key, nested := range v {
			converted[fmt.Sprint(key)] = normalizeValue(nested)
		}
		return converted
	case []any:
		for i, item := range v {
			v[i] = normalizeValue(item)
		}
		return v
	default:
		return value
	}
}

// navigateToPath traverses a nested map along a dot-separated path. The
// second return reports whether the path exists, so a key explicitly set to
// null stays distinguishable from an absent one.
func navigateToPath(nested map[string]any, path string) (any, bool) {
	if path == "" {
		return nested, true
	}

	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return nested, true
	}

	segments := strings.Split(path, ".")
	current := any(nested)

	for _, segment := range segments {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		value, exists := currentMap[segment]
		if !exists {
			return nil, false
		}
		current = value
	}

	return current, true
}
