package prefs

import (
	"reflect"
)

// Merge operators recognized inside compound values, carried over from
// the declarative format: a "!" key replaces a stored dictionary instead
// of merging into it, and a "..." array element splices in the items
// currently stored.
const (
	opClear    = "!"
	opPreserve = "..."
)

// Merge resolves the value that should end up in the store given the
// currently stored value. Dictionaries merge recursively unless the
// clear operator is present; arrays are replaced, with the preserve
// operator splicing in current items; scalars pass through unchanged.
func Merge(current, desired any) any {
	switch d := desired.(type) {
	case map[string]any:
		return mergeDict(current, d)
	case []any:
		return mergeArray(current, d)
	default:
		return desired
	}
}

func mergeDict(current any, desired map[string]any) map[string]any {
	if _, replace := desired[opClear]; replace {
		out := make(map[string]any, len(desired)-1)
		for k, v := range desired {
			if k == opClear {
				continue
			}
			out[k] = Merge(nil, v)
		}
		return out
	}

	cur, ok := current.(map[string]any)
	if !ok {
		out := make(map[string]any, len(desired))
		for k, v := range desired {
			out[k] = Merge(nil, v)
		}
		return out
	}

	out := make(map[string]any, len(cur)+len(desired))
	for k, v := range cur {
		out[k] = v
	}
	for k, v := range desired {
		out[k] = Merge(cur[k], v)
	}
	return out
}

func mergeArray(current any, desired []any) []any {
	cur, _ := current.([]any)

	out := make([]any, 0, len(desired)+len(cur))
	for _, item := range desired {
		if s, ok := item.(string); ok && s == opPreserve {
			for _, old := range cur {
				if !containsValue(out, old) {
					out = append(out, old)
				}
			}
			continue
		}
		resolved := Merge(nil, item)
		if !containsValue(out, resolved) {
			out = append(out, resolved)
		}
	}
	return out
}

func containsValue(items []any, value any) bool {
	for _, item := range items {
		if Equal(item, value) {
			return true
		}
	}
	return false
}

// Equal compares a stored value against a desired value with type-aware
// semantics: numeric values compare by value irrespective of
// representation width, dictionaries compare key-by-key, arrays compare
// element-by-element.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if na, ok := toNumber(a); ok {
		nb, ok := toNumber(b)
		return ok && na == nb
	}

	switch av := a.(type) {
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, present := bv[k]
			if !present || !Equal(v, other) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i, v := range av {
			if !Equal(v, bv[i]) {
				return false
			}
		}
		return true
	default:
		// Binary data and anything else the plist layer hands back
		return reflect.DeepEqual(a, b)
	}
}

// toNumber widens any numeric representation to float64
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
