package core

// ContextVariables is the run-scoped key/value store threaded through a
// conversation. It is shared with every function that declares a context
// parameter and mutated only via explicit merges after tool executions.
type ContextVariables map[string]any

// Get returns the value stored under key and whether it was present.
func (cv ContextVariables) Get(key string) (any, bool) {
	v, ok := cv[key]
	return v, ok
}

// GetString returns the value under key as a string, or fallback when the key
// is absent or holds a non-string value.
func (cv ContextVariables) GetString(key, fallback string) string {
	if v, ok := cv[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// Merge applies delta on top of the store. Existing keys are overwritten by
// the delta, keys untouched by the delta keep their values.
func (cv ContextVariables) Merge(delta ContextVariables) {
	for k, v := range delta {
		cv[k] = v
	}
}

// Clone returns a deep copy of the store. Nested JSON-style containers
// (map[string]any, []any) are copied recursively; other values are copied by
// assignment.
func (cv ContextVariables) Clone() ContextVariables {
	clone := make(ContextVariables, len(cv))
	for k, v := range cv {
		clone[k] = deepCopyValue(v)
	}
	return clone
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopyValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopyValue(val)
		}
		return out
	default:
		return v
	}
}
