//go:build unit || e2e

package testutil

// Field overwrites one key of a request body map. Nested keys are not supported.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		m[key] = value
	}
}

// Omit drops keys so the request body arrives without them.
func Omit(keys ...string) func(m map[string]any) {
	return func(m map[string]any) {
		for _, k := range keys {
			delete(m, k)
		}
	}
}
