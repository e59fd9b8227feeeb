package lenspath_test

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// deepCopy clones the map[string]any / []any trees used by the tests.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = deepCopy(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = deepCopy(x)
		}
		return out
	}
	return v
}

// requireShared asserts that two maps or slices are the same container.
func requireShared(t *testing.T, expected, actual any) {
	t.Helper()
	ev, av := reflect.ValueOf(expected), reflect.ValueOf(actual)
	require.Equal(t, ev.Kind(), av.Kind())
	require.True(t, ev.UnsafePointer() == av.UnsafePointer(),
		"expected shared container\nexpected: %s\nactual: %s", spew.Sdump(expected), spew.Sdump(actual))
}

// requireCopied asserts that two maps or slices are distinct containers.
func requireCopied(t *testing.T, original, updated any) {
	t.Helper()
	require.False(t, reflect.ValueOf(original).UnsafePointer() == reflect.ValueOf(updated).UnsafePointer(),
		"expected a copied container, got the original\n%s", spew.Sdump(original))
}

func equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
