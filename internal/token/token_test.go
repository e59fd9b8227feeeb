package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupSegment(t *testing.T) {
	tests := []struct {
		input    string
		expected Type
	}{
		{"friends", PROP},
		{"my_var", PROP},
		{"first-name", PROP},
		{"r2d2", PROP},
		{"1st", PROP},
		{"0", INDEX},
		{"42", INDEX},
		{"007", PROP},
		{"99999999999999999999999", ILLEGAL},
		{"", ILLEGAL},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			actual := LookupSegment(tt.input)
			require.Equal(t, tt.expected, actual)
		})
	}
}
