package parser

import (
	"testing"

	"github.com/KimNorgaard/go-lenspath/internal/lexer"
	"github.com/KimNorgaard/go-lenspath/internal/token"
	"github.com/KimNorgaard/go-lenspath/lens"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, path string) (*Parser, lens.Lens) {
	t.Helper()
	p := New(lexer.New(path))
	return p, p.Parse()
}

func user() map[string]any {
	return map[string]any{
		"firstname": "Han",
		"location":  map[string]any{"city": "Paris"},
		"friends": []any{
			map[string]any{"firstname": "Luke", "location": map[string]any{"city": "New York"}},
			map[string]any{"firstname": "Darth Vador", "location": map[string]any{"city": "Dark star"}},
		},
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		path     string
		segments int
		expected any
	}{
		{"", 0, user()},
		{"firstname", 1, "Han"},
		{"location.city", 2, "Paris"},
		{"friends.0.location.city", 4, "New York"},
		{"friends[1].location.city", 4, "Dark star"},
		{`friends[1]["location"]['city']`, 4, "Dark star"},
		{"friends[..].location.city", 4, []any{"New York", "Dark star"}},
		{"friends[..].location{..}", 4, []any{
			map[string]any{"city": "New York"},
			map[string]any{"city": "Dark star"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, l := parse(t, tt.path)
			require.Empty(t, p.Errors())
			require.Equal(t, tt.segments, p.Segments())

			v, err := lens.View(l, user())
			require.NoError(t, err)
			require.Equal(t, tt.expected, v)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		path     string
		messages []string
	}{
		{"a..b", []string{"empty segment"}},
		{"a[x].b.", []string{"invalid bracket content", "empty segment"}},
		{".a{x}", []string{"path cannot start with '.'", `missing '.' before "a"`, "invalid brace content, expected {..}"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, _ := parse(t, tt.path)
			errs := p.Errors()

			var messages []string
			for _, e := range errs {
				messages = append(messages, e.Message)
			}
			require.Equal(t, tt.messages, messages)
			require.Contains(t, errs.Error(), tt.messages[0])
		})
	}
}

func TestUnsupportedTokenIsRejected(t *testing.T) {
	p := New(lexer.New("a.b"))
	delete(p.segmentLensFns, token.PROP)

	p.Parse()

	errs := p.Errors()
	require.Len(t, errs, 2)
	require.Equal(t, "token with type PROP is not supported", errs[0].Message)
	require.Equal(t, 0, errs[0].Offset)
	require.Equal(t, 2, errs[1].Offset)
	require.Zero(t, p.Segments())
}
