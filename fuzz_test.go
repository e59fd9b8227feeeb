//go:build go1.18

package lenspath_test

import (
	"testing"

	"github.com/KimNorgaard/go-lenspath"
	"github.com/stretchr/testify/require"
)

func FuzzPath(f *testing.F) {
	// Seed the corpus with valid and malformed paths.
	for _, seed := range []string{
		"",
		"location.city",
		"friends.0.location.city",
		"friends[0].location.city",
		"friends[..].location.city",
		"usersById{..}.firstname",
		`friends[1]["location"]['city']`,
		"a..b",
		"a[",
		"]{",
		`["\`,
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, path string) {
		// 1. Compiling must never panic, whatever the input.
		p, err := lenspath.Compile(path, lenspath.NoCache())
		if err != nil {
			var parseErrs lenspath.ParseErrors
			require.ErrorAs(t, err, &parseErrs)
			require.NotEmpty(t, parseErrs)
			return
		}

		// 2. A compiled path may fail on a document of the wrong shape,
		// but it must report that as an error rather than panic, and it
		// must leave the document untouched.
		doc := newUser()
		_, _ = p.View(doc)
		_, _ = p.Set("x", doc)
		_, _ = p.Over(func(v any) any { return v }, doc)
		require.Equal(t, newUser(), doc)

		// 3. The canonical spelling compiles and formats to itself.
		canonical, err := lenspath.Format(path)
		require.NoError(t, err)
		again, err := lenspath.Format(canonical)
		require.NoError(t, err)
		require.Equal(t, canonical, again)
	})
}
