/*
Package lenspath provides immutable reads and updates of nested Go data
addressed by a compact path string. It works on the dynamic values produced
by encoding/json and gopkg.in/yaml.v3 (map[string]any and []any) as well as
on typed maps, slices, arrays, structs and pointers.

Three operations cover every use:

	city, err := lenspath.View("friends[0].location.city", user)

	moved, err := lenspath.Set("friends[..].location.city", "Tokyo", user)

	shouted, err := lenspath.Over("usersById{..}.firstname", func(v any) any {
		return strings.ToUpper(v.(string))
	}, state)

The input is never modified. Set and Over return a new value that copies
only the containers along the path and shares everything else with the
input, so the original stays safe to read from other goroutines.

Path syntax

A path is a sequence of segments. The first segment needs no leading dot.

	name         a property (map key or struct field)
	.name        a property after another segment
	0, .0        an index into a slice or array
	[0]          an index
	["a b"]      a property with any characters; ['a b'] works too
	[..]         every element of a slice or array
	{..}         every value of a map

Viewing through [..] returns a slice of the focused values, and viewing
through {..} returns a map with the same keys. The result keeps the type of
the traversed collection when every focused value fits its element type,
so viewing "xs[..].c" on a []map[string]any whose c values are maps yields a
[]map[string]any. Otherwise it is a []any, or a map[K]any for {..}. A
pointer to a collection yields a pointer to the result.

An index segment on a map reads the key i for integer keyed maps and the
key "i" for string keyed maps. For other key types, use lens.Key.

Format rewrites a path in its canonical spelling, so "friends.0['city']"
becomes "friends[0].city".

Struct fields are addressed by their `lens` tag, then their `json` tag,
then their Go name.

Errors

A malformed path fails to compile with ParseErrors. A lens that meets a
value of the wrong shape fails with a *TypeError, a write to an index
outside the bounds of a slice fails with a *RangeError, and a write below a
missing parent fails with an *AbsentError. Reads of missing keys or
indices return nil without error.

Compiled paths

Compile turns a path into a reusable *Path. Compiled paths, and the lenses
behind them, are immutable and safe for concurrent use. The package level
functions cache compiled paths by their string, up to a fixed number of
distinct paths. Paths built from untrusted input should be compiled with
NoCache and a MaxSegments limit.

For direct work with lenses, see the lens package.
*/
package lenspath
