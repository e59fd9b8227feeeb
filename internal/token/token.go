package token

import "strconv"

// Type is the type of a token.
type Type string

// Token represents one segment of a path.
type Token struct {
	Type    Type
	Literal string
	Index   int // set for INDEX tokens
	Offset  int // byte offset of the segment in the path
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // A malformed segment; Literal holds the reason
	EOF     Type = "EOF"     // End of path

	// Segments
	PROP          Type = "PROP"  // name, ["name"], ['name']
	INDEX         Type = "INDEX" // 0, [0]
	MAPPED        Type = "[..]"
	MAPPED_VALUES Type = "{..}" //nolint:revive
)

// LookupSegment classifies a bare segment. Segments made only of digits are
// indices, unless they carry a leading zero, in which case they stay names
// so that keys such as "007" remain reachable. Everything else is a name.
func LookupSegment(seg string) Type {
	if seg == "" {
		return ILLEGAL
	}
	if len(seg) > 1 && seg[0] == '0' {
		return PROP
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return PROP
		}
	}
	if _, err := strconv.Atoi(seg); err != nil {
		return ILLEGAL
	}
	return INDEX
}
