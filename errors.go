package lenspath

import lerrors "github.com/KimNorgaard/go-lenspath/errors"

type (
	// ParseError is a single syntax error in a path.
	ParseError = lerrors.ParseError
	// ParseErrors holds every syntax error found in a path.
	ParseErrors = lerrors.ParseErrors
	// TypeError reports a value that a path segment cannot focus into.
	TypeError = lerrors.TypeError
	// RangeError reports a write outside the bounds of a slice or array.
	RangeError = lerrors.RangeError
	// AbsentError reports a write below a missing parent.
	AbsentError = lerrors.AbsentError
)
