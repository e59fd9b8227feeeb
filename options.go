package lenspath

import "fmt"

const defaultMaxSegments = 1000

// Option configures Compile.
type Option func(*options) error

type options struct {
	maxSegments int
	noCache     bool
}

func (o *options) checkSegments(n int) error {
	if n > o.maxSegments {
		return ParseErrors{{
			Message: fmt.Sprintf("path has %d segments, limit is %d", n, o.maxSegments),
		}}
	}
	return nil
}

// MaxSegments returns an Option that limits the number of segments a path
// may have. It guards against pathological paths from untrusted input.
//
// The limit n must be a positive integer.
func MaxSegments(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("lenspath: max segments must be a positive integer")
		}
		o.maxSegments = n
		return nil
	}
}

// NoCache returns an Option that compiles the path afresh instead of
// consulting the compiled path cache.
func NoCache() Option {
	return func(o *options) error {
		o.noCache = true
		return nil
	}
}
