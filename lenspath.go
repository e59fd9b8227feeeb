package lenspath

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/KimNorgaard/go-lenspath/internal/lexer"
	"github.com/KimNorgaard/go-lenspath/internal/parser"
	"github.com/KimNorgaard/go-lenspath/lens"
)

// Path is a compiled path.
type Path struct {
	path     string
	lens     lens.Lens
	segments int
}

// pathCache caches successfully compiled paths by their source string.
// Once it holds maxCachedPaths entries, new paths are compiled but not
// stored.
var (
	pathCache      sync.Map
	cachedPaths    atomic.Int64
	maxCachedPaths int64 = 4096
)

// Compile parses path into a reusable Path.
//
// If the path is malformed, Compile returns a ParseErrors value listing
// every problem found.
func Compile(path string, opts ...Option) (*Path, error) {
	o := options{
		maxSegments: defaultMaxSegments,
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	if !o.noCache {
		if cached, ok := pathCache.Load(path); ok {
			p := cached.(*Path)
			if err := o.checkSegments(p.segments); err != nil {
				return nil, err
			}
			return p, nil
		}
	}

	ps := parser.New(lexer.New(path))
	l := ps.Parse()
	if errs := ps.Errors(); len(errs) > 0 {
		return nil, errs
	}
	if err := o.checkSegments(ps.Segments()); err != nil {
		return nil, err
	}
	p := &Path{path: path, lens: l, segments: ps.Segments()}
	if !o.noCache {
		cachePath(p)
	}
	return p, nil
}

func cachePath(p *Path) {
	if cachedPaths.Load() >= maxCachedPaths {
		return
	}
	if _, loaded := pathCache.LoadOrStore(p.path, p); !loaded {
		cachedPaths.Add(1)
	}
}

// MustCompile is like Compile but panics if the path cannot be compiled.
// It simplifies safe initialization of global variables holding paths.
func MustCompile(path string, opts ...Option) *Path {
	p, err := Compile(path, opts...)
	if err != nil {
		panic(fmt.Sprintf("lenspath: Compile(%q): %v", path, err))
	}
	return p
}

// String returns the source text of the path.
func (p *Path) String() string {
	return p.path
}

// Lens returns the composed lens of the path.
func (p *Path) Lens() lens.Lens {
	return p.lens
}

// Segments returns the number of segments in the path.
func (p *Path) Segments() int {
	return p.segments
}

// View returns the value the path focuses on in s.
func (p *Path) View(s any) (any, error) {
	return lens.View(p.lens, s)
}

// Over returns a copy of s with every focused value replaced by fn of it.
func (p *Path) Over(fn func(any) any, s any) (any, error) {
	return lens.Over(p.lens, fn, s)
}

// Set returns a copy of s with every focused value replaced by v.
func (p *Path) Set(v, s any) (any, error) {
	return lens.Set(p.lens, v, s)
}

// View compiles path and returns the value it focuses on in s.
func View(path string, s any) (any, error) {
	p, err := Compile(path)
	if err != nil {
		return nil, err
	}
	return p.View(s)
}

// Over compiles path and returns a copy of s with every focused value
// replaced by fn of it.
func Over(path string, fn func(any) any, s any) (any, error) {
	p, err := Compile(path)
	if err != nil {
		return nil, err
	}
	return p.Over(fn, s)
}

// Set compiles path and returns a copy of s with every focused value
// replaced by v.
func Set(path string, v, s any) (any, error) {
	p, err := Compile(path)
	if err != nil {
		return nil, err
	}
	return p.Set(v, s)
}

// Viewer compiles path once and returns a function viewing it. If the path
// does not compile, every call returns the compile error.
func Viewer(path string) func(s any) (any, error) {
	p, err := Compile(path)
	return func(s any) (any, error) {
		if err != nil {
			return nil, err
		}
		return p.View(s)
	}
}

// Overer compiles path once and returns a function applying fn over it.
func Overer(path string, fn func(any) any) func(s any) (any, error) {
	p, err := Compile(path)
	return func(s any) (any, error) {
		if err != nil {
			return nil, err
		}
		return p.Over(fn, s)
	}
}

// Setter compiles path once and returns a function setting it to v.
func Setter(path string, v any) func(s any) (any, error) {
	p, err := Compile(path)
	return func(s any) (any, error) {
		if err != nil {
			return nil, err
		}
		return p.Set(v, s)
	}
}
