// Package functor provides the two functors that drive lens evaluation.
//
// A lens is written once against the Functor capability. Running it with
// Const extracts the focused value without rebuilding anything; running it
// with Identity threads a new value back up and rebuilds every container on
// the way.
package functor

// Functor is a container supporting a structure-preserving Map.
//
// The set of implementations is closed: only Const and Identity satisfy it.
type Functor interface {
	Map(f func(any) any) Functor
	sealed()
}

// Point wraps a raw value into a functor.
type Point func(v any) Functor

// Extract unwraps a functor produced by the matching Point.
type Extract func(f Functor) any

// Const holds a value that Map never touches.
type Const struct {
	value any
}

// OfConst wraps v in a Const.
func OfConst(v any) Functor {
	return Const{value: v}
}

// Get returns the wrapped value.
func (c Const) Get() any {
	return c.value
}

// Map returns a Const holding the same value. f is never called.
func (c Const) Map(func(any) any) Functor {
	return Const{value: c.value}
}

func (Const) sealed() {}

// GetConst unwraps a Const. It panics if f is not a Const, which can only
// happen when a Point and an Extract from different functors are mixed.
func GetConst(f Functor) any {
	return f.(Const).value
}

// Identity holds a value that Map transforms.
type Identity struct {
	value any
}

// OfIdentity wraps v in an Identity.
func OfIdentity(v any) Functor {
	return Identity{value: v}
}

// Run returns the wrapped value.
func (i Identity) Run() any {
	return i.value
}

// Map applies f to the wrapped value and wraps the result.
func (i Identity) Map(f func(any) any) Functor {
	return Identity{value: f(i.value)}
}

func (Identity) sealed() {}

// RunIdentity unwraps an Identity. Like GetConst it panics on a mismatched
// functor.
func RunIdentity(f Functor) any {
	return f.(Identity).value
}
