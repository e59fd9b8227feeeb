// Package lens implements van Laarhoven style lenses over dynamic Go values.
//
// A Lens is a single function that serves both as a getter and as an
// immutable setter. Which role it plays is decided by the functor it is run
// with: View runs it with functor.Const, Over and Set run it with
// functor.Identity. Lenses compose with Compose, outermost first:
//
//	friendCities := lens.Compose(lens.Prop("friends"), lens.Mapped, lens.Prop("city"))
//	cities, err := lens.View(friendCities, user)
//
// Lenses hold no state and may be shared freely between goroutines.
package lens

import (
	"slices"

	"github.com/KimNorgaard/go-lenspath/functor"
	"github.com/KimNorgaard/go-lenspath/internal/access"
)

// Modifier maps a focused value into a functor.
type Modifier func(any) functor.Functor

// Lens turns a modifier of the focus into a modifier of the whole target.
// point and extract are the wrap and unwrap operations of the functor in use.
type Lens func(point functor.Point, extract functor.Extract, f Modifier) Modifier

// Getter reads the focus out of a target.
type Getter func(target any) (any, error)

// Setter returns a copy of target holding value at the focus.
type Setter func(value, target any) (any, error)

// New builds a lens from a getter and a setter. The getter is always called;
// the setter only runs when the lens is driven by a rebuilding functor.
func New(get Getter, set Setter) Lens {
	return func(_ functor.Point, _ functor.Extract, f Modifier) Modifier {
		return func(target any) functor.Functor {
			return f(must(get(target))).Map(func(v any) any {
				return must(set(v, target))
			})
		}
	}
}

// Identity focuses on the whole target. It is the unit of Compose.
//
// It is equivalent to New with a getter returning the target and a setter
// returning the new value, without the extra Map.
func Identity(_ functor.Point, _ functor.Extract, f Modifier) Modifier {
	return f
}

// Prop focuses on a named property: a map key or a struct field.
func Prop(name string) Lens {
	return New(
		func(target any) (any, error) {
			return access.Prop(name, target)
		},
		func(value, target any) (any, error) {
			return access.SetProp(name, value, target)
		},
	)
}

// Props focuses through a chain of properties.
func Props(names ...string) Lens {
	ls := make([]Lens, len(names))
	for i, name := range names {
		ls[i] = Prop(name)
	}
	return Compose(ls...)
}

// Index focuses on element i of a slice or array. Writing to an index
// outside the current bounds fails with a RangeError.
func Index(i int) Lens {
	return New(
		func(target any) (any, error) {
			return access.Index(i, target)
		},
		func(value, target any) (any, error) {
			return access.SetIndex(i, value, target)
		},
	)
}

// Key focuses on the entry of a map at key k, for maps whose keys are not
// strings. k must be assignable to the key type of the map.
func Key(k any) Lens {
	return New(
		func(target any) (any, error) {
			return access.Key(k, target)
		},
		func(value, target any) (any, error) {
			return access.SetKey(k, value, target)
		},
	)
}

// Mapped focuses on every element of a slice or array at once. Viewed, it
// yields the collection of focused values. That collection has the type of
// the input when every focused value fits its element type, and is a []any
// otherwise; a pointer to a collection yields a pointer to it.
func Mapped(point functor.Point, extract functor.Extract, f Modifier) Modifier {
	return func(target any) functor.Functor {
		return point(must(access.MapElems(target, func(x any) any {
			return extract(f(x))
		})))
	}
}

// MappedValues focuses on every value of a map at once, keeping its keys.
func MappedValues(point functor.Point, extract functor.Extract, f Modifier) Modifier {
	return func(target any) functor.Functor {
		return point(must(access.MapValues(target, func(x any) any {
			return extract(f(x))
		})))
	}
}

// Compose chains lenses so that the first one focuses outermost.
// Compose() is Identity.
func Compose(lenses ...Lens) Lens {
	switch len(lenses) {
	case 0:
		return Identity
	case 1:
		return lenses[0]
	}
	ls := slices.Clone(lenses)
	return func(point functor.Point, extract functor.Extract, f Modifier) Modifier {
		for i := len(ls) - 1; i >= 0; i-- {
			f = ls[i](point, extract, f)
		}
		return f
	}
}

// View returns the value focused by l in s.
func View(l Lens, s any) (v any, err error) {
	defer catch(&err)
	return functor.GetConst(l(functor.OfConst, functor.GetConst, functor.OfConst)(s)), nil
}

// Over returns a copy of s with every focused value replaced by fn applied
// to it. s itself is left untouched.
func Over(l Lens, fn func(any) any, s any) (out any, err error) {
	defer catch(&err)
	modify := func(v any) functor.Functor {
		return functor.OfIdentity(fn(v))
	}
	return functor.RunIdentity(l(functor.OfIdentity, functor.RunIdentity, modify)(s)), nil
}

// Set returns a copy of s with every focused value replaced by v.
func Set(l Lens, v, s any) (any, error) {
	return Over(l, func(any) any { return v }, s)
}

// lensError carries an access error out of the functor pipeline.
type lensError struct {
	err error
}

func must(v any, err error) any {
	if err != nil {
		panic(lensError{err: err})
	}
	return v
}

// catch recovers a lensError into *errp. Any other panic is re-raised.
func catch(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	le, ok := r.(lensError)
	if !ok {
		panic(r)
	}
	*errp = le.err
}
