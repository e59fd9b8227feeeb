package lens_test

import (
	"reflect"
	"testing"

	"github.com/KimNorgaard/go-lenspath/lens"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func lawParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	return parameters
}

// nested builds {"outer": {"items": [..], "label": label}}.
func nested(items []int, label string) map[string]any {
	xs := make([]any, len(items))
	for i, v := range items {
		xs[i] = map[string]any{"n": v}
	}
	return map[string]any{
		"outer": map[string]any{
			"items": xs,
			"label": label,
		},
	}
}

func mustView(l lens.Lens, s any) any {
	v, err := lens.View(l, s)
	if err != nil {
		panic(err)
	}
	return v
}

func mustSet(l lens.Lens, v, s any) any {
	out, err := lens.Set(l, v, s)
	if err != nil {
		panic(err)
	}
	return out
}

func TestLensGetSetLaw(t *testing.T) {
	properties := gopter.NewProperties(lawParameters())

	properties.Property("View(l, Set(l, v, s)) == v for prop lenses", prop.ForAll(
		func(items []int, label, newLabel string) bool {
			l := lens.Props("outer", "label")
			s := nested(items, label)
			return mustView(l, mustSet(l, newLabel, s)) == newLabel
		},
		gen.SliceOf(gen.Int()),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("View(l, Set(l, v, s)) == v for index lenses", prop.ForAll(
		func(items []int, idx, v int) bool {
			if len(items) == 0 {
				return true
			}
			l := lens.Compose(lens.Props("outer", "items"), lens.Index(idx%len(items)), lens.Prop("n"))
			s := nested(items, "x")
			return mustView(l, mustSet(l, v, s)) == v
		},
		gen.SliceOf(gen.Int()),
		gen.IntRange(0, 1000),
		gen.Int(),
	))

	properties.Property("View(l, Set(l, v, s)) is v at every position for mapped lenses", prop.ForAll(
		func(items []int, v int) bool {
			l := lens.Compose(lens.Props("outer", "items"), lens.Mapped, lens.Prop("n"))
			viewed := mustView(l, mustSet(l, v, nested(items, "x"))).([]any)
			if len(viewed) != len(items) {
				return false
			}
			for _, got := range viewed {
				if got != v {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int()),
		gen.Int(),
	))

	properties.TestingRun(t)
}

func TestLensSetGetLaw(t *testing.T) {
	properties := gopter.NewProperties(lawParameters())

	lenses := map[string]lens.Lens{
		"prop":     lens.Props("outer", "label"),
		"index":    lens.Compose(lens.Props("outer", "items"), lens.Index(0)),
		"identity": lens.Identity,
	}

	for name, l := range lenses {
		properties.Property("Set(l, View(l, s), s) == s for "+name, prop.ForAll(
			func(items []int, label string) bool {
				if len(items) == 0 {
					items = []int{0}
				}
				s := nested(items, label)
				return reflect.DeepEqual(mustSet(l, mustView(l, s), s), s)
			},
			gen.SliceOf(gen.Int()),
			gen.AlphaString(),
		))
	}

	properties.TestingRun(t)
}

func TestComposeAssociativity(t *testing.T) {
	properties := gopter.NewProperties(lawParameters())

	a := lens.Prop("outer")
	b := lens.Prop("items")
	c := lens.Mapped
	d := lens.Prop("n")

	forms := []lens.Lens{
		lens.Compose(lens.Compose(a, b), lens.Compose(c, d)),
		lens.Compose(a, lens.Compose(b, lens.Compose(c, d))),
		lens.Compose(lens.Compose(lens.Compose(a, b), c), d),
		lens.Compose(lens.Identity, a, b, lens.Identity, c, d, lens.Identity),
	}
	reference := lens.Compose(a, b, c, d)

	properties.Property("every bracketing of Compose behaves alike", prop.ForAll(
		func(items []int, delta int) bool {
			s := nested(items, "x")
			inc := func(v any) any { return v.(int) + delta }

			wantView := mustView(reference, s)
			wantOver, err := lens.Over(reference, inc, s)
			if err != nil {
				return false
			}
			for _, l := range forms {
				gotOver, err := lens.Over(l, inc, s)
				if err != nil {
					return false
				}
				if !reflect.DeepEqual(mustView(l, s), wantView) || !reflect.DeepEqual(gotOver, wantOver) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int()),
		gen.Int(),
	))

	properties.TestingRun(t)
}

func TestOverIdentityLaw(t *testing.T) {
	properties := gopter.NewProperties(lawParameters())

	lenses := map[string]lens.Lens{
		"mapped":       lens.Compose(lens.Props("outer", "items"), lens.Mapped, lens.Prop("n")),
		"mappedValues": lens.Compose(lens.MappedValues, lens.MappedValues),
		"index":        lens.Compose(lens.Props("outer", "items"), lens.Index(0)),
	}
	id := func(v any) any { return v }

	for name, l := range lenses {
		properties.Property("Over(l, id, s) == s for "+name, prop.ForAll(
			func(items []int, label string) bool {
				if len(items) == 0 {
					items = []int{0}
				}
				s := nested(items, label)
				out, err := lens.Over(l, id, s)
				return err == nil && reflect.DeepEqual(out, s)
			},
			gen.SliceOf(gen.Int()),
			gen.AlphaString(),
		))
	}

	properties.TestingRun(t)
}
