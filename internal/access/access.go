// Package access implements the getters and setters behind the primitive
// lenses. Every setter is copy-on-write: the container it is handed is never
// modified, and the returned container shares all untouched children with it.
package access

import (
	"fmt"
	"reflect"
	"strconv"

	lerrors "github.com/KimNorgaard/go-lenspath/errors"
)

var (
	anyType    = reflect.TypeFor[any]()
	stringType = reflect.TypeFor[string]()
)

// Prop reads the property name of target. Missing map keys and nil targets
// read as nil.
func Prop(name string, target any) (any, error) {
	switch t := target.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return t[name], nil
	}

	rv := reflect.ValueOf(target)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		key, ok := stringKey(name, rv.Type())
		if !ok {
			return nil, propError(name, target, "map key is not a string")
		}
		v := rv.MapIndex(key)
		if !v.IsValid() {
			return nil, nil
		}
		return v.Interface(), nil
	case reflect.Struct:
		f, ok := cachedFields(rv.Type())[name]
		if !ok {
			return nil, propError(name, target, "no such field")
		}
		return rv.FieldByIndex(f.index).Interface(), nil
	}
	return nil, propError(name, target, "")
}

// SetProp returns a copy of target with the property name bound to value.
// Absent map keys are introduced.
func SetProp(name string, value, target any) (any, error) {
	switch t := target.(type) {
	case nil:
		return nil, &lerrors.AbsentError{Segment: name}
	case map[string]any:
		out := make(map[string]any, len(t)+1)
		for k, v := range t {
			out[k] = v
		}
		out[name] = value
		return out, nil
	}

	out, err := setPropValue(name, value, reflect.ValueOf(target))
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

func setPropValue(name string, value any, rv reflect.Value) (reflect.Value, error) {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return reflect.Value{}, &lerrors.AbsentError{Segment: name}
		}
		elem, err := setPropValue(name, value, rv.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		return newPointer(elem), nil
	case reflect.Map:
		key, ok := stringKey(name, rv.Type())
		if !ok {
			return reflect.Value{}, propError(name, rv.Interface(), "map key is not a string")
		}
		out, ok := setMapEntry(key, value, rv)
		if !ok {
			return reflect.Value{}, propError(name, rv.Interface(), notAssignable(value, rv.Type().Elem()))
		}
		return out, nil
	case reflect.Struct:
		f, ok := cachedFields(rv.Type())[name]
		if !ok {
			return reflect.Value{}, propError(name, rv.Interface(), "no such field")
		}
		ft := rv.Type().FieldByIndex(f.index).Type
		val, ok := assignable(value, ft)
		if !ok {
			return reflect.Value{}, propError(name, rv.Interface(), notAssignable(value, ft))
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(rv)
		out.FieldByIndex(f.index).Set(val)
		return out, nil
	}
	return reflect.Value{}, propError(name, rv.Interface(), "")
}

// Index reads element i of a slice or array. Out of range reads as nil.
// Maps are read at key i: integer keyed maps at i itself, string keyed maps
// at the decimal form of i.
func Index(i int, target any) (any, error) {
	switch t := target.(type) {
	case nil:
		return nil, nil
	case []any:
		if i < 0 || i >= len(t) {
			return nil, nil
		}
		return t[i], nil
	}

	rv := reflect.ValueOf(target)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if i < 0 || i >= rv.Len() {
			return nil, nil
		}
		return rv.Index(i).Interface(), nil
	case reflect.Map:
		key, ok := indexKey(i, rv)
		if !ok {
			return nil, indexError(i, target, "map key cannot hold an index")
		}
		v := rv.MapIndex(key)
		if !v.IsValid() {
			return nil, nil
		}
		return v.Interface(), nil
	}
	return nil, indexError(i, target, "")
}

// SetIndex returns a copy of target with element i replaced by value.
// Writing outside the current bounds is a RangeError; collections never grow.
func SetIndex(i int, value, target any) (any, error) {
	switch t := target.(type) {
	case nil:
		return nil, &lerrors.AbsentError{Segment: strconv.Itoa(i)}
	case []any:
		if i < 0 || i >= len(t) {
			return nil, &lerrors.RangeError{Index: i, Len: len(t)}
		}
		out := make([]any, len(t))
		copy(out, t)
		out[i] = value
		return out, nil
	}

	out, err := setIndexValue(i, value, reflect.ValueOf(target))
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

func setIndexValue(i int, value any, rv reflect.Value) (reflect.Value, error) {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return reflect.Value{}, &lerrors.AbsentError{Segment: strconv.Itoa(i)}
		}
		elem, err := setIndexValue(i, value, rv.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		return newPointer(elem), nil
	case reflect.Slice, reflect.Array:
		if i < 0 || i >= rv.Len() {
			return reflect.Value{}, &lerrors.RangeError{Index: i, Len: rv.Len()}
		}
		val, ok := assignable(value, rv.Type().Elem())
		if !ok {
			return reflect.Value{}, indexError(i, rv.Interface(), notAssignable(value, rv.Type().Elem()))
		}
		var out reflect.Value
		if rv.Kind() == reflect.Slice {
			out = reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
			reflect.Copy(out, rv)
		} else {
			out = reflect.New(rv.Type()).Elem()
			out.Set(rv)
		}
		out.Index(i).Set(val)
		return out, nil
	case reflect.Map:
		key, ok := indexKey(i, rv)
		if !ok {
			return reflect.Value{}, indexError(i, rv.Interface(), "map key cannot hold an index")
		}
		out, ok := setMapEntry(key, value, rv)
		if !ok {
			return reflect.Value{}, indexError(i, rv.Interface(), notAssignable(value, rv.Type().Elem()))
		}
		return out, nil
	}
	return reflect.Value{}, indexError(i, rv.Interface(), "")
}

// Key reads the entry of a map at key k. k must be assignable to the key
// type of the map. Missing keys and nil targets read as nil.
func Key(k, target any) (any, error) {
	if target == nil {
		return nil, nil
	}
	if m, ok := target.(map[string]any); ok {
		if s, ok := k.(string); ok {
			return m[s], nil
		}
	}

	rv := reflect.ValueOf(target)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Map {
		return nil, keyError(k, target, "not a map")
	}
	key, ok := assignable(k, rv.Type().Key())
	if !ok {
		return nil, keyError(k, target, notAssignable(k, rv.Type().Key()))
	}
	v := rv.MapIndex(key)
	if !v.IsValid() {
		return nil, nil
	}
	return v.Interface(), nil
}

// SetKey returns a copy of target with key k bound to value.
func SetKey(k, value, target any) (any, error) {
	if target == nil {
		return nil, &lerrors.AbsentError{Segment: fmt.Sprint(k)}
	}
	out, err := setKeyValue(k, value, reflect.ValueOf(target))
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

func setKeyValue(k, value any, rv reflect.Value) (reflect.Value, error) {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return reflect.Value{}, &lerrors.AbsentError{Segment: fmt.Sprint(k)}
		}
		elem, err := setKeyValue(k, value, rv.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		return newPointer(elem), nil
	case reflect.Map:
		key, ok := assignable(k, rv.Type().Key())
		if !ok {
			return reflect.Value{}, keyError(k, rv.Interface(), notAssignable(k, rv.Type().Key()))
		}
		out, ok := setMapEntry(key, value, rv)
		if !ok {
			return reflect.Value{}, keyError(k, rv.Interface(), notAssignable(value, rv.Type().Elem()))
		}
		return out, nil
	}
	return reflect.Value{}, keyError(k, rv.Interface(), "not a map")
}

// MapElems applies fn to every element of a slice or array and returns the
// collected results in order. The result keeps the type of target when every
// result is assignable to its element type, and is a []any otherwise. A nil
// slice or nil pointer is returned unchanged. A pointer to a collection
// yields a pointer to the result.
func MapElems(target any, fn func(any) any) (any, error) {
	if xs, ok := target.([]any); ok {
		if xs == nil {
			return xs, nil
		}
		out := make([]any, len(xs))
		for i, x := range xs {
			out[i] = fn(x)
		}
		return out, nil
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() == reflect.Pointer {
		return throughPointer(rv, fn, MapElems)
	}
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return target, nil
		}
	case reflect.Array:
	default:
		return nil, &lerrors.TypeError{Op: "mapped", Type: reflect.TypeOf(target), Reason: "not a slice or array"}
	}

	n := rv.Len()
	results := make([]any, n)
	vals := make([]reflect.Value, n)
	keep := true
	elemType := rv.Type().Elem()
	for i := range n {
		results[i] = fn(rv.Index(i).Interface())
		if keep {
			vals[i], keep = assignable(results[i], elemType)
		}
	}
	if !keep {
		return results, nil
	}

	var out reflect.Value
	if rv.Kind() == reflect.Slice {
		out = reflect.MakeSlice(rv.Type(), n, n)
	} else {
		out = reflect.New(rv.Type()).Elem()
	}
	for i, v := range vals {
		out.Index(i).Set(v)
	}
	return out.Interface(), nil
}

// MapValues applies fn to every value of a map and returns a map with the
// same keys. Like MapElems it keeps the map type when every result fits,
// falls back to a map with the same key type and any values, and follows
// pointers.
func MapValues(target any, fn func(any) any) (any, error) {
	if m, ok := target.(map[string]any); ok {
		if m == nil {
			return m, nil
		}
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = fn(v)
		}
		return out, nil
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() == reflect.Pointer {
		return throughPointer(rv, fn, MapValues)
	}
	if rv.Kind() != reflect.Map {
		return nil, &lerrors.TypeError{Op: "mappedValues", Type: reflect.TypeOf(target), Reason: "not a map"}
	}
	if rv.IsNil() {
		return target, nil
	}

	keys := make([]reflect.Value, 0, rv.Len())
	results := make([]any, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key())
		results = append(results, fn(iter.Value().Interface()))
	}

	elemType := rv.Type().Elem()
	vals := make([]reflect.Value, len(results))
	keep := true
	for i, r := range results {
		if vals[i], keep = assignable(r, elemType); !keep {
			break
		}
	}

	mapType := rv.Type()
	if !keep {
		mapType = reflect.MapOf(rv.Type().Key(), anyType)
		for i, r := range results {
			vals[i] = valueOf(r, anyType)
		}
	}

	out := reflect.MakeMapWithSize(mapType, len(keys))
	for i, k := range keys {
		out.SetMapIndex(k, vals[i])
	}
	return out.Interface(), nil
}

// throughPointer applies traverse to the collection behind the non-nil
// pointer p and returns a pointer to the result.
func throughPointer(p reflect.Value, fn func(any) any, traverse func(any, func(any) any) (any, error)) (any, error) {
	if p.IsNil() {
		return p.Interface(), nil
	}
	out, err := traverse(p.Elem().Interface(), fn)
	if err != nil {
		return nil, err
	}
	return newPointer(reflect.ValueOf(out)).Interface(), nil
}

// setMapEntry returns a copy of the map m with key bound to value. It
// reports false when value does not fit the element type of m.
func setMapEntry(key reflect.Value, value any, m reflect.Value) (reflect.Value, bool) {
	val, ok := assignable(value, m.Type().Elem())
	if !ok {
		return reflect.Value{}, false
	}
	out := reflect.MakeMapWithSize(m.Type(), m.Len()+1)
	iter := m.MapRange()
	for iter.Next() {
		out.SetMapIndex(iter.Key(), iter.Value())
	}
	out.SetMapIndex(key, val)
	return out, true
}

// assignable converts value into a reflect.Value that can be stored in a
// slot of type t.
func assignable(value any, t reflect.Type) (reflect.Value, bool) {
	if value == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	return v, true
}

// valueOf is assignable for a slot type known to accept value.
func valueOf(value any, t reflect.Type) reflect.Value {
	if value == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(value)
}

// stringKey converts name into a key of mapType. Maps keyed by an
// interface that string satisfies, as decoded by YAML, accept string keys too.
func stringKey(name string, mapType reflect.Type) (reflect.Value, bool) {
	kt := mapType.Key()
	switch {
	case kt.Kind() == reflect.String:
		return reflect.ValueOf(name).Convert(kt), true
	case kt.Kind() == reflect.Interface && stringType.Implements(kt):
		return reflect.ValueOf(name), true
	}
	return reflect.Value{}, false
}

// indexKey converts i into a key of the map m. Integer kinds take i as is
// when it fits, string kinds take its decimal form. Interface keyed maps use
// whichever form is already present, preferring the integer.
func indexKey(i int, m reflect.Value) (reflect.Value, bool) {
	kt := m.Type().Key()
	switch kt.Kind() {
	case reflect.String:
		return reflect.ValueOf(strconv.Itoa(i)).Convert(kt), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		k := reflect.New(kt).Elem()
		if k.OverflowInt(int64(i)) {
			return reflect.Value{}, false
		}
		k.SetInt(int64(i))
		return k, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		k := reflect.New(kt).Elem()
		if i < 0 || k.OverflowUint(uint64(i)) {
			return reflect.Value{}, false
		}
		k.SetUint(uint64(i))
		return k, true
	case reflect.Interface:
		ik := reflect.ValueOf(i)
		sk := reflect.ValueOf(strconv.Itoa(i))
		intOK := ik.Type().Implements(kt)
		strOK := stringType.Implements(kt)
		switch {
		case intOK && m.MapIndex(ik).IsValid():
			return ik, true
		case strOK && m.MapIndex(sk).IsValid():
			return sk, true
		case intOK:
			return ik, true
		case strOK:
			return sk, true
		}
	}
	return reflect.Value{}, false
}

func newPointer(elem reflect.Value) reflect.Value {
	p := reflect.New(elem.Type())
	p.Elem().Set(elem)
	return p
}

func notAssignable(value any, t reflect.Type) string {
	if value == nil {
		return "nil is not assignable to " + t.String()
	}
	return reflect.TypeOf(value).String() + " is not assignable to " + t.String()
}

func propError(name string, target any, reason string) error {
	return &lerrors.TypeError{Op: "prop", Segment: name, Type: reflect.TypeOf(target), Reason: reason}
}

func keyError(k, target any, reason string) error {
	return &lerrors.TypeError{Op: "key", Segment: fmt.Sprint(k), Type: reflect.TypeOf(target), Reason: reason}
}

func indexError(i int, target any, reason string) error {
	return &lerrors.TypeError{Op: "index", Segment: strconv.Itoa(i), Type: reflect.TypeOf(target), Reason: reason}
}
