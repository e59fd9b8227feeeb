package access

import (
	"reflect"
	"strings"
	"sync"
)

// structField is one addressable field of a struct type.
type structField struct {
	index  []int
	tagged bool
}

// fieldsByType maps a struct reflect.Type to its map[string]structField.
var fieldsByType sync.Map

// cachedFields returns the fields of struct type t keyed by the name a prop
// segment uses to reach them: the `lens` tag, else the `json` tag, else the
// Go name. Embedded, unexported and "-" fields are not reachable.
func cachedFields(t reflect.Type) map[string]structField {
	if cached, ok := fieldsByType.Load(t); ok {
		return cached.(map[string]structField)
	}

	fields := make(map[string]structField, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		// TODO: Promote fields of embedded structs once prop lenses can
		// allocate nil embedded pointers on write.
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		name, tagged, ok := fieldName(sf)
		if !ok {
			continue
		}
		if prev, dup := fields[name]; dup && prev.tagged && !tagged {
			continue
		}
		fields[name] = structField{index: sf.Index, tagged: tagged}
	}

	actual, _ := fieldsByType.LoadOrStore(t, fields)
	return actual.(map[string]structField)
}

func fieldName(sf reflect.StructField) (name string, tagged, ok bool) {
	tag, found := sf.Tag.Lookup("lens")
	if !found {
		tag = sf.Tag.Get("json")
	}
	if tag == "-" {
		return "", false, false
	}
	if name, _, _ = strings.Cut(tag, ","); name != "" {
		return name, true, true
	}
	return sf.Name, false, true
}
