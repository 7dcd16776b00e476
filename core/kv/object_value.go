package kv

import (
	"roster-manager/core/utils"
)

// Object is one decoded JSON object from a bucket. The writers of a bucket
// never agreed on field spellings, so accessors take every alias of a field
// and return the first non-blank one.
type Object map[string]any

// String returns the first non-blank alias as a string.
func (o Object) String(fields ...string) string {
	return utils.FirstString(o, fields...)
}

// Value returns the first non-blank alias as its decoded JSON value.
func (o Object) Value(fields ...string) any {
	return utils.First(o, fields...)
}

// Bool is true when any alias is truthy.
func (o Object) Bool(fields ...string) bool {
	return utils.FirstBool(o, fields...)
}

// Has reports whether field is present at all, blank or not.
func (o Object) Has(field string) bool {
	_, ok := o[field]
	return ok
}

// Object returns the nested object at field, or nil.
func (o Object) Object(field string) Object {
	if m, ok := o[field].(map[string]any); ok {
		return Object(m)
	}
	return nil
}

// List returns the objects of the array at field; other elements are skipped.
func (o Object) List(field string) []Object {
	arr, _ := o[field].([]any)
	return objectsOf(arr)
}

// Clone returns a shallow copy of o.
func (o Object) Clone() Object {
	c := make(Object, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}

func objectsOf(arr []any) []Object {
	out := make([]Object, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok && m != nil {
			out = append(out, Object(m))
		}
	}
	return out
}
