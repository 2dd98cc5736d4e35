package placeholder

import (
	"fmt"
	"reflect"
)

// Option tunes a Get or Put call.
type Option func(*options)

type options struct {
	id    any
	hasID bool
	shape Shape
}

// WithID targets a single item. Any non-nil id is honored, including 0 and "";
// a nil id (untyped or a typed nil pointer) means no id. Pointers are
// dereferenced.
func WithID(id any) Option {
	return func(o *options) {
		if isNil(id) {
			o.id, o.hasID = nil, false
			return
		}
		v := id
		if rv := reflect.ValueOf(id); rv.Kind() == reflect.Pointer {
			v = rv.Elem().Interface()
		}
		o.id = v
		o.hasID = true
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// WithShape overrides the default ShapeJSON.
func WithShape(s Shape) Option {
	return func(o *options) { o.shape = s }
}

func buildOptions(opts []Option) options {
	o := options{shape: ShapeJSON}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// path keys off id presence, not its value.
func (o options) path(resource string) string {
	if o.hasID {
		return fmt.Sprintf("%s/%v", resource, o.id)
	}
	return resource + "/"
}
