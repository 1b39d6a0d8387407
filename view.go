package layoutkit

import "reflect"

// View is the boundary to a concrete view toolkit. It is the only toolkit
// surface the engine touches, and only from the UI loop.
//
// Implementations must be comparable (typically pointer types): the applier
// compares views to detect parent changes.
type View interface {
	Frame() Rect
	SetFrame(Rect)
	AddSubview(View)
	RemoveFromSuperview()
}

// ViewClass is the default-construction provider for one concrete view type.
// Name is the view type identity used by reuse matching.
type ViewClass[V View] struct {
	Name string
	New  func() V
}

// NewViewClass creates a ViewClass.
func NewViewClass[V View](name string, newFn func() V) ViewClass[V] {
	return ViewClass[V]{Name: name, New: newFn}
}

// TypeName returns Name, or the Go type name of V when Name is empty.
func (c ViewClass[V]) TypeName() string {
	if c.Name != "" {
		return c.Name
	}
	return reflect.TypeFor[V]().String()
}

// isNilView reports whether v is nil or an interface holding a nil pointer,
// map, slice, func or channel.
func isNilView(v View) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
