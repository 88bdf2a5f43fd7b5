package ecs

import (
	"fmt"
	"reflect"

	"github.com/mlange-42/ark/ecs"
)

// InsertResource stores v as the world's singleton of type T, replacing any
// previous value. Pointers returned earlier by Resource see the new value.
func InsertResource[T any](w *World, v T) {
	res := ecs.NewResource[T](&w.ark)
	if res.Has() {
		*res.Get() = v
		return
	}
	res.Add(&v)
}

// Resource returns the world's singleton of type T.
func Resource[T any](w *World) (*T, bool) {
	res := ecs.NewResource[T](&w.ark)
	if !res.Has() {
		return nil, false
	}
	return res.Get(), true
}

// MustResource is like Resource but panics if T has not been inserted.
func MustResource[T any](w *World) *T {
	r, ok := Resource[T](w)
	if !ok {
		panic(fmt.Sprintf("ecs: resource %s not found", reflect.TypeFor[T]()))
	}
	return r
}

// RemoveResource deletes the singleton of type T.
func RemoveResource[T any](w *World) {
	res := ecs.NewResource[T](&w.ark)
	if res.Has() {
		res.Remove()
	}
}
