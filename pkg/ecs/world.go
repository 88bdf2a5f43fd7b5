package ecs

import (
	"reflect"

	"github.com/mlange-42/ark/ecs"
)

// World owns the ark world, one component mapper per type and a deferred
// command queue.
type World struct {
	ark      ecs.World
	mappers  map[reflect.Type]any
	live     int
	commands Commands
}

// NewWorld creates an empty world.
func NewWorld() *World {
	w := &World{
		ark:     ecs.NewWorld(),
		mappers: make(map[reflect.Type]any, 16),
	}
	w.commands.world = w
	return w
}

// Bundle inserts a group of components into an entity.
type Bundle interface {
	Insert(w *World, e Entity)
}

type single[T any] struct{ value T }

func (c single[T]) Insert(w *World, e Entity) {
	Insert(w, e, c.value)
}

// C wraps a single component value as a Bundle.
func C[T any](v T) Bundle {
	return single[T]{value: v}
}

// Spawn creates an entity carrying every component of the given bundles.
func (w *World) Spawn(bundles ...Bundle) Entity {
	e := w.ark.NewEntity()
	w.live++
	for _, b := range bundles {
		b.Insert(w, e)
	}
	return e
}

// Alive reports whether e has been spawned and not despawned.
func (w *World) Alive(e Entity) bool {
	return !e.IsZero() && w.ark.Alive(e)
}

// Despawn removes e and all its components immediately.
// Returns false if e was not alive.
func (w *World) Despawn(e Entity) bool {
	if !w.Alive(e) {
		return false
	}
	w.ark.RemoveEntity(e)
	w.live--
	return true
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.live
}

// Commands returns the world's deferred command queue.
func (w *World) Commands() *Commands {
	return &w.commands
}

// mapper returns the component mapper for T, registering T on first use.
func mapper[T any](w *World) *ecs.Map[T] {
	t := reflect.TypeFor[T]()
	if m, ok := w.mappers[t]; ok {
		return m.(*ecs.Map[T])
	}
	m := ecs.NewMap[T](&w.ark)
	w.mappers[t] = m
	return m
}

// Insert adds or replaces component v on e. Dead entities are ignored.
func Insert[T any](w *World, e Entity, v T) {
	if !w.Alive(e) {
		return
	}
	m := mapper[T](w)
	if m.Has(e) {
		*m.Get(e) = v
		return
	}
	m.Add(e, &v)
}

// Get returns a pointer to e's component of type T.
// The pointer is valid until the next structural change to e.
func Get[T any](w *World, e Entity) (*T, bool) {
	if !w.Alive(e) {
		return nil, false
	}
	m := mapper[T](w)
	if !m.Has(e) {
		return nil, false
	}
	return m.Get(e), true
}

// Has reports whether e carries a component of type T.
func Has[T any](w *World, e Entity) bool {
	return w.Alive(e) && mapper[T](w).Has(e)
}

// Remove deletes e's component of type T, if present.
func Remove[T any](w *World, e Entity) {
	if Has[T](w, e) {
		mapper[T](w).Remove(e)
	}
}

// Count returns the number of entities carrying a component of type T.
func Count[T any](w *World) int {
	n := 0
	Each(w, func(Entity, *T) { n++ })
	return n
}
