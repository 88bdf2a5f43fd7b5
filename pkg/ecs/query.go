package ecs

import "github.com/mlange-42/ark/ecs"

// Queries lock the world while they run. Structural changes (spawn,
// despawn, insert, remove) made from inside the callback must go through
// Commands.

// Each iterates over entities that have component A.
func Each[A any](w *World, fn func(Entity, *A)) {
	query := ecs.NewFilter1[A](&w.ark).Query()
	for query.Next() {
		fn(query.Entity(), query.Get())
	}
}

// Each2 iterates over entities that have both component A and B.
func Each2[A, B any](w *World, fn func(Entity, *A, *B)) {
	query := ecs.NewFilter2[A, B](&w.ark).Query()
	for query.Next() {
		a, b := query.Get()
		fn(query.Entity(), a, b)
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](w *World, fn func(Entity, *A, *B, *C)) {
	query := ecs.NewFilter3[A, B, C](&w.ark).Query()
	for query.Next() {
		a, b, c := query.Get()
		fn(query.Entity(), a, b, c)
	}
}

// EachOpt iterates over entities that have component A, passing B when the
// entity also carries it and nil otherwise.
func EachOpt[A, B any](w *World, fn func(Entity, *A, *B)) {
	opt := mapper[B](w)
	query := ecs.NewFilter1[A](&w.ark).Query()
	for query.Next() {
		e := query.Entity()
		var b *B
		if opt.Has(e) {
			b = opt.Get(e)
		}
		fn(e, query.Get(), b)
	}
}
