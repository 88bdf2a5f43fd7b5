// Package ecs adapts the ark archetype ECS to the engine: typed component
// access, generic queries, world resources, deferred commands and schedules.
package ecs

import "github.com/mlange-42/ark/ecs"

// Entity is a generational entity id. Ids are recycled after despawn with
// a new generation, so stale copies never compare equal to live entities.
type Entity = ecs.Entity
