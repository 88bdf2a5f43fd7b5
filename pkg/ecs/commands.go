package ecs

// Commands queues structural changes to be applied at the next sync point.
// Schedules flush the queue according to their executor kind.
type Commands struct {
	world   *World
	pending []func(*World)
}

// Spawn queues the creation of an entity with the given bundles.
func (c *Commands) Spawn(bundles ...Bundle) {
	c.pending = append(c.pending, func(w *World) {
		w.Spawn(bundles...)
	})
}

// Despawn queues the removal of e.
func (c *Commands) Despawn(e Entity) {
	c.pending = append(c.pending, func(w *World) {
		w.Despawn(e)
	})
}

// Insert queues adding bundle b to e.
func (c *Commands) Insert(e Entity, b Bundle) {
	c.pending = append(c.pending, func(w *World) {
		if w.Alive(e) {
			b.Insert(w, e)
		}
	})
}

// Add queues an arbitrary world mutation.
func (c *Commands) Add(fn func(*World)) {
	c.pending = append(c.pending, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.pending)
}

// Apply runs every queued command in order and clears the queue.
// Commands queued while applying run in the same call.
func (c *Commands) Apply() {
	for i := 0; i < len(c.pending); i++ {
		c.pending[i](c.world)
	}
	c.pending = c.pending[:0]
}
