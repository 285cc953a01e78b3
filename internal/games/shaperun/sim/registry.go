package sim

import "github.com/vovakirdan/shaperun/internal/core"

// Registry owns the live entities and projectiles of a run.
// Entities iterate in insertion order, which fixes collision scan order.
type Registry struct {
	entities    map[string]*Entity
	order       []string
	projectiles []Projectile
	nextShot    uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]*Entity)}
}

// Reset clears all entities and projectiles.
func (r *Registry) Reset() {
	clear(r.entities)
	r.order = r.order[:0]
	r.projectiles = r.projectiles[:0]
	r.nextShot = 0
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.order)
}

// Get returns a copy of the entity with the given id.
func (r *Registry) Get(id string) (Entity, bool) {
	e, ok := r.entities[id]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// Entities returns a copy of all live entities in scan order.
func (r *Registry) Entities() []Entity {
	out := make([]Entity, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.entities[id])
	}
	return out
}

// InsertAll adds generated entities. Ids already present are skipped.
// Returns the number inserted.
func (r *Registry) InsertAll(items []Entity) int {
	n := 0
	for i := range items {
		if _, exists := r.entities[items[i].ID]; exists {
			continue
		}
		e := items[i]
		r.entities[e.ID] = &e
		r.order = append(r.order, e.ID)
		n++
	}
	return n
}

// ApplyHP writes accumulated integrity values. Entities left with hp <= 0
// are removed. Unknown ids are ignored.
func (r *Registry) ApplyHP(updates map[string]float64) {
	var dead []string
	for id, hp := range updates {
		e, ok := r.entities[id]
		if !ok {
			continue
		}
		e.HP = hp
		if hp <= 0 {
			dead = append(dead, id)
		}
	}
	r.Remove(dead...)
}

// Remove deletes entities by id. Stale ids are ignored.
func (r *Registry) Remove(ids ...string) {
	removed := 0
	for _, id := range ids {
		if _, ok := r.entities[id]; ok {
			delete(r.entities, id)
			removed++
		}
	}
	if removed == 0 {
		return
	}
	kept := r.order[:0]
	for _, id := range r.order {
		if _, ok := r.entities[id]; ok {
			kept = append(kept, id)
		}
	}
	r.order = kept
}

// Cull removes entities that scrolled more than margin behind distance.
// Returns the removed ids.
func (r *Registry) Cull(distance, margin float64) []string {
	var ids []string
	for _, id := range r.order {
		if behind(r.entities[id].Pos.Z, distance, margin) {
			ids = append(ids, id)
		}
	}
	r.Remove(ids...)
	return ids
}

// behind reports whether travel-axis position z is more than margin behind distance.
func behind(z, distance, margin float64) bool {
	return z > -distance+margin
}

// Projectiles returns a copy of the live projectiles.
func (r *Registry) Projectiles() []Projectile {
	out := make([]Projectile, len(r.projectiles))
	copy(out, r.projectiles)
	return out
}

// AddProjectile spawns an active projectile.
func (r *Registry) AddProjectile(pos core.Vec3, shape Shape) Projectile {
	r.nextShot++
	p := Projectile{ID: r.nextShot, Pos: pos, Shape: shape, Active: true}
	r.projectiles = append(r.projectiles, p)
	return p
}

// RemoveProjectiles deletes projectiles by id. Stale ids are ignored.
func (r *Registry) RemoveProjectiles(ids ...uint64) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := r.projectiles[:0]
	for _, p := range r.projectiles {
		if _, ok := drop[p.ID]; !ok {
			kept = append(kept, p)
		}
	}
	r.projectiles = kept
}
