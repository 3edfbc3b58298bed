package core

// Body is a moving point. Methods return new values; a Body is never mutated
// in place so step functions can hold the previous tick untouched.
type Body struct {
	Pos Vec
	Vel Vec
}

// Integrate advances the position by dt seconds.
func (b Body) Integrate(dt float64) Body {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	return b
}

// Damp scales the velocity by max(0, 1-k*dt).
func (b Body) Damp(k, dt float64) Body {
	f := 1 - k*dt
	if f < 0 {
		f = 0
	}
	b.Vel = b.Vel.Scale(f)
	return b
}

// LimitSpeed caps the velocity magnitude at max.
func (b Body) LimitSpeed(max float64) Body {
	if l := b.Vel.Len(); l > max && l > 0 {
		b.Vel = b.Vel.Scale(max / l)
	}
	return b
}

// Toward points the velocity at target with the given speed.
func (b Body) Toward(target Vec, speed float64) Body {
	b.Vel = target.Sub(b.Pos).Normalize().Scale(speed)
	return b
}

// Speed returns the velocity magnitude.
func (b Body) Speed() float64 {
	return b.Vel.Len()
}

// Stop zeroes the velocity.
func (b Body) Stop() Body {
	b.Vel = Vec{}
	return b
}

// Pool is a fixed-capacity slice of reusable items addressed by index.
// Released slots are recycled before the slice grows.
type Pool[T any] struct {
	items []T
	live  []bool
	free  []int
}

// NewPool creates a pool with room for capacity items before growing.
func NewPool[T any](capacity int) *Pool[T] {
	return &Pool[T]{
		items: make([]T, 0, capacity),
		live:  make([]bool, 0, capacity),
	}
}

// Acquire stores v in a free slot and returns its index.
func (p *Pool[T]) Acquire(v T) int {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		p.items[idx] = v
		p.live[idx] = true
		return idx
	}
	p.items = append(p.items, v)
	p.live = append(p.live, true)
	return len(p.items) - 1
}

// Release returns slot idx to the pool. Releasing a dead slot is a no-op.
func (p *Pool[T]) Release(idx int) {
	if idx < 0 || idx >= len(p.items) || !p.live[idx] {
		return
	}
	var zero T
	p.items[idx] = zero
	p.live[idx] = false
	p.free = append(p.free, idx)
}

// Get returns a pointer to the item in slot idx, or nil if the slot is dead.
func (p *Pool[T]) Get(idx int) *T {
	if idx < 0 || idx >= len(p.items) || !p.live[idx] {
		return nil
	}
	return &p.items[idx]
}

// Each calls fn for every live slot in index order.
func (p *Pool[T]) Each(fn func(idx int, v *T)) {
	for i := range p.items {
		if p.live[i] {
			fn(i, &p.items[i])
		}
	}
}

// Len returns the number of live items.
func (p *Pool[T]) Len() int {
	return len(p.items) - len(p.free)
}

// Cap returns the number of allocated slots, live or free.
func (p *Pool[T]) Cap() int {
	return len(p.items)
}

// Reset releases every slot.
func (p *Pool[T]) Reset() {
	p.items = p.items[:0]
	p.live = p.live[:0]
	p.free = p.free[:0]
}

// Clone returns an independent copy of the pool.
func (p *Pool[T]) Clone() *Pool[T] {
	if p == nil {
		return nil
	}
	return &Pool[T]{
		items: append([]T(nil), p.items...),
		live:  append([]bool(nil), p.live...),
		free:  append([]int(nil), p.free...),
	}
}
