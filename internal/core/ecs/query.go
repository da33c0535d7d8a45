package ecs

// Each2 visits every entity holding both A and B, walking the smaller pool
// and probing the other. It reads pools directly, so entities show up as soon
// as their components are added, before the next Update. fn must not add or
// remove components of kind A or B.
func Each2[A, B any](r *Registry, fn func(Entity, *A, *B)) {
	pa, pb := PoolOf[A](r), PoolOf[B](r)
	if pa == nil || pb == nil {
		return
	}
	if pa.Len() <= pb.Len() {
		pa.Each(func(e Entity, a *A) {
			if pb.Has(e) {
				fn(e, a, pb.Get(e))
			}
		})
		return
	}
	pb.Each(func(e Entity, b *B) {
		if pa.Has(e) {
			fn(e, pa.Get(e), b)
		}
	})
}

// Each3 visits every entity holding A, B and C.
func Each3[A, B, C any](r *Registry, fn func(Entity, *A, *B, *C)) {
	pa, pb, pc := PoolOf[A](r), PoolOf[B](r), PoolOf[C](r)
	if pa == nil || pb == nil || pc == nil {
		return
	}

	// Walk the smallest pool
	smallest := pa.Len()
	which := 0
	if pb.Len() < smallest {
		smallest = pb.Len()
		which = 1
	}
	if pc.Len() < smallest {
		which = 2
	}

	switch which {
	case 0:
		pa.Each(func(e Entity, a *A) {
			if pb.Has(e) && pc.Has(e) {
				fn(e, a, pb.Get(e), pc.Get(e))
			}
		})
	case 1:
		pb.Each(func(e Entity, b *B) {
			if pa.Has(e) && pc.Has(e) {
				fn(e, pa.Get(e), b, pc.Get(e))
			}
		})
	case 2:
		pc.Each(func(e Entity, c *C) {
			if pa.Has(e) && pb.Has(e) {
				fn(e, pa.Get(e), pb.Get(e), c)
			}
		})
	}
}
