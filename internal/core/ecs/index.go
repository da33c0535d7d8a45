package ecs

import "slices"

// tagIndex is a 1:1 mapping between labels and entities.
type tagIndex struct {
	byTag    map[string]Entity
	byEntity map[Entity]string
}

func newTagIndex() tagIndex {
	return tagIndex{
		byTag:    make(map[string]Entity),
		byEntity: make(map[Entity]string),
	}
}

func (t *tagIndex) set(e Entity, tag string) {
	if old, ok := t.byEntity[e]; ok {
		if old == tag {
			return
		}
		delete(t.byTag, old)
	}
	if holder, ok := t.byTag[tag]; ok {
		delete(t.byEntity, holder)
	}
	t.byTag[tag] = e
	t.byEntity[e] = tag
}

func (t *tagIndex) remove(e Entity) {
	tag, ok := t.byEntity[e]
	if !ok {
		return
	}
	delete(t.byEntity, e)
	if t.byTag[tag] == e {
		delete(t.byTag, tag)
	}
}

// groupIndex maps labels to member sets; each entity is in one group at most.
type groupIndex struct {
	byGroup  map[string]map[Entity]struct{}
	byEntity map[Entity]string
}

func newGroupIndex() groupIndex {
	return groupIndex{
		byGroup:  make(map[string]map[Entity]struct{}),
		byEntity: make(map[Entity]string),
	}
}

func (g *groupIndex) set(e Entity, group string) {
	if old, ok := g.byEntity[e]; ok {
		if old == group {
			return
		}
		g.leave(e, old)
	}
	members, ok := g.byGroup[group]
	if !ok {
		members = make(map[Entity]struct{})
		g.byGroup[group] = members
	}
	members[e] = struct{}{}
	g.byEntity[e] = group
}

func (g *groupIndex) remove(e Entity) {
	group, ok := g.byEntity[e]
	if !ok {
		return
	}
	g.leave(e, group)
	delete(g.byEntity, e)
}

func (g *groupIndex) leave(e Entity, group string) {
	members := g.byGroup[group]
	delete(members, e)
	if len(members) == 0 {
		delete(g.byGroup, group)
	}
}

func (g *groupIndex) members(group string) []Entity {
	members := g.byGroup[group]
	out := make([]Entity, 0, len(members))
	for e := range members {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// entitySet is an insertion-ordered set used for the pending queues, so the
// deferred pass processes entities in request order. Removal leaves an
// InvalidEntity tombstone; items compacts them away.
type entitySet struct {
	order  []Entity
	member map[Entity]int // position in order
	dead   int
}

func newEntitySet() entitySet {
	return entitySet{member: make(map[Entity]int)}
}

func (s *entitySet) add(e Entity) {
	if _, ok := s.member[e]; ok {
		return
	}
	s.member[e] = len(s.order)
	s.order = append(s.order, e)
}

func (s *entitySet) remove(e Entity) {
	idx, ok := s.member[e]
	if !ok {
		return
	}
	delete(s.member, e)
	s.order[idx] = InvalidEntity
	s.dead++
}

// items returns the members in insertion order. The slice is valid until the
// next add, remove or clear.
func (s *entitySet) items() []Entity {
	if s.dead > 0 {
		live := s.order[:0]
		for _, e := range s.order {
			if e != InvalidEntity {
				s.member[e] = len(live)
				live = append(live, e)
			}
		}
		s.order = live
		s.dead = 0
	}
	return s.order
}

func (s *entitySet) len() int { return len(s.member) }

func (s *entitySet) clear() {
	s.order = s.order[:0]
	clear(s.member)
	s.dead = 0
}
