package ecs

import (
	"strings"

	"github.com/TheBitDrifter/mask"
)

// MaxComponentKinds is the signature width: the number of distinct component
// kinds a single KindRegistry can hand out.
const MaxComponentKinds = 64

// Signature is a fixed-width set of component kinds. Entities carry one for the
// kinds they hold; consumers carry one for the kinds they require.
type Signature struct {
	bits mask.Mask
}

// SignatureOf builds a signature with the given kinds set.
func SignatureOf(kinds ...KindID) Signature {
	var s Signature
	for _, k := range kinds {
		s.Set(k)
	}
	return s
}

func (s *Signature) Set(k KindID) {
	s.bits.Mark(uint32(k))
}

func (s *Signature) Unset(k KindID) {
	s.bits.Unmark(uint32(k))
}

func (s *Signature) Reset() {
	*s = Signature{}
}

// Has reports whether kind k is in the set.
func (s Signature) Has(k KindID) bool {
	return s.bits.Contains(uint32(k))
}

// Contains reports whether s is a superset of required. Every signature
// contains the empty signature.
func (s Signature) Contains(required Signature) bool {
	if required.IsEmpty() {
		return true
	}
	return s.bits.ContainsAll(required.bits)
}

// Intersects reports whether s and other share at least one kind.
func (s Signature) Intersects(other Signature) bool {
	return s.bits.ContainsAny(other.bits)
}

func (s Signature) IsEmpty() bool {
	return s == Signature{}
}

// Kinds lists the set kinds in ascending order.
func (s Signature) Kinds() []KindID {
	var out []KindID
	for k := KindID(0); k < MaxComponentKinds; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// String renders the signature as a binary literal, highest kind first
// ({0,1} prints as 0b11).
func (s Signature) String() string {
	kinds := s.Kinds()
	if len(kinds) == 0 {
		return "0b0"
	}
	top := kinds[len(kinds)-1]
	var b strings.Builder
	b.WriteString("0b")
	for k := int(top); k >= 0; k-- {
		if s.Has(KindID(k)) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
