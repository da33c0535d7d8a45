package ecs

import (
	"errors"
	"testing"
)

type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }
type health struct{ HP int }

type moveSystem struct{ System }

func newMoveSystem(r *Registry) *moveSystem {
	s := &moveSystem{}
	RequireComponent[position](r, &s.System)
	RequireComponent[velocity](r, &s.System)
	return s
}

type healthSystem struct{ System }

func newHealthSystem(r *Registry) *healthSystem {
	s := &healthSystem{}
	RequireComponent[health](r, &s.System)
	return s
}

// everySystem requires nothing and so receives every live entity.
type everySystem struct{ System }

// mustPanic runs fn and returns the ContractViolation it panicked with.
func mustPanic(t *testing.T, fn func()) *ContractViolation {
	t.Helper()
	var got *ContractViolation
	func() {
		defer func() {
			rec := recover()
			if rec == nil {
				t.Fatalf("expected panic, got none")
			}
			err, ok := rec.(error)
			if !ok || !errors.As(err, &got) {
				t.Fatalf("expected *ContractViolation, got %T: %v", rec, rec)
			}
		}()
		fn()
	}()
	return got
}

func sameEntities(got, want []Entity) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[Entity]int, len(got))
	for _, e := range got {
		seen[e]++
	}
	for _, e := range want {
		if seen[e] == 0 {
			return false
		}
		seen[e]--
	}
	return true
}
