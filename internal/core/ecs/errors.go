package ecs

import "fmt"

// ContractViolation is the panic value raised when a caller breaks one of the
// registry's preconditions (reading a component that is not attached, mutating a
// dead entity, exceeding MaxComponentKinds, ...). These are programming errors;
// the core never returns them as error values.
type ContractViolation struct {
	Op     string
	Entity Entity
	Kind   string
	Reason string
}

func (e *ContractViolation) Error() string {
	switch {
	case e.Kind != "" && e.Entity.IsValid():
		return fmt.Sprintf("ecs: %s: entity %d, kind %s: %s", e.Op, e.Entity, e.Kind, e.Reason)
	case e.Kind != "":
		return fmt.Sprintf("ecs: %s: kind %s: %s", e.Op, e.Kind, e.Reason)
	case e.Entity.IsValid():
		return fmt.Sprintf("ecs: %s: entity %d: %s", e.Op, e.Entity, e.Reason)
	}
	return fmt.Sprintf("ecs: %s: %s", e.Op, e.Reason)
}

func violate(op string, e Entity, kind, reason string) {
	panic(&ContractViolation{Op: op, Entity: e, Kind: kind, Reason: reason})
}
