package enums

import "fmt"

// MovementKind classifies a stock movement recorded against a component.
type MovementKind string

const (
	MovementKindIntake  MovementKind = "intake"
	MovementKindReturn  MovementKind = "return"
	MovementKindOutflow MovementKind = "outflow"
	MovementKindLoan    MovementKind = "loan"
)

var validMovementKinds = []MovementKind{
	MovementKindIntake,
	MovementKindReturn,
	MovementKindOutflow,
	MovementKindLoan,
}

// String implements fmt.Stringer.
func (k MovementKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known MovementKind.
func (k MovementKind) IsValid() bool {
	for _, candidate := range validMovementKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseMovementKind converts raw input into a MovementKind.
func ParseMovementKind(value string) (MovementKind, error) {
	for _, candidate := range validMovementKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid movement kind %q", value)
}

// SignedDelta returns the effect of a movement of this kind on the owning
// component's cached quantity: intake and return add, outflow and loan
// subtract. Unknown kinds contribute zero so that a cached quantity always
// equals the signed sum over whatever rows exist.
func (k MovementKind) SignedDelta(quantity int) int {
	switch k {
	case MovementKindIntake, MovementKindReturn:
		return quantity
	case MovementKindOutflow, MovementKindLoan:
		return -quantity
	default:
		return 0
	}
}
