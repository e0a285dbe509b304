// Package jump composes the surface and skier packages into the full
// jump-design pipeline: approach, takeoff transition, flight, landing
// transition, and the equivalent-fall-height landing surface.
package jump

import "fmt"

// InvalidJumpError reports that the requested jump is geometrically or
// physically infeasible: a zero/negative fall height, a skier too slow
// to reach the takeoff, a flight that never comes down, an infeasible
// landing transition, or an EFH surface that dips below the parent
// slope. It is never retried within this package.
type InvalidJumpError struct {
	Reason string
}

func (e *InvalidJumpError) Error() string {
	return fmt.Sprintf("invalid jump: %s", e.Reason)
}

// ValueError reports that the caller's inputs violate a stated
// precondition, such as takeoff angle ordering. Retrying with the same
// inputs will not help.
type ValueError struct {
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value: %s", e.Reason)
}
