package jump

import (
	"math"

	"skijumpdesign/internal/skier"
	"skijumpdesign/internal/surface"
)

// Jump is the complete set of surfaces produced by MakeJump: the parent
// slope, the approach runway, the takeoff transition, the equivalent
// fall height landing surface, the landing transition that smooths the
// landing surface back onto the parent slope, and the maximum-velocity
// flight trajectory.
type Jump struct {
	Slope             *surface.Surface
	Approach          *surface.Surface
	Takeoff           *surface.Surface
	Landing           *surface.Surface
	LandingTransition *surface.Surface
	Flight            *surface.Flight
}

// approachSlopeLengthFactor sizes the parent slope surface generously
// relative to the approach length so the flight and landing-transition
// searches never run off the end of it.
const approachSlopeLengthFactor = 100

// MakeJump designs a full equivalent-fall-height ski jump given the
// parent slope angle (degrees, counterclockwise positive), the skier's
// starting distance down that slope, the approach length, the desired
// takeoff angle (degrees), and the target equivalent fall height
// (meters).
func MakeJump(slopeAngleDeg, startPosM, approachLenM, takeoffAngleDeg, fallHeightM float64) (*Jump, error) {
	if takeoffAngleDeg >= 90 || takeoffAngleDeg <= slopeAngleDeg {
		return nil, &ValueError{Reason: "takeoff angle must be between the slope angle and 90 degrees"}
	}
	if fallHeightM <= 0 {
		return nil, &InvalidJumpError{Reason: "fall height must be positive"}
	}

	params := skier.Default()

	slopeAngle := deg2rad(slopeAngleDeg)
	takeoffAngle := deg2rad(takeoffAngleDeg)

	initPos := surface.Point{
		X: startPosM * math.Cos(slopeAngle),
		Y: startPosM * math.Sin(slopeAngle),
	}

	approach, err := surface.NewFlat(slopeAngle, approachLenM, initPos)
	if err != nil {
		return nil, err
	}

	entry, err := params.SlideOn(approach, 0)
	if err != nil {
		return nil, &InvalidJumpError{Reason: "slow skier: " + err.Error()}
	}
	entrySpeed := entry.FinalV
	if entrySpeed <= 0 {
		return nil, &InvalidJumpError{Reason: "slow skier"}
	}

	takeoff, err := surface.NewTakeoff(slopeAngle, takeoffAngle, entrySpeed, params.TolerableAccTakeoff, skier.G, approach.End(), params.SlideOn)
	if err != nil {
		return nil, &InvalidJumpError{Reason: "slow skier: " + err.Error()}
	}

	exit, err := params.SlideOn(takeoff, entrySpeed)
	if err != nil {
		return nil, &InvalidJumpError{Reason: "slow skier: " + err.Error()}
	}
	designSpeed := exit.FinalV
	if designSpeed <= 0 {
		return nil, &InvalidJumpError{Reason: "slow skier"}
	}

	slope, err := surface.NewFlat(slopeAngle, approachSlopeLengthFactor*approachLenM, surface.Point{})
	if err != nil {
		return nil, err
	}

	takeoffVelX := designSpeed * math.Cos(takeoffAngle)
	takeoffVelY := designSpeed * math.Sin(takeoffAngle)

	flight, err := params.FlyTo(slope, takeoff.End(), takeoffVelX, takeoffVelY)
	if err != nil {
		return nil, &InvalidJumpError{Reason: "flies forever: " + err.Error()}
	}

	landingTrans, err := surface.NewLandingTransition(slope, flight, params.TolerableAccLanding, params.FrictionCoeff, params.Eta(), skier.G)
	if err != nil {
		return nil, &InvalidJumpError{Reason: err.Error()}
	}

	landing, err := surface.NewLandingSurface(takeoff.End(), takeoffAngle, landingTrans.Start(), fallHeightM, skier.G, params.ImpactVelocity)
	if err != nil {
		return nil, &InvalidJumpError{Reason: "fall height too large: " + err.Error()}
	}

	if err := checkAboveSlope(landing, slope); err != nil {
		return nil, err
	}

	return &Jump{
		Slope:             slope,
		Approach:          approach,
		Takeoff:           takeoff,
		Landing:           landing,
		LandingTransition: landingTrans,
		Flight:            flight,
	}, nil
}

// checkAboveSlope enforces the EFH landing surface post-condition: it
// must lie strictly above the parent slope everywhere it is defined.
func checkAboveSlope(landing, slope *surface.Surface) error {
	const epsilon = 1e-6
	for _, x := range landing.X() {
		if landing.InterpY(x) < slope.InterpY(x)-epsilon {
			return &InvalidJumpError{Reason: "fall height too large"}
		}
	}
	return nil
}

func deg2rad(deg float64) float64 { return deg * math.Pi / 180 }
