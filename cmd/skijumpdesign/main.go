// Command skijumpdesign prints the surfaces and flight trajectory of an
// equivalent-fall-height ski jump for the given design parameters.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"skijumpdesign/internal/jump"
)

func main() {
	slopeAngle := flag.Float64("slope-angle", -15, "parent slope angle in degrees (negative descends)")
	startPos := flag.Float64("start-pos", 0, "distance in meters along the slope to the skier's starting position")
	approachLen := flag.Float64("approach-len", 30, "approach length in meters")
	takeoffAngle := flag.Float64("takeoff-angle", 10, "takeoff ramp exit angle in degrees")
	fallHeight := flag.Float64("fall-height", 0.5, "target equivalent fall height in meters")
	flag.Parse()

	j, err := jump.MakeJump(*slopeAngle, *startPos, *approachLen, *takeoffAngle, *fallHeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skijumpdesign: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Approach:           %.2f m, ending at (%.2f, %.2f)\n",
		j.Approach.Length(), j.Approach.End().X, j.Approach.End().Y)
	fmt.Printf("Takeoff:            ending at (%.2f, %.2f), exit angle %.2f deg\n",
		j.Takeoff.End().X, j.Takeoff.End().Y, rad2deg(j.Takeoff.AngleAt(j.Takeoff.End().X)))
	fmt.Printf("Flight duration:    %.3f s\n", j.Flight.Duration())
	fmt.Printf("Landing transition: start (%.2f, %.2f), end (%.2f, %.2f)\n",
		j.LandingTransition.Start().X, j.LandingTransition.Start().Y,
		j.LandingTransition.End().X, j.LandingTransition.End().Y)
	fmt.Printf("Landing surface:    %d samples, from (%.2f, %.2f) to (%.2f, %.2f)\n",
		len(j.Landing.X()), j.Landing.Start().X, j.Landing.Start().Y,
		j.Landing.End().X, j.Landing.End().Y)
	fmt.Printf("Snow budget:        %.2f m^2\n", j.SnowBudget())
}

func rad2deg(rad float64) float64 { return rad * 180 / math.Pi }
