package model

// Phase names the stage of an accuracy improvement program a projected day
// falls into.
type Phase string

// Projection phases by day index.
const (
	PhaseImplementation Phase = "Implementation"
	PhaseStabilization  Phase = "Stabilization"
	PhaseOptimization   Phase = "Optimization"
)

// PhaseForDay returns the program phase for a day index.
func PhaseForDay(day int) Phase {
	switch {
	case day <= 10:
		return PhaseImplementation
	case day <= 20:
		return PhaseStabilization
	default:
		return PhaseOptimization
	}
}

// ProjectionPoint is one day of a synthetic accuracy trajectory.
type ProjectionPoint struct {
	Day      int
	Accuracy float64
	Phase    Phase
}
