package engine

import (
	"math/rand"
	"time"

	"github.com/jose6941/stocktake/internal/model"
)

// DefaultProjectionDays is the trajectory length used when none is given.
const DefaultProjectionDays = 30

// Projector generates synthetic accuracy trajectories for forward-looking
// reporting. The output has a deterministic three-phase shape with small
// random jitter; it is illustrative, not a forecast.
type Projector struct {
	rng *rand.Rand
}

// NewProjector creates a projector using the given random source. A nil
// source gets seeded from the current time; tests pass a fixed-seed one.
func NewProjector(rng *rand.Rand) *Projector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Projector{rng: rng}
}

// TargetAccuracy derives the program target from the starting accuracy.
func TargetAccuracy(initial float64) float64 {
	switch {
	case initial >= 90:
		if initial+5 > 98 {
			return 98
		}
		return initial + 5
	case initial >= 80:
		return 95
	default:
		return 92
	}
}

// Project generates a trajectory of days+1 points starting at the initial
// accuracy. The initial-to-target gap closes 40% during Implementation (days
// 1-10), another 40% during Stabilization (days 11-20) and the final 20%
// during Optimization (days 21+), linearly within each phase. Every day
// after day 0 receives uniform jitter in [-0.5, 0.5] and is clamped to
// [initial-2, target+1].
func (p *Projector) Project(initial float64, days int) []model.ProjectionPoint {
	if initial < 0 {
		initial = 0
	} else if initial > 100 {
		initial = 100
	}
	if days < 1 {
		days = DefaultProjectionDays
	}

	target := TargetAccuracy(initial)
	gap := target - initial

	points := make([]model.ProjectionPoint, 0, days+1)
	for day := 0; day <= days; day++ {
		var accuracy float64
		switch {
		case day == 0:
			accuracy = initial
		case day <= 10:
			accuracy = initial + gap*0.4*(float64(day)/10)
		case day <= 20:
			accuracy = initial + gap*0.4 + gap*0.4*(float64(day-10)/10)
		default:
			accuracy = initial + gap*0.8 + gap*0.2*(float64(day-20)/10)
		}

		if day > 0 {
			accuracy += p.rng.Float64() - 0.5

			if accuracy < initial-2 {
				accuracy = initial - 2
			}
			if accuracy > target+1 {
				accuracy = target + 1
			}
		}

		points = append(points, model.ProjectionPoint{
			Day:      day,
			Accuracy: accuracy,
			Phase:    model.PhaseForDay(day),
		})
	}

	return points
}
