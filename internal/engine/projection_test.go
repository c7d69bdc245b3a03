package engine

import (
	"math/rand"
	"testing"

	"github.com/jose6941/stocktake/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetAccuracy(t *testing.T) {
	tests := []struct {
		initial float64
		want    float64
	}{
		{initial: 78, want: 92},
		{initial: 0, want: 92},
		{initial: 79.9, want: 92},
		{initial: 80, want: 95},
		{initial: 89.9, want: 95},
		{initial: 90, want: 95},
		{initial: 92, want: 97},
		{initial: 96, want: 98},
		{initial: 100, want: 98},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TargetAccuracy(tt.initial), "initial %.1f", tt.initial)
	}
}

func TestProjectShape(t *testing.T) {
	p := NewProjector(rand.New(rand.NewSource(42)))

	points := p.Project(78, 30)
	require.Len(t, points, 31)

	// Day 0 reports the starting accuracy exactly
	assert.Equal(t, 0, points[0].Day)
	assert.Equal(t, 78.0, points[0].Accuracy)
	assert.Equal(t, model.PhaseImplementation, points[0].Phase)

	assert.Equal(t, model.PhaseStabilization, points[15].Phase)
	assert.Equal(t, 30, points[30].Day)
	assert.Equal(t, model.PhaseOptimization, points[30].Phase)

	// Target for 78 is 92; every point stays within the clamp window
	for _, point := range points {
		assert.GreaterOrEqual(t, point.Accuracy, 76.0, "day %d", point.Day)
		assert.LessOrEqual(t, point.Accuracy, 93.0, "day %d", point.Day)
	}

	// The trajectory trends upward across phases
	assert.Greater(t, points[30].Accuracy, points[0].Accuracy)
}

func TestProjectDeterministicWithSeed(t *testing.T) {
	first := NewProjector(rand.New(rand.NewSource(7))).Project(85, 30)
	second := NewProjector(rand.New(rand.NewSource(7))).Project(85, 30)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i], "day %d", i)
	}
}

func TestProjectInputCoercion(t *testing.T) {
	p := NewProjector(rand.New(rand.NewSource(1)))

	// Out-of-range initial accuracy is clamped to [0, 100]
	points := p.Project(150, 10)
	assert.Equal(t, 100.0, points[0].Accuracy)

	points = p.Project(-5, 10)
	assert.Equal(t, 0.0, points[0].Accuracy)

	// Non-positive day counts fall back to the default horizon
	points = p.Project(78, 0)
	assert.Len(t, points, DefaultProjectionDays+1)
}

func TestProjectNilSourceStillWorks(t *testing.T) {
	points := NewProjector(nil).Project(90, 5)
	require.Len(t, points, 6)
	assert.Equal(t, 90.0, points[0].Accuracy)
}
