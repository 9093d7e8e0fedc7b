package compass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(0))
	assert.Equal(t, 0.0, Normalize(360))
	assert.Equal(t, 350.0, Normalize(-10))
	assert.Equal(t, 90.0, Normalize(450))
	assert.Equal(t, 180.0, Normalize(-180))
}

func TestDeltaShortestArc(t *testing.T) {
	assert.InDelta(t, 20, Delta(350, 10), 1e-9)
	assert.InDelta(t, -20, Delta(10, 350), 1e-9)
	assert.InDelta(t, 0, Delta(270, 270), 1e-9)
	assert.InDelta(t, 180, Delta(0, 180), 1e-9)
	assert.InDelta(t, -90, Delta(270, 180), 1e-9)
}

func TestWithin(t *testing.T) {
	assert.True(t, Within(178, 180, 10))
	assert.False(t, Within(150, 180, 10))
	assert.True(t, Within(355, 5, 10))
}

func TestStepSnapsAndWraps(t *testing.T) {
	// Snap when inside the step.
	assert.Equal(t, 240.0, Step(245, 240, 10))

	// Bounded step in each direction.
	assert.InDelta(t, 260, Step(270, 180, 10), 1e-9)
	assert.InDelta(t, 280, Step(270, 350, 10), 1e-9)

	// Crossing north.
	assert.InDelta(t, 5, Step(355, 20, 10), 1e-9)
}
