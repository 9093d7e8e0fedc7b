package env

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindHeadwindReducesClosure(t *testing.T) {
	w := Wind{SpeedKt: 36, FromDeg: 270}
	k, warn := w.Apply(100, Kinematics{HeadingDeg: 270, ClosureNM: 5})
	assert.Empty(t, warn)
	assert.InDelta(t, 4, k.ClosureNM, 1e-9) // 36 kt over 100 s = 1 nm
}

func TestWindTailwindAddsClosure(t *testing.T) {
	w := Wind{SpeedKt: 36, FromDeg: 90}
	k, _ := w.Apply(100, Kinematics{HeadingDeg: 270, ClosureNM: 5})
	assert.InDelta(t, 6, k.ClosureNM, 1e-9)
}

func TestWindCrosswindIsNeutral(t *testing.T) {
	w := Wind{SpeedKt: 36, FromDeg: 0}
	k, _ := w.Apply(100, Kinematics{HeadingDeg: 270, ClosureNM: 5})
	assert.InDelta(t, 5, k.ClosureNM, 1e-6)
}

func TestCalmDoesNothing(t *testing.T) {
	k, _ := Calm().Apply(60, Kinematics{HeadingDeg: 123, ClosureNM: 2})
	assert.InDelta(t, 2, k.ClosureNM, 1e-9)
}

func TestChainAppliesInOrder(t *testing.T) {
	c := &Chain{Effects: []Environment{
		Wind{SpeedKt: 36, FromDeg: 270},
		Wind{SpeedKt: 36, FromDeg: 270},
	}}
	k, _ := c.Apply(100, Kinematics{HeadingDeg: 270, ClosureNM: 5})
	assert.InDelta(t, 3, k.ClosureNM, 1e-9)
}

func TestNoOp(t *testing.T) {
	in := Kinematics{AltitudeFt: 1000, AirspeedKt: 200, HeadingDeg: 90, ClosureNM: 1}
	out, warn := NoOp.Apply(60, in)
	assert.Equal(t, in, out)
	assert.Empty(t, warn)
}

func TestTurbulenceWithoutSourceIsNoOp(t *testing.T) {
	out, warn := Turbulence{AmplitudeFt: 50}.Apply(60, Kinematics{AltitudeFt: 1000})
	assert.Equal(t, 1000.0, out.AltitudeFt)
	assert.Empty(t, warn)
}

func TestTurbulenceStaysBoundedAndNonNegative(t *testing.T) {
	tb := Turbulence{AmplitudeFt: 10, R: rand.New(rand.NewSource(7))}
	for i := 0; i < 200; i++ {
		out, _ := tb.Apply(1, Kinematics{AltitudeFt: 5})
		assert.GreaterOrEqual(t, out.AltitudeFt, 0.0)
		assert.LessOrEqual(t, out.AltitudeFt, 15.0)
	}
}
