package parameter

import "time"

// Ping-Pong Card
const (
	// PingPongLimit is the offset magnitude at which Dummy reverses
	PingPongLimit = 12

	// PingPongStep is the offset change per update
	PingPongStep = 1
)

// Trail
const (
	// TrailLength is the maximum number of live trail cells; the oldest are removed beyond it
	TrailLength = 60

	// TrailRadius is the inner radius of the two-point trail
	TrailRadius = 1

	// TrailSpacing separates the two trail points and is added per point to the radius
	TrailSpacing = 3

	// TrailRadiusStep is the radius change per PgUp/PgDn
	TrailRadiusStep = 1

	// TrailAngleStep is the rotation per update in radians
	TrailAngleStep = 0.1
)

// Color Curve
const (
	// CurveCutoff is the update at which the curve is switched off and starts falling
	CurveCutoff = 200

	// CurveFallStart is the minimum step count once the curve is switched off
	CurveFallStart = 150

	// CurveSpan is the number of steps over which the curve's x runs 0..CurveWidth
	CurveSpan = 300

	// CurveWidth is the curve's horizontal extent in scaled units
	CurveWidth = 1000

	// CurveFloor is the lowest channel intensity of the curve color
	CurveFloor = 0x70

	// CurveScaleX, CurveScaleY map curve units to cells
	CurveScaleX = 20
	CurveScaleY = 32
)

// Demo Setup
const (
	// PatternCount is the number of seeded patterns painted at startup
	PatternCount = 5

	// GlideDuration is how long Root takes to reach a pointer click
	GlideDuration = 600 * time.Millisecond

	// RootLabel and DummyLabel caption the two demo cards
	RootLabel  = "Root Node"
	DummyLabel = "Dummy"
)
