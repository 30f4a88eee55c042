package primitives

import "github.com/pkg/errors"

// MotionType distinguishes maneuver categories; backward motions carry a
// negative speed on trajectory emission (spec section 9).
type MotionType int

// Motion categories.
const (
	Forward MotionType = iota
	Backward
	Lateral
)

// String implements fmt.Stringer.
func (t MotionType) String() string {
	switch t {
	case Backward:
		return "BACKWARD"
	case Lateral:
		return "LATERAL"
	default:
		return "FORWARD"
	}
}

// IntermediateStep is one cell of a motion's swept path prior to its final
// cell: a relative pose plus the cell offset from the motion's start.
type IntermediateStep struct {
	X, Y, Alpha float64
	DX, DY      int32
}

// Motion is a precomputed maneuver from one discrete heading to another
// with a fixed integer cell displacement, the Go analogue of the original
// PreComputedMotions::Motion struct.
type Motion struct {
	ID                int
	StartTheta        DiscreteAngle
	EndTheta          DiscreteAngle
	DX, DY            int32
	IntermediateSteps []IntermediateStep

	TranslationalDist float64
	AngularDist       float64
	BaseCost          float64
	Speed             float64
	CostMultiplier    float64
	Type              MotionType
}

// Validate checks the invariants spec section 3 assigns to a Motion.
func (m Motion) Validate() error {
	if m.BaseCost <= 0 {
		return errors.Errorf("motion %d: base cost %v must be > 0", m.ID, m.BaseCost)
	}
	return nil
}
