package primitives

// Table is the Motion Primitive Table external collaborator contract
// (spec section 6): a read-only index from start heading to the motions
// available from it, plus lookup by id.
type Table interface {
	MotionsFor(theta DiscreteAngle) []Motion
	Get(id int) (Motion, bool)
}

// SliceTable is a slice-backed Table, the default implementation a caller
// populates from an offline-computed spline primitive set.
type SliceTable struct {
	numAngles int
	byTheta   [][]Motion
	byID      map[int]Motion
}

// NewSliceTable returns an empty table sized for numAngles discrete
// headings.
func NewSliceTable(numAngles int) *SliceTable {
	return &SliceTable{
		numAngles: numAngles,
		byTheta:   make([][]Motion, numAngles),
		byID:      make(map[int]Motion),
	}
}

// Add inserts a motion, indexed by its StartTheta and ID.
func (t *SliceTable) Add(m Motion) {
	t.byTheta[m.StartTheta] = append(t.byTheta[m.StartTheta], m)
	t.byID[m.ID] = m
}

// MotionsFor implements Table.
func (t *SliceTable) MotionsFor(theta DiscreteAngle) []Motion {
	return t.byTheta[theta]
}

// Get implements Table.
func (t *SliceTable) Get(id int) (Motion, bool) {
	m, ok := t.byID[id]
	return m, ok
}
