// Package trail implements the follow simulation behind the cursor trail.
//
// A trail is an ordered sequence of points. The lead point (index 0) eases
// toward the pointer, and every other point eases toward its predecessor.
// Both stages are first-order exponential smoothing, so the chain never
// overshoots for speeds in (0, 1].
package trail

import "honnef.co/go/curve"

const (
	// MinAlpha is the opacity floor applied to the faintest dots.
	MinAlpha = 10
	// MinSize is the size floor applied to the smallest dots.
	MinSize = 1.0
)

// Advance moves points one tick toward pointer.
//
// The lead point closes followSpeed of its distance to the pointer on each
// axis; point i then closes lagSpeed of its distance to point i-1, using the
// position point i-1 was given earlier in the same call. Speeds are not
// clamped: 0 freezes a stage, 1 snaps it, anything outside [0, 1]
// extrapolates.
func Advance(points []curve.Point, pointer curve.Point, followSpeed, lagSpeed float64) {
	if len(points) == 0 {
		return
	}
	lead := &points[0]
	lead.X += (pointer.X - lead.X) * followSpeed
	lead.Y += (pointer.Y - lead.Y) * followSpeed
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], &points[i]
		cur.X += (prev.X - cur.X) * lagSpeed
		cur.Y += (prev.Y - cur.Y) * lagSpeed
	}
}

// Reset returns count points, all located at ref.
func Reset(count int, ref curve.Point) []curve.Point {
	if count <= 0 {
		return nil
	}
	points := make([]curve.Point, count)
	for i := range points {
		points[i] = ref
	}
	return points
}

// DotStyle returns the draw size and alpha of dot i in a trail of n dots.
// Both decrease with i and are floored at MinSize and MinAlpha.
func DotStyle(i, n int, maxSize float64) (size float64, alpha uint8) {
	count := float64(max(n, 1))
	a := int(255 * (1 - float64(i)/count))
	size = max(MinSize, maxSize-float64(i)*(maxSize/count))
	return size, uint8(min(max(MinAlpha, a), 255))
}

// Trail owns a point sequence and the coordinate it resets to.
type Trail struct {
	points []curve.Point
	ref    curve.Point
}

// New returns a trail of count points at ref.
func New(count int, ref curve.Point) *Trail {
	return &Trail{points: Reset(count, ref), ref: ref}
}

// SetReference changes the coordinate used by future resets.
func (t *Trail) SetReference(ref curve.Point) { t.ref = ref }

// Sync makes the trail hold exactly count points. A different count discards
// every point and starts over at the reference coordinate. It reports whether a reset happened.
func (t *Trail) Sync(count int) bool {
	if len(t.points) == count {
		return false
	}
	t.points = Reset(count, t.ref)
	return true
}

// Step advances the trail one tick.
func (t *Trail) Step(pointer curve.Point, followSpeed, lagSpeed float64) {
	Advance(t.points, pointer, followSpeed, lagSpeed)
}

// Points returns the current points in draw order. Callers must not modify
// the slice.
func (t *Trail) Points() []curve.Point { return t.points }

// Len returns the number of points.
func (t *Trail) Len() int { return len(t.points) }
