package easel

// Affine is a 2D affine transform:
//
//	| A  C  E |
//	| B  D  F |
//	| 0  0  1 |
//
// The editor only ever produces uniform scale plus translation (A == D,
// B == C == 0), but composition and inversion handle the full matrix so
// that sheared or rotated transforms fed in from outside still behave.
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Mul composes two transforms: result = t * o (o applied first).
func (t Affine) Mul(o Affine) Affine {
	return Affine{
		A: t.A*o.A + t.C*o.B,
		B: t.B*o.A + t.D*o.B,
		C: t.A*o.C + t.C*o.D,
		D: t.B*o.C + t.D*o.D,
		E: t.A*o.E + t.C*o.F + t.E,
		F: t.B*o.E + t.D*o.F + t.F,
	}
}

// Translate returns t composed with a translation by (dx, dy).
func (t Affine) Translate(dx, dy float64) Affine {
	return t.Mul(Affine{A: 1, D: 1, E: dx, F: dy})
}

// Scale returns t composed with a uniform scale by s.
func (t Affine) Scale(s float64) Affine {
	return t.Mul(Affine{A: s, D: s})
}

// Det returns the determinant of the linear part.
func (t Affine) Det() float64 {
	return t.A*t.D - t.C*t.B
}

// Invert computes the inverse transform. ok is false when the matrix is
// singular (determinant ≈ 0); callers must treat that as a no-op rather
// than using the returned value.
func (t Affine) Invert() (inv Affine, ok bool) {
	det := t.Det()
	if det > -1e-12 && det < 1e-12 {
		return Identity(), false
	}
	invDet := 1.0 / det
	a := t.D * invDet
	b := -t.B * invDet
	c := -t.C * invDet
	d := t.A * invDet
	return Affine{
		A: a, B: b, C: c, D: d,
		E: -(a*t.E + c*t.F),
		F: -(b*t.E + d*t.F),
	}, true
}

// Apply transforms the point (x, y).
func (t Affine) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.E, t.B*x + t.D*y + t.F
}

// ToWorld maps a screen-space point into world space via the inverse
// transform. ok is false for a degenerate transform.
func (t Affine) ToWorld(sx, sy float64) (wx, wy float64, ok bool) {
	inv, ok := t.Invert()
	if !ok {
		return sx, sy, false
	}
	wx, wy = inv.Apply(sx, sy)
	return wx, wy, true
}

// ZoomAbout returns t scaled by s about the screen-space pivot (px, py):
// the pivot is mapped to world space and the scale is applied around it,
// so the pivot's screen position is unchanged by the zoom.
//
// ok is false when t is degenerate or the resulting horizontal scale falls
// outside [MinZoom, MaxZoom]; the caller keeps the prior transform.
func (t Affine) ZoomAbout(s, px, py float64) (Affine, bool) {
	wx, wy, ok := t.ToWorld(px, py)
	if !ok {
		return t, false
	}
	next := t.Translate(wx, wy).Scale(s).Translate(-wx, -wy)
	if next.A < MinZoom || next.A > MaxZoom {
		return t, false
	}
	return next, true
}

// Pan returns t translated by the screen-space delta (dx, dy). The delta is
// applied in a de-scaled space so that panning speed is screen-consistent
// regardless of the current zoom level.
func (t Affine) Pan(dx, dy float64) Affine {
	if t.A == 0 {
		return t
	}
	return t.Scale(1 / t.A).Translate(dx, dy).Scale(t.A)
}
