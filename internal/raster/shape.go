package raster

// RoundRect is an axis-aligned rectangle with circular corners of radius R.
type RoundRect struct {
	X, Y float64 // origin (top-left)
	W, H float64
	R    float64
}

// Contains reports whether (x, y) lies inside r. Edges are inclusive and the
// test is exact: no coverage is computed.
func (r RoundRect) Contains(x, y float64) bool {
	x1, y1 := r.X+r.W, r.Y+r.H
	if r.X+r.R <= x && x <= x1-r.R && r.Y <= y && y <= y1 {
		return true
	}
	if r.X <= x && x <= x1 && r.Y+r.R <= y && y <= y1-r.R {
		return true
	}

	cx0, cy0 := r.X+r.R, r.Y+r.R
	cx1, cy1 := x1-r.R, y1-r.R
	rad2 := r.R * r.R
	switch {
	case x < cx0 && y < cy0:
		return sq(x-cx0)+sq(y-cy0) <= rad2
	case x > cx1 && y < cy0:
		return sq(x-cx1)+sq(y-cy0) <= rad2
	case x < cx0 && y > cy1:
		return sq(x-cx0)+sq(y-cy1) <= rad2
	case x > cx1 && y > cy1:
		return sq(x-cx1)+sq(y-cy1) <= rad2
	}
	return false
}

// Inset shrinks r by d on every side and reduces the corner radius by d,
// never below zero.
func (r RoundRect) Inset(d float64) RoundRect {
	rad := r.R - d
	if rad < 0 {
		rad = 0
	}
	return RoundRect{
		X: r.X + d,
		Y: r.Y + d,
		W: r.W - 2*d,
		H: r.H - 2*d,
		R: rad,
	}
}

func sq(v float64) float64 { return v * v }
