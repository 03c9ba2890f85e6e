package image

// kappa places cubic control points so that a quarter arc meets the true
// circle at its midpoint.
const kappa = 0.5522847498

// PathBuilder receives path segments. *gg.Context satisfies it.
type PathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(x1, y1, x2, y2, x3, y3 float64)
}

// RoundedRectPath appends a rounded rectangle to the current path of p,
// starting and ending at (x+r, y). It neither clears nor closes the path.
// A radius larger than min(w,h)/2 is not clamped; the corners then overlap.
func RoundedRectPath(p PathBuilder, x, y, w, h, r float64) {
	k := r * kappa

	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	if r > 0 {
		p.CubicTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r)
	}
	p.LineTo(x+w, y+h-r)
	if r > 0 {
		p.CubicTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
	}
	p.LineTo(x+r, y+h)
	if r > 0 {
		p.CubicTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r)
	}
	p.LineTo(x, y+r)
	if r > 0 {
		p.CubicTo(x, y+r-k, x+r-k, y, x+r, y)
	}
}
