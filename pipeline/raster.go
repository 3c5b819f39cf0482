package pipeline

import "github.com/chewxy/math32"

// Window coordinates are snapped to a fixed-point grid with subPixelBits
// fractional bits. Edge functions are evaluated exactly in int64, so two
// triangles sharing an edge agree on every pixel center along it.
const (
	subPixelBits  = 8
	subPixelScale = 1 << subPixelBits
	halfPixel     = subPixelScale / 2

	// guardBand bounds snapped coordinates, in pixels. Triangles reaching
	// past it are rejected rather than clipped.
	guardBand = 1 << 16
)

// point is a snapped window coordinate.
type point struct {
	x, y int64
}

// triangle is a triangle in window space ready for scan conversion.
// Vertices are ordered so that area is positive.
type triangle struct {
	v    [3]point
	vary [3]*Varyings

	// invW holds 1/w of each vertex for perspective-correct weights.
	invW [3]float32

	area int64

	// bias is 0 for edges that own their boundary pixels (top and left
	// edges) and -1 otherwise. edge i is opposite vertex i.
	bias [3]int64

	minX, maxX, minY, maxY int
}

// setupTriangle maps three clip-space vertices to a width x height
// viewport (y down) and prepares edge functions. It reports false for
// degenerate triangles, triangles behind the eye (w <= 0), triangles past
// the guard band and triangles that cover no pixel center.
func setupTriangle(a, b, c *Varyings, width, height int) (triangle, bool) {
	var t triangle
	t.vary = [3]*Varyings{a, b, c}

	for i, v := range t.vary {
		w := v.Position.W
		if !(w > 0) {
			return t, false
		}
		x := (v.Position.X/w + 1) * 0.5 * float32(width)
		y := (1 - v.Position.Y/w) * 0.5 * float32(height)
		if !(math32.Abs(x) < guardBand && math32.Abs(y) < guardBand) {
			return t, false
		}
		t.v[i] = point{
			x: int64(math32.Round(x * subPixelScale)),
			y: int64(math32.Round(y * subPixelScale)),
		}
		t.invW[i] = 1 / w
	}

	t.area = orient(t.v[0], t.v[1], t.v[2])
	if t.area == 0 {
		return t, false
	}
	if t.area < 0 {
		t.v[1], t.v[2] = t.v[2], t.v[1]
		t.vary[1], t.vary[2] = t.vary[2], t.vary[1]
		t.invW[1], t.invW[2] = t.invW[2], t.invW[1]
		t.area = -t.area
	}

	for i := range 3 {
		from, to := t.v[(i+1)%3], t.v[(i+2)%3]
		if !isTopLeft(from, to) {
			t.bias[i] = -1
		}
	}

	lo, hi := t.v[0], t.v[0]
	for _, p := range t.v[1:] {
		lo.x, hi.x = min(lo.x, p.x), max(hi.x, p.x)
		lo.y, hi.y = min(lo.y, p.y), max(hi.y, p.y)
	}
	t.minX = max(int(centerCeil(lo.x)), 0)
	t.maxX = min(int(centerFloor(hi.x)), width-1)
	t.minY = max(int(centerCeil(lo.y)), 0)
	t.maxY = min(int(centerFloor(hi.y)), height-1)
	if t.minX > t.maxX || t.minY > t.maxY {
		return t, false
	}
	return t, true
}

// orient is twice the signed area of (a, b, p). With y pointing down it is
// positive when a, b, p run clockwise on screen.
func orient(a, b, p point) int64 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

// isTopLeft reports whether the edge a->b of a positively oriented triangle
// is a top edge (horizontal, interior below) or a left edge (running up).
func isTopLeft(a, b point) bool {
	dx, dy := b.x-a.x, b.y-a.y
	return (dy == 0 && dx > 0) || dy < 0
}

// centerCeil returns the smallest pixel index whose center is at or after
// fixed-point coordinate v.
func centerCeil(v int64) int64 {
	return floorDiv(v-halfPixel+subPixelScale-1, subPixelScale)
}

// centerFloor returns the largest pixel index whose center is at or before
// fixed-point coordinate v.
func centerFloor(v int64) int64 {
	return floorDiv(v-halfPixel, subPixelScale)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// cover reports whether the center of pixel (x, y) is inside t and, if so,
// the perspective-correct barycentric weights of the three vertices.
func (t *triangle) cover(x, y int) (l0, l1, l2 float32, ok bool) {
	p := point{
		x: int64(x)*subPixelScale + halfPixel,
		y: int64(y)*subPixelScale + halfPixel,
	}

	w0 := orient(t.v[1], t.v[2], p)
	w1 := orient(t.v[2], t.v[0], p)
	w2 := orient(t.v[0], t.v[1], p)
	if w0+t.bias[0] < 0 || w1+t.bias[1] < 0 || w2+t.bias[2] < 0 {
		return 0, 0, 0, false
	}

	area := float64(t.area)
	b0 := float32(float64(w0)/area) * t.invW[0]
	b1 := float32(float64(w1)/area) * t.invW[1]
	b2 := float32(float64(w2)/area) * t.invW[2]
	sum := b0 + b1 + b2
	return b0 / sum, b1 / sum, b2 / sum, true
}
