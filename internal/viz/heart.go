package viz

import "github.com/san-kum/cardiosim/internal/pacer"

// Heart sizes the pulse spring pulls towards in each phase.
const (
	systoleScale  = 0.78
	diastoleScale = 1.0
)

func phaseScale(p pacer.Phase) float64 {
	if p == pacer.Systole {
		return systoleScale
	}
	return diastoleScale
}

// drawHeart fills the implicit heart (x²+y²-1)³ - x²y³ <= 0 centred on c.
// At scale 1 it spans the canvas height.
func drawHeart(c *Canvas, scale float64) {
	w, h := float64(c.Width*2), float64(c.Height*4)
	// The curve spans y in [-1, 1.25] and x in [-1.14, 1.14].
	unit := min(w/2.3, h/2.25) * scale
	if unit <= 0 {
		return
	}
	cx, cy := w/2, h/2
	c.Fill(func(px, py int) bool {
		x := (float64(px) + 0.5 - cx) / unit
		y := 0.125 + (cy-float64(py)-0.5)/unit
		a := x*x + y*y - 1
		return a*a*a-x*x*y*y*y <= 0
	})
}

// drawTrace draws one beat of an ECG strip: a QRS spike while the heart
// contracts, a flat line with a small T wave otherwise.
func drawTrace(c *Canvas, p pacer.Phase) {
	w, h := c.Width*2, c.Height*4
	mid := h / 2
	if p != pacer.Systole {
		c.DrawLine(0, mid, w*5/8, mid)
		c.DrawLine(w*5/8, mid, w*11/16, mid-h/6)
		c.DrawLine(w*11/16, mid-h/6, w*3/4, mid)
		c.DrawLine(w*3/4, mid, w-1, mid)
		return
	}
	x0 := w * 3 / 8
	c.DrawLine(0, mid, x0, mid)
	c.DrawLine(x0, mid, x0+w/20, mid+h/6)
	c.DrawLine(x0+w/20, mid+h/6, x0+w/10, 0)
	c.DrawLine(x0+w/10, 0, x0+w/7, h-1)
	c.DrawLine(x0+w/7, h-1, x0+w/6, mid)
	c.DrawLine(x0+w/6, mid, w-1, mid)
}
