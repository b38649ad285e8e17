package imaging

import "math"

// gaussianKernel returns the normalized 1-D kernel of radius int(3*sigma+0.5).
func gaussianKernel(sigma float64) []float64 {
	radius := int(3*sigma + 0.5)
	if radius < 1 {
		radius = 1
	}
	k := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range k {
		d := float64(i - radius)
		k[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// reflect maps any index onto [0, n) by mirroring about the edges (d c b a | a b c d | d c b a).
func reflect(i, n int) int {
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

// GaussianBlur convolves g with a separable gaussian of standard deviation
// sigma (in pixels). Edges are reflected. A non-positive sigma returns a copy.
func GaussianBlur(g *Gray, sigma float64) *Gray {
	if sigma <= 0 {
		return g.Clone()
	}
	k := gaussianKernel(sigma)
	radius := len(k) / 2
	tmp := NewGray(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			v := 0.0
			for i, w := range k {
				v += w * g.At(reflect(x+i-radius, g.W), y)
			}
			tmp.Set(x, y, v)
		}
	}
	out := NewGray(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			v := 0.0
			for i, w := range k {
				v += w * tmp.At(x, reflect(y+i-radius, g.H))
			}
			out.Set(x, y, v)
		}
	}
	return out
}
