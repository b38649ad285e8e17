package imaging

// Labels is a labeled image: 0 is background, objects are 1..N.
type Labels struct {
	W, H int
	Pix  []int
	N    int
}

// At returns the label at column x, row y.
func (l *Labels) At(x, y int) int {
	return l.Pix[y*l.W+x]
}

// Label finds the 8-connected components of m. Labels are assigned in
// raster order of each component's first pixel.
func Label(m *Mask) *Labels {
	l := &Labels{W: m.W, H: m.H, Pix: make([]int, len(m.Pix))}
	var queue []int
	for start, on := range m.Pix {
		if !on || l.Pix[start] != 0 {
			continue
		}
		l.N++
		l.Pix[start] = l.N
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			px, py := p%m.W, p/m.W
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					x, y := px+dx, py+dy
					if x < 0 || y < 0 || x >= m.W || y >= m.H {
						continue
					}
					q := y*m.W + x
					if m.Pix[q] && l.Pix[q] == 0 {
						l.Pix[q] = l.N
						queue = append(queue, q)
					}
				}
			}
		}
	}
	return l
}

// Region describes one labeled object.
type Region struct {
	Label         int
	Area          int
	MinX, MinY    int
	MaxX, MaxY    int // inclusive
	MeanIntensity float64
}

// TouchesBorder returns whether the region has a pixel on the edge of a w x h image.
func (r Region) TouchesBorder(w, h int) bool {
	return r.MinX == 0 || r.MinY == 0 || r.MaxX == w-1 || r.MaxY == h-1
}

// Regions returns the properties of every object, indexed by label-1.
// intensity may be nil, in which case MeanIntensity is zero.
func Regions(l *Labels, intensity *Gray) ([]Region, error) {
	if intensity != nil && (intensity.W != l.W || intensity.H != l.H) {
		return nil, ErrSizeMismatch
	}
	regions := make([]Region, l.N)
	for i := range regions {
		regions[i] = Region{Label: i + 1, MinX: l.W, MinY: l.H, MaxX: -1, MaxY: -1}
	}
	for p, lbl := range l.Pix {
		if lbl == 0 {
			continue
		}
		r := &regions[lbl-1]
		x, y := p%l.W, p/l.W
		r.Area++
		r.MinX, r.MaxX = min(r.MinX, x), max(r.MaxX, x)
		r.MinY, r.MaxY = min(r.MinY, y), max(r.MaxY, y)
		if intensity != nil {
			r.MeanIntensity += intensity.Pix[p]
		}
	}
	for i := range regions {
		if regions[i].Area > 0 {
			regions[i].MeanIntensity /= float64(regions[i].Area)
		}
	}
	return regions, nil
}

// keep returns a relabeled copy of l holding only the objects for which
// keep(region) is true, numbered 1..N in their original order.
func (l *Labels) keep(f func(Region) bool) *Labels {
	regions, _ := Regions(l, nil)
	newLabel := make([]int, l.N+1)
	out := &Labels{W: l.W, H: l.H, Pix: make([]int, len(l.Pix))}
	for _, r := range regions {
		if f(r) {
			out.N++
			newLabel[r.Label] = out.N
		}
	}
	for p, lbl := range l.Pix {
		out.Pix[p] = newLabel[lbl]
	}
	return out
}

// ClearBorder drops the objects touching the image edge.
func ClearBorder(l *Labels) *Labels {
	return l.keep(func(r Region) bool { return !r.TouchesBorder(l.W, l.H) })
}

// FilterArea keeps the objects whose area, in pixels, is within [lo, hi].
func FilterArea(l *Labels, lo, hi float64) *Labels {
	return l.keep(func(r Region) bool {
		a := float64(r.Area)
		return a >= lo && a <= hi
	})
}
