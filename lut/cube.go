package lut

// Cube is a 3D lookup table over the RGB unit cube. Data holds one RGB
// triple per lattice point, flattened as (r*Size*Size + g*Size + b)*3.
// Size must be at least 2 for trilinear interpolation to be meaningful;
// pathological sizes are the caller's responsibility.
type Cube struct {
	Size int
	Data []float32
}

// Generate evaluates the color transform at every lattice point of a
// size^3 cube. Generation is O(size^3); the result is meant to be cached
// and sampled many times via Lookup.
func Generate(size int, p Params) *Cube {
	c := &Cube{
		Size: size,
		Data: make([]float32, size*size*size*3),
	}
	step := 1 / float64(size-1)
	for r := 0; r < size; r++ {
		for g := 0; g < size; g++ {
			for b := 0; b < size; b++ {
				or, og, ob := Apply(float64(r)*step, float64(g)*step, float64(b)*step, p)
				i := (r*size*size + g*size + b) * 3
				c.Data[i+0] = float32(or)
				c.Data[i+1] = float32(og)
				c.Data[i+2] = float32(ob)
			}
		}
	}
	return c
}

// Lookup samples the cube at a normalized RGB triple with trilinear
// interpolation. Inputs are clamped to [0, 1] before mapping onto the
// lattice.
func (c *Cube) Lookup(r, g, b float64) (float64, float64, float64) {
	n := c.Size
	r = clamp01(r) * float64(n-1)
	g = clamp01(g) * float64(n-1)
	b = clamp01(b) * float64(n-1)

	r0, r1, fr := cell(r, n)
	g0, g1, fg := cell(g, n)
	b0, b1, fb := cell(b, n)

	var out [3]float64
	for ch := 0; ch < 3; ch++ {
		c000 := c.at(r0, g0, b0, ch)
		c100 := c.at(r1, g0, b0, ch)
		c010 := c.at(r0, g1, b0, ch)
		c110 := c.at(r1, g1, b0, ch)
		c001 := c.at(r0, g0, b1, ch)
		c101 := c.at(r1, g0, b1, ch)
		c011 := c.at(r0, g1, b1, ch)
		c111 := c.at(r1, g1, b1, ch)

		c00 := c000*(1-fr) + c100*fr
		c10 := c010*(1-fr) + c110*fr
		c01 := c001*(1-fr) + c101*fr
		c11 := c011*(1-fr) + c111*fr

		c0 := c00*(1-fg) + c10*fg
		c1 := c01*(1-fg) + c11*fg

		out[ch] = c0*(1-fb) + c1*fb
	}
	return out[0], out[1], out[2]
}

// cell splits a continuous lattice coordinate into its bracketing indices
// and interpolation fraction.
func cell(v float64, size int) (lo, hi int, frac float64) {
	lo = int(v)
	if lo > size-2 {
		lo = size - 2
	}
	if lo < 0 {
		lo = 0
	}
	return lo, lo + 1, v - float64(lo)
}

func (c *Cube) at(r, g, b, ch int) float64 {
	return float64(c.Data[(r*c.Size*c.Size+g*c.Size+b)*3+ch])
}
