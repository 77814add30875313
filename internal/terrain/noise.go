package terrain

import "math"

// smoothNoise is 2D value noise: uniform lattice values from the coordinate
// hash, blended with a smoothstep fade. Continuous in both axes, so nearby
// tiles get nearby values, which is what makes biome regions contiguous.
func smoothNoise(seed uint32, fx, fy float64) float64 {
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fade(fx - float64(x0))
	ty := fade(fy - float64(y0))

	v00 := hashUnit(seed, x0, y0)
	v10 := hashUnit(seed, x0+1, y0)
	v01 := hashUnit(seed, x0, y0+1)
	v11 := hashUnit(seed, x0+1, y0+1)

	top := lerp(v00, v10, tx)
	bottom := lerp(v01, v11, tx)
	return lerp(top, bottom, ty)
}

// fbm layers octaves of smoothNoise, each twice the frequency and half the
// weight of the last, normalized back onto [0, 1].
func fbm(seed uint32, fx, fy float64, octaves int) float64 {
	sum := 0.0
	amp := 1.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		sum += amp * smoothNoise(seed+uint32(i)*0x27d4eb2f, fx, fy)
		norm += amp
		fx *= 2
		fy *= 2
		amp *= 0.5
	}
	return sum / norm
}

func fade(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
