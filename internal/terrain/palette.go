package terrain

import colorful "github.com/lucasb-eyer/go-colorful"

// ramps hold the dark-to-light shade stops for each family. Tiles pick a
// position on their family's ramp from the shade field, so one biome region
// reads as a textured surface instead of a flat fill.
var ramps = [familyCount][3]colorful.Color{
	Water:     {mustHex("#0f3a5f"), mustHex("#1b4f72"), mustHex("#2e6da4")},
	Beach:     {mustHex("#c2a878"), mustHex("#d9c08c"), mustHex("#efdcab")},
	Swamp:     {mustHex("#39482a"), mustHex("#4c5b2f"), mustHex("#5e6f3c")},
	Grassland: {mustHex("#4a7c3b"), mustHex("#5c9246"), mustHex("#74ab58")},
	Plains:    {mustHex("#8a9a4b"), mustHex("#a3b25b"), mustHex("#bcc76e")},
	Forest:    {mustHex("#1e4d2b"), mustHex("#2a6135"), mustHex("#3a7a45")},
	Desert:    {mustHex("#b5853f"), mustHex("#cf9d4e"), mustHex("#e3b867")},
	Mountain:  {mustHex("#5b5f66"), mustHex("#73777e"), mustHex("#8e9299")},
}

// glint is the highlight water shades shimmer toward at the tightest zoom.
var glint = mustHex("#a9d6e5")

// rampColor picks a position on a family's shade ramp. t runs dark to light
// over [0, 1]; blending happens in Lab space so the steps read evenly.
func rampColor(f Family, t float64) colorful.Color {
	if f < 0 || f >= familyCount {
		f = Grassland
	}
	stops := ramps[f]
	if t <= 0.5 {
		return stops[0].BlendLab(stops[1], t*2)
	}
	return stops[1].BlendLab(stops[2], (t-0.5)*2)
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("terrain: bad palette constant: " + s)
	}
	return c
}
