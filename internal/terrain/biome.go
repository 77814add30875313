package terrain

// Family is a biome family. Every grid tile belongs to exactly one family,
// decided by the smooth elevation and moisture fields; the per-tile hash
// only varies shading inside the family, never the family itself.
type Family int

const (
	Water Family = iota
	Beach
	Swamp
	Grassland
	Plains
	Forest
	Desert
	Mountain

	familyCount
)

// String returns a human-readable name for the family.
func (f Family) String() string {
	switch f {
	case Water:
		return "Water"
	case Beach:
		return "Beach"
	case Swamp:
		return "Swamp"
	case Grassland:
		return "Grassland"
	case Plains:
		return "Plains"
	case Forest:
		return "Forest"
	case Desert:
		return "Desert"
	case Mountain:
		return "Mountain"
	default:
		return "Unknown"
	}
}

// FamilyByName resolves a family from its catalog spelling.
// Unknown names report false.
func FamilyByName(name string) (Family, bool) {
	for f := Water; f < familyCount; f++ {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}

// Elevation thresholds carve water, shoreline and mountains; the moisture
// bands split the remaining midlands. Thresholds sit around the fbm mean of
// 0.5 so every family actually occurs on the grid.
const (
	seaLevel      = 0.38
	shoreLevel    = 0.42
	mountainLevel = 0.66
)

// classify assigns a family from the elevation and moisture fields.
func classify(elevation, moisture float64) Family {
	switch {
	case elevation < seaLevel:
		return Water
	case elevation < shoreLevel:
		return Beach
	case elevation > mountainLevel:
		return Mountain
	}
	switch {
	case moisture < 0.34:
		return Desert
	case moisture < 0.46:
		return Plains
	case moisture < 0.56:
		return Grassland
	case moisture < 0.68:
		return Forest
	default:
		return Swamp
	}
}
