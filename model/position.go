package model

// Position is a coordinate value that can be written into an observation
// record. It is implemented by [Position2D] and [Position3D] only.
type Position interface {
	// CoordSystem returns the coordinate system identifier, e.g. UTC-FK5-GEO.
	CoordSystem() string
	// Unit returns the unit label applied to the coordinate values.
	Unit() string

	position()
}

// Position2D is a sky position as described by the VOEvent standard.
type Position2D struct {
	RA     float64 // Right ascension
	Dec    float64 // Declination
	Err    float64 // Error radius
	Units  string  // e.g. deg, rad
	System string  // e.g. UTC-FK5-GEO
}

// CoordSystem returns the coordinate system identifier.
func (p Position2D) CoordSystem() string { return p.System }

// Unit returns the coordinate unit label.
func (p Position2D) Unit() string { return p.Units }

func (Position2D) position() {}

// Position3D is a three-component position, typically the geodetic location
// of an observatory (longitude, latitude, elevation).
type Position3D struct {
	Long   float64
	Lat    float64
	Elev   float64
	Units  string
	System string // e.g. UTC-GEOD-TOPO
}

// CoordSystem returns the coordinate system identifier.
func (p Position3D) CoordSystem() string { return p.System }

// Unit returns the coordinate unit label.
func (p Position3D) Unit() string { return p.Units }

func (Position3D) position() {}
