// Package definitions lists the closed vocabularies of the VOEvent v2.0
// standard: packet roles, citation types, coordinate systems, observatory
// locations and units.
//
// The constants are conveniences. The library does not reject values outside
// these lists; the schema does that when a packet is validated.
package definitions

// Namespace URIs of the VOEvent schema versions.
const (
	NamespaceV2_0 = "http://www.ivoa.net/xml/VOEvent/v2.0"
	NamespaceV1_1 = "http://www.ivoa.net/xml/VOEvent/v1.1"
)

// Packet roles.
const (
	RoleObservation = "observation"
	RolePrediction  = "prediction"
	RoleUtility     = "utility"
	RoleTest        = "test"
)

// Roles lists every packet role, in the order given by the standard.
var Roles = []string{RoleObservation, RolePrediction, RoleUtility, RoleTest}

// Citation types, used as the cite attribute of an EventIVORN.
const (
	CiteFollowup   = "followup"
	CiteSupersedes = "supersedes"
	CiteRetraction = "retraction"
)

// CiteTypes lists every citation type.
var CiteTypes = []string{CiteFollowup, CiteSupersedes, CiteRetraction}

// Sky coordinate systems. The identifier is time scale, spatial frame and
// reference position joined with dashes.
const (
	SkyUTCFK5Geo   = "UTC-FK5-GEO"
	SkyUTCFK5Topo  = "UTC-FK5-TOPO"
	SkyUTCICRSGeo  = "UTC-ICRS-GEO"
	SkyUTCICRSTopo = "UTC-ICRS-TOPO"
	SkyTTICRSTopo  = "TT-ICRS-TOPO"
	SkyTDBICRSBary = "TDB-ICRS-BARY"
	SkyGPSICRSGeo  = "GPS-ICRS-GEO"
)

// Observatory locations for satellites and generic sites.
const (
	ObservatoryGeoSurface = "GEOSURFACE"
	ObservatoryGeoLun     = "GEOLUN"
	ObservatoryGeoCenter  = "GEOCENTER"
	ObservatoryBarycenter = "BARYCENTER"
	ObservatoryUnknown    = "UNKNOWN"
)

// Geodetic coordinate system used for Position3D observatory locations.
const GeodeticUTCTopo = "UTC-GEOD-TOPO"

// Units of coordinate values.
const (
	UnitDegrees     = "deg"
	UnitRadians     = "rad"
	UnitMillimetres = "mm"
	UnitMetres      = "m"
	UnitSeconds     = "s"
)

// Param data types allowed by the schema.
const (
	DataTypeString = "string"
	DataTypeInt    = "int"
	DataTypeFloat  = "float"
)

// Time scales recognised at the start of a coordinate system identifier.
const (
	TimeScaleUTC = "UTC"
	TimeScaleTDB = "TDB"
	TimeScaleTT  = "TT"
	TimeScaleGPS = "GPS"
)

// IsRole reports whether s is one of the standard packet roles.
func IsRole(s string) bool {
	return contains(Roles, s)
}

// IsCiteType reports whether s is one of the standard citation types.
func IsCiteType(s string) bool {
	return contains(CiteTypes, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
