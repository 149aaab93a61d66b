// Package model provides the typed values extracted from, and fed into,
// VOEvent packets.
//
// These are plain values with no dependency on the XML tree: callers can
// compare, copy and store them freely.
//
// # Positions
//
// [Position2D] describes a sky position (right ascension, declination and an
// error radius) and [Position3D] a geodetic or cartesian position. Both
// satisfy [Position], the argument type accepted when adding observation
// records to a packet:
//
//	p := model.Position2D{RA: 74.7412, Dec: -9.3137, Err: 0.05,
//	    Units: "deg", System: "UTC-FK5-GEO"}
//
// # Parameters
//
// Param attributes are returned as [Attrs]. Because a packet may repeat
// Param and Group names, or omit them entirely, collections of params are
// returned as an ordered [Multimap] that keeps every entry:
//
//	params := voevent.ToplevelParams(doc)
//	first, _ := params.Get("foo")
//	all := params.GetAll("foo")
package model
