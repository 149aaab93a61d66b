// Package voevent builds, parses, validates and queries VOEvent v2.0
// packets, the XML messages astronomers use to announce transient events.
//
// Basic usage:
//
//	d := voevent.New("voevent.example.org/TEST", 42, voevent.RoleTest)
//	voevent.SetWho(d, time.Now(), "voevent.example.org/robot")
//	voevent.SetAuthor(d, voevent.Author{Title: "Example alerts", ContactName: "A. Observer"})
//	if err := voevent.AssertValid(d); err != nil {
//	    // handle error
//	}
//	data, err := d.Bytes()
//
// Reading a packet:
//
//	d, err := voevent.LoadFile("packet.xml")
//	if err != nil {
//	    // handle error
//	}
//	pos, err := voevent.EventPosition(d, 0)
//
// Documents are plain in-memory trees and are not safe for concurrent
// mutation; distinct documents may be used from different goroutines.
package voevent

import (
	"github.com/tsawler/voevent/definitions"
)

// LibraryVersion identifies this package in packets it creates.
const LibraryVersion = "1.0.0"

// Roles re-exported for convenience.
const (
	RoleObservation = definitions.RoleObservation
	RolePrediction  = definitions.RolePrediction
	RoleUtility     = definitions.RoleUtility
	RoleTest        = definitions.RoleTest
)

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	p := voevent.Must(voevent.NewParam("Magnitude", 16.2))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
