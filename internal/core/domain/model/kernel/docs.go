// Package kernel provides the domain primitives shared by the order and
// delivery aggregates.
//
// It includes:
//   - UUID: a value object for entity identifiers with validation and comparison
//   - GeoPoint: a value object for WGS84 coordinates used by pickup and drop-off points
//
// Both primitives are immutable and safe for concurrent use. Their zero values
// are invalid; instances must be created through the provided constructors so
// that validation cannot be bypassed.
package kernel
