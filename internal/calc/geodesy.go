// Package calc holds the numeric core of the logbook: great-circle geometry,
// a low-precision solar position model and the night-time engine built on both.
//
// Inputs and outputs are decimal degrees unless stated otherwise; calculations
// run in radians. Nothing in here touches storage.
package calc

import (
	"errors"
	"fmt"
	"math"
)

const (
	// NauticalMilesPerRadian converts an angular distance on the earth to nautical miles.
	NauticalMilesPerRadian = 3440.06479482

	// coincidentEpsilon is the angular distance (radians) below which two points are treated as the same.
	coincidentEpsilon = 1e-12
)

var (
	ErrInvalidCoordinate  = errors.New("coordinate out of range")
	ErrDegenerateGeometry = errors.New("degenerate great circle geometry")
)

// GeoCoordinate is a position in decimal degrees. S and W are negative.
type GeoCoordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// NewGeoCoordinate validates and builds a coordinate.
func NewGeoCoordinate(lat, lon float64) (GeoCoordinate, error) {
	c := GeoCoordinate{Latitude: lat, Longitude: lon}
	if !c.Valid() {
		return GeoCoordinate{}, fmt.Errorf("%w: lat=%f lon=%f", ErrInvalidCoordinate, lat, lon)
	}
	return c, nil
}

// Valid reports whether latitude is within [-90,90] and longitude within [-180,180].
func (c GeoCoordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

func (c GeoCoordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Latitude, c.Longitude)
}

func DegToRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

func RadToDeg(rad float64) float64 {
	return rad * (180 / math.Pi)
}

// RadToNauticalMiles converts an angular distance in radians to nautical miles.
func RadToNauticalMiles(rad float64) float64 {
	return rad * NauticalMilesPerRadian
}

// clamp keeps asin/acos arguments inside their domain when rounding pushes them over.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// GreatCircleDistance returns the angular distance in radians between two
// points given in decimal degrees, using the haversine formula.
func GreatCircleDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1 = DegToRad(lat1)
	lon1 = DegToRad(lon1)
	lat2 = DegToRad(lat2)
	lon2 = DegToRad(lon2)

	sinHalfDeltaLat := math.Sin((lat2 - lat1) / 2)
	sinHalfDeltaLon := math.Sin((lon2 - lon1) / 2)

	a := sinHalfDeltaLat*sinHalfDeltaLat +
		math.Cos(lat1)*math.Cos(lat2)*sinHalfDeltaLon*sinHalfDeltaLon

	return 2 * math.Asin(math.Sqrt(clamp(a, 0, 1)))
}

// Distance is GreatCircleDistance for two coordinates.
func Distance(a, b GeoCoordinate) float64 {
	return GreatCircleDistance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// IntermediatePointsOnGreatCircle returns totalMinutes+1 points spaced equally
// along the great circle from "from" to "to". Index 0 is the departure point and
// index totalMinutes the destination, so each step is one minute of block time.
//
// Coincident endpoints yield totalMinutes+1 copies of "from". totalMinutes above
// MaxBlockMinutes is rejected with ErrBlockTooLong.
func IntermediatePointsOnGreatCircle(from, to GeoCoordinate, totalMinutes int) ([]GeoCoordinate, error) {
	if totalMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d minutes", ErrDegenerateGeometry, totalMinutes)
	}
	if totalMinutes > MaxBlockMinutes {
		return nil, fmt.Errorf("%w: %d minutes exceeds %d", ErrBlockTooLong, totalMinutes, MaxBlockMinutes)
	}

	points := make([]GeoCoordinate, totalMinutes+1)

	d := Distance(from, to)
	if d < coincidentEpsilon {
		for i := range points {
			points[i] = from
		}
		return points, nil
	}

	lat1 := DegToRad(from.Latitude)
	lon1 := DegToRad(from.Longitude)
	lat2 := DegToRad(to.Latitude)
	lon2 := DegToRad(to.Longitude)

	// unit vectors of both endpoints
	x1, y1, z1 := math.Cos(lat1)*math.Cos(lon1), math.Cos(lat1)*math.Sin(lon1), math.Sin(lat1)
	x2, y2, z2 := math.Cos(lat2)*math.Cos(lon2), math.Cos(lat2)*math.Sin(lon2), math.Sin(lat2)
	sinD := math.Sin(d)

	for i := 1; i < totalMinutes; i++ {
		f := float64(i) / float64(totalMinutes)
		a := math.Sin((1-f)*d) / sinD
		b := math.Sin(f*d) / sinD

		x := a*x1 + b*x2
		y := a*y1 + b*y2
		z := a*z1 + b*z2

		points[i] = GeoCoordinate{
			Latitude:  RadToDeg(math.Atan2(z, math.Sqrt(x*x+y*y))),
			Longitude: RadToDeg(math.Atan2(y, x)),
		}
	}
	points[0] = from
	points[totalMinutes] = to

	return points, nil
}
