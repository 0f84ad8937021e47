package calc

import (
	"errors"
	"fmt"
	"time"
)

// DefaultNightAngle is the end of evening civil twilight. EASA defines night as
// the period between the end of evening civil twilight and the beginning of
// morning civil twilight.
const DefaultNightAngle = -6.0

// MaxBlockMinutes bounds the block time accepted by the engine: one week.
const MaxBlockMinutes = 7 * 24 * 60

var (
	ErrNegativeDuration = errors.New("block time must not be negative")
	ErrBlockTooLong     = errors.New("block time too long")
)

// CalculateNightTime returns how many minutes of a flight were flown with the
// sun below nightAngle degrees. The flight is assumed to follow the great circle
// from dept to dest at a constant rate, and each minute is judged at its start
// time and position, so the destination sample itself is never evaluated.
func CalculateNightTime(dept, dest GeoCoordinate, blockOff time.Time, blockMinutes int, nightAngle float64) (int, error) {
	if blockMinutes < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeDuration, blockMinutes)
	}
	if blockMinutes > MaxBlockMinutes {
		return 0, fmt.Errorf("%w: %d minutes exceeds %d", ErrBlockTooLong, blockMinutes, MaxBlockMinutes)
	}
	if blockMinutes == 0 {
		return 0, nil
	}

	route, err := IntermediatePointsOnGreatCircle(dept, dest, blockMinutes)
	if err != nil {
		return 0, err
	}

	blockOff = blockOff.UTC()
	nightMinutes := 0
	for i := 0; i < blockMinutes; i++ {
		at := blockOff.Add(time.Duration(i) * time.Minute)
		if SolarElevation(at, route[i].Latitude, route[i].Longitude) < nightAngle {
			nightMinutes++
		}
	}
	return nightMinutes, nil
}

// IsNight reports whether the sun is below nightAngle at the given position and time.
func IsNight(c GeoCoordinate, t time.Time, nightAngle float64) bool {
	return SolarElevation(t, c.Latitude, c.Longitude) < nightAngle
}

// NightTimeValues bundles the night-related values of a single flight.
type NightTimeValues struct {
	NightMinutes int  `json:"night_minutes"`
	BlockMinutes int  `json:"block_minutes"`
	TakeOffNight bool `json:"takeoff_night"`
	LandingNight bool `json:"landing_night"`
}

// NewNightTimeValues computes night minutes and classifies takeoff and landing.
// A flight entirely by day or entirely by night needs no extra evaluation;
// otherwise the sun is checked at departure on block-off and at destination on block-on.
// A zero block takes that last path, so both checks happen at the block-off instant.
func NewNightTimeValues(dept, dest GeoCoordinate, blockOff time.Time, blockMinutes int, nightAngle float64) (NightTimeValues, error) {
	nightMinutes, err := CalculateNightTime(dept, dest, blockOff, blockMinutes, nightAngle)
	if err != nil {
		return NightTimeValues{}, err
	}

	v := NightTimeValues{NightMinutes: nightMinutes, BlockMinutes: blockMinutes}
	switch {
	case blockMinutes > 0 && nightMinutes == 0:
	case blockMinutes > 0 && nightMinutes == blockMinutes:
		v.TakeOffNight = true
		v.LandingNight = true
	default:
		v.TakeOffNight = IsNight(dept, blockOff, nightAngle)
		v.LandingNight = IsNight(dest, blockOff.Add(time.Duration(blockMinutes)*time.Minute), nightAngle)
	}
	return v, nil
}

func (v NightTimeValues) IsAllDay() bool     { return !v.TakeOffNight && !v.LandingNight }
func (v NightTimeValues) IsAllNight() bool   { return v.TakeOffNight && v.LandingNight }
func (v NightTimeValues) IsDayToNight() bool { return !v.TakeOffNight && v.LandingNight }
func (v NightTimeValues) IsNightToDay() bool { return v.TakeOffNight && !v.LandingNight }

// TakeoffLandingSplit is the day/night breakdown of takeoff and landing counts.
type TakeoffLandingSplit struct {
	TakeoffsDay   int `json:"takeoffs_day"`
	TakeoffsNight int `json:"takeoffs_night"`
	LandingsDay   int `json:"landings_day"`
	LandingsNight int `json:"landings_night"`
}

// SplitTakeoffsLandings assigns all takeoffs and landings of a flight to the
// day or night column according to the classification in v.
func SplitTakeoffsLandings(v NightTimeValues, takeoffs, landings int) TakeoffLandingSplit {
	var s TakeoffLandingSplit
	if v.TakeOffNight {
		s.TakeoffsNight = takeoffs
	} else {
		s.TakeoffsDay = takeoffs
	}
	if v.LandingNight {
		s.LandingsNight = landings
	} else {
		s.LandingsDay = landings
	}
	return s
}
