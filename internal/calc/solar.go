package calc

import (
	"math"
	"time"
)

const (
	// observerAltitudeKm is the assumed average cruise altitude of a passenger jet (~FL360).
	observerAltitudeKm = 11.0

	// earthSunDistanceKm is one astronomical unit.
	earthSunDistanceKm = 149598000.0

	// dayZeroJDN is the Julian day number of 1999-12-31, so that d == 1.0 at 2000-01-01 00:00 UT.
	// The orbital elements below are referenced to that day count.
	dayZeroJDN = 2451544
)

// julianDayNumber returns the Julian day number of a Gregorian calendar date.
func julianDayNumber(year int, month time.Month, day int) int {
	a := (14 - int(month)) / 12
	y := year + 4800 - a
	m := int(month) + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

func sinDeg(deg float64) float64 { return math.Sin(DegToRad(deg)) }
func cosDeg(deg float64) float64 { return math.Cos(DegToRad(deg)) }

// SolarElevation calculates the elevation of the sun in degrees above the
// horizon for an observer at lat/lon (decimal degrees) at the given instant,
// which is interpreted as UTC.
//
// Low precision model after http://stjarnhimlen.se/comp/tutorial.html#5,
// good to roughly one degree over several decades.
func SolarElevation(t time.Time, lat, lon float64) float64 {
	t = t.UTC()
	uth := float64(t.Hour()) + float64(t.Minute())/60.0 + float64(t.Second())/3600.0

	d := float64(julianDayNumber(t.Year(), t.Month(), t.Day())-dayZeroJDN) + uth/24.0

	// orbital elements, degrees
	w := 282.9404 + 4.70935e-5*d // longitude of perihelion
	e := 0.016709 - 1.151e-9*d   // eccentricity
	M := math.Mod(356.0470+0.9856002585*d, 360.0)
	if M < 0 {
		M += 360.0
	}
	oblecl := 23.4393 - 3.563e-7*d // obliquity of the ecliptic
	L := w + M                     // mean longitude

	// eccentric anomaly, single correction term
	E := M + (180/math.Pi)*e*sinDeg(M)*(1+e*cosDeg(M))

	// position in the plane of the ecliptic
	x := cosDeg(E) - e
	y := sinDeg(E) * math.Sqrt(1-e*e)
	r := math.Sqrt(x*x + y*y)
	v := RadToDeg(math.Atan2(y, x))
	solarLongitude := v + w

	xEclip := r * cosDeg(solarLongitude)
	yEclip := r * sinDeg(solarLongitude)

	// rotate to equatorial; z of the ecliptic coordinates is 0
	xEquat := xEclip
	yEquat := yEclip * cosDeg(oblecl)
	zEquat := yEclip * sinDeg(oblecl)

	r = math.Sqrt(xEquat*xEquat+yEquat*yEquat+zEquat*zEquat) - observerAltitudeKm/earthSunDistanceKm
	ra := RadToDeg(math.Atan2(yEquat, xEquat))
	decl := RadToDeg(math.Asin(clamp(zEquat/r, -1, 1)))

	// local sidereal time in hours
	gmst0 := math.Mod(L+180, 360.0) / 15
	sidTime := gmst0 + uth + lon/15
	ha := sidTime*15 - ra

	// horizontal coordinates, rotated about the east-west axis
	xHor := cosDeg(ha) * cosDeg(decl)
	zHor := sinDeg(decl)
	z := xHor*sinDeg(90-lat) + zHor*cosDeg(90-lat)

	return RadToDeg(math.Asin(clamp(z, -1, 1)))
}
