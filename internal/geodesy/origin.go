// Package geodesy converts between the scene's geographic origin and the
// local ENU (east-north-up) frame every other package works in.
package geodesy

import "math"

// Coefficients holds the empirical terms used to turn a latitude into
// metres-per-degree scale factors. Derived the way WGS84 datum constants
// are: an iterative fit of the degree-length series, not a closed form.
// See https://gis.stackexchange.com/questions/75528 for the series this
// mirrors.
type Coefficients struct {
	A, B, C, D float64
	E, F, G    float64
}

// WGS84 returns the standard coefficient set. No provision, as yet, for
// other datums.
func WGS84() Coefficients {
	return Coefficients{
		A: 111132.92, B: 559.82, C: 1.175, D: 0.0023,
		E: 111412.84, F: 93.5, G: 0.118,
	}
}

// Origin anchors the scene's local ENU frame to a geographic point.
type Origin struct {
	Lat, Lon float64
	Altitude float64
	coef     Coefficients
}

// NewOrigin builds an Origin using the WGS84 coefficient set.
func NewOrigin(lat, lon, altitude float64) Origin {
	return Origin{Lat: lat, Lon: lon, Altitude: altitude, coef: WGS84()}
}

// ToLocal projects a lon/lat/alt point into metres east/north/up relative
// to the origin. Valid for offsets of a few tens of kilometres; the scale
// factors are evaluated at the origin's latitude, not the target's.
func (o Origin) ToLocal(lon, lat, alt float64) (x, y, z float64) {
	const deg2rad = math.Pi / 180.0
	latRad := deg2rad * o.Lat

	latScale := o.coef.A -
		o.coef.B*math.Cos(2.0*latRad) +
		o.coef.C*math.Cos(4.0*latRad) -
		o.coef.D*math.Cos(6.0*latRad)

	lonScale := o.coef.E*math.Cos(latRad) -
		o.coef.F*math.Cos(3.0*latRad) +
		o.coef.G*math.Cos(5.0*latRad)

	x = (lon - o.Lon) * lonScale
	y = (lat - o.Lat) * latScale
	z = alt - o.Altitude
	return x, y, z
}

// ToGeo is the inverse of ToLocal, used by callers that need to render
// engine output back onto a map.
func (o Origin) ToGeo(x, y, z float64) (lon, lat, alt float64) {
	const deg2rad = math.Pi / 180.0
	latRad := deg2rad * o.Lat

	latScale := o.coef.A -
		o.coef.B*math.Cos(2.0*latRad) +
		o.coef.C*math.Cos(4.0*latRad) -
		o.coef.D*math.Cos(6.0*latRad)

	lonScale := o.coef.E*math.Cos(latRad) -
		o.coef.F*math.Cos(3.0*latRad) +
		o.coef.G*math.Cos(5.0*latRad)

	lon = o.Lon + x/lonScale
	lat = o.Lat + y/latScale
	alt = o.Altitude + z
	return lon, lat, alt
}
