package geo

import "math"

const (
	// GlobeRadius is the radius of the rendered globe in scene units.
	GlobeRadius = 5.0
	// MarkerRadius sits just above the globe surface so markers are not
	// swallowed by the atmosphere shell.
	MarkerRadius = 5.1
)

// Vec3 is a point in the globe's scene space. Y is the vertical axis.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// RotateY rotates v about the vertical axis by angle radians.
func (v Vec3) RotateY(angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// Array returns the components as a fixed-size array, handy for JSON.
func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// LatLngToVector3 projects a latitude/longitude pair in degrees onto a sphere
// of the given radius. Latitude measures from the equator toward +Y and
// longitude sweeps around the Y axis. Inputs are not range checked.
func LatLngToVector3(lat, lng, radius float64) Vec3 {
	phi := (90 - lat) * (math.Pi / 180)
	theta := (lng + 180) * (math.Pi / 180)

	return Vec3{
		X: radius * math.Sin(phi) * math.Cos(theta),
		Y: radius * math.Cos(phi),
		Z: radius * math.Sin(phi) * math.Sin(theta),
	}
}

// MarkerPosition projects a station position onto the marker shell.
func MarkerPosition(lat, lng float64) Vec3 {
	return LatLngToVector3(lat, lng, MarkerRadius)
}
