package types

// Vec3 is a point or direction in scene space
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Range is a closed numeric interval used for uniform sampling
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Valid reports whether the interval is well-formed (min <= max)
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// Transform holds an object's placement in the scene.
// Rotation is Euler angles in radians.
type Transform struct {
	Location Vec3 `json:"location"`
	Rotation Vec3 `json:"rotation"`
	Scale    Vec3 `json:"scale"`
}

// ProjectedPoint is a mesh vertex mapped into normalized camera space.
// X and Y are in [0,1] when the vertex is on-screen; Z is positive when
// the vertex lies in front of the camera.
type ProjectedPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Box is a normalized, center-based bounding box with all values in [0,1].
// Cy grows downward, following the label-file convention.
type Box struct {
	Cx float64 `json:"cx"`
	Cy float64 `json:"cy"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
}

// Label pairs a class id with the box describing where the object
// appears in a frame's image
type Label struct {
	Class int `json:"class"`
	Box   Box `json:"box"`
}
