package scene

// Vec3 is a 3D point or direction in scene coordinates.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Color is an RGB color in linear space, each channel nominally in [0,1].
// Emissive colors may exceed 1.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Camera describes the viewpoint for the renderer. Position, Target and
// Up do not need to be normalized; the engine builds an orthonormal
// basis from them. FOV is the vertical field of view in degrees.
// Aperture > 0 enables depth of field; FocusDist 0 means "focus on the
// target point".
type Camera struct {
	Position Vec3    `json:"position"`
	Target   Vec3    `json:"target"`
	Up       Vec3    `json:"up"`
	FOV      float64 `json:"fov"`

	Aperture    float64 `json:"aperture"`
	FocusDist   float64 `json:"focus_dist"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// MaterialType enumerates supported material kinds.
type MaterialType string

const (
	MaterialLambert    MaterialType = "lambert"
	MaterialMetal      MaterialType = "metal"
	MaterialDielectric MaterialType = "dielectric"
	MaterialEmissive   MaterialType = "emissive"
	MaterialMirror     MaterialType = "mirror"
)

// Material describes surface properties. Which fields matter depends on
// Type: Albedo for lambert/metal/mirror, Fuzz for metal, IOR for
// dielectric, Emit and Power for emissive.
type Material struct {
	ID   string       `json:"id"`
	Type MaterialType `json:"type"`

	Albedo Color   `json:"albedo"`
	Fuzz   float64 `json:"fuzz"` // metal roughness, clamped to [0,1]
	IOR    float64 `json:"ior"`  // dielectric index of refraction

	Emit  Color   `json:"emit"`
	Power float64 `json:"power"` // emissive intensity multiplier
}

// ObjectType enumerates supported geometric primitives.
type ObjectType string

const (
	ObjectSphere ObjectType = "sphere"
	ObjectPlane  ObjectType = "plane"
	ObjectBox    ObjectType = "box"
)

// Object is a single entity in the scene. Size.X is the radius for
// spheres; for boxes Size holds the full extents. Planes are horizontal
// through Position.
type Object struct {
	ID   string     `json:"id"`
	Type ObjectType `json:"type"`

	Position Vec3 `json:"position"`
	Size     Vec3 `json:"size"`

	MaterialID string `json:"material_id"`
}

// RenderSettings defines quality/performance parameters. Seed 0 asks
// the engine to pick one from the clock; any other value makes the
// render reproducible.
type RenderSettings struct {
	Width        int   `json:"width"`
	Height       int   `json:"height"`
	SamplesPerPx int   `json:"samples_per_px"`
	MaxDepth     int   `json:"max_depth"`
	Seed         int64 `json:"seed"`
}

// Sky describes what rays that escape the scene see.
type Sky struct {
	Type    string `json:"type"`    // "solid" or "gradient"
	Color   Color  `json:"color"`   // for solid
	Horizon Color  `json:"horizon"` // for gradient
	Zenith  Color  `json:"zenith"`  // for gradient
}

// Scene holds everything needed to render an image. It is mutable while
// being assembled and must be treated as frozen once a render starts;
// the engine reads it concurrently from many goroutines without locks.
type Scene struct {
	Name      string         `json:"name"`
	Camera    Camera         `json:"camera"`
	Objects   []Object       `json:"objects"`
	Materials []Material     `json:"materials"`
	Settings  RenderSettings `json:"settings"`

	Background Color `json:"background"` // fallback when Sky is absent
	Sky        *Sky  `json:"sky,omitempty"`
}

// AddObject appends a primitive to the scene. Construction-time only;
// never call while a render of this scene is in flight.
func (sc *Scene) AddObject(o Object) {
	sc.Objects = append(sc.Objects, o)
}

// AddMaterial registers a material so objects can refer to it by ID.
func (sc *Scene) AddMaterial(m Material) {
	sc.Materials = append(sc.Materials, m)
}
