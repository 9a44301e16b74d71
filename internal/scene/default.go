package scene

// Default builds the scene rendered when no scene file is given: three
// spheres (diffuse, glass, metal) resting on a matte ground, lit only by
// a gradient sky.
func Default() *Scene {
	sc := &Scene{
		Name: "default",
		Camera: Camera{
			Position: Vec3{X: -2, Y: 2, Z: 1},
			Target:   Vec3{X: 0, Y: 0, Z: -1},
			Up:       Vec3{Y: 1},
			FOV:      40,
		},
		Sky: &Sky{
			Type:    "gradient",
			Horizon: Color{R: 1, G: 1, B: 1},
			Zenith:  Color{R: 0.5, G: 0.7, B: 1.0},
		},
		Settings: RenderSettings{
			Width:        400,
			Height:       225,
			SamplesPerPx: 100,
			MaxDepth:     50,
		},
	}

	sc.AddMaterial(Material{
		ID:     "ground",
		Type:   MaterialLambert,
		Albedo: Color{R: 0.8, G: 0.8, B: 0.0},
	})
	sc.AddMaterial(Material{
		ID:     "center",
		Type:   MaterialLambert,
		Albedo: Color{R: 0.1, G: 0.2, B: 0.5},
	})
	sc.AddMaterial(Material{
		ID:   "glass",
		Type: MaterialDielectric,
		IOR:  1.5,
	})
	sc.AddMaterial(Material{
		ID:     "metal",
		Type:   MaterialMetal,
		Albedo: Color{R: 0.8, G: 0.6, B: 0.2},
		Fuzz:   0.1,
	})

	sc.AddObject(Object{
		ID:         "ground",
		Type:       ObjectSphere,
		Position:   Vec3{X: 0, Y: -100.5, Z: -1},
		Size:       Vec3{X: 100},
		MaterialID: "ground",
	})
	sc.AddObject(Object{
		ID:         "center",
		Type:       ObjectSphere,
		Position:   Vec3{X: 0, Y: 0, Z: -1},
		Size:       Vec3{X: 0.5},
		MaterialID: "center",
	})
	sc.AddObject(Object{
		ID:         "left",
		Type:       ObjectSphere,
		Position:   Vec3{X: -1, Y: 0, Z: -1},
		Size:       Vec3{X: 0.5},
		MaterialID: "glass",
	})
	sc.AddObject(Object{
		ID:         "right",
		Type:       ObjectSphere,
		Position:   Vec3{X: 1, Y: 0, Z: -1},
		Size:       Vec3{X: 0.5},
		MaterialID: "metal",
	})

	return sc
}
