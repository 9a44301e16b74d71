package engine

import (
	"math"
	"testing"

	"github.com/hukka/raytracer/internal/scene"
)

func TestMetalPerfectMirror(t *testing.T) {
	// Zero-fuzz metal reflects exactly: outgoing = d - 2*(d·n)*n.
	m := material{typ: matMetal, albedo: v(0.9, 0.9, 0.9), fuzz: 0}
	rng := newRandSource(1)

	rec := &hitRecord{p: v(0, 0, 0), normal: v(0, 1, 0), frontFace: true}
	rIn := ray{orig: v(0, 1, 0), dir: v(0, -1, 0)}

	ok, attenuation, scattered := m.scatter(rng, rIn, rec)
	if !ok {
		t.Fatal("head-on reflection must scatter")
	}
	if !vecsClose(scattered.dir, v(0, 1, 0), 1e-9) {
		t.Errorf("reflected direction: got %v, want (0,1,0)", scattered.dir)
	}
	if !vecsClose(attenuation, v(0.9, 0.9, 0.9), 1e-9) {
		t.Errorf("attenuation: got %v, want albedo", attenuation)
	}

	// Oblique incidence follows the reflection identity too.
	rIn = ray{orig: v(-1, 1, 0), dir: v(1, -1, 0)}
	_, _, scattered = m.scatter(rng, rIn, rec)
	d := rIn.dir.unit()
	want := d.sub(rec.normal.mul(2 * d.dot(rec.normal)))
	if !vecsClose(scattered.dir, want, 1e-9) {
		t.Errorf("oblique reflection: got %v, want %v", scattered.dir, want)
	}
}

func TestMetalAbsorbsWhenReflectingIntoSurface(t *testing.T) {
	// A reflection that ends up under the surface is absorbed instead
	// of leaking light through the silhouette.
	m := material{typ: matMetal, albedo: v(1, 1, 1), fuzz: 0}
	rng := newRandSource(1)

	rec := &hitRecord{p: v(0, 0, 0), normal: v(0, 1, 0)}
	rIn := ray{orig: v(0, -1, 0), dir: v(0, 1, 0)} // reflects to (0,-1,0)

	ok, _, _ := m.scatter(rng, rIn, rec)
	if ok {
		t.Error("reflection into the surface must be absorbed")
	}
}

func TestMetalFuzzStaysAboveSurface(t *testing.T) {
	m := material{typ: matMetal, albedo: v(1, 1, 1), fuzz: 1}
	rng := newRandSource(99)
	rec := &hitRecord{p: v(0, 0, 0), normal: v(0, 1, 0), frontFace: true}
	rIn := ray{orig: v(-1, 1, 0), dir: v(1, -1, 0)}

	for i := 0; i < 500; i++ {
		ok, _, scattered := m.scatter(rng, rIn, rec)
		if !ok {
			continue // absorbed at grazing fuzz, allowed
		}
		if scattered.dir.dot(rec.normal) <= 0 {
			t.Fatalf("sample %d: scattered direction points into the surface: %v", i, scattered.dir)
		}
	}
}

func TestLambertScatterHemisphere(t *testing.T) {
	m := material{typ: matLambert, albedo: v(0.3, 0.4, 0.5)}
	rng := newRandSource(5)
	rec := &hitRecord{p: v(1, 2, 3), normal: v(0, 1, 0), frontFace: true}
	rIn := ray{orig: v(0, 5, 0), dir: v(0.2, -1, 0.1)}

	for i := 0; i < 500; i++ {
		ok, attenuation, scattered := m.scatter(rng, rIn, rec)
		if !ok {
			t.Fatal("lambert never absorbs")
		}
		if !vecsClose(attenuation, v(0.3, 0.4, 0.5), 1e-12) {
			t.Fatalf("attenuation must be the albedo, got %v", attenuation)
		}
		if !vecsClose(scattered.orig, rec.p, 1e-12) {
			t.Fatalf("scattered ray must originate at the hit point, got %v", scattered.orig)
		}
		if scattered.dir.nearZero() {
			t.Fatal("scatter produced a degenerate zero direction")
		}
		if scattered.dir.dot(rec.normal) < 0 {
			t.Fatalf("scatter left the hemisphere: %v", scattered.dir)
		}
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	// Inside glass (ior 1.5) at a steep angle Snell's law has no real
	// solution, so the ray must reflect deterministically.
	m := material{typ: matDielectric, ior: 1.5}
	rng := newRandSource(3)

	sinTheta := 0.9 // 1.5 * 0.9 > 1: beyond the critical angle
	cosTheta := math.Sqrt(1 - sinTheta*sinTheta)
	rec := &hitRecord{p: v(0, 0, 0), normal: v(0, 1, 0), frontFace: false}
	rIn := ray{orig: v(0, 1, 0), dir: v(sinTheta, -cosTheta, 0)}

	ok, _, scattered := m.scatter(rng, rIn, rec)
	if !ok {
		t.Fatal("total internal reflection still scatters")
	}
	want := reflectVec(rIn.dir.unit(), rec.normal)
	if !vecsClose(scattered.dir, want, 1e-9) {
		t.Errorf("TIR direction: got %v, want reflection %v", scattered.dir, want)
	}
	if scattered.dir.y <= 0 {
		t.Errorf("TIR must bounce back into the glass, got %v", scattered.dir)
	}
}

func TestDielectricAttenuationIsWhite(t *testing.T) {
	m := material{typ: matDielectric, ior: 1.5}
	rng := newRandSource(11)
	rec := &hitRecord{p: v(0, 0, 0), normal: v(0, 1, 0), frontFace: true}
	rIn := ray{orig: v(0, 1, 0), dir: v(0, -1, 0)}

	ok, attenuation, _ := m.scatter(rng, rIn, rec)
	if !ok {
		t.Fatal("dielectric never absorbs")
	}
	if !vecsClose(attenuation, v(1, 1, 1), 1e-12) {
		t.Errorf("glass attenuation: got %v, want white", attenuation)
	}
}

func TestEmissiveAbsorbsAndEmits(t *testing.T) {
	m := convertMaterial(scene.Material{
		Type:  scene.MaterialEmissive,
		Emit:  scene.Color{R: 1, G: 0.5, B: 0.25},
		Power: 4,
	})
	rng := newRandSource(1)
	rec := &hitRecord{p: v(0, 0, 0), normal: v(0, 1, 0)}

	ok, _, _ := m.scatter(rng, ray{dir: v(0, -1, 0)}, rec)
	if ok {
		t.Error("emissive surfaces terminate the path")
	}
	if got, want := m.emitted(), v(4, 2, 1); !vecsClose(got, want, 1e-12) {
		t.Errorf("emitted: got %v, want %v", got, want)
	}
}

func TestMirrorReflects(t *testing.T) {
	m := material{typ: matMirror, albedo: v(1, 1, 1)}
	rng := newRandSource(1)
	rec := &hitRecord{p: v(0, 0, 0), normal: v(0, 1, 0), frontFace: true}
	rIn := ray{orig: v(-1, 1, 0), dir: v(2, -2, 0)}

	ok, _, scattered := m.scatter(rng, rIn, rec)
	if !ok {
		t.Fatal("mirror must scatter")
	}
	want := reflectVec(rIn.dir.unit(), rec.normal)
	if !vecsClose(scattered.dir, want, 1e-9) {
		t.Errorf("mirror direction: got %v, want %v", scattered.dir, want)
	}
}

func TestConvertMaterialDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   scene.Material
		typ  materialType
	}{
		{"empty type is lambert", scene.Material{}, matLambert},
		{"dielectric default ior", scene.Material{Type: scene.MaterialDielectric}, matDielectric},
		{"metal", scene.Material{Type: scene.MaterialMetal, Fuzz: 3}, matMetal},
	}
	for _, tt := range tests {
		m := convertMaterial(tt.in)
		if m.typ != tt.typ {
			t.Errorf("%s: got type %v, want %v", tt.name, m.typ, tt.typ)
		}
	}

	if m := convertMaterial(scene.Material{Type: scene.MaterialDielectric}); m.ior != 1.5 {
		t.Errorf("default ior: got %v, want 1.5", m.ior)
	}
	if m := convertMaterial(scene.Material{Type: scene.MaterialMetal, Fuzz: 3}); m.fuzz != 1 {
		t.Errorf("fuzz clamp: got %v, want 1", m.fuzz)
	}
}
