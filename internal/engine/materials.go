package engine

import (
	"math"

	"github.com/hukka/raytracer/internal/scene"
)

type materialType int

const (
	matLambert materialType = iota
	matMetal
	matDielectric
	matEmissive
	matMirror
)

// material is a closed tagged variant rather than an interface: the
// scatter switch below is the only dispatch point, which keeps the
// intersection engine ignorant of material math and avoids dynamic
// dispatch on the hot path.
type material struct {
	typ    materialType
	albedo vec3
	fuzz   float64
	ior    float64
	emit   vec3
}

func convertMaterial(m scene.Material) material {
	al := v(m.Albedo.R, m.Albedo.G, m.Albedo.B)

	switch m.Type {
	case scene.MaterialMetal:
		return material{typ: matMetal, albedo: al, fuzz: clamp(m.Fuzz, 0, 1)}
	case scene.MaterialDielectric:
		ior := m.IOR
		if ior <= 0 {
			ior = 1.5
		}
		return material{typ: matDielectric, ior: ior}
	case scene.MaterialEmissive:
		power := m.Power
		if power == 0 {
			power = 1
		}
		return material{typ: matEmissive, emit: v(m.Emit.R*power, m.Emit.G*power, m.Emit.B*power)}
	case scene.MaterialMirror:
		return material{typ: matMirror, albedo: al}
	default:
		return material{typ: matLambert, albedo: al}
	}
}

// emitted is the light the surface radiates on its own; zero for
// everything except emissive materials.
func (m material) emitted() vec3 {
	if m.typ == matEmissive {
		return m.emit
	}
	return vec3{}
}

// scatter decides how the incoming ray rIn continues after striking the
// surface described by rec. It returns false when the ray is absorbed;
// otherwise attenuation is the component-wise color filter to apply to
// whatever the scattered ray goes on to see.
func (m material) scatter(rng *randSource, rIn ray, rec *hitRecord) (ok bool, attenuation vec3, scattered ray) {
	switch m.typ {
	case matLambert:
		// Cosine-weighted hemisphere sampling around the normal (see
		// randomCosineDirection). The sampled direction cannot normally
		// degenerate, but guard anyway: a near-zero direction would fail
		// to normalize downstream, so substitute the normal itself.
		dir := randomCosineDirection(rec.normal, rng)
		if dir.nearZero() {
			dir = rec.normal
		}
		return true, m.albedo, ray{orig: rec.p, dir: dir}

	case matMetal:
		reflected := reflectVec(rIn.dir.unit(), rec.normal)
		if m.fuzz > 0 {
			reflected = reflected.add(randomInUnitSphere(rng).mul(m.fuzz))
		}
		// A fuzzed reflection can end up pointing into the surface at
		// grazing angles; treating it as absorbed keeps light from
		// leaking through the silhouette.
		if reflected.dot(rec.normal) <= 0 {
			return false, vec3{}, ray{}
		}
		return true, m.albedo, ray{orig: rec.p, dir: reflected}

	case matDielectric:
		attenuation = v(1, 1, 1)
		refractionRatio := m.ior
		if rec.frontFace {
			refractionRatio = 1.0 / m.ior
		}

		unitDir := rIn.dir.unit()
		if unitDir.nearZero() {
			return false, vec3{}, ray{}
		}
		cosTheta := math.Min(unitDir.neg().dot(rec.normal), 1.0)
		sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

		// Total internal reflection leaves no refracted solution;
		// otherwise Schlick's approximation picks reflection with the
		// Fresnel probability, which is what produces the bright rims
		// at glancing angles.
		cannotRefract := refractionRatio*sinTheta > 1.0
		var dir vec3
		if cannotRefract || schlick(cosTheta, refractionRatio) > rng.Float64() {
			dir = reflectVec(unitDir, rec.normal)
		} else {
			dir = refractVec(unitDir, rec.normal, refractionRatio)
		}
		return true, attenuation, ray{orig: rec.p, dir: dir}

	case matMirror:
		unitDir := rIn.dir.unit()
		if unitDir.nearZero() {
			return false, vec3{}, ray{}
		}
		return true, m.albedo, ray{orig: rec.p, dir: reflectVec(unitDir, rec.normal)}

	case matEmissive:
		return false, vec3{}, ray{}
	}
	return false, vec3{}, ray{}
}
