package engine

import "math"

// vec3 is a point, direction or linear RGB color depending on context.
type vec3 struct {
	x, y, z float64
}

func v(x, y, z float64) vec3 { return vec3{x, y, z} }

func (a vec3) add(b vec3) vec3    { return vec3{a.x + b.x, a.y + b.y, a.z + b.z} }
func (a vec3) sub(b vec3) vec3    { return vec3{a.x - b.x, a.y - b.y, a.z - b.z} }
func (a vec3) mul(t float64) vec3 { return vec3{a.x * t, a.y * t, a.z * t} }
func (a vec3) neg() vec3          { return vec3{-a.x, -a.y, -a.z} }

func (a vec3) div(t float64) vec3 {
	inv := 1.0 / t
	return vec3{a.x * inv, a.y * inv, a.z * inv}
}

// mulVec is the component-wise product, used for attenuating color.
func (a vec3) mulVec(b vec3) vec3 { return vec3{a.x * b.x, a.y * b.y, a.z * b.z} }

func (a vec3) dot(b vec3) float64 { return a.x*b.x + a.y*b.y + a.z*b.z }

func (a vec3) cross(b vec3) vec3 {
	return vec3{
		a.y*b.z - a.z*b.y,
		a.z*b.x - a.x*b.z,
		a.x*b.y - a.y*b.x,
	}
}

func (a vec3) lengthSquared() float64 { return a.dot(a) }
func (a vec3) length() float64        { return math.Sqrt(a.dot(a)) }

// unit returns the normalized vector. The zero vector normalizes to
// itself rather than producing NaN components; callers that cannot
// tolerate a zero direction must check nearZero first.
func (a vec3) unit() vec3 {
	l := a.length()
	if l == 0 {
		return a
	}
	return a.div(l)
}

// nearZero reports whether every component is negligibly small.
func (a vec3) nearZero() bool {
	const eps = 1e-8
	return math.Abs(a.x) < eps && math.Abs(a.y) < eps && math.Abs(a.z) < eps
}

// reflectVec mirrors v about the unit normal n: v - 2*(v·n)*n.
func reflectVec(v, n vec3) vec3 {
	return v.sub(n.mul(2 * v.dot(n)))
}

// refractVec bends the unit vector uv across the surface with unit
// normal n using Snell's law. etaiOverEtat is the ratio of refractive
// indices on the incident and transmitted sides. The caller must rule
// out total internal reflection before calling.
func refractVec(uv, n vec3, etaiOverEtat float64) vec3 {
	cosTheta := math.Min(uv.neg().dot(n), 1.0)
	rOutPerp := uv.add(n.mul(cosTheta)).mul(etaiOverEtat)
	rOutParallel := n.mul(-math.Sqrt(math.Abs(1.0 - rOutPerp.lengthSquared())))
	return rOutPerp.add(rOutParallel)
}

// schlick approximates the Fresnel reflectance of a dielectric at the
// given incidence cosine and index ratio.
func schlick(cosine, refIdx float64) float64 {
	r0 := (1 - refIdx) / (1 + refIdx)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// randomInUnitSphere rejection-samples a point strictly inside the unit
// sphere.
func randomInUnitSphere(rng *randSource) vec3 {
	for {
		p := vec3{
			rng.Float64()*2 - 1,
			rng.Float64()*2 - 1,
			rng.Float64()*2 - 1,
		}
		if p.lengthSquared() >= 1.0 {
			continue
		}
		return p
	}
}

// randomInUnitDisk rejection-samples a point inside the unit disk on the
// xy plane. Used for the camera's lens aperture.
func randomInUnitDisk(rng *randSource) vec3 {
	for {
		p := vec3{rng.Float64()*2 - 1, rng.Float64()*2 - 1, 0}
		if p.lengthSquared() >= 1.0 {
			continue
		}
		return p
	}
}

// randomCosineDirection samples the hemisphere around the unit normal
// with a cosine-weighted distribution: dense near the normal, sparse
// near the horizon. This is the one diffuse scatter distribution used
// by the renderer; it is the correct importance sampling for Lambertian
// surfaces and brighter near-normal than uniform hemisphere sampling.
func randomCosineDirection(normal vec3, rng *randSource) vec3 {
	r1 := rng.Float64()
	r2 := rng.Float64()

	phi := 2.0 * math.Pi * r1
	cosTheta := math.Sqrt(r2)
	sinTheta := math.Sqrt(1.0 - r2)

	// Orthonormal basis around the normal. Pick the helper axis least
	// aligned with it so the cross product stays well conditioned.
	var up vec3
	if math.Abs(normal.x) > 0.9 {
		up = v(0, 1, 0)
	} else {
		up = v(1, 0, 0)
	}
	w := normal
	u := up.cross(w).unit()
	vv := w.cross(u)

	local := vec3{sinTheta * math.Cos(phi), sinTheta * math.Sin(phi), cosTheta}
	return u.mul(local.x).add(vv.mul(local.y)).add(w.mul(local.z))
}

// ray is a half-line: origin plus a direction scaled by the parameter t.
// Directions are not normalized; intersection math accounts for |dir|.
type ray struct {
	orig vec3
	dir  vec3
}

// at returns the point origin + t*direction.
func (r ray) at(t float64) vec3 {
	return r.orig.add(r.dir.mul(t))
}

func clamp(x, minVal, maxVal float64) float64 {
	if x < minVal {
		return minVal
	}
	if x > maxVal {
		return maxVal
	}
	return x
}
