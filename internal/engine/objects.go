package engine

import (
	"math"

	"github.com/hukka/raytracer/internal/scene"
)

// hitRecord describes a successful ray/primitive intersection. The
// normal always faces against the incoming ray and is unit length;
// frontFace records whether the ray arrived from outside the surface.
type hitRecord struct {
	p         vec3
	normal    vec3
	t         float64
	frontFace bool
	mat       material
}

// setFaceNormal orients the record's normal against r. outwardNormal
// must be unit length.
func (h *hitRecord) setFaceNormal(r ray, outwardNormal vec3) {
	h.frontFace = r.dir.dot(outwardNormal) < 0
	if h.frontFace {
		h.normal = outwardNormal
	} else {
		h.normal = outwardNormal.neg()
	}
}

// hittable is anything a ray can strike. hit fills rec and reports true
// when the nearest intersection lies strictly inside (tMin, tMax).
type hittable interface {
	hit(r ray, tMin, tMax float64, rec *hitRecord) bool
}

// world is the frozen set of primitives a frame renders against.
type world []hittable

// hit finds the closest intersection across all primitives. Ties at
// exactly equal t resolve to whichever primitive comes first in the
// list; that order is an implementation detail, not a contract.
func (w world) hit(r ray, tMin, tMax float64, rec *hitRecord) bool {
	hitAnything := false
	closest := tMax
	for i := range w {
		if w[i].hit(r, tMin, closest, rec) {
			hitAnything = true
			closest = rec.t
		}
	}
	return hitAnything
}

// sphere is a center plus radius.
type sphere struct {
	center vec3
	radius float64
	mat    material
}

// hit solves |O + tD - C|² = r² for the nearer root inside (tMin, tMax).
// A tangent ray has a double root and still counts as a hit.
func (s sphere) hit(r ray, tMin, tMax float64, rec *hitRecord) bool {
	oc := r.orig.sub(s.center)
	a := r.dir.lengthSquared()
	halfB := oc.dot(r.dir)
	c := oc.lengthSquared() - s.radius*s.radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return false
		}
	}

	rec.t = root
	rec.p = r.at(root)
	outward := rec.p.sub(s.center).div(s.radius)
	rec.setFaceNormal(r, outward)
	rec.mat = s.mat
	return true
}

// plane is an infinite plane through a point, typically the ground.
type plane struct {
	point  vec3
	normal vec3 // unit length
	mat    material
}

func (p plane) hit(r ray, tMin, tMax float64, rec *hitRecord) bool {
	denom := p.normal.dot(r.dir)
	if math.Abs(denom) < 1e-6 {
		return false // ray parallel to the plane
	}

	t := p.point.sub(r.orig).dot(p.normal) / denom
	if t <= tMin || t >= tMax {
		return false
	}

	rec.t = t
	rec.p = r.at(t)
	rec.setFaceNormal(r, p.normal)
	rec.mat = p.mat
	return true
}

// box is axis-aligned, defined by its min and max corners.
type box struct {
	min, max vec3
	mat      material
}

func (b box) hit(r ray, tMin, tMax float64, rec *hitRecord) bool {
	t0 := tMin
	t1 := tMax

	for axis := 0; axis < 3; axis++ {
		var invD, orig, minV, maxV float64
		switch axis {
		case 0:
			invD = 1 / r.dir.x
			orig, minV, maxV = r.orig.x, b.min.x, b.max.x
		case 1:
			invD = 1 / r.dir.y
			orig, minV, maxV = r.orig.y, b.min.y, b.max.y
		default:
			invD = 1 / r.dir.z
			orig, minV, maxV = r.orig.z, b.min.z, b.max.z
		}

		tNear := (minV - orig) * invD
		tFar := (maxV - orig) * invD
		if invD < 0 {
			tNear, tFar = tFar, tNear
		}
		if tNear > t0 {
			t0 = tNear
		}
		if tFar < t1 {
			t1 = tFar
		}
		if t1 <= t0 {
			return false
		}
	}

	rec.t = t0
	rec.p = r.at(t0)

	// Which face was struck decides the normal.
	const eps = 1e-4
	var n vec3
	switch {
	case math.Abs(rec.p.x-b.min.x) < eps:
		n = v(-1, 0, 0)
	case math.Abs(rec.p.x-b.max.x) < eps:
		n = v(1, 0, 0)
	case math.Abs(rec.p.y-b.min.y) < eps:
		n = v(0, -1, 0)
	case math.Abs(rec.p.y-b.max.y) < eps:
		n = v(0, 1, 0)
	case math.Abs(rec.p.z-b.min.z) < eps:
		n = v(0, 0, -1)
	default:
		n = v(0, 0, 1)
	}

	rec.setFaceNormal(r, n)
	rec.mat = b.mat
	return true
}

// sceneToWorld converts the scene description into the frozen primitive
// list a frame renders against. Degenerate geometry (non-positive
// sphere radius, empty boxes) is skipped rather than allowed to feed
// NaN into the intersection math. Objects referencing an unknown
// material fall back to a neutral gray diffuse so they stay visible.
func sceneToWorld(sc *scene.Scene) world {
	materials := make(map[string]material, len(sc.Materials))
	for _, m := range sc.Materials {
		materials[m.ID] = convertMaterial(m)
	}
	fallback := material{typ: matLambert, albedo: v(0.5, 0.5, 0.5)}

	w := make(world, 0, len(sc.Objects))
	for _, o := range sc.Objects {
		mat, ok := materials[o.MaterialID]
		if !ok {
			mat = fallback
		}
		pos := v(o.Position.X, o.Position.Y, o.Position.Z)
		size := v(o.Size.X, o.Size.Y, o.Size.Z)

		switch o.Type {
		case scene.ObjectSphere:
			if size.x <= 0 {
				continue
			}
			w = append(w, sphere{center: pos, radius: size.x, mat: mat})
		case scene.ObjectPlane:
			w = append(w, plane{point: pos, normal: v(0, 1, 0), mat: mat})
		case scene.ObjectBox:
			if size.x <= 0 || size.y <= 0 || size.z <= 0 {
				continue
			}
			half := size.mul(0.5)
			w = append(w, box{min: pos.sub(half), max: pos.add(half), mat: mat})
		}
	}
	return w
}
