package game

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// ObjectKind distinguishes renderable geometry from scene-graph helpers that
// can never be hit by a ray.
type ObjectKind int

const (
	KindMesh ObjectKind = iota
	KindLight
	KindCamera
)

// Capability flags are resolved once when an object is added to the scene.
type Capability uint8

const (
	CapCollidable Capability = 1 << iota // blocks player movement probes
	CapShootable                         // can receive weapon hits
	CapEntity                            // the pursuit entity
	CapWeapon                            // part of the first-person weapon model
)

// Has reports whether every flag in want is set.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// Shape is ray-intersectable geometry.
type Shape interface {
	// Intersect returns distance along dir and the surface normal of the
	// first crossing in [0, maxDist]. dir must be unit length.
	Intersect(origin, dir mgl64.Vec3, maxDist float64) (dist float64, normal mgl64.Vec3, ok bool)
	// Center is used by renderers for depth sorting.
	Center() mgl64.Vec3
}

// SceneObject is one node of the level.
type SceneObject struct {
	ID      int
	Name    string
	Kind    ObjectKind
	Shape   Shape // nil for lights and cameras
	Caps    Capability
	Visible bool
	Color   color.RGBA
}

// solid reports whether the object can take part in intersection tests at all.
func (o *SceneObject) solid() bool {
	return o != nil && o.Kind == KindMesh && o.Shape != nil && o.Visible
}

// Intersection is one ray crossing, in the same shape a scene-graph raycaster returns.
type Intersection struct {
	Object   *SceneObject
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// RayFilter decides which solid objects a raycast considers.
type RayFilter func(o *SceneObject) bool

// Scene is the flat list of level objects. It is mutated only from the frame loop.
type Scene struct {
	objects []*SceneObject
	nextID  int
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{nextID: 1}
}

// Add registers an object and assigns its ID.
func (sc *Scene) Add(o *SceneObject) *SceneObject {
	o.ID = sc.nextID
	sc.nextID++
	sc.objects = append(sc.objects, o)
	return o
}

// Remove drops an object by ID. Removing an unknown ID is a no-op.
func (sc *Scene) Remove(id int) {
	kept := sc.objects[:0]
	for _, o := range sc.objects {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	for i := len(kept); i < len(sc.objects); i++ {
		sc.objects[i] = nil
	}
	sc.objects = kept
}

// Objects returns the live object list. Callers must not modify it.
func (sc *Scene) Objects() []*SceneObject {
	return sc.objects
}

// Raycast returns every intersection of the ray with accepted objects,
// nearest first. Non-solid objects (lights, cameras, invisible or shapeless
// nodes) are always skipped.
func (sc *Scene) Raycast(origin, dir mgl64.Vec3, maxDist float64, filter RayFilter) []Intersection {
	if dir.Len() < 1e-12 {
		return nil
	}
	dir = dir.Normalize()
	var out []Intersection
	for _, o := range sc.objects {
		if !o.solid() {
			continue
		}
		if filter != nil && !filter(o) {
			continue
		}
		d, n, ok := o.Shape.Intersect(origin, dir, maxDist)
		if !ok {
			continue
		}
		out = append(out, Intersection{
			Object:   o,
			Point:    origin.Add(dir.Mul(d)),
			Normal:   n,
			Distance: d,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

// Nearest is Raycast limited to the closest hit.
func (sc *Scene) Nearest(origin, dir mgl64.Vec3, maxDist float64, filter RayFilter) (Intersection, bool) {
	hits := sc.Raycast(origin, dir, maxDist, filter)
	if len(hits) == 0 {
		return Intersection{}, false
	}
	return hits[0], true
}

// --- Box ---

// Box is an axis-aligned solid.
type Box struct {
	Min, Max mgl64.Vec3
}

// NewBox builds a box from any two opposite corners.
func NewBox(a, b mgl64.Vec3) *Box {
	return &Box{
		Min: mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])},
		Max: mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])},
	}
}

// Center implements Shape.
func (b *Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains reports whether p lies inside or on the box.
func (b *Box) Contains(p mgl64.Vec3) bool {
	for a := 0; a < 3; a++ {
		if p[a] < b.Min[a] || p[a] > b.Max[a] {
			return false
		}
	}
	return true
}

// Intersect implements Shape using the slab method, one axis at a time.
// A ray starting inside the box reports the exit face.
func (b *Box) Intersect(origin, dir mgl64.Vec3, maxDist float64) (float64, mgl64.Vec3, bool) {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	enterAxis, exitAxis := -1, -1
	enterSign, exitSign := 0.0, 0.0

	for a := 0; a < 3; a++ {
		if math.Abs(dir[a]) < 1e-12 {
			if origin[a] < b.Min[a] || origin[a] > b.Max[a] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		inv := 1.0 / dir[a]
		t1 := (b.Min[a] - origin[a]) * inv
		t2 := (b.Max[a] - origin[a]) * inv
		// Entering through the min face means the outward normal points to -axis.
		s1, s2 := -1.0, 1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s1, s2 = s2, s1
		}
		if t1 > tMin {
			tMin = t1
			enterAxis = a
			enterSign = s1
		}
		if t2 < tMax {
			tMax = t2
			exitAxis = a
			exitSign = s2
		}
		if tMin > tMax {
			return 0, mgl64.Vec3{}, false
		}
	}
	if tMax < 0 {
		return 0, mgl64.Vec3{}, false
	}

	t, axis, sign := tMin, enterAxis, enterSign
	if tMin < 0 {
		// Origin inside the box.
		t, axis, sign = tMax, exitAxis, exitSign
	}
	if t > maxDist || axis < 0 {
		return 0, mgl64.Vec3{}, false
	}
	var n mgl64.Vec3
	n[axis] = sign
	return t, n, true
}

// --- Billboard ---

// Billboard is a flat rectangle of Width x Height centred on Pos whose normal
// stays horizontal. The pursuit entity updates Normal each frame to face the player.
type Billboard struct {
	Pos    mgl64.Vec3
	Normal mgl64.Vec3
	Width  float64
	Height float64
}

// Center implements Shape.
func (bb *Billboard) Center() mgl64.Vec3 {
	return bb.Pos
}

// Axes returns the billboard's in-plane right and up unit vectors.
func (bb *Billboard) Axes() (right, up mgl64.Vec3) {
	up = mgl64.Vec3{0, 1, 0}
	n := bb.Normal
	if n.Len() < 1e-12 {
		n = mgl64.Vec3{0, 0, 1}
	}
	right = up.Cross(n)
	if right.Len() < 1e-12 {
		right = mgl64.Vec3{1, 0, 0}
	}
	return right.Normalize(), up
}

// Corners returns the four corners counter-clockwise from bottom-left.
func (bb *Billboard) Corners() [4]mgl64.Vec3 {
	r, u := bb.Axes()
	hr := r.Mul(bb.Width / 2)
	hu := u.Mul(bb.Height / 2)
	return [4]mgl64.Vec3{
		bb.Pos.Sub(hr).Sub(hu),
		bb.Pos.Add(hr).Sub(hu),
		bb.Pos.Add(hr).Add(hu),
		bb.Pos.Sub(hr).Add(hu),
	}
}

// Intersect implements Shape. The quad is double sided; the returned normal
// faces the ray origin.
func (bb *Billboard) Intersect(origin, dir mgl64.Vec3, maxDist float64) (float64, mgl64.Vec3, bool) {
	n := bb.Normal
	if n.Len() < 1e-12 {
		return 0, mgl64.Vec3{}, false
	}
	n = n.Normalize()
	denom := n.Dot(dir)
	if math.Abs(denom) < 1e-12 {
		return 0, mgl64.Vec3{}, false
	}
	t := bb.Pos.Sub(origin).Dot(n) / denom
	if t < 0 || t > maxDist {
		return 0, mgl64.Vec3{}, false
	}
	p := origin.Add(dir.Mul(t))
	r, u := bb.Axes()
	local := p.Sub(bb.Pos)
	if math.Abs(local.Dot(r)) > bb.Width/2 || math.Abs(local.Dot(u)) > bb.Height/2 {
		return 0, mgl64.Vec3{}, false
	}
	if denom > 0 {
		n = n.Mul(-1)
	}
	return t, n, true
}
