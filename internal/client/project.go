package client

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Garsondee/Night-Chase/internal/game"
)

// nearPlane is the camera-space depth polygons are clipped against.
const nearPlane = 0.05

// fogDistance is where surfaces have lost half their brightness.
const fogDistance = 14.0

// decalBias pulls decals in front of the surface they sit on when sorting.
const decalBias = 0.02

// Viewport describes the projection onto the screen.
type Viewport struct {
	Width, Height int
	FOV           float64 // vertical, radians
}

func (v Viewport) focal() float64 {
	return float64(v.Height) / 2 / math.Tan(v.FOV/2)
}

// Project maps a camera-space point (+Z forward) to pixels. p[2] must be
// positive.
func (v Viewport) Project(p mgl64.Vec3) (x, y float64) {
	f := v.focal()
	return float64(v.Width)/2 + p[0]/p[2]*f, float64(v.Height)/2 - p[1]/p[2]*f
}

// clipNear keeps the part of a convex camera-space polygon in front of the
// near plane.
func clipNear(in []mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, len(in)+2)
	for i, cur := range in {
		prev := in[(i+len(in)-1)%len(in)]
		curIn, prevIn := cur[2] >= nearPlane, prev[2] >= nearPlane
		if curIn != prevIn {
			t := (nearPlane - prev[2]) / (cur[2] - prev[2])
			out = append(out, prev.Add(cur.Sub(prev).Mul(t)))
		}
		if curIn {
			out = append(out, cur)
		}
	}
	return out
}

// polygon is a projected, shaded convex polygon ready to fill.
type polygon struct {
	Points [][2]float32
	Color  color.RGBA
	Depth  float64
}

type quad struct {
	corners [4]mgl64.Vec3
	normal  mgl64.Vec3
}

func boxFaces(b *game.Box) [6]quad {
	x0, y0, z0 := b.Min[0], b.Min[1], b.Min[2]
	x1, y1, z1 := b.Max[0], b.Max[1], b.Max[2]
	v := func(x, y, z float64) mgl64.Vec3 { return mgl64.Vec3{x, y, z} }
	return [6]quad{
		{[4]mgl64.Vec3{v(x0, y0, z0), v(x0, y0, z1), v(x0, y1, z1), v(x0, y1, z0)}, mgl64.Vec3{-1, 0, 0}},
		{[4]mgl64.Vec3{v(x1, y0, z1), v(x1, y0, z0), v(x1, y1, z0), v(x1, y1, z1)}, mgl64.Vec3{1, 0, 0}},
		{[4]mgl64.Vec3{v(x0, y0, z0), v(x1, y0, z0), v(x1, y0, z1), v(x0, y0, z1)}, mgl64.Vec3{0, -1, 0}},
		{[4]mgl64.Vec3{v(x0, y1, z1), v(x1, y1, z1), v(x1, y1, z0), v(x0, y1, z0)}, mgl64.Vec3{0, 1, 0}},
		{[4]mgl64.Vec3{v(x1, y0, z0), v(x0, y0, z0), v(x0, y1, z0), v(x1, y1, z0)}, mgl64.Vec3{0, 0, -1}},
		{[4]mgl64.Vec3{v(x0, y0, z1), v(x1, y0, z1), v(x1, y1, z1), v(x0, y1, z1)}, mgl64.Vec3{0, 0, 1}},
	}
}

// planeQuad is a square of side size centred on c, lying in the plane with
// normal n.
func planeQuad(c, n mgl64.Vec3, size float64) [4]mgl64.Vec3 {
	ref := game.WorldUp
	if math.Abs(n.Dot(ref)) > 0.9 {
		ref = mgl64.Vec3{1, 0, 0}
	}
	u := n.Cross(ref).Normalize().Mul(size / 2)
	w := n.Cross(u).Normalize().Mul(size / 2)
	return [4]mgl64.Vec3{
		c.Sub(u).Sub(w), c.Add(u).Sub(w), c.Add(u).Add(w), c.Sub(u).Add(w),
	}
}

// faceLight is a fixed per-orientation term so box edges read without a
// real lighting pass.
func faceLight(n mgl64.Vec3) float64 {
	switch {
	case n[1] > 0.5:
		return 1
	case n[1] < -0.5:
		return 0.55
	case math.Abs(n[0]) > 0.5:
		return 0.8
	default:
		return 0.7
	}
}

// renderer turns a snapshot into sorted polygons.
type renderer struct {
	vp     Viewport
	cam    game.Camera
	lights []mgl64.Vec3
	polys  []polygon
}

func (r *renderer) brightness(p mgl64.Vec3, n mgl64.Vec3) float64 {
	d := p.Sub(r.cam.Position).Len()
	k := 0.35 + 0.45*faceLight(n)
	for _, l := range r.lights {
		dl := l.Sub(p).LenSqr()
		k += 0.5 / (1 + dl/16)
	}
	fog := 1 / (1 + (d/fogDistance)*(d/fogDistance))
	return mgl64.Clamp(k*fog, 0, 1.2)
}

func (r *renderer) add(world [4]mgl64.Vec3, c color.RGBA, bias float64) {
	view := make([]mgl64.Vec3, 4)
	for i, p := range world {
		view[i] = r.cam.ToView(p)
	}
	clipped := clipNear(view)
	if len(clipped) < 3 {
		return
	}
	pts := make([][2]float32, len(clipped))
	depth := 0.0
	for i, p := range clipped {
		x, y := r.vp.Project(p)
		pts[i] = [2]float32{float32(x), float32(y)}
		depth += p.Len()
	}
	r.polys = append(r.polys, polygon{Points: pts, Color: c, Depth: depth/float64(len(clipped)) - bias})
}

func scale(c color.RGBA, k float64) color.RGBA {
	f := func(v uint8) uint8 { return uint8(mgl64.Clamp(float64(v)*k, 0, 255)) }
	return color.RGBA{R: f(c.R), G: f(c.G), B: f(c.B), A: c.A}
}

// buildFrame projects the scene and the live effects, farthest first.
func buildFrame(snap game.Snapshot, objects []*game.SceneObject, vp Viewport) []polygon {
	r := &renderer{vp: vp, cam: snap.Camera}
	for _, o := range objects {
		if o.Kind == game.KindLight && o.Shape != nil {
			r.lights = append(r.lights, o.Shape.Center())
		}
	}
	eye := r.cam.Position
	for _, o := range objects {
		if o.Kind != game.KindMesh || !o.Visible || o.Shape == nil {
			continue
		}
		switch s := o.Shape.(type) {
		case *game.Box:
			for _, f := range boxFaces(s) {
				if f.normal.Dot(eye.Sub(f.corners[0])) <= 0 {
					continue
				}
				c := f.corners[0].Add(f.corners[2]).Mul(0.5)
				r.add(f.corners, scale(o.Color, r.brightness(c, f.normal)), 0)
			}
		case *game.Billboard:
			r.add(s.Corners(), scale(o.Color, r.brightness(s.Pos, s.Normal)), 0)
			if o.Caps.Has(game.CapEntity) {
				r.addEyes(s)
			}
		}
	}
	for _, e := range snap.Effects {
		switch e.Kind {
		case game.EffectBlood:
			toCam := eye.Sub(e.Position).Normalize()
			a := uint8(mgl64.Clamp(e.Opacity, 0, 1) * 220)
			r.add(planeQuad(e.Position, toCam, e.Size), color.RGBA{R: 150, G: 0, B: 0, A: a}, decalBias)
		case game.EffectBulletHole:
			r.add(planeQuad(e.Position, holeFacing(e), e.Size), color.RGBA{R: 15, G: 12, B: 10, A: 235}, decalBias)
		}
	}
	sort.SliceStable(r.polys, func(i, j int) bool { return r.polys[i].Depth > r.polys[j].Depth })
	return r.polys
}

// holeFacing turns a bullet hole toward the camera position it was fired
// from, falling back to the surface normal when that position is unknown.
func holeFacing(e game.Effect) mgl64.Vec3 {
	if d := e.Origin.Sub(e.Position); d.Len() > 1e-6 {
		return d.Normalize()
	}
	return e.Normal
}

// addEyes puts two glowing points on the entity's face.
func (r *renderer) addEyes(bb *game.Billboard) {
	right, up := bb.Axes()
	n := bb.Normal.Normalize()
	centre := bb.Pos.Add(up.Mul(bb.Height * 0.3)).Add(n.Mul(0.01))
	size := bb.Width * 0.08
	for _, side := range []float64{-1, 1} {
		c := centre.Add(right.Mul(side * bb.Width * 0.16))
		r.add(planeQuad(c, n, size), color.RGBA{R: 255, G: 40, B: 20, A: 255}, decalBias)
	}
}

// weaponLine returns the screen-space grip and muzzle of the gun model and
// the barrel thickness in pixels.
func weaponLine(pose game.WeaponPose, vp Viewport) (grip, muzzle [2]float64, width float64) {
	const barrel = 0.45
	back := pose.Offset
	tip := back.Add(mgl64.Vec3{0, math.Sin(pose.Pitch) * barrel, math.Cos(pose.Pitch) * barrel})
	gx, gy := vp.Project(back)
	mx, my := vp.Project(tip)
	// Roll swings the muzzle around the grip.
	dx, dy := mx-gx, my-gy
	sin, cos := math.Sin(pose.Roll), math.Cos(pose.Roll)
	mx, my = gx+dx*cos-dy*sin, gy+dx*sin+dy*cos
	return [2]float64{gx, gy}, [2]float64{mx, my}, vp.focal() * 0.09 / back[2]
}
