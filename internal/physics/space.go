package physics

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-shooter/internal/agent"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeEnemy
	collisionTypeBullet
	collisionTypeItem
	collisionTypeWall
)

// Contact delivery order within a step.
const (
	contactCollide = iota
	contactOverlap
)

type contact struct {
	kind int
	a, b agent.Handle
}

type bodyInfo struct {
	kind  agent.Kind
	body  *cp.Body // nil for walls
	shape *cp.Shape
	size  core.Vec
}

// Space is an Engine backed by a Chipmunk space with zero gravity. Players
// and enemies are solid boxes; bullets and items are sensors; walls are
// static boxes on the space's static body.
type Space struct {
	space   *cp.Space
	bounds  core.Box
	bodies  map[agent.Handle]*bodyInfo
	shapes  map[*cp.Shape]agent.Handle
	types   map[*cp.Shape]cp.CollisionType
	pending []contact
	logger  *log.Logger
}

var _ Engine = (*Space)(nil)

// NewSpace creates an empty space. Call Reset before adding bodies.
func NewSpace(logger *log.Logger) *Space {
	if logger == nil {
		logger = log.Default()
	}
	s := &Space{logger: logger}
	s.Reset(core.Box{})
	return s
}

// Reset discards the old space and builds a fresh one bounded by four
// static segments.
func (s *Space) Reset(bounds core.Box) {
	s.space = cp.NewSpace()
	s.space.SetGravity(cp.Vector{})
	s.bounds = bounds
	s.bodies = make(map[agent.Handle]*bodyInfo)
	s.shapes = make(map[*cp.Shape]agent.Handle)
	s.types = make(map[*cp.Shape]cp.CollisionType)
	s.pending = s.pending[:0]

	s.installHandlers()

	if bounds.W <= 0 || bounds.H <= 0 {
		return
	}
	l, t, r, b := bounds.X, bounds.Y, bounds.Right(), bounds.Bottom()
	segments := []struct{ a, b cp.Vector }{
		{cp.Vector{X: l, Y: t}, cp.Vector{X: r, Y: t}},
		{cp.Vector{X: l, Y: b}, cp.Vector{X: r, Y: b}},
		{cp.Vector{X: l, Y: t}, cp.Vector{X: l, Y: b}},
		{cp.Vector{X: r, Y: t}, cp.Vector{X: r, Y: b}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(s.space.StaticBody, seg.a, seg.b, 1)
		s.track(shape, agent.NoHandle, collisionTypeWall)
		s.space.AddShape(shape)
	}
}

// installHandlers reports bullets and items once, when contact begins.
// Enemy and player report on every step they touch, so contact damage
// keeps applying while an enemy stays pressed against the player.
func (s *Space) installHandlers() {
	pairs := []struct {
		a, b      cp.CollisionType
		kind      int
		sustained bool
	}{
		{collisionTypeBullet, collisionTypeEnemy, contactCollide, false},
		{collisionTypeBullet, collisionTypeWall, contactCollide, false},
		{collisionTypeEnemy, collisionTypePlayer, contactCollide, true},
		{collisionTypePlayer, collisionTypeItem, contactOverlap, false},
	}
	for _, p := range pairs {
		h := s.space.NewCollisionHandler(p.a, p.b)
		report := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			s.buffer(p.kind, p.a, arb)
			return true
		}
		if p.sustained {
			h.PreSolveFunc = report
		} else {
			h.BeginFunc = report
		}
	}
}

// buffer records a contact ordered so the shape of collision type first
// comes first.
func (s *Space) buffer(kind int, first cp.CollisionType, arb *cp.Arbiter) {
	shapeA, shapeB := arb.Shapes()
	if s.types[shapeA] != first {
		shapeA, shapeB = shapeB, shapeA
	}
	a, okA := s.shapes[shapeA]
	b, okB := s.shapes[shapeB]
	if !okA || !okB {
		return
	}
	s.pending = append(s.pending, contact{kind: kind, a: a, b: b})
}

// AddWall adds a static box.
func (s *Space) AddWall(h agent.Handle, box core.Box) {
	bb := cp.BB{L: box.X, B: box.Y, R: box.Right(), T: box.Bottom()}
	shape := cp.NewBox2(s.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	s.track(shape, h, collisionTypeWall)
	s.space.AddShape(shape)
	s.bodies[h] = &bodyInfo{kind: agent.KindWall, shape: shape, size: core.V(box.W, box.H)}
}

func (s *Space) track(shape *cp.Shape, h agent.Handle, typ cp.CollisionType) {
	shape.SetCollisionType(typ)
	s.shapes[shape] = h
	s.types[shape] = typ
}

// AddBody adds a moving box. Rotation is locked.
func (s *Space) AddBody(h agent.Handle, kind agent.Kind, pos, size core.Vec) {
	if _, ok := s.bodies[h]; ok {
		s.Remove(h)
	}

	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	body.SetAngle(0)
	body.SetAngularVelocity(0)

	shape := cp.NewBox(body, size.X, size.Y, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	switch kind {
	case agent.KindPlayer:
		s.track(shape, h, collisionTypePlayer)
	case agent.KindEnemy:
		s.track(shape, h, collisionTypeEnemy)
	case agent.KindBullet:
		s.track(shape, h, collisionTypeBullet)
		shape.SetSensor(true)
	case agent.KindItem:
		s.track(shape, h, collisionTypeItem)
		shape.SetSensor(true)
	default:
		s.logger.Warn("adding body of unexpected kind", "handle", h, "kind", kind)
		s.shapes[shape] = h
	}

	s.space.AddBody(body)
	s.space.AddShape(shape)
	s.bodies[h] = &bodyInfo{kind: kind, body: body, shape: shape, size: size}
}

// Remove takes h out of the space. Unknown handles are ignored.
func (s *Space) Remove(h agent.Handle) {
	info, ok := s.bodies[h]
	if !ok {
		return
	}
	delete(s.bodies, h)
	delete(s.shapes, info.shape)
	delete(s.types, info.shape)
	s.space.RemoveShape(info.shape)
	if info.body != nil {
		s.space.RemoveBody(info.body)
	}
}

// SetVelocity sets the linear velocity of a moving body.
func (s *Space) SetVelocity(h agent.Handle, v core.Vec) {
	if info, ok := s.bodies[h]; ok && info.body != nil {
		info.body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Y})
	}
}

// Position returns the center of a moving body.
func (s *Space) Position(h agent.Handle) (core.Vec, bool) {
	info, ok := s.bodies[h]
	if !ok || info.body == nil {
		return core.Vec{}, false
	}
	p := info.body.Position()
	return core.V(p.X, p.Y), true
}

// Velocity returns the linear velocity of a moving body.
func (s *Space) Velocity(h agent.Handle) (core.Vec, bool) {
	info, ok := s.bodies[h]
	if !ok || info.body == nil {
		return core.Vec{}, false
	}
	v := info.body.Velocity()
	return core.V(v.X, v.Y), true
}

// Len returns the number of bodies and walls in the space.
func (s *Space) Len() int { return len(s.bodies) }

// Step advances the space, clamps solid bodies into the world bounds and
// delivers the contacts gathered during the step. Bodies may be removed
// from inside the listener.
func (s *Space) Step(dt time.Duration, l ContactListener) {
	if dt <= 0 {
		return
	}
	s.pending = s.pending[:0]
	s.space.Step(dt.Seconds())
	s.clamp()

	if l == nil || len(s.pending) == 0 {
		return
	}
	contacts := append([]contact(nil), s.pending...)
	s.pending = s.pending[:0]
	for _, c := range contacts {
		switch c.kind {
		case contactCollide:
			l.OnCollide(c.a, c.b)
		case contactOverlap:
			l.OnOverlap(c.a, c.b)
		}
	}
}

func (s *Space) clamp() {
	if s.bounds.W <= 0 || s.bounds.H <= 0 {
		return
	}
	for _, info := range s.bodies {
		if info.body == nil || (info.kind != agent.KindPlayer && info.kind != agent.KindEnemy) {
			continue
		}
		area := s.bounds.Inset(math.Min(info.size.X, info.size.Y) / 2)
		p := info.body.Position()
		c := area.ClampPoint(core.V(p.X, p.Y))
		if c.X == p.X && c.Y == p.Y {
			continue
		}
		v := info.body.Velocity()
		if c.X != p.X {
			v.X = 0
		}
		if c.Y != p.Y {
			v.Y = 0
		}
		info.body.SetPosition(cp.Vector{X: c.X, Y: c.Y})
		info.body.SetVelocityVector(v)
	}
}
