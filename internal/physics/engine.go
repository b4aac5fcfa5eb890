// Package physics is the movement and contact collaborator of the
// simulation. The level drives it through Engine; the Chipmunk-backed Space
// is the implementation used by the game.
package physics

import (
	"time"

	"github.com/vovakirdan/tui-shooter/internal/agent"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// ContactListener receives the contacts found during a Step, after the
// step has finished. OnCollide reports solid or projectile contacts;
// OnOverlap reports pickups. A NoHandle argument stands for the world edge.
type ContactListener interface {
	OnCollide(a, b agent.Handle)
	OnOverlap(a, b agent.Handle)
}

// Engine integrates velocities, clamps bodies to the world and reports
// contacts between them.
type Engine interface {
	// Reset drops every body and starts an empty world with the given bounds.
	Reset(bounds core.Box)
	// AddWall adds static geometry owned by handle h.
	AddWall(h agent.Handle, box core.Box)
	// AddBody adds a moving body centered at pos.
	AddBody(h agent.Handle, kind agent.Kind, pos, size core.Vec)
	Remove(h agent.Handle)
	SetVelocity(h agent.Handle, v core.Vec)
	Position(h agent.Handle) (core.Vec, bool)
	Velocity(h agent.Handle) (core.Vec, bool)
	// Step advances the world by dt and then delivers buffered contacts to l.
	Step(dt time.Duration, l ContactListener)
}
