package shooter

import (
	"math"

	"github.com/vovakirdan/tui-shooter/internal/agent"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/level"
)

// Distances the autopilot keeps from its target, in world units.
const (
	pilotAlign   = 12.0
	pilotTooNear = 120.0
	pilotTooFar  = 260.0
)

// Autopilot plays the level for headless runs and demos. It lines up
// horizontally with the nearest enemy, keeps its distance and fires.
type Autopilot struct{}

// Input returns the input for the next tick of o.
func (Autopilot) Input(o *level.Orchestrator) core.InputFrame {
	in := core.NewInputFrame()
	switch o.Phase() {
	case level.PhaseMenu, level.PhaseVictory:
		in.Set(core.ActionConfirm)
		return in
	case level.PhasePlaying:
	default:
		return in
	}

	p := o.Table().Player()
	if p == nil || p.Dead() {
		return in
	}
	target := nearestEnemy(p.Position(), o.Table().Enemies())
	if target == nil {
		return in
	}

	d := target.Position().Sub(p.Position())
	switch {
	case d.Y < -pilotAlign:
		in.Set(core.ActionUp)
	case d.Y > pilotAlign:
		in.Set(core.ActionDown)
	}

	dist := math.Abs(d.X)
	towards, away := core.ActionRight, core.ActionLeft
	if d.X < 0 {
		towards, away = away, towards
	}
	switch {
	case dist > pilotTooFar:
		in.Set(towards)
	case dist < pilotTooNear:
		in.Set(away)
	}

	facingTarget := (d.X < 0) == p.FacingLeft
	if math.Abs(d.Y) <= pilotAlign*2 && (facingTarget || in.Has(towards)) {
		in.Set(core.ActionFire)
	} else if !facingTarget && !in.Has(away) {
		// Turn around without closing in.
		in.Set(towards)
	}
	return in
}

func nearestEnemy(from core.Vec, enemies []*agent.Enemy) *agent.Enemy {
	var best *agent.Enemy
	bestDist := math.Inf(1)
	for _, e := range enemies {
		if !e.Alive() {
			continue
		}
		if d := from.Dist(e.Position()); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}
