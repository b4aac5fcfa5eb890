package agent

import (
	"time"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// PlayerTuning holds the player's movement and weapon parameters.
type PlayerTuning struct {
	Speed        float64
	FireRate     time.Duration
	BulletSpeed  float64
	BulletOffset float64
	BulletSize   float64
	MaxBullets   int
}

// PlayerTuningFrom converts the config section.
func PlayerTuningFrom(c config.PlayerConfig) PlayerTuning {
	return PlayerTuning{
		Speed:        c.Speed,
		FireRate:     c.FireRate(),
		BulletSpeed:  c.BulletSpeed,
		BulletOffset: c.BulletOffset,
		BulletSize:   c.BulletSize,
		MaxBullets:   c.MaxBullets,
	}
}

// Player is the controlled entity. Health lives in progression; the player
// only tracks whether it has died.
type Player struct {
	body

	FacingLeft bool

	dead      bool
	fired     bool
	lastFired time.Duration
}

// Dead reports whether the player has been killed.
func (p *Player) Dead() bool { return p.dead }

// Kill marks the player dead and stops it. It reports false when the player
// was already dead.
func (p *Player) Kill() bool {
	if p.dead {
		return false
	}
	p.dead = true
	p.vel = core.Vec{}
	return true
}

// Steer sets velocity from an input direction. Diagonals are normalized so
// they are not faster than straight moves. A dead player does not move.
func (p *Player) Steer(dir core.Vec, speed float64) {
	if p.dead {
		p.vel = core.Vec{}
		return
	}
	p.vel = dir.Normalize().Scale(speed)
	if dir.X < 0 {
		p.FacingLeft = true
	} else if dir.X > 0 {
		p.FacingLeft = false
	}
}

// CanFire reports whether the fire cooldown has elapsed at now.
func (p *Player) CanFire(now, rate time.Duration) bool {
	if p.dead {
		return false
	}
	return !p.fired || now-p.lastFired > rate
}

// MarkFired starts the fire cooldown.
func (p *Player) MarkFired(now time.Duration) {
	p.fired = true
	p.lastFired = now
}

// Muzzle returns where a bullet leaves the player and its velocity.
func (p *Player) Muzzle(offset, speed float64) (pos, vel core.Vec) {
	dir := 1.0
	if p.FacingLeft {
		dir = -1
	}
	return core.V(p.pos.X+dir*offset, p.pos.Y), core.V(dir*speed, 0)
}

// Bullet is a player projectile.
type Bullet struct {
	body
	active bool
}

// Active reports whether the bullet can still hit something.
func (b *Bullet) Active() bool { return b.active }

// Deactivate stops the bullet. Only the first call reports true.
func (b *Bullet) Deactivate() bool {
	if !b.active {
		return false
	}
	b.active = false
	b.vel = core.Vec{}
	return true
}

// ActiveBullets counts bullets that are still live.
func (t *Table) ActiveBullets() int {
	n := 0
	for _, b := range t.bullets {
		if b.active {
			n++
		}
	}
	return n
}
