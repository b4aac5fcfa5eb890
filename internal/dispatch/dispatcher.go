// Package dispatch turns engine contacts into game rules. It is the only
// place where contacts change progression, enemies or items.
package dispatch

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/agent"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/events"
	"github.com/vovakirdan/tui-shooter/internal/physics"
	"github.com/vovakirdan/tui-shooter/internal/progression"
)

// DefaultBulletDamage is the damage of one player bullet.
const DefaultBulletDamage = 20

// Host owns the entities and reacts to rule outcomes that change the level.
type Host interface {
	// Despawn removes an entity from the table and the engine.
	Despawn(h agent.Handle)
	// SpawnItem drops an item of typ at pos.
	SpawnItem(typ agent.ItemType, pos core.Vec)
	// PlayerKilled is called once when contact damage empties the player's health.
	PlayerKilled()
}

// Effects is the cosmetic presentation of rule outcomes. Errors are logged
// and never change the simulation.
type Effects interface {
	EnemyHit(h agent.Handle) error
	EnemyKilled(pos core.Vec) error
	PlayerHit(damage int) error
	ItemPicked(typ agent.ItemType, pos core.Vec) error
}

// NopEffects ignores every effect.
type NopEffects struct{}

func (NopEffects) EnemyHit(agent.Handle) error               { return nil }
func (NopEffects) EnemyKilled(core.Vec) error                { return nil }
func (NopEffects) PlayerHit(int) error                       { return nil }
func (NopEffects) ItemPicked(agent.ItemType, core.Vec) error { return nil }

// Dispatcher applies the four contact rules:
//
//  1. bullet x enemy: enemy takes bullet damage, bullet deactivates; a kill
//     scores, counts as defeated and may drop an item.
//  2. bullet x wall: bullet deactivates.
//  3. enemy x player: player takes the enemy's contact damage.
//  4. player x item: item is collected and its effect applied.
type Dispatcher struct {
	Table   *agent.Table
	State   *progression.State
	Bus     *events.Bus
	Host    Host
	Effects Effects
	Drops   agent.DropTable
	Rand    core.Rand
	Damage  int
	Logger  *log.Logger
}

var _ physics.ContactListener = (*Dispatcher)(nil)

// OnCollide handles solid and projectile contacts in either argument order.
func (d *Dispatcher) OnCollide(a, b agent.Handle) {
	ka, kb := d.Table.Kind(a), d.Table.Kind(b)
	switch {
	case ka == agent.KindBullet && kb == agent.KindEnemy:
		d.bulletHitsEnemy(a, b)
	case kb == agent.KindBullet && ka == agent.KindEnemy:
		d.bulletHitsEnemy(b, a)
	case ka == agent.KindBullet && isWall(kb):
		d.bulletHitsWall(a)
	case kb == agent.KindBullet && isWall(ka):
		d.bulletHitsWall(b)
	case ka == agent.KindEnemy && kb == agent.KindPlayer:
		d.enemyTouchesPlayer(a)
	case kb == agent.KindEnemy && ka == agent.KindPlayer:
		d.enemyTouchesPlayer(b)
	}
}

// OnOverlap handles pickups in either argument order.
func (d *Dispatcher) OnOverlap(a, b agent.Handle) {
	ka, kb := d.Table.Kind(a), d.Table.Kind(b)
	switch {
	case ka == agent.KindPlayer && kb == agent.KindItem:
		d.collect(b)
	case kb == agent.KindPlayer && ka == agent.KindItem:
		d.collect(a)
	}
}

// A contact with no handle is the world edge.
func isWall(k agent.Kind) bool {
	return k == agent.KindWall || k == agent.KindNone
}

func (d *Dispatcher) bulletHitsEnemy(bh, eh agent.Handle) {
	b, ok := d.Table.Bullet(bh)
	if !ok || !b.Active() {
		return
	}
	e, ok := d.Table.Enemy(eh)
	if !ok || !e.Alive() {
		return
	}

	b.Deactivate()
	d.Host.Despawn(bh)

	score := e.TakeDamage(d.damage())
	d.effect("enemy hit", d.effects().EnemyHit(eh))
	if e.Alive() {
		return
	}

	pos := e.Position()
	d.State.IncrementScore(score)
	d.State.EnemyDefeated()
	d.Bus.Publish(events.EnemyDefeated{Score: score})
	d.effect("enemy killed", d.effects().EnemyKilled(pos))
	d.Host.Despawn(eh)

	if typ, ok := d.Drops.Roll(d.Rand); ok {
		d.Host.SpawnItem(typ, pos)
	}
	d.logger().Debug("enemy defeated", "enemy", eh, "type", e.Type, "score", score, "total", d.State.Score())
}

func (d *Dispatcher) bulletHitsWall(bh agent.Handle) {
	b, ok := d.Table.Bullet(bh)
	if !ok || !b.Deactivate() {
		return
	}
	d.Host.Despawn(bh)
}

func (d *Dispatcher) enemyTouchesPlayer(eh agent.Handle) {
	e, ok := d.Table.Enemy(eh)
	if !ok || !e.Alive() {
		return
	}
	p := d.Table.Player()
	if p == nil || p.Dead() {
		return
	}

	damage := e.Stats.ContactDamage
	health := d.State.UpdateHealth(-damage)
	d.effect("player hit", d.effects().PlayerHit(damage))
	if health <= 0 {
		d.logger().Info("player killed", "enemy", e.Type, "score", d.State.Score())
		d.Host.PlayerKilled()
	}
}

func (d *Dispatcher) collect(ih agent.Handle) {
	it, ok := d.Table.Item(ih)
	if !ok {
		return
	}
	if p := d.Table.Player(); p == nil || p.Dead() {
		return
	}
	pickup, ok := it.Collect()
	if !ok {
		return
	}
	pos := it.Position()
	d.Host.Despawn(ih)

	switch pickup.Type {
	case agent.ItemHealth:
		d.State.UpdateHealth(pickup.Value)
	case agent.ItemAmmo:
		// Ammo has no effect yet.
	case agent.ItemWeapon:
		d.State.UpgradeWeapon()
	default:
		d.State.IncrementScore(pickup.Value)
	}
	d.State.ItemCollected()
	d.Bus.Publish(events.ItemCollected{Type: pickup.Type.String(), Value: pickup.Value})
	d.effect("item picked", d.effects().ItemPicked(pickup.Type, pos))
}

func (d *Dispatcher) damage() int {
	if d.Damage > 0 {
		return d.Damage
	}
	return DefaultBulletDamage
}

func (d *Dispatcher) effects() Effects {
	if d.Effects == nil {
		return NopEffects{}
	}
	return d.Effects
}

func (d *Dispatcher) logger() *log.Logger {
	if d.Logger == nil {
		return log.Default()
	}
	return d.Logger
}

func (d *Dispatcher) effect(name string, err error) {
	if err != nil {
		d.logger().Warn("effect failed", "effect", name, "error", err)
	}
}
