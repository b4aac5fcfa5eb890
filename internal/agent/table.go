// Package agent contains the simulated entities (player, bullets, enemies,
// items) and the table that owns them. Entities refer to each other by
// Handle, never by pointer, so a removed entity simply stops resolving.
package agent

import (
	"slices"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Handle identifies an entity in a Table. Handles are never reused by the
// table that issued them.
type Handle uint64

// NoHandle is the zero handle; it never resolves.
const NoHandle Handle = 0

// Kind classifies what a handle refers to.
type Kind uint8

const (
	KindNone Kind = iota
	KindPlayer
	KindEnemy
	KindItem
	KindBullet
	KindWall
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindItem:
		return "item"
	case KindBullet:
		return "bullet"
	case KindWall:
		return "wall"
	default:
		return "none"
	}
}

// Body is the capability every moving entity shares with the engine.
type Body interface {
	ID() Handle
	Kind() Kind
	Position() core.Vec
	SetPosition(core.Vec)
	Velocity() core.Vec
	SetVelocity(core.Vec)
	// Size is the width and height of the collision box.
	Size() core.Vec
}

// body is the embedded state behind Body.
type body struct {
	handle Handle
	kind   Kind
	pos    core.Vec
	vel    core.Vec
	size   core.Vec
}

func (b *body) ID() Handle             { return b.handle }
func (b *body) Kind() Kind             { return b.kind }
func (b *body) Position() core.Vec     { return b.pos }
func (b *body) SetPosition(p core.Vec) { b.pos = p }
func (b *body) Velocity() core.Vec     { return b.vel }
func (b *body) SetVelocity(v core.Vec) { b.vel = v }
func (b *body) Size() core.Vec         { return b.size }
func (b *body) Bounds() core.Box       { return core.BoxAt(b.pos, b.size.X, b.size.Y) }

// Table owns every entity of a running level.
type Table struct {
	next   Handle
	kinds  map[Handle]Kind
	bodies map[Handle]Body

	player  *Player
	enemies []*Enemy
	items   []*Item
	bullets []*Bullet
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		kinds:  make(map[Handle]Kind),
		bodies: make(map[Handle]Body),
	}
}

func (t *Table) issue(k Kind) Handle {
	t.next++
	t.kinds[t.next] = k
	return t.next
}

// AddWall issues a handle for static geometry.
func (t *Table) AddWall() Handle {
	return t.issue(KindWall)
}

// AddPlayer creates the player. A table holds at most one player; adding
// another replaces it.
func (t *Table) AddPlayer(pos core.Vec, size float64) *Player {
	if t.player != nil {
		t.Remove(t.player.handle)
	}
	p := &Player{body: body{handle: t.issue(KindPlayer), kind: KindPlayer, pos: pos, size: core.V(size, size)}}
	t.player = p
	t.bodies[p.handle] = p
	return p
}

// AddEnemy creates an enemy with the given stats.
func (t *Table) AddEnemy(typ EnemyType, stats EnemyStats, pos core.Vec, baseSize float64) *Enemy {
	scale := stats.Scale
	if scale <= 0 {
		scale = 1
	}
	e := newEnemy(t.issue(KindEnemy), typ, stats, pos, baseSize*scale)
	t.enemies = append(t.enemies, e)
	t.bodies[e.handle] = e
	return e
}

// AddItem creates an uncollected item.
func (t *Table) AddItem(typ ItemType, value int, pos core.Vec, size float64) *Item {
	it := &Item{
		body:  body{handle: t.issue(KindItem), kind: KindItem, pos: pos, size: core.V(size, size)},
		Type:  typ,
		Value: value,
	}
	t.items = append(t.items, it)
	t.bodies[it.handle] = it
	return it
}

// AddBullet creates an active bullet.
func (t *Table) AddBullet(pos, vel core.Vec, size float64) *Bullet {
	b := &Bullet{
		body:   body{handle: t.issue(KindBullet), kind: KindBullet, pos: pos, vel: vel, size: core.V(size, size)},
		active: true,
	}
	t.bullets = append(t.bullets, b)
	t.bodies[b.handle] = b
	return b
}

// Kind returns the kind of a handle, or KindNone when it does not resolve.
func (t *Table) Kind(h Handle) Kind {
	return t.kinds[h]
}

// Body returns the moving entity behind h.
func (t *Table) Body(h Handle) (Body, bool) {
	b, ok := t.bodies[h]
	return b, ok
}

// Position implements TargetResolver.
func (t *Table) Position(h Handle) (core.Vec, bool) {
	b, ok := t.bodies[h]
	if !ok {
		return core.Vec{}, false
	}
	return b.Position(), true
}

// Player returns the player, or nil before one is added.
func (t *Table) Player() *Player { return t.player }

// Enemy resolves an enemy handle.
func (t *Table) Enemy(h Handle) (*Enemy, bool) {
	e, ok := t.bodies[h].(*Enemy)
	return e, ok
}

// Item resolves an item handle.
func (t *Table) Item(h Handle) (*Item, bool) {
	it, ok := t.bodies[h].(*Item)
	return it, ok
}

// Bullet resolves a bullet handle.
func (t *Table) Bullet(h Handle) (*Bullet, bool) {
	b, ok := t.bodies[h].(*Bullet)
	return b, ok
}

// Enemies returns a copy of the enemies in creation order, so callers may
// Remove while ranging over it.
func (t *Table) Enemies() []*Enemy { return slices.Clone(t.enemies) }

// Items returns a copy of the items in creation order.
func (t *Table) Items() []*Item { return slices.Clone(t.items) }

// Bullets returns a copy of the bullets in creation order.
func (t *Table) Bullets() []*Bullet { return slices.Clone(t.bullets) }

// Remove deletes an entity. Removing an unknown handle is a no-op.
func (t *Table) Remove(h Handle) {
	k, ok := t.kinds[h]
	if !ok {
		return
	}
	delete(t.kinds, h)
	delete(t.bodies, h)

	switch k {
	case KindPlayer:
		if t.player != nil && t.player.handle == h {
			t.player = nil
		}
	case KindEnemy:
		t.enemies = without(t.enemies, h)
	case KindItem:
		t.items = without(t.items, h)
	case KindBullet:
		t.bullets = without(t.bullets, h)
	}
}

// Clear removes every entity. Handles keep counting up.
func (t *Table) Clear() {
	t.kinds = make(map[Handle]Kind)
	t.bodies = make(map[Handle]Body)
	t.player = nil
	t.enemies = nil
	t.items = nil
	t.bullets = nil
}

// Len returns the number of live handles, walls included.
func (t *Table) Len() int { return len(t.kinds) }

func without[T Body](list []T, h Handle) []T {
	out := list[:0]
	for _, e := range list {
		if e.ID() != h {
			out = append(out, e)
		}
	}
	var zero T
	for i := len(out); i < len(list); i++ {
		list[i] = zero
	}
	return out
}
