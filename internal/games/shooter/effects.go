package shooter

import (
	"time"

	"github.com/vovakirdan/tui-shooter/internal/agent"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/dispatch"
)

const burstDuration = 300 * time.Millisecond

type burst struct {
	pos  core.Vec
	key  string
	left time.Duration
}

// effects is the terminal presentation of hits, kills and pickups. It only
// keeps timers for what the renderer should highlight.
type effects struct {
	sheet       *Sheet
	flash       time.Duration
	enemyFlash  map[agent.Handle]time.Duration
	playerFlash time.Duration
	bursts      []burst
}

var _ dispatch.Effects = (*effects)(nil)

func newEffects(sheet *Sheet, flash time.Duration) *effects {
	return &effects{
		sheet:      sheet,
		flash:      flash,
		enemyFlash: make(map[agent.Handle]time.Duration),
	}
}

func (fx *effects) EnemyHit(h agent.Handle) error {
	fx.enemyFlash[h] = fx.flash
	return nil
}

func (fx *effects) EnemyKilled(pos core.Vec) error {
	return fx.addBurst(pos, "burst")
}

func (fx *effects) PlayerHit(int) error {
	fx.playerFlash = fx.flash
	return nil
}

func (fx *effects) ItemPicked(typ agent.ItemType, pos core.Vec) error {
	return fx.addBurst(pos, "item-"+typ.String())
}

func (fx *effects) addBurst(pos core.Vec, key string) error {
	if _, err := fx.sheet.Lookup(key); err != nil {
		return err
	}
	fx.bursts = append(fx.bursts, burst{pos: pos, key: key, left: burstDuration})
	return nil
}

// Advance ages every effect by dt.
func (fx *effects) Advance(dt time.Duration) {
	for h, left := range fx.enemyFlash {
		if left -= dt; left <= 0 {
			delete(fx.enemyFlash, h)
		} else {
			fx.enemyFlash[h] = left
		}
	}
	if fx.playerFlash > 0 {
		fx.playerFlash -= dt
	}
	live := fx.bursts[:0]
	for _, b := range fx.bursts {
		if b.left -= dt; b.left > 0 {
			live = append(live, b)
		}
	}
	fx.bursts = live
}

func (fx *effects) enemyFlashing(h agent.Handle) bool { return fx.enemyFlash[h] > 0 }
func (fx *effects) playerFlashing() bool              { return fx.playerFlash > 0 }

// Clear drops every pending effect.
func (fx *effects) Clear() {
	clear(fx.enemyFlash)
	fx.playerFlash = 0
	fx.bursts = nil
}
