// Package progression holds the per-session progression state: score, high
// score, level, health, weapon tier and the level counters. The orchestrator
// owns one State per session and hands it to the components that mutate it.
package progression

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

const (
	MaxHealth     = 100
	MaxWeaponTier = 3
)

// HighScoreStore persists the high score between sessions.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// Counter tracks progress toward a level goal.
type Counter struct {
	Defeated int
	Total    int
}

// RunTotals accumulate over a whole run and survive level transitions.
type RunTotals struct {
	EnemiesDefeated int
	ItemsCollected  int
}

// Snapshot is a read-only copy of the state.
type Snapshot struct {
	Score          int
	HighScore      int
	Level          int
	Health         int
	MaxHealth      int
	WeaponTier     int
	GameOver       bool
	Paused         bool
	Enemies        Counter
	ItemsCollected int
	Run            RunTotals
}

// State is the progression state of one session. It is not safe for
// concurrent use; the simulation is single-threaded.
type State struct {
	store  HighScoreStore
	logger *log.Logger

	score          int
	highScore      int
	level          int
	health         int
	weaponTier     int
	gameOver       bool
	paused         bool
	enemies        Counter
	itemsCollected int
	run            RunTotals
}

// New creates a fresh state and loads the persisted high score. A store that
// fails to load is logged and treated as a high score of 0; a nil store keeps
// the high score in memory only.
func New(store HighScoreStore, logger *log.Logger) *State {
	if logger == nil {
		logger = log.Default()
	}
	s := &State{store: store, logger: logger}
	if store != nil {
		hs, err := store.LoadHighScore()
		if err != nil {
			logger.Warn("could not load high score", "error", err)
		} else if hs > 0 {
			s.highScore = hs
		}
	}
	s.Reset()
	return s
}

// Reset starts a fresh game. The high score survives.
func (s *State) Reset() {
	s.score = 0
	s.level = 1
	s.health = MaxHealth
	s.weaponTier = 1
	s.gameOver = false
	s.paused = false
	s.enemies = Counter{}
	s.itemsCollected = 0
	s.run = RunTotals{}
}

// ResetForLevelTransition resets the level-scoped values but keeps score,
// level and weapon tier. GameOver is cleared together with the health refill.
func (s *State) ResetForLevelTransition() {
	s.health = MaxHealth
	s.gameOver = false
	s.paused = false
	s.enemies = Counter{}
	s.itemsCollected = 0
}

// IncrementScore adds points and returns the new score. Negative points are
// ignored so the score never decreases. A new high score is persisted
// immediately; a store failure is logged and the in-memory value kept.
func (s *State) IncrementScore(points int) int {
	if points <= 0 {
		return s.score
	}
	s.score += points
	if s.score > s.highScore {
		s.highScore = s.score
		if s.store != nil {
			if err := s.store.SaveHighScore(s.highScore); err != nil {
				s.logger.Warn("could not persist high score", "score", s.highScore, "error", err)
			}
		}
	}
	return s.score
}

// SetHealth sets health clamped to [0, MaxHealth] and returns it.
func (s *State) SetHealth(v int) int {
	s.health = core.Clamp(v, 0, MaxHealth)
	if s.health == 0 {
		s.gameOver = true
	}
	return s.health
}

// UpdateHealth adds delta to health (clamped) and returns the new value.
func (s *State) UpdateHealth(delta int) int {
	return s.SetHealth(s.health + delta)
}

// UpgradeWeapon raises the weapon tier up to MaxWeaponTier.
func (s *State) UpgradeWeapon() int {
	if s.weaponTier < MaxWeaponTier {
		s.weaponTier++
	}
	return s.weaponTier
}

// EnemyDefeated counts one defeated enemy. The count saturates at the
// level total; extra calls change nothing.
func (s *State) EnemyDefeated() {
	if s.enemies.Defeated >= s.enemies.Total {
		return
	}
	s.enemies.Defeated++
	s.run.EnemiesDefeated++
}

// SetTotalEnemies sets the number of enemies placed for the level. The
// defeated count is lowered to n when it would exceed it.
func (s *State) SetTotalEnemies(n int) {
	if n < 0 {
		n = 0
	}
	s.enemies.Total = n
	s.enemies.Defeated = min(s.enemies.Defeated, n)
}

// ItemCollected counts one collected item.
func (s *State) ItemCollected() {
	s.itemsCollected++
	s.run.ItemsCollected++
}

// SetPaused records the pause flag.
func (s *State) SetPaused(p bool) {
	s.paused = p
}

// IsLevelComplete reports whether every placed enemy has been defeated. A
// level with no enemies is never complete.
func (s *State) IsLevelComplete() bool {
	return s.enemies.Total > 0 && s.enemies.Defeated >= s.enemies.Total
}

// NextLevel advances the level counter and returns the new level.
func (s *State) NextLevel() int {
	s.level++
	return s.level
}

func (s *State) Score() int      { return s.score }
func (s *State) HighScore() int  { return s.highScore }
func (s *State) Level() int      { return s.level }
func (s *State) Health() int     { return s.health }
func (s *State) WeaponTier() int { return s.weaponTier }
func (s *State) GameOver() bool  { return s.gameOver }
func (s *State) Paused() bool    { return s.paused }

// Snapshot returns a copy of the current values.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Score:          s.score,
		HighScore:      s.highScore,
		Level:          s.level,
		Health:         s.health,
		MaxHealth:      MaxHealth,
		WeaponTier:     s.weaponTier,
		GameOver:       s.gameOver,
		Paused:         s.paused,
		Enemies:        s.enemies,
		ItemsCollected: s.itemsCollected,
		Run:            s.run,
	}
}
