// Package events defines the domain events the simulation emits to
// presentation and any other listener, and a small synchronous bus.
package events

// Event is a domain event. The set of events is closed.
type Event interface {
	event()
}

// EnemyDefeated is emitted when an enemy dies to a player bullet.
type EnemyDefeated struct {
	Score int // points awarded for the kill
}

func (EnemyDefeated) event() {}

// ItemCollected is emitted when the player picks up an item.
type ItemCollected struct {
	Type  string
	Value int
}

func (ItemCollected) event() {}

// PlayerDied is emitted once the player's death delay has elapsed.
type PlayerDied struct{}

func (PlayerDied) event() {}

// LevelComplete is emitted when every placed enemy of a level is defeated.
type LevelComplete struct {
	Level int
}

func (LevelComplete) event() {}

// GameOver is emitted when the run ends with the player dead.
type GameOver struct {
	Score     int
	HighScore int
}

func (GameOver) event() {}

// Name returns a stable name for logging.
func Name(e Event) string {
	switch e.(type) {
	case EnemyDefeated:
		return "enemy-defeated"
	case ItemCollected:
		return "item-collected"
	case PlayerDied:
		return "player-died"
	case LevelComplete:
		return "level-complete"
	case GameOver:
		return "game-over"
	default:
		return "unknown"
	}
}
