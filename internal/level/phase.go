package level

// Phase is the lifecycle state of the running level.
type Phase int

const (
	PhaseLoading Phase = iota
	PhasePlaying
	PhasePaused
	PhaseLevelComplete
	PhaseGameOver
	PhaseVictory
	PhaseMenu
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseLevelComplete:
		return "level-complete"
	case PhaseGameOver:
		return "game-over"
	case PhaseVictory:
		return "victory"
	case PhaseMenu:
		return "menu"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseVictory || p == PhaseMenu
}

// RestartMode tells a restart whether progress carries over.
type RestartMode int

const (
	// RestartFresh starts a new game: score, level and weapon are reset.
	RestartFresh RestartMode = iota
	// RestartLevelTransition reloads for the next level and keeps score,
	// level and weapon tier.
	RestartLevelTransition
)

func (m RestartMode) String() string {
	if m == RestartLevelTransition {
		return "level-transition"
	}
	return "fresh"
}
