package game

import (
	"errors"
	"strings"
)

// Rule and catalogue errors.
var (
	ErrInvalidRules      = errors.New("rules must have positive step and hit values")
	ErrInvalidDifficulty = errors.New("unknown difficulty")
	ErrInvalidMode       = errors.New("unknown game mode")
)

// Mode decides who drives the player.
type Mode string

const (
	ModeManual     Mode = "manual"     // Player moved through Move.
	ModeAutonomous Mode = "autonomous" // Player walks the precomputed route.
)

// ParseMode maps a client supplied name to a Mode. "ai" is accepted as an
// alias of autonomous.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeManual):
		return ModeManual, nil
	case string(ModeAutonomous), "ai":
		return ModeAutonomous, nil
	}
	return "", ErrInvalidMode
}

// Difficulty selects the maze size and the number of enemies.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var difficulties = map[Difficulty]struct {
	size    int
	enemies int
}{
	Easy:   {size: 20, enemies: 1},
	Medium: {size: 40, enemies: 2},
	Hard:   {size: 50, enemies: 3},
}

// ParseDifficulty maps a client supplied name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := difficulties[d]; !ok {
		return "", ErrInvalidDifficulty
	}
	return d, nil
}

// Size is the maze side length for d, or 0 when d is unknown.
func (d Difficulty) Size() int {
	return difficulties[d].size
}

// Enemies is the number of pursuers spawned for d.
func (d Difficulty) Enemies() int {
	return difficulties[d].enemies
}

// Rules holds the tick cadences of a session.
type Rules struct {
	PlayerStepTicks    int // Autonomous player steps once every N ticks.
	EnemyStepTicks     int // Enemies step once every N ticks.
	InvincibilityTicks int // Ticks after a hit during which contact is ignored.
	MaxHits            int // The game is lost once hits exceed this.
}

// DefaultRules returns the cadences used with a 100ms tick.
func DefaultRules() Rules {
	return Rules{
		PlayerStepTicks:    10,
		EnemyStepTicks:     20,
		InvincibilityTicks: 30,
		MaxHits:            3,
	}
}

func (r Rules) validate() error {
	if r.PlayerStepTicks <= 0 || r.EnemyStepTicks <= 0 || r.InvincibilityTicks < 0 || r.MaxHits < 0 {
		return ErrInvalidRules
	}
	return nil
}
