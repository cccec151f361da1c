// Package game runs a single chase session: a player crossing a maze
// toward the goal while enemies pursue it.
package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-chase/maze"
	"github.com/beka-birhanu/vinom-chase/pathfinder"
	"golang.org/x/sync/errgroup"
)

// Game-related errors.
var (
	ErrNilGrid              = errors.New("game needs a grid")
	ErrNilEncoder           = errors.New("game needs an encoder")
	ErrTooManyEnemies       = errors.New("too many enemies")
	ErrInvalidEnemyPosition = errors.New("enemy is not on an open cell")
	ErrNoRoute              = errors.New("no route from start to goal")
	ErrBlockedMove          = errors.New("move is blocked")
	ErrInvalidDirection     = errors.New("invalid direction")
	ErrNotManualMode        = errors.New("player is not controlled manually")
	ErrGameOver             = errors.New("game is over")
)

const (
	maxEnemies = 4 // Maximum number of pursuers.

	stateBuffer = 16 // Frames buffered on StateChan before dropping.
)

// Config describes a game to create.
type Config struct {
	Grid    *maze.Grid  // Carved maze; never mutated by the game.
	Mode    Mode        // Defaults to ModeManual.
	Enemies []maze.Cell // Enemy spawn cells.
	Rules   Rules       // Zero value means DefaultRules.
	Encoder Encoder     // Encodes frames for StateChan and EndChan.
}

// Game is one chase session. All state changes happen under its lock, so
// Tick, Move and Snapshot are safe to call from different goroutines.
type Game struct {
	grid    *maze.Grid
	mode    Mode
	rules   Rules
	encoder Encoder

	player   *Agent
	enemies  []*Agent
	route    pathfinder.Path // Remaining autonomous route.
	tick     int64
	version  int64
	hits     int
	lastHit  int64 // Tick of the latest counted hit.
	status   Status
	stop     chan struct{}
	stopOnce sync.Once

	StateChan chan []byte // Encoded state after every running tick.
	EndChan   chan []byte // Encoded final state, sent once.
	sync.RWMutex
}

// New validates cfg and returns a running game with the player on the
// grid's start cell. In autonomous mode the player's route is planned
// here, and an unreachable goal fails with ErrNoRoute.
func New(cfg Config) (*Game, error) {
	if cfg.Grid == nil {
		return nil, ErrNilGrid
	}
	if cfg.Encoder == nil {
		return nil, ErrNilEncoder
	}
	if len(cfg.Enemies) > maxEnemies {
		return nil, ErrTooManyEnemies
	}

	rules := cfg.Rules
	if rules == (Rules{}) {
		rules = DefaultRules()
	}
	if err := rules.validate(); err != nil {
		return nil, err
	}

	mode := cfg.Mode
	if mode == "" {
		mode = ModeManual
	}
	if mode != ModeManual && mode != ModeAutonomous {
		return nil, ErrInvalidMode
	}

	enemies := make([]*Agent, 0, len(cfg.Enemies))
	for _, pos := range cfg.Enemies {
		if !cfg.Grid.IsOpen(pos) {
			return nil, ErrInvalidEnemyPosition
		}
		enemies = append(enemies, NewAgent(pos))
	}

	g := &Game{
		grid:      cfg.Grid,
		mode:      mode,
		rules:     rules,
		encoder:   cfg.Encoder,
		player:    NewAgent(cfg.Grid.Start()),
		enemies:   enemies,
		status:    StatusRunning,
		stop:      make(chan struct{}),
		StateChan: make(chan []byte, stateBuffer),
		EndChan:   make(chan []byte, 1),
	}

	if mode == ModeAutonomous && g.player.Position() != cfg.Grid.Goal() {
		g.route = pathfinder.Find(cfg.Grid, cfg.Grid.Start(), cfg.Grid.Goal())
		if g.route.Empty() {
			return nil, ErrNoRoute
		}
	}

	return g, nil
}

// Grid returns the maze the game is played on.
func (g *Game) Grid() *maze.Grid {
	return g.grid
}

// Mode returns who drives the player.
func (g *Game) Mode() Mode {
	return g.mode
}

// Tick advances the game by one tick and returns the resulting state.
// Ended games are left untouched.
func (g *Game) Tick() State {
	g.Lock()
	defer g.Unlock()

	if g.status.Ended() {
		return g.snapshot()
	}

	g.tick++
	if g.mode == ModeAutonomous && g.tick%int64(g.rules.PlayerStepTicks) == 0 {
		if next, ok := g.route.Next(); ok {
			g.player.pos = next
			g.route = g.route[1:]
		}
	}

	if g.tick%int64(g.rules.EnemyStepTicks) == 0 {
		g.advanceEnemies()
	}

	g.detectHit()

	switch {
	case g.player.Position() == g.grid.Goal():
		g.status = StatusWon
	case g.hits > g.rules.MaxHits:
		g.status = StatusLost
	}

	g.version++
	return g.snapshot()
}

// advanceEnemies plans every enemy's step toward the player concurrently.
// Each goroutine only writes its own agent.
func (g *Game) advanceEnemies() {
	target := g.player.Position()

	var eg errgroup.Group
	for _, enemy := range g.enemies {
		eg.Go(func() error {
			enemy.AdvanceToward(g.grid, target)
			return nil
		})
	}
	_ = eg.Wait()
}

// detectHit counts at most one hit per tick, ignoring contact while the
// player is invincible.
func (g *Game) detectHit() {
	pos := g.player.Position()
	for _, enemy := range g.enemies {
		if enemy.Position() != pos {
			continue
		}
		if g.hits > 0 && g.tick-g.lastHit <= int64(g.rules.InvincibilityTicks) {
			return
		}
		g.hits++
		g.lastHit = g.tick
		return
	}
}

// Move steps the player one cell in direction (North, South, East, West).
func (g *Game) Move(direction string) error {
	delta, ok := maze.Directions[direction]
	if !ok {
		return ErrInvalidDirection
	}

	g.Lock()
	defer g.Unlock()

	if g.status.Ended() {
		return ErrGameOver
	}
	if g.mode != ModeManual {
		return ErrNotManualMode
	}

	next := g.player.Position().Add(delta)
	if !g.grid.IsOpen(next) {
		return ErrBlockedMove
	}

	g.player.pos = next
	g.version++
	return nil
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() State {
	g.RLock()
	defer g.RUnlock()
	return g.snapshot()
}

func (g *Game) snapshot() State {
	enemies := make([]maze.Cell, len(g.enemies))
	for i, e := range g.enemies {
		enemies[i] = e.Position()
	}

	return State{
		Version: g.version,
		Tick:    g.tick,
		Size:    g.grid.Size(),
		Player:  g.player.Position(),
		Goal:    g.grid.Goal(),
		Enemies: enemies,
		Hits:    g.hits,
		Status:  g.status,
	}
}

// Start ticks the game every interval until it is won or lost, ctx is
// cancelled, or Stop is called. Running states are published on StateChan
// without blocking; the final state goes to EndChan and both channels are
// closed before Start returns.
func (g *Game) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer g.finish()

	for {
		select {
		case <-ctx.Done():
			g.halt()
			return
		case <-g.stop:
			return
		case <-ticker.C:
			state := g.Tick()
			if state.Status.Ended() {
				return
			}
			g.publish(state)
		}
	}
}

// Stop ends a running game. It is safe to call more than once.
func (g *Game) Stop() {
	g.halt()
	g.stopOnce.Do(func() { close(g.stop) })
}

func (g *Game) halt() {
	g.Lock()
	defer g.Unlock()
	if !g.status.Ended() {
		g.status = StatusStopped
		g.version++
	}
}

func (g *Game) publish(s State) {
	payload, err := g.encoder.MarshalState(s)
	if err != nil {
		return
	}

	select {
	case g.StateChan <- payload:
	default:
	}
}

func (g *Game) finish() {
	close(g.StateChan)
	if payload, err := g.encoder.MarshalState(g.Snapshot()); err == nil {
		g.EndChan <- payload
	}
	close(g.EndChan)
}
