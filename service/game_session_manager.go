package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-chase/game"
	"github.com/beka-birhanu/vinom-chase/maze"
	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/google/uuid"
)

const (
	defaultTick = 100 * time.Millisecond

	// Record types prefixed to stream frames.
	StateRecordType = 10
	EndRecordType   = 11

	resultTimeout = 5 * time.Second
)

// Session errors.
var (
	ErrPlayerInSession  = errors.New("player already has an active session")
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotSessionOwner  = errors.New("session belongs to another player")
	ErrManagerShutdown  = errors.New("session manager is shutting down")
	ErrSpawnUnavailable = errors.New("no cell far enough from the start for an enemy")
)

type session struct {
	id         uuid.UUID
	playerID   uuid.UUID
	difficulty game.Difficulty
	mode       game.Mode
	game       *game.Game
	startedAt  time.Time
}

// GameSessionManager owns running games and routes their frames, results
// and scores.
type GameSessionManager struct {
	mazes       i.MazeBuilder
	encoder     game.Encoder
	broadcaster i.Broadcaster
	results     i.ResultRepo
	leaderboard i.Leaderboard
	logger      i.Logger
	rules       game.Rules
	tick        time.Duration
	rng         *rand.Rand
	rngMu       sync.Mutex

	sessions        map[uuid.UUID]*session
	playerToSession map[uuid.UUID]uuid.UUID
	ctx             context.Context
	cancel          context.CancelFunc
	closed          bool
	wg              sync.WaitGroup
	sync.RWMutex
}

type Config struct {
	Mazes       i.MazeBuilder
	Encoder     game.Encoder
	Broadcaster i.Broadcaster
	Results     i.ResultRepo
	Leaderboard i.Leaderboard
	Logger      i.Logger
	Rules       game.Rules    // Zero value means game.DefaultRules.
	Tick        time.Duration // Defaults to 100ms.
	Seed        *int64        // Seeds enemy placement; nil uses the clock.
}

// NewGameSessionManager validates the dependencies in c.
func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if c == nil || c.Mazes == nil || c.Encoder == nil || c.Broadcaster == nil ||
		c.Results == nil || c.Leaderboard == nil || c.Logger == nil {
		return nil, ErrNilDependency
	}

	tick := c.Tick
	if tick <= 0 {
		tick = defaultTick
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &GameSessionManager{
		mazes:           c.Mazes,
		encoder:         c.Encoder,
		broadcaster:     c.Broadcaster,
		results:         c.Results,
		leaderboard:     c.Leaderboard,
		logger:          c.Logger,
		rules:           c.Rules,
		tick:            tick,
		rng:             rand.New(rand.NewSource(seed)),
		sessions:        make(map[uuid.UUID]*session),
		playerToSession: make(map[uuid.UUID]uuid.UUID),
		ctx:             ctx,
		cancel:          cancel,
	}, nil
}

// NewSession implements i.GameSessionManager. The maze and game are built
// before the manager lock is taken, and the admission checks are repeated
// under it.
func (g *GameSessionManager) NewSession(playerID uuid.UUID, difficulty game.Difficulty, mode game.Mode) (uuid.UUID, error) {
	if err := g.admit(playerID); err != nil {
		return uuid.Nil, err
	}

	grid, err := g.mazes.Build(difficulty.Size(), nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("building maze: %w", err)
	}

	enemies, err := g.spawn(grid, difficulty.Enemies())
	if err != nil {
		return uuid.Nil, err
	}

	gm, err := game.New(game.Config{
		Grid:    grid,
		Mode:    mode,
		Enemies: enemies,
		Rules:   g.rules,
		Encoder: g.encoder,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("creating game: %w", err)
	}

	s := &session{
		id:         uuid.New(),
		playerID:   playerID,
		difficulty: difficulty,
		mode:       gm.Mode(),
		game:       gm,
		startedAt:  time.Now(),
	}

	g.Lock()
	if err := g.admitLocked(playerID); err != nil {
		g.Unlock()
		return uuid.Nil, err
	}
	g.sessions[s.id] = s
	g.playerToSession[playerID] = s.id
	g.wg.Add(1)
	g.Unlock()

	go g.run(s)

	g.logger.Info(fmt.Sprintf("started %s %s game %s for player %s", difficulty, s.mode, s.id, playerID))
	return s.id, nil
}

// admit fails fast when playerID cannot start a session right now.
func (g *GameSessionManager) admit(playerID uuid.UUID) error {
	g.RLock()
	defer g.RUnlock()
	return g.admitLocked(playerID)
}

func (g *GameSessionManager) admitLocked(playerID uuid.UUID) error {
	if g.closed {
		return ErrManagerShutdown
	}
	if _, ok := g.playerToSession[playerID]; ok {
		return ErrPlayerInSession
	}
	return nil
}

// spawn places enemies with the manager's random source.
func (g *GameSessionManager) spawn(grid *maze.Grid, n int) ([]maze.Cell, error) {
	g.rngMu.Lock()
	defer g.rngMu.Unlock()
	return spawnEnemies(grid, n, g.rng)
}

// Session implements i.GameSessionManager.
func (g *GameSessionManager) Session(sessionID, playerID uuid.UUID) (*i.SessionView, error) {
	s, err := g.owned(sessionID, playerID)
	if err != nil {
		return nil, err
	}

	return &i.SessionView{
		ID:         s.id,
		Difficulty: s.difficulty,
		Mode:       s.mode,
		Rows:       s.game.Grid().Rows(),
		State:      s.game.Snapshot(),
	}, nil
}

// Move implements i.GameSessionManager.
func (g *GameSessionManager) Move(sessionID, playerID uuid.UUID, direction string) (game.State, error) {
	s, err := g.owned(sessionID, playerID)
	if err != nil {
		return game.State{}, err
	}

	if err := s.game.Move(direction); err != nil {
		return game.State{}, err
	}
	return s.game.Snapshot(), nil
}

// Stop implements i.GameSessionManager. The result is stored once the
// game loop winds down.
func (g *GameSessionManager) Stop(sessionID, playerID uuid.UUID) error {
	s, err := g.owned(sessionID, playerID)
	if err != nil {
		return err
	}
	s.game.Stop()
	return nil
}

// StopAll implements i.GameSessionManager.
func (g *GameSessionManager) StopAll() {
	g.Lock()
	g.closed = true
	g.Unlock()

	g.cancel()
	g.wg.Wait()
}

func (g *GameSessionManager) owned(sessionID, playerID uuid.UUID) (*session, error) {
	g.RLock()
	defer g.RUnlock()

	s, ok := g.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.playerID != playerID {
		return nil, ErrNotSessionOwner
	}
	return s, nil
}

// run drives one game and relays its frames until it ends.
func (g *GameSessionManager) run(s *session) {
	defer g.wg.Done()

	go s.game.Start(g.ctx, g.tick)

	for frame := range s.game.StateChan {
		g.broadcaster.Broadcast(s.id, StateRecordType, frame)
	}
	if frame, ok := <-s.game.EndChan; ok {
		g.broadcaster.Broadcast(s.id, EndRecordType, frame)
	}
	g.broadcaster.CloseRoom(s.id)

	g.finish(s)
}

// finish forgets the session and stores its outcome.
func (g *GameSessionManager) finish(s *session) {
	g.Lock()
	delete(g.sessions, s.id)
	delete(g.playerToSession, s.playerID)
	g.Unlock()

	state := s.game.Snapshot()
	result := &game.Result{
		ID:         uuid.New(),
		PlayerID:   s.playerID,
		Difficulty: s.difficulty,
		Mode:       s.mode,
		Status:     state.Status,
		Hits:       state.Hits,
		Ticks:      state.Tick,
		Duration:   time.Duration(state.Tick) * g.tick,
		FinishedAt: time.Now().UTC(),
	}

	if err := g.results.Save(result); err != nil {
		g.logger.Error(fmt.Sprintf("saving result of game %s: %v", s.id, err))
	}

	if state.Status == game.StatusWon && s.mode == game.ModeManual {
		ctx, cancel := context.WithTimeout(context.Background(), resultTimeout)
		defer cancel()
		if err := g.leaderboard.Record(ctx, s.difficulty, s.playerID, state.Tick); err != nil {
			g.logger.Error(fmt.Sprintf("recording score of game %s: %v", s.id, err))
		}
	}

	g.logger.Info(fmt.Sprintf("game %s ended %s after %d ticks", s.id, state.Status, state.Tick))
}

// spawnEnemies picks n distinct open cells reachable from the start and at
// least half the maze side away from it. The goal is never used.
func spawnEnemies(grid *maze.Grid, n int, rng *rand.Rand) ([]maze.Cell, error) {
	if n <= 0 {
		return nil, nil
	}

	minDistance := grid.Size() / 2
	var candidates []maze.Cell
	for _, c := range maze.Reachable(grid, grid.Start()) {
		if c != grid.Goal() && maze.Manhattan(grid.Start(), c) >= minDistance {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) < n {
		return nil, ErrSpawnUnavailable
	}

	rng.Shuffle(len(candidates), func(a, b int) {
		candidates[a], candidates[b] = candidates[b], candidates[a]
	})
	return candidates[:n], nil
}
