package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-chase/game"
	"github.com/beka-birhanu/vinom-chase/identity"
	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type frame struct {
	recordType byte
	payload    []byte
}

type fakeBroadcaster struct {
	frames map[uuid.UUID][]frame
	closed map[uuid.UUID]bool
	sync.Mutex
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{frames: map[uuid.UUID][]frame{}, closed: map[uuid.UUID]bool{}}
}

func (f *fakeBroadcaster) Broadcast(room uuid.UUID, recordType byte, payload []byte) {
	f.Lock()
	defer f.Unlock()
	f.frames[room] = append(f.frames[room], frame{recordType: recordType, payload: payload})
}

func (f *fakeBroadcaster) CloseRoom(room uuid.UUID) {
	f.Lock()
	defer f.Unlock()
	f.closed[room] = true
}

func (f *fakeBroadcaster) roomFrames(room uuid.UUID) []frame {
	f.Lock()
	defer f.Unlock()
	return append([]frame(nil), f.frames[room]...)
}

func (f *fakeBroadcaster) isClosed(room uuid.UUID) bool {
	f.Lock()
	defer f.Unlock()
	return f.closed[room]
}

type fakeResultRepo struct {
	results []game.Result
	sync.Mutex
}

func (f *fakeResultRepo) Save(r *game.Result) error {
	f.Lock()
	defer f.Unlock()
	f.results = append(f.results, *r)
	return nil
}

func (f *fakeResultRepo) ByPlayer(playerID uuid.UUID, limit int64) ([]game.Result, error) {
	f.Lock()
	defer f.Unlock()
	var out []game.Result
	for _, r := range f.results {
		if r.PlayerID == playerID && int64(len(out)) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResultRepo) all() []game.Result {
	f.Lock()
	defer f.Unlock()
	return append([]game.Result(nil), f.results...)
}

type recorded struct {
	difficulty game.Difficulty
	playerID   uuid.UUID
	ticks      int64
}

type fakeLeaderboard struct {
	records []recorded
	sync.Mutex
}

func (f *fakeLeaderboard) Record(_ context.Context, d game.Difficulty, playerID uuid.UUID, ticks int64) error {
	f.Lock()
	defer f.Unlock()
	f.records = append(f.records, recorded{difficulty: d, playerID: playerID, ticks: ticks})
	return nil
}

func (f *fakeLeaderboard) Top(context.Context, game.Difficulty, int64) ([]i.Standing, error) {
	return nil, nil
}

func (f *fakeLeaderboard) all() []recorded {
	f.Lock()
	defer f.Unlock()
	return append([]recorded(nil), f.records...)
}

type fakeUserRepo struct {
	users map[uuid.UUID]*identity.User
	sync.Mutex
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*identity.User{}}
}

var errNotFound = errors.New("not found")

func (f *fakeUserRepo) Save(u *identity.User) error {
	f.Lock()
	defer f.Unlock()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) ByID(id uuid.UUID) (*identity.User, error) {
	f.Lock()
	defer f.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errNotFound
}

func (f *fakeUserRepo) ByUsername(username string) (*identity.User, error) {
	f.Lock()
	defer f.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errNotFound
}

type fakeTokenizer struct {
	lastClaims identity.Claims
	lastTTL    time.Duration
}

func (f *fakeTokenizer) Issue(claims identity.Claims, ttl time.Duration) (string, error) {
	f.lastClaims = claims
	f.lastTTL = ttl
	return "token-for-" + claims.Username, nil
}

func (f *fakeTokenizer) Verify(string) (identity.Claims, error) {
	return f.lastClaims, nil
}

// memSortedStore mimics Redis ZADD LT semantics.
type memSortedStore struct {
	sets map[string]map[string]float64
	sync.Mutex
}

func newMemSortedStore() *memSortedStore {
	return &memSortedStore{sets: map[string]map[string]float64{}}
}

func (m *memSortedStore) KeepLowest(_ context.Context, key string, score float64, member string) error {
	m.Lock()
	defer m.Unlock()
	set, ok := m.sets[key]
	if !ok {
		set = map[string]float64{}
		m.sets[key] = set
	}
	if old, ok := set[member]; !ok || score < old {
		set[member] = score
	}
	return nil
}

func (m *memSortedStore) sorted(key string) []i.ScoredMember {
	var out []i.ScoredMember
	for member, score := range m.sets[key] {
		out = append(out, i.ScoredMember{Member: member, Score: score})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score < out[b].Score
		}
		return out[a].Member < out[b].Member
	})
	return out
}

func (m *memSortedStore) Lowest(_ context.Context, key string, n int64) ([]i.ScoredMember, error) {
	m.Lock()
	defer m.Unlock()
	out := m.sorted(key)
	if int64(len(out)) > n {
		out = out[:n]
	}
	return out, nil
}

func (m *memSortedStore) Trim(_ context.Context, key string, keep int64) error {
	m.Lock()
	defer m.Unlock()
	out := m.sorted(key)
	for idx, sm := range out {
		if int64(idx) >= keep {
			delete(m.sets[key], sm.Member)
		}
	}
	return nil
}
