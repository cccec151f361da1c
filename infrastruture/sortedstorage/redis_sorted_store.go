package sortedstorage

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

var _ i.SortedStore = &RedisSortedStore{}

// RedisSortedStore manages score ordered sets in Redis with TTL support.
type RedisSortedStore struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisSortedStore initializes a RedisSortedStore with the provided Redis client and TTL.
func NewRedisSortedStore(client *redis.Client, ttlSeconds int) *RedisSortedStore {
	pool := goredis.NewPool(client)
	return &RedisSortedStore{
		client: client,
		locker: redsync.New(pool),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// KeepLowest implements i.SortedStore. Scores of existing members are only lowered.
func (rs *RedisSortedStore) KeepLowest(ctx context.Context, key string, score float64, member string) error {
	err := rs.client.ZAddArgs(ctx, key, redis.ZAddArgs{
		LT:      true,
		Members: []redis.Z{{Score: score, Member: member}},
	}).Err()
	if err != nil {
		return err
	}

	// Set expiration only if it's not already set
	ttl, err := rs.client.TTL(ctx, key).Result()
	if err == nil && ttl == -1 && rs.ttl > 0 {
		_ = rs.client.Expire(ctx, key, rs.ttl).Err()
	}

	return nil
}

// Lowest implements i.SortedStore.
func (rs *RedisSortedStore) Lowest(ctx context.Context, key string, n int64) ([]i.ScoredMember, error) {
	if n <= 0 {
		return nil, nil
	}

	zs, err := rs.client.ZRangeWithScores(ctx, key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	members := make([]i.ScoredMember, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		members = append(members, i.ScoredMember{Member: member, Score: z.Score})
	}
	return members, nil
}

// Trim implements i.SortedStore. Concurrent trims of one key are serialised
// through a distributed lock.
func (rs *RedisSortedStore) Trim(ctx context.Context, key string, keep int64) error {
	mutex := rs.locker.NewMutex(key + ":trim_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	if rs.client.ZCard(ctx, key).Val() <= keep {
		return nil
	}
	return rs.client.ZRemRangeByRank(ctx, key, keep, -1).Err()
}
