package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Leaderboard keeps a weekly points ZSET per age group. Weeks roll over by
// key, no reset job needed.
type Leaderboard struct {
	Redis *redis.Client
}

func NewLeaderboard(rdb *redis.Client) *Leaderboard {
	return &Leaderboard{Redis: rdb}
}

func leaderboardKey(week, ageGroup string) string {
	return "leaderboard:" + week + ":" + ageGroup
}

// AddPoints credits a child on this week's board.
func (l *Leaderboard) AddPoints(ctx context.Context, week, ageGroup string, childID uint64, points int64) error {
	key := leaderboardKey(week, ageGroup)
	pipe := l.Redis.Pipeline()
	pipe.ZIncrBy(ctx, key, float64(points), strconv.FormatUint(childID, 10))
	// keep two weeks around so "last week" stays queryable
	pipe.Expire(ctx, key, 14*24*time.Hour)
	_, err := pipe.Exec(ctx)
	return err
}

type LeaderboardEntry struct {
	ChildID uint64
	Points  int64
}

// Top returns the board's best n children, highest first.
func (l *Leaderboard) Top(ctx context.Context, week, ageGroup string, n int64) ([]LeaderboardEntry, error) {
	zs, err := l.Redis.ZRevRangeWithScores(ctx, leaderboardKey(week, ageGroup), 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{ChildID: id, Points: int64(z.Score)})
	}
	return entries, nil
}
