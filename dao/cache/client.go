package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCodeMismatch = errors.New("code mismatch or expired")

// OtpStore keeps parent sign-in codes in redis. Codes are single use with a
// 10 minute TTL.
type OtpStore struct {
	Redis *redis.Client
}

func NewOtpStore(rdb *redis.Client) *OtpStore {
	return &OtpStore{Redis: rdb}
}

const otpTTL = 10 * time.Minute

func otpKey(email string) string {
	return "otp:parent:" + email
}

func (s *OtpStore) Save(ctx context.Context, email, code string) error {
	return s.Redis.Set(ctx, otpKey(email), code, otpTTL).Err()
}

// Consume verifies and burns the code in one round trip.
func (s *OtpStore) Consume(ctx context.Context, email, code string) error {
	key := otpKey(email)
	stored, err := s.Redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeMismatch
	}
	if err != nil {
		return err
	}
	if stored != code {
		return ErrCodeMismatch
	}
	return s.Redis.Del(ctx, key).Err()
}

// ViewDedupe remembers which posts a child viewed today so views count once
// per day.
type ViewDedupe struct {
	Redis *redis.Client
}

func NewViewDedupe(rdb *redis.Client) *ViewDedupe {
	return &ViewDedupe{Redis: rdb}
}

// MarkViewed returns true the first time the (child, post, day) triple is
// seen.
func (v *ViewDedupe) MarkViewed(ctx context.Context, childID, postID uint64, day string) (bool, error) {
	key := fmt.Sprintf("view:%s:%d:%d", day, childID, postID)
	return v.Redis.SetNX(ctx, key, 1, 48*time.Hour).Result()
}
