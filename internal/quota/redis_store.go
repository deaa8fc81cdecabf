package quota

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
)

const (
	keyQuota        = "quota:%s"
	fieldRemaining  = "remaining"
	fieldLastReset  = "last_reset_date"
	defaultRedisTTL = 48 * time.Hour
)

// RedisStore keeps each identity's record in a hash that expires after a
// couple of days of inactivity.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, ttl: defaultRedisTTL}
}

func (s *RedisStore) Load(ctx context.Context, id domain.Identity) (domain.QuotaRecord, bool, error) {
	values, err := s.client.HGetAll(ctx, fmt.Sprintf(keyQuota, id.Key())).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.QuotaRecord{}, false, nil
		}
		return domain.QuotaRecord{}, false, err
	}
	if len(values) == 0 {
		return domain.QuotaRecord{}, false, nil
	}

	remaining, err := strconv.Atoi(values[fieldRemaining])
	if err != nil {
		return domain.QuotaRecord{}, false, fmt.Errorf("parse %s: %w", fieldRemaining, err)
	}
	return domain.QuotaRecord{Remaining: remaining, LastResetDate: values[fieldLastReset]}, true, nil
}

func (s *RedisStore) Save(ctx context.Context, id domain.Identity, rec domain.QuotaRecord) error {
	key := fmt.Sprintf(keyQuota, id.Key())

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fieldRemaining, strconv.Itoa(rec.Remaining), fieldLastReset, rec.LastResetDate)
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

var _ domain.QuotaRepository = (*RedisStore)(nil)
