package session

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/verisent/authkit/internal"
)

// ErrStoreUnavailable wraps every transient Redis failure so callers can
// retry instead of treating the outage as a revoked credential.
var ErrStoreUnavailable = errors.New("session store unavailable")

const (
	refreshKeyPrefix = "refresh:"
	scanPageSize     = 1000
)

// RefreshStore persists one opaque refresh credential per (user, device)
// pair. Records carry their own deadline and a matching Redis TTL; Redis
// eviction is the primary cleanup path and the lazy expiry check in
// [RefreshStore.Verify] is defensive only.
type RefreshStore struct {
	redis redis.UniversalClient
}

// NewRefreshStore creates a [RefreshStore] backed by the given Redis client.
func NewRefreshStore(rdb redis.UniversalClient) *RefreshStore {
	return &RefreshStore{redis: rdb}
}

func (s *RefreshStore) key(userID, deviceID string) string {
	return refreshKeyPrefix + userID + ":" + deviceID
}

func (s *RefreshStore) userPattern(userID string) string {
	return refreshKeyPrefix + escapeMatchPattern(userID) + ":*"
}

// escapeMatchPattern neutralizes Redis MATCH glob metacharacters in a user ID.
// User IDs are opaque, so an ID like "ali*" must scan only its own keys and
// never widen to siblings such as "alice".
func escapeMatchPattern(s string) string {
	if !strings.ContainsAny(s, `\*?[]`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '*', '?', '[', ']':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Issue generates a fresh high-entropy refresh token for the device, stores
// it with a TTL equal to its embedded deadline, and returns the plaintext.
// This is the only moment the plaintext ever leaves the store.
//
//	Performance: 1 Redis SET.
func (s *RefreshStore) Issue(ctx context.Context, userID, deviceID string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", errors.New("refresh ttl must be > 0")
	}

	token, err := internal.NewRefreshToken()
	if err != nil {
		return "", err
	}

	record := RefreshRecord{
		RefreshToken: token,
		ExpiresAt:    time.Now().Add(ttl).UnixMilli(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return "", err
	}

	if err := s.redis.Set(ctx, s.key(userID, deviceID), data, ttl).Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return token, nil
}

// Verify reports whether the presented token matches the stored record for
// the device. A missing, corrupt, or lazily-expired record is false, never an
// error; expired and corrupt records are deleted on sight. The comparison is
// constant-time.
//
//	Performance: 1 Redis GET (+1 DEL on stale records).
func (s *RefreshStore) Verify(ctx context.Context, userID, deviceID, presented string) (bool, error) {
	key := s.key(userID, deviceID)

	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var record RefreshRecord
	if err := json.Unmarshal(data, &record); err != nil {
		if delErr := s.delete(ctx, key); delErr != nil {
			return false, delErr
		}
		return false, nil
	}

	if time.Now().UnixMilli() > record.ExpiresAt {
		if delErr := s.delete(ctx, key); delErr != nil {
			return false, delErr
		}
		return false, nil
	}

	match := subtle.ConstantTimeCompare([]byte(record.RefreshToken), []byte(presented)) == 1
	return match, nil
}

// Revoke deletes one device's refresh record. Deleting an absent record is
// a no-op.
//
//	Performance: 1 Redis DEL.
func (s *RefreshStore) Revoke(ctx context.Context, userID, deviceID string) error {
	return s.delete(ctx, s.key(userID, deviceID))
}

// RevokeAll deletes every refresh record for the user via a prefix scan.
// Zero matches is success. A record issued concurrently for another device
// mid-scan may survive; it is closed by its own TTL, not instantly.
//
//	Performance: O(keys) SCAN pages + 1 DEL per page.
func (s *RefreshStore) RevokeAll(ctx context.Context, userID string) error {
	var cursor uint64
	for {
		keys, next, err := s.redis.Scan(ctx, cursor, s.userPattern(userID), scanPageSize).Result()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		if len(keys) > 0 {
			if err := s.redis.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// ListActiveDevices enumerates the devices holding a live refresh credential
// for the user. Corrupt or lazily-expired records are skipped, not returned.
// This is an admin/profile view, not a hot path.
//
//	Performance: O(keys) SCAN pages + pipelined GETs.
func (s *RefreshStore) ListActiveDevices(ctx context.Context, userID string) ([]DeviceSession, error) {
	prefix := refreshKeyPrefix + userID + ":"

	var keys []string
	var cursor uint64
	for {
		page, next, err := s.redis.Scan(ctx, cursor, s.userPattern(userID), scanPageSize).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		keys = append(keys, page...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return []DeviceSession{}, nil
	}

	pipe := s.redis.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.Get(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	nowMillis := time.Now().UnixMilli()
	devices := make([]DeviceSession, 0, len(keys))
	for i, cmd := range cmds {
		data, cmdErr := cmd.Bytes()
		if cmdErr != nil {
			if errors.Is(cmdErr, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, cmdErr)
		}

		var record RefreshRecord
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}
		if nowMillis > record.ExpiresAt {
			continue
		}

		devices = append(devices, DeviceSession{
			DeviceID:  strings.TrimPrefix(keys[i], prefix),
			ExpiresAt: record.ExpiresAt,
		})
	}

	return devices, nil
}

func (s *RefreshStore) delete(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
