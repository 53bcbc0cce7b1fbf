package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	redis_utils "teamup/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// SessionTTL bounds how long an issued token stays valid without a new
// login.
const SessionTTL = 24 * time.Hour

// Session is what an authenticated token resolves to.
type Session struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Sessions is the port the auth middleware depends on; tests substitute
// an in-memory fake.
type Sessions interface {
	SaveSession(tokenID string, session *Session) error
	GetSession(tokenID string) (*Session, error)
	DeleteSession(tokenID string) error
}

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SaveSession stores the session a freshly issued token resolves to.
// Key format: "session:{tokenID}"
// TTL: 24 hours
func (rc *RedisClient) SaveSession(tokenID string, session *Session) error {
	key := redis_utils.FormatSessionKey(tokenID)
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error marshaling session data: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, SessionTTL).Err()
}

// GetSession retrieves the session for a token, or nil when the token
// was revoked or expired.
// Key format: "session:{tokenID}"
func (rc *RedisClient) GetSession(tokenID string) (*Session, error) {
	key := redis_utils.FormatSessionKey(tokenID)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting session data: %v", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("error unmarshaling session data: %v", err)
	}
	return &session, nil
}

// DeleteSession revokes a token on logout.
// Key format: "session:{tokenID}"
func (rc *RedisClient) DeleteSession(tokenID string) error {
	key := redis_utils.FormatSessionKey(tokenID)
	if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting session data: %v", err)
	}
	return nil
}
