package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"propscore-webapp-be/internal/pkg/logger"
	"propscore-webapp-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const (
	sessionTTL = 24 * time.Hour
	historyTTL = 30 * 24 * time.Hour

	opTimeout = 2 * time.Second
)

// StateStore persists session and address-context state in Redis so multiple
// instances see the same workflow state. Write failures are logged, never
// returned; the session tracker treats the store as best-effort.
type StateStore struct {
	rdb    *redis.Client
	logger logger.ILogger
}

func NewStateStore(rdb *redis.Client, log logger.ILogger) *StateStore {
	return &StateStore{rdb: rdb, logger: log}
}

func (s *StateStore) get(key string, dest interface{}) bool {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("RedisStore", "Read failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warn("RedisStore", "Corrupt entry dropped", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	return true
}

func (s *StateStore) set(key string, value interface{}, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("RedisStore", "Marshal failed", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}
	if err := s.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		s.logger.Warn("RedisStore", "Write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (s *StateStore) del(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("RedisStore", "Delete failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (s *StateStore) Session(userID string) (*store.Session, bool) {
	var session store.Session
	if !s.get("propscore:session:"+userID, &session) {
		return nil, false
	}
	return &session, true
}

func (s *StateStore) SaveSession(session *store.Session) {
	s.set("propscore:session:"+session.UserID, session, sessionTTL)
}

func (s *StateStore) DeleteSession(userID string) {
	s.del("propscore:session:" + userID)
}

func (s *StateStore) History(userID string) []store.Query {
	var history []store.Query
	if !s.get("propscore:search_history:"+userID, &history) {
		return nil
	}
	return history
}

func (s *StateStore) SaveHistory(userID string, history []store.Query) {
	s.set("propscore:search_history:"+userID, history, historyTTL)
}

func (s *StateStore) ClearHistory(userID string) {
	s.del("propscore:search_history:" + userID)
}

func (s *StateStore) AddressData(userID string) (*store.AddressData, bool) {
	var data store.AddressData
	if !s.get("propscore:address_data:"+userID, &data) {
		return nil, false
	}
	return &data, true
}

func (s *StateStore) SaveAddressData(userID string, data *store.AddressData) {
	s.set("propscore:address_data:"+userID, data, sessionTTL)
}

func (s *StateStore) DeleteAddressData(userID string) {
	s.del("propscore:address_data:" + userID)
}

func (s *StateStore) AddressHistory(userID string) []store.AddressHistoryEntry {
	var history []store.AddressHistoryEntry
	if !s.get("propscore:address_history:"+userID, &history) {
		return nil
	}
	return history
}

func (s *StateStore) SaveAddressHistory(userID string, history []store.AddressHistoryEntry) {
	s.set("propscore:address_history:"+userID, history, historyTTL)
}
