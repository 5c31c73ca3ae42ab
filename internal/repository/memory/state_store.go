package memory

import (
	"time"

	"propscore-webapp-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

const (
	sessionKeyPrefix        = "session:"
	historyKeyPrefix        = "search_history:"
	addressKeyPrefix        = "address_data:"
	addressHistoryKeyPrefix = "address_history:"
)

// StateStore is the in-process implementation of both SessionStore and
// AddressStore, backed by go-cache. Sessions expire 24h after their last
// write; histories are kept for 30 days.
type StateStore struct {
	sessions  *cache.Cache
	histories *cache.Cache
}

func NewStateStore() *StateStore {
	return &StateStore{
		// Default expiration 24 hours, purge expired entries every hour
		sessions:  cache.New(24*time.Hour, 1*time.Hour),
		histories: cache.New(30*24*time.Hour, 6*time.Hour),
	}
}

func (s *StateStore) Session(userID string) (*store.Session, bool) {
	if x, found := s.sessions.Get(sessionKeyPrefix + userID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (s *StateStore) SaveSession(session *store.Session) {
	s.sessions.Set(sessionKeyPrefix+session.UserID, session, cache.DefaultExpiration)
}

func (s *StateStore) DeleteSession(userID string) {
	s.sessions.Delete(sessionKeyPrefix + userID)
}

func (s *StateStore) History(userID string) []store.Query {
	if x, found := s.histories.Get(historyKeyPrefix + userID); found {
		return x.([]store.Query)
	}
	return nil
}

func (s *StateStore) SaveHistory(userID string, history []store.Query) {
	s.histories.Set(historyKeyPrefix+userID, history, cache.DefaultExpiration)
}

func (s *StateStore) ClearHistory(userID string) {
	s.histories.Delete(historyKeyPrefix + userID)
}

func (s *StateStore) AddressData(userID string) (*store.AddressData, bool) {
	if x, found := s.sessions.Get(addressKeyPrefix + userID); found {
		return x.(*store.AddressData), true
	}
	return nil, false
}

func (s *StateStore) SaveAddressData(userID string, data *store.AddressData) {
	s.sessions.Set(addressKeyPrefix+userID, data, cache.DefaultExpiration)
}

func (s *StateStore) DeleteAddressData(userID string) {
	s.sessions.Delete(addressKeyPrefix + userID)
}

func (s *StateStore) AddressHistory(userID string) []store.AddressHistoryEntry {
	if x, found := s.histories.Get(addressHistoryKeyPrefix + userID); found {
		return x.([]store.AddressHistoryEntry)
	}
	return nil
}

func (s *StateStore) SaveAddressHistory(userID string, history []store.AddressHistoryEntry) {
	s.histories.Set(addressHistoryKeyPrefix+userID, history, cache.DefaultExpiration)
}
