package store

// SessionStore is the injectable state container behind the session tracker.
// Implementations never surface write failures to callers; they log and move
// on, because losing a session write must not break the user action that
// triggered it.
type SessionStore interface {
	Session(userID string) (*Session, bool)
	SaveSession(s *Session)
	DeleteSession(userID string)

	History(userID string) []Query
	SaveHistory(userID string, history []Query)
	ClearHistory(userID string)
}

// AddressStore persists the address-context state, parallel to SessionStore
// but with its own keys and its own 10-entry history.
type AddressStore interface {
	AddressData(userID string) (*AddressData, bool)
	SaveAddressData(userID string, data *AddressData)
	DeleteAddressData(userID string)

	AddressHistory(userID string) []AddressHistoryEntry
	SaveAddressHistory(userID string, history []AddressHistoryEntry)
}
