package addressctx

import (
	"strings"
	"time"

	"propscore-webapp-be/internal/pkg/logger"
	"propscore-webapp-be/pkg/store"
)

// MaxHistoryEntries caps the address-context history. Deliberately smaller
// than the session tracker's cap; the two caches are independent.
const MaxHistoryEntries = 10

// Manager holds the "currently analyzed property" state shared across the
// dashboard tools. It mirrors part of what the session tracker stores but is
// specified as its own cache with its own history.
type Manager struct {
	store  store.AddressStore
	logger logger.ILogger
}

func NewManager(st store.AddressStore, log logger.ILogger) *Manager {
	return &Manager{store: st, logger: log}
}

// Patch is a partial AddressData update; nil/empty fields are left untouched.
type Patch struct {
	Address          string
	ConfirmedAddress string
	PropertyID       string
	PropertyData     map[string]interface{}
	ScoreData        map[string]interface{}
	QueryID          string
}

// AddressData returns the current state, zero-valued when nothing is stored.
func (m *Manager) AddressData(userID string) *store.AddressData {
	if data, found := m.store.AddressData(userID); found {
		return data
	}
	return &store.AddressData{}
}

// UpdateAddressData merges the patch into current state. A patch carrying a
// confirmed address also prepends a history entry, deduplicated by address.
func (m *Manager) UpdateAddressData(userID string, patch Patch) *store.AddressData {
	data := m.AddressData(userID)

	if patch.Address != "" {
		data.Address = patch.Address
	}
	if patch.ConfirmedAddress != "" {
		data.ConfirmedAddress = patch.ConfirmedAddress
	}
	if patch.PropertyID != "" {
		data.PropertyID = patch.PropertyID
	}
	if patch.PropertyData != nil {
		data.PropertyData = patch.PropertyData
	}
	if patch.ScoreData != nil {
		data.ScoreData = patch.ScoreData
	}
	if patch.QueryID != "" {
		data.QueryID = patch.QueryID
	}

	m.store.SaveAddressData(userID, data)

	if patch.ConfirmedAddress != "" {
		m.recordHistory(userID, store.AddressHistoryEntry{
			Address:     patch.ConfirmedAddress,
			PropertyID:  data.PropertyID,
			ConfirmedAt: time.Now(),
		})
	}

	return data
}

// ClearAddressData resets the state and removes the persisted entry. The
// history list survives a clear.
func (m *Manager) ClearAddressData(userID string) {
	m.store.DeleteAddressData(userID)
}

func (m *Manager) History(userID string) []store.AddressHistoryEntry {
	return m.store.AddressHistory(userID)
}

func (m *Manager) recordHistory(userID string, entry store.AddressHistoryEntry) {
	history := m.store.AddressHistory(userID)

	kept := make([]store.AddressHistoryEntry, 0, len(history)+1)
	kept = append(kept, entry)
	for _, h := range history {
		if strings.EqualFold(h.Address, entry.Address) {
			continue
		}
		kept = append(kept, h)
	}
	if len(kept) > MaxHistoryEntries {
		kept = kept[:MaxHistoryEntries]
	}

	m.store.SaveAddressHistory(userID, kept)
}
