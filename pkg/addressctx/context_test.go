package addressctx

import (
	"fmt"
	"testing"

	"propscore-webapp-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

func newTestManager() *Manager {
	return NewManager(memory.NewStateStore(), noopLogger{})
}

func TestAddressDataDefaultsEmpty(t *testing.T) {
	m := newTestManager()
	data := m.AddressData("user-1")
	require.NotNil(t, data)
	assert.Empty(t, data.Address)
	assert.Empty(t, data.ConfirmedAddress)
}

func TestUpdateAddressDataMergesPartialPatches(t *testing.T) {
	m := newTestManager()

	m.UpdateAddressData("user-1", Patch{Address: "1 Front St", QueryID: "q-1"})
	data := m.UpdateAddressData("user-1", Patch{
		PropertyID: "p-9",
		ScoreData:  map[string]interface{}{"grade": "B"},
	})

	// Earlier fields survive a patch that does not mention them.
	assert.Equal(t, "1 Front St", data.Address)
	assert.Equal(t, "q-1", data.QueryID)
	assert.Equal(t, "p-9", data.PropertyID)
	assert.Equal(t, "B", data.ScoreData["grade"])
}

func TestConfirmedAddressRecordsHistory(t *testing.T) {
	m := newTestManager()

	// No history until an address is confirmed.
	m.UpdateAddressData("user-1", Patch{Address: "1 Front St"})
	assert.Empty(t, m.History("user-1"))

	m.UpdateAddressData("user-1", Patch{ConfirmedAddress: "1 Front St, Toronto, ON", PropertyID: "p-1"})
	history := m.History("user-1")
	require.Len(t, history, 1)
	assert.Equal(t, "1 Front St, Toronto, ON", history[0].Address)
	assert.Equal(t, "p-1", history[0].PropertyID)
}

func TestHistoryDedupCaseInsensitive(t *testing.T) {
	m := newTestManager()

	m.UpdateAddressData("user-1", Patch{ConfirmedAddress: "1 Front St, Toronto, ON"})
	m.UpdateAddressData("user-1", Patch{ConfirmedAddress: "2 King St, Toronto, ON"})
	m.UpdateAddressData("user-1", Patch{ConfirmedAddress: "1 FRONT ST, TORONTO, ON"})

	history := m.History("user-1")
	require.Len(t, history, 2)
	assert.Equal(t, "1 FRONT ST, TORONTO, ON", history[0].Address)
	assert.Equal(t, "2 King St, Toronto, ON", history[1].Address)
}

func TestHistoryCap(t *testing.T) {
	m := newTestManager()

	for i := 0; i < MaxHistoryEntries+3; i++ {
		m.UpdateAddressData("user-1", Patch{ConfirmedAddress: fmt.Sprintf("%d Front St", i)})
	}

	history := m.History("user-1")
	assert.Len(t, history, MaxHistoryEntries)
	assert.Equal(t, fmt.Sprintf("%d Front St", MaxHistoryEntries+2), history[0].Address)
}

func TestClearKeepsHistory(t *testing.T) {
	m := newTestManager()
	m.UpdateAddressData("user-1", Patch{ConfirmedAddress: "1 Front St, Toronto, ON"})

	m.ClearAddressData("user-1")

	data := m.AddressData("user-1")
	assert.Empty(t, data.ConfirmedAddress)
	assert.Len(t, m.History("user-1"), 1)
}
