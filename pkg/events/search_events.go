package events

import (
	"time"

	"propscore-webapp-be/pkg/store"
)

const (
	TypeSearchCompleted = "SEARCH_COMPLETED"
	TypeLeadsRanked     = "LEADS_RANKED"
)

// NewSearchCompleted carries the full archived query; the consumer persists
// it and forwards a trimmed analytics record.
func NewSearchCompleted(userID string, query store.Query) Event {
	return BaseEvent{
		Type: TypeSearchCompleted,
		Data: map[string]interface{}{
			"user_id": userID,
			"query":   query,
		},
		OccurredAt: time.Now(),
	}
}

func NewLeadsRanked(userID string, totalRows int, demo bool) Event {
	return BaseEvent{
		Type: TypeLeadsRanked,
		Data: map[string]interface{}{
			"user_id":    userID,
			"total_rows": totalRows,
			"demo":       demo,
		},
		OccurredAt: time.Now(),
	}
}
