package entity

import (
	"time"

	"github.com/google/uuid"
)

// SearchArchive is a completed query kept durably, beyond the bounded
// in-session history cache.
type SearchArchive struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	QueryId          uuid.UUID
	Address          string
	ConfirmedAddress string
	PropertyId       string
	PropertyData     map[string]interface{}
	ScoreData        map[string]interface{}
	ReportURL        string
	StartedAt        time.Time
	CompletedAt      time.Time
	CreatedAt        time.Time
}
