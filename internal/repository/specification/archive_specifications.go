package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByQueryID struct {
	QueryID uuid.UUID
}

func (s ByQueryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("query_id = ?", s.QueryID)
}

// ByAddressQuery matches archives whose address or confirmed address
// contains the fragment (case-insensitive, Postgres ILIKE).
type ByAddressQuery struct {
	Query string
}

func (s ByAddressQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("address ILIKE ? OR confirmed_address ILIKE ?", pattern, pattern)
}
