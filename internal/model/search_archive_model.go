package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SearchArchive struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID      `gorm:"type:uuid;not null;index"`
	QueryId          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Address          string         `gorm:"type:text;not null"`
	ConfirmedAddress string         `gorm:"type:text;index"`
	PropertyId       string         `gorm:"type:text"`
	PropertyData     datatypes.JSON `gorm:"type:jsonb"`
	ScoreData        datatypes.JSON `gorm:"type:jsonb"`
	ReportURL        string         `gorm:"type:text"`
	StartedAt        time.Time
	CompletedAt      time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (SearchArchive) TableName() string {
	return "search_archives"
}
