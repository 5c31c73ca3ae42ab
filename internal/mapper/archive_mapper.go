package mapper

import (
	"encoding/json"

	"propscore-webapp-be/internal/entity"
	"propscore-webapp-be/internal/model"

	"gorm.io/datatypes"
)

type ArchiveMapper struct{}

func NewArchiveMapper() *ArchiveMapper {
	return &ArchiveMapper{}
}

func (m *ArchiveMapper) SearchArchiveToModel(e *entity.SearchArchive) *model.SearchArchive {
	if e == nil {
		return nil
	}
	return &model.SearchArchive{
		Id:               e.Id,
		UserId:           e.UserId,
		QueryId:          e.QueryId,
		Address:          e.Address,
		ConfirmedAddress: e.ConfirmedAddress,
		PropertyId:       e.PropertyId,
		PropertyData:     toJSON(e.PropertyData),
		ScoreData:        toJSON(e.ScoreData),
		ReportURL:        e.ReportURL,
		StartedAt:        e.StartedAt,
		CompletedAt:      e.CompletedAt,
		CreatedAt:        e.CreatedAt,
	}
}

func (m *ArchiveMapper) SearchArchiveToEntity(s *model.SearchArchive) *entity.SearchArchive {
	if s == nil {
		return nil
	}
	return &entity.SearchArchive{
		Id:               s.Id,
		UserId:           s.UserId,
		QueryId:          s.QueryId,
		Address:          s.Address,
		ConfirmedAddress: s.ConfirmedAddress,
		PropertyId:       s.PropertyId,
		PropertyData:     fromJSON(s.PropertyData),
		ScoreData:        fromJSON(s.ScoreData),
		ReportURL:        s.ReportURL,
		StartedAt:        s.StartedAt,
		CompletedAt:      s.CompletedAt,
		CreatedAt:        s.CreatedAt,
	}
}

func (m *ArchiveMapper) ContactMessageToModel(e *entity.ContactMessage) *model.ContactMessage {
	if e == nil {
		return nil
	}
	return &model.ContactMessage{
		Id:        e.Id,
		Name:      e.Name,
		Email:     e.Email,
		Subject:   e.Subject,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ArchiveMapper) ContactMessageToEntity(s *model.ContactMessage) *entity.ContactMessage {
	if s == nil {
		return nil
	}
	return &entity.ContactMessage{
		Id:        s.Id,
		Name:      s.Name,
		Email:     s.Email,
		Subject:   s.Subject,
		Message:   s.Message,
		CreatedAt: s.CreatedAt,
	}
}

func toJSON(data map[string]interface{}) datatypes.JSON {
	if data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func fromJSON(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil
	}
	return data
}
