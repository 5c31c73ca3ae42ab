package service

import (
	"context"

	"propscore-webapp-be/internal/dto"
	"propscore-webapp-be/internal/entity"
	"propscore-webapp-be/internal/repository/specification"
	"propscore-webapp-be/internal/repository/unitofwork"
	"propscore-webapp-be/pkg/addressctx"
	"propscore-webapp-be/pkg/session"
	"propscore-webapp-be/pkg/store"

	"github.com/google/uuid"
)

type ISessionService interface {
	InitializeSession(userID string) *dto.SessionResponse
	CurrentQuery(userID string) *store.Query
	SearchHistory(userID string) []store.Query
	LatestSearch(userID string) *store.Query
	FindSearchByAddress(userID, address string) *store.Query
	ClearSession(userID string)
	ClearHistory(userID string)

	AddressData(userID string) *store.AddressData
	PatchAddressData(userID string, req *dto.AddressPatchRequest) *store.AddressData
	ClearAddressData(userID string)
	AddressHistory(userID string) []store.AddressHistoryEntry

	ArchivedSearches(ctx context.Context, userID string, page, limit int) ([]*entity.SearchArchive, error)
}

type sessionService struct {
	tracker    *session.Tracker
	addressCtx *addressctx.Manager
	uowFactory unitofwork.RepositoryFactory
}

func NewSessionService(tracker *session.Tracker, addressCtx *addressctx.Manager, uowFactory unitofwork.RepositoryFactory) ISessionService {
	return &sessionService{
		tracker:    tracker,
		addressCtx: addressCtx,
		uowFactory: uowFactory,
	}
}

func (s *sessionService) InitializeSession(userID string) *dto.SessionResponse {
	sess := s.tracker.InitializeSession(userID)
	return &dto.SessionResponse{
		SessionID:    sess.SessionID,
		UserID:       sess.UserID,
		SearchCount:  sess.SearchCount,
		CurrentQuery: sess.CurrentQuery,
	}
}

func (s *sessionService) CurrentQuery(userID string) *store.Query {
	return s.tracker.CurrentQuery(userID)
}

func (s *sessionService) SearchHistory(userID string) []store.Query {
	return s.tracker.SearchHistory(userID)
}

func (s *sessionService) LatestSearch(userID string) *store.Query {
	return s.tracker.LatestSearch(userID)
}

func (s *sessionService) FindSearchByAddress(userID, address string) *store.Query {
	return s.tracker.FindSearchByAddress(userID, address)
}

func (s *sessionService) ClearSession(userID string) {
	s.tracker.ClearSession(userID)
}

func (s *sessionService) ClearHistory(userID string) {
	s.tracker.ClearHistory(userID)
}

func (s *sessionService) AddressData(userID string) *store.AddressData {
	return s.addressCtx.AddressData(userID)
}

func (s *sessionService) PatchAddressData(userID string, req *dto.AddressPatchRequest) *store.AddressData {
	return s.addressCtx.UpdateAddressData(userID, addressctx.Patch{
		Address:          req.Address,
		ConfirmedAddress: req.ConfirmedAddress,
		PropertyID:       req.PropertyID,
		PropertyData:     req.PropertyData,
		ScoreData:        req.ScoreData,
		QueryID:          req.QueryID,
	})
}

func (s *sessionService) ClearAddressData(userID string) {
	s.addressCtx.ClearAddressData(userID)
}

func (s *sessionService) AddressHistory(userID string) []store.AddressHistoryEntry {
	return s.addressCtx.History(userID)
}

// ArchivedSearches reads the durable archive; returns empty without a
// database configured.
func (s *sessionService) ArchivedSearches(ctx context.Context, userID string, page, limit int) ([]*entity.SearchArchive, error) {
	if s.uowFactory == nil {
		return []*entity.SearchArchive{}, nil
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SearchArchiveRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: uid},
		specification.OrderBy{Field: "completed_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
}
