package unitofwork

import (
	"context"

	"propscore-webapp-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SearchArchiveRepository() contract.SearchArchiveRepository
	ContactMessageRepository() contract.ContactMessageRepository
}
