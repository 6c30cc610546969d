package unitofwork

import (
	"context"

	"syncpad-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NoteRepository() contract.NoteRepository
	MiniNoteRepository() contract.MiniNoteRepository
	StorageUsageRepository() contract.StorageUsageRepository
}
