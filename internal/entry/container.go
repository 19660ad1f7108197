package entry

import (
	"gorm.io/gorm"

	"github.com/jwehrle/salescockpit/internal/user"
)

type EntryContainer struct {
	Handler *Handler
	Service EntryService
	Repo    EntryRepository
}

func NewEntryContainer(db *gorm.DB, userRepo user.UserRepository) *EntryContainer {
	repo := NewRepository(db)
	service := NewService(repo, userRepo)
	handler := NewHandler(service)

	return &EntryContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
