package dashboard

import (
	"gorm.io/gorm"

	"github.com/jwehrle/salescockpit/internal/entry"
	"github.com/jwehrle/salescockpit/internal/hierarchy"
	"github.com/jwehrle/salescockpit/internal/rollup"
	"github.com/jwehrle/salescockpit/internal/team"
	"github.com/jwehrle/salescockpit/internal/user"
)

type DashboardContainer struct {
	Handler *Handler
	Service DashboardService
}

func NewDashboardContainer(db *gorm.DB, userRepo user.UserRepository, entryRepo entry.EntryRepository) *DashboardContainer {
	teamRepo := team.NewRepository(db)
	resolver := hierarchy.NewResolver(userRepo)
	composer := rollup.NewComposer(rollup.NewAggregator(entryRepo))

	service := NewService(userRepo, teamRepo, resolver, composer)
	handler := NewHandler(service)

	return &DashboardContainer{
		Handler: handler,
		Service: service,
	}
}
