package container

import (
	"context"
	"log"
	"os"

	"github.com/jwehrle/salescockpit/internal/auth"
	"github.com/jwehrle/salescockpit/internal/config"
	"github.com/jwehrle/salescockpit/internal/dashboard"
	"github.com/jwehrle/salescockpit/internal/entry"
	"github.com/jwehrle/salescockpit/internal/team"
	"github.com/jwehrle/salescockpit/internal/user"
)

type Container struct {
	UserContainer      *user.UserContainer
	EntryContainer     *entry.EntryContainer
	DashboardContainer *dashboard.DashboardContainer
}

func New() *Container {
	config.Init()
	auth.Init()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn,
		&user.User{}, &team.Team{}, &entry.DailyEntry{}); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	userContainer := user.NewUserContainer(config.DB)
	entryContainer := entry.NewEntryContainer(config.DB, userContainer.Repo)
	dashboardContainer := dashboard.NewDashboardContainer(config.DB, userContainer.Repo, entryContainer.Repo)

	return &Container{
		UserContainer:      userContainer,
		EntryContainer:     entryContainer,
		DashboardContainer: dashboardContainer,
	}
}
