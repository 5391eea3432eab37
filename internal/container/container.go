package container

import (
	"context"
	"log"
	"os"

	"github.com/leadcanvas/leadcanvas/internal/auth"
	"github.com/leadcanvas/leadcanvas/internal/config"
	"github.com/leadcanvas/leadcanvas/internal/hypothesis"
	"github.com/leadcanvas/leadcanvas/internal/nudge"
	"github.com/leadcanvas/leadcanvas/internal/progress"
	"github.com/leadcanvas/leadcanvas/internal/settings"
	"github.com/leadcanvas/leadcanvas/internal/summary"
	"github.com/leadcanvas/leadcanvas/internal/theme"
	"github.com/leadcanvas/leadcanvas/internal/user"
)

type Container struct {
	UserContainer       *user.UserContainer
	ThemeContainer      *theme.Container
	HypothesisContainer *hypothesis.Container
	ProgressContainer   *progress.Container
	SettingsContainer   *settings.Container
	NudgeContainer      *nudge.Container
	SummaryContainer    *summary.Container
}

func New() *Container {
	config.Init()
	auth.Init()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&user.User{},
		&settings.Settings{},
		&theme.DevelopmentTheme{},
		&hypothesis.WeeklyAction{},
		&progress.ProgressEntry{},
		&nudge.NudgeSent{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	settingsContainer := settings.NewContainer(config.DB)
	userContainer := user.NewUserContainer(config.DB, settingsContainer.Service)
	themeContainer := theme.NewContainer(config.DB)
	hypothesisContainer := hypothesis.NewContainer(config.DB, themeContainer.Repo)
	progressContainer := progress.NewContainer(config.DB)

	nudgeContainer := nudge.NewContainer(
		config.DB,
		userContainer.Repo,
		themeContainer.Repo,
		hypothesisContainer.Repo,
	)

	summaryContainer := summary.NewContainer(
		userContainer.Repo,
		themeContainer.Repo,
		hypothesisContainer.Repo,
		progressContainer.Repo,
		settingsContainer.Repo,
	)

	return &Container{
		UserContainer:       userContainer,
		ThemeContainer:      themeContainer,
		HypothesisContainer: hypothesisContainer,
		ProgressContainer:   progressContainer,
		SettingsContainer:   settingsContainer,
		NudgeContainer:      nudgeContainer,
		SummaryContainer:    summaryContainer,
	}
}
