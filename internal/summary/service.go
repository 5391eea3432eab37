package summary

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/auth"
	"github.com/leadcanvas/leadcanvas/internal/config"
	"github.com/leadcanvas/leadcanvas/internal/hypothesis"
	"github.com/leadcanvas/leadcanvas/internal/progress"
	"github.com/leadcanvas/leadcanvas/internal/settings"
	"github.com/leadcanvas/leadcanvas/internal/theme"
	"github.com/leadcanvas/leadcanvas/internal/user"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// clientFanOutLimit caps concurrent per-client reads when a coach loads the
// whole roster.
const clientFanOutLimit = 8

var (
	ErrUnauthorized   = errors.New("not authenticated")
	ErrForbidden      = errors.New("coach access required")
	ErrInvalidID      = errors.New("invalid client id")
	ErrUserNotFound   = errors.New("user not found")
	ErrClientNotFound = errors.New("client not found")
)

type Service interface {
	Home(ctx context.Context) (*HomeSummary, error)
	Canvas(ctx context.Context) (*CanvasSummary, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Clients(ctx context.Context) ([]ClientSummary, error)
	ClientDetail(ctx context.Context, clientID string) (*ClientDetail, error)
}

type service struct {
	directory user.Directory
	themes    theme.Repository
	actions   hypothesis.Repository
	progress  progress.Repository
	settings  settings.Repository
}

func NewService(directory user.Directory, themes theme.Repository, actions hypothesis.Repository, progressRepo progress.Repository, settingsRepo settings.Repository) Service {
	return &service{
		directory: directory,
		themes:    themes,
		actions:   actions,
		progress:  progressRepo,
		settings:  settingsRepo,
	}
}

func callerID(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}

func (s *service) requireCoach(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	id, err := callerID(ctx, log, action)
	if err != nil {
		return uuid.Nil, err
	}
	role, err := s.directory.RoleByID(id)
	if err != nil {
		log.Errorf("Failed to look up role for %s: %v", id, err)
		return uuid.Nil, err
	}
	if role != user.RoleCoach {
		log.Warnf("User %s attempted to %s without coach role", id, action)
		return uuid.Nil, ErrForbidden
	}
	return id, nil
}

// Home fans out the independent reads for the client home screen. The user
// lookup is foundational; every other read degrades to empty on failure so
// one broken sub-read never blanks the whole screen.
func (s *service) Home(ctx context.Context) (*HomeSummary, error) {
	log := config.WithContext(ctx)

	userID, err := callerID(ctx, log, "load home summary")
	if err != nil {
		return nil, err
	}

	out := &HomeSummary{OpenActions: []hypothesis.WeeklyAction{}}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.directory.FindByID(userID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		out.User = u
		return nil
	})
	g.Go(func() error {
		if latest, err := s.themes.FindLatestByUser(userID); err != nil {
			log.Warnf("Failed to load latest theme for %s: %v", userID, err)
		} else {
			out.LatestTheme = latest
		}
		return nil
	})
	g.Go(func() error {
		if open, err := s.actions.ListOpenByUser(userID); err != nil {
			log.Warnf("Failed to load open actions for %s: %v", userID, err)
		} else {
			out.OpenActions = open
		}
		return nil
	})
	g.Go(func() error {
		if latest, err := s.progress.LatestByUser(userID); err != nil {
			log.Warnf("Failed to load latest progress for %s: %v", userID, err)
		} else {
			out.LatestProgress = latest
		}
		return nil
	})
	g.Go(func() error {
		if prefs, err := s.settings.FindByUser(userID); err != nil {
			log.Warnf("Failed to load settings for %s: %v", userID, err)
		} else {
			out.Settings = prefs
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Errorf("Home summary failed for %s: %v", userID, err)
		return nil, err
	}
	return out, nil
}

// Canvas loads the full leadership canvas: themes in their explicit order,
// each with its hypotheses, plus the progress log.
func (s *service) Canvas(ctx context.Context) (*CanvasSummary, error) {
	log := config.WithContext(ctx)

	userID, err := callerID(ctx, log, "load canvas summary")
	if err != nil {
		return nil, err
	}

	out := &CanvasSummary{
		Themes:          []ThemeWithHypotheses{},
		ProgressEntries: []progress.ProgressEntry{},
	}

	var (
		themes  []theme.DevelopmentTheme
		actions []hypothesis.WeeklyAction
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.directory.FindByID(userID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		out.User = u
		return nil
	})
	g.Go(func() error {
		if list, err := s.themes.ListByUserOrdered(userID); err != nil {
			log.Warnf("Failed to load themes for %s: %v", userID, err)
		} else {
			themes = list
		}
		return nil
	})
	g.Go(func() error {
		if list, err := s.actions.ListByUserOldestFirst(userID); err != nil {
			log.Warnf("Failed to load actions for %s: %v", userID, err)
		} else {
			actions = list
		}
		return nil
	})
	g.Go(func() error {
		if entries, err := s.progress.ListByUser(userID, 0); err != nil {
			log.Warnf("Failed to load progress entries for %s: %v", userID, err)
		} else {
			out.ProgressEntries = entries
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Errorf("Canvas summary failed for %s: %v", userID, err)
		return nil, err
	}

	out.Themes = groupByTheme(themes, actions)
	return out, nil
}

// groupByTheme attaches each action to its theme; actions with no theme (or
// a theme that no longer exists) are dropped from the canvas view.
func groupByTheme(themes []theme.DevelopmentTheme, actions []hypothesis.WeeklyAction) []ThemeWithHypotheses {
	byTheme := make(map[uuid.UUID][]hypothesis.WeeklyAction)
	for _, a := range actions {
		if a.ThemeID == nil {
			continue
		}
		byTheme[*a.ThemeID] = append(byTheme[*a.ThemeID], a)
	}

	grouped := make([]ThemeWithHypotheses, 0, len(themes))
	for _, t := range themes {
		hyps := byTheme[t.ID]
		if hyps == nil {
			hyps = []hypothesis.WeeklyAction{}
		}
		grouped = append(grouped, ThemeWithHypotheses{DevelopmentTheme: t, Hypotheses: hyps})
	}
	return grouped
}

func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	log := config.WithContext(ctx)

	if _, err := s.requireCoach(ctx, log, "load dashboard"); err != nil {
		return nil, err
	}

	summaries, err := s.clientSummaries(ctx, log)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{TotalClients: len(summaries)}
	for _, c := range summaries {
		stats.TotalOpenActions += c.Actions.Open
		stats.TotalCompletedActions += c.Actions.Completed
		if c.ThemeCount == 0 {
			stats.ClientsWithNoTheme++
		}
	}
	return stats, nil
}

func (s *service) Clients(ctx context.Context) ([]ClientSummary, error) {
	log := config.WithContext(ctx)

	if _, err := s.requireCoach(ctx, log, "list clients"); err != nil {
		return nil, err
	}
	return s.clientSummaries(ctx, log)
}

// clientSummaries enriches every client row concurrently. The roster read is
// foundational; per-client enrichment degrades to zero values on failure.
func (s *service) clientSummaries(ctx context.Context, log logrus.FieldLogger) ([]ClientSummary, error) {
	clients, err := s.directory.ListClients()
	if err != nil {
		log.Errorf("Failed to list clients: %v", err)
		return nil, err
	}

	summaries := make([]ClientSummary, len(clients))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(clientFanOutLimit)
	for i, c := range clients {
		i, c := i, c
		g.Go(func() error {
			summaries[i] = s.summarizeClient(log, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *service) summarizeClient(log logrus.FieldLogger, c user.User) ClientSummary {
	out := ClientSummary{
		ClientID:  c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		PadletURL: c.PadletURL,
	}

	if count, err := s.themes.CountByUser(c.ID); err != nil {
		log.Warnf("Failed to count themes for client %s: %v", c.ID, err)
	} else {
		out.ThemeCount = int(count)
	}

	if latest, err := s.themes.FindLatestByUser(c.ID); err != nil {
		log.Warnf("Failed to load latest theme for client %s: %v", c.ID, err)
	} else if latest != nil {
		out.CurrentTheme = &latest.ThemeText
	}

	if all, err := s.actions.ListByUser(c.ID); err != nil {
		log.Warnf("Failed to load actions for client %s: %v", c.ID, err)
	} else {
		for _, a := range all {
			if a.IsCompleted {
				out.Actions.Completed++
			} else {
				out.Actions.Open++
			}
		}
	}
	return out
}

func (s *service) ClientDetail(ctx context.Context, clientID string) (*ClientDetail, error) {
	log := config.WithContext(ctx)

	if _, err := s.requireCoach(ctx, log, "view client detail"); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(clientID)
	if err != nil {
		return nil, ErrInvalidID
	}

	out := &ClientDetail{
		Themes:          []ThemeWithHypotheses{},
		ProgressEntries: []progress.ProgressEntry{},
	}

	var (
		themes  []theme.DevelopmentTheme
		actions []hypothesis.WeeklyAction
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.directory.FindByID(id)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return ErrClientNotFound
			}
			return err
		}
		if c.Role != user.RoleClient {
			return ErrClientNotFound
		}
		out.Client = c
		return nil
	})
	g.Go(func() error {
		if list, err := s.themes.ListByUserOrdered(id); err != nil {
			log.Warnf("Failed to load themes for client %s: %v", id, err)
		} else {
			themes = list
		}
		return nil
	})
	g.Go(func() error {
		if list, err := s.actions.ListByUserOldestFirst(id); err != nil {
			log.Warnf("Failed to load actions for client %s: %v", id, err)
		} else {
			actions = list
		}
		return nil
	})
	g.Go(func() error {
		if entries, err := s.progress.ListByUser(id, 0); err != nil {
			log.Warnf("Failed to load progress for client %s: %v", id, err)
		} else {
			out.ProgressEntries = entries
		}
		return nil
	})
	g.Go(func() error {
		if prefs, err := s.settings.FindByUser(id); err != nil {
			log.Warnf("Failed to load settings for client %s: %v", id, err)
		} else {
			out.Settings = prefs
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Errorf("Client detail failed for %s: %v", id, err)
		return nil, err
	}
	_ = themes
	_ = actions
	return out, nil
}
