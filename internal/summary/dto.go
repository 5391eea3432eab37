package summary

import (
	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/hypothesis"
	"github.com/leadcanvas/leadcanvas/internal/progress"
	"github.com/leadcanvas/leadcanvas/internal/settings"
	"github.com/leadcanvas/leadcanvas/internal/theme"
	"github.com/leadcanvas/leadcanvas/internal/user"
)

// HomeSummary feeds the client home screen. Every field except User may be
// empty when its sub-read fails or has no data.
type HomeSummary struct {
	User           *user.User              `json:"user"`
	LatestTheme    *theme.DevelopmentTheme `json:"latest_theme"`
	OpenActions    []hypothesis.WeeklyAction `json:"open_actions"`
	LatestProgress *progress.ProgressEntry `json:"latest_progress"`
	Settings       *settings.Settings      `json:"settings"`
}

type ThemeWithHypotheses struct {
	theme.DevelopmentTheme
	Hypotheses []hypothesis.WeeklyAction `json:"hypotheses"`
}

// CanvasSummary feeds the leadership canvas screen; themes carry their
// explicit order and each theme brings its own hypotheses.
type CanvasSummary struct {
	User            *user.User               `json:"user"`
	Themes          []ThemeWithHypotheses    `json:"themes"`
	ProgressEntries []progress.ProgressEntry `json:"progress_entries"`
}

type ActionStats struct {
	Open      int `json:"open"`
	Completed int `json:"completed"`
}

type ClientSummary struct {
	ClientID     uuid.UUID `json:"client_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	PadletURL    *string   `json:"padlet_url"`
	CurrentTheme *string   `json:"current_theme"`
	ThemeCount   int       `json:"theme_count"`
	Actions      ActionStats `json:"actions"`
}

type DashboardStats struct {
	TotalClients          int `json:"total_clients"`
	TotalOpenActions      int `json:"total_open_actions"`
	TotalCompletedActions int `json:"total_completed_actions"`
	ClientsWithNoTheme    int `json:"clients_with_no_theme"`
}

// ClientDetail is the coach's drill-down view of one client.
type ClientDetail struct {
	Client          *user.User               `json:"client"`
	Themes          []ThemeWithHypotheses    `json:"themes"`
	ProgressEntries []progress.ProgressEntry `json:"progress_entries"`
	Settings        *settings.Settings       `json:"settings"`
}
