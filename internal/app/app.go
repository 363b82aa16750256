package app

import (
	"log/slog"
	"os"

	"github.com/btvapps/timelogr/internal/config"
	"github.com/btvapps/timelogr/internal/gitlab"
	"github.com/btvapps/timelogr/internal/jira"
	"github.com/btvapps/timelogr/internal/timelog"
)

// Application wires configuration, logging, and the timelog sources.
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Service *timelog.Service
}

// New builds the application. Only sources with complete credentials are
// registered; requesting an unregistered one fails before any network
// call.
func New(cfg *config.Config) *Application {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	sources := make(map[string]timelog.Source)

	if cfg.ValidateGitLab() == nil {
		sources["gitlab"] = gitlab.NewSource(
			cfg.GitLab.APIURL,
			cfg.GitLab.AccessToken,
			cfg.GitLab.GroupPath,
			cfg.Timezone,
			logger,
		)
		logger.Info("GitLab source initialized", "group", cfg.GitLab.GroupPath)
	}

	if cfg.ValidateJira() == nil {
		sources["jira"] = jira.NewSource(
			cfg.Jira.APIURL,
			cfg.Jira.Email,
			cfg.Jira.AccessToken,
			cfg.Timezone,
			logger,
		)
		logger.Info("Jira source initialized", "url", cfg.Jira.APIURL)
	}

	return &Application{
		Config:  cfg,
		Logger:  logger,
		Service: timelog.NewService(logger, sources),
	}
}
