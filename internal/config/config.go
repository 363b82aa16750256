package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/btvapps/timelogr/internal/timelog"
)

// defaultGroupPath is the organizational scope queried on GitLab when
// no override is configured.
const defaultGroupPath = "btv-applications"

type Config struct {
	GitLab   GitLabConfig
	Jira     JiraConfig
	Airtable AirtableConfig
	Output   OutputConfig
	// Timezone controls which calendar day a timelog is bucketed into.
	// Defaults to the host's local zone.
	Timezone *time.Location
	// Aliases maps raw source usernames to friendly display names used
	// by the presentation layer.
	Aliases map[string]string
}

type GitLabConfig struct {
	APIURL      string
	AccessToken string
	GroupPath   string
}

type JiraConfig struct {
	APIURL      string
	Email       string
	AccessToken string
}

type AirtableConfig struct {
	AccessToken string
	BaseID      string
	TableName   string
}

type OutputConfig struct {
	Directory string
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		GitLab: GitLabConfig{
			APIURL:      os.Getenv("GITLAB_API_URL"),
			AccessToken: os.Getenv("GITLAB_ACCESS_TOKEN"),
			GroupPath:   getEnvOrDefault("GITLAB_GROUP_PATH", defaultGroupPath),
		},
		Jira: JiraConfig{
			APIURL:      os.Getenv("JIRA_API_URL"),
			Email:       os.Getenv("JIRA_EMAIL"),
			AccessToken: os.Getenv("JIRA_ACCESS_TOKEN"),
		},
		Airtable: AirtableConfig{
			AccessToken: os.Getenv("AIRTABLE_PERSONAL_ACCESS_TOKEN"),
			BaseID:      os.Getenv("AIRTABLE_BASE_ID"),
			TableName:   os.Getenv("AIRTABLE_TABLE_NAME"),
		},
		Output: OutputConfig{
			Directory: getEnvOrDefault("OUTPUT_DIR", "reports"),
		},
		Timezone: time.Local,
		Aliases:  parseAliases(os.Getenv("TIMELOG_NAME_ALIASES")),
	}

	if tz := os.Getenv("TIMELOG_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMELOG_TIMEZONE %q: %w", tz, err)
		}
		cfg.Timezone = loc
	}

	return cfg, nil
}

// ValidateSource checks that the credentials for the requested source
// are present before any network call is attempted.
func (c *Config) ValidateSource(source string) error {
	switch source {
	case "gitlab":
		return c.ValidateGitLab()
	case "jira":
		return c.ValidateJira()
	}
	return fmt.Errorf("%w: unknown dataSource %q", timelog.ErrInvalidInput, source)
}

func (c *Config) ValidateGitLab() error {
	if c.GitLab.APIURL == "" || c.GitLab.AccessToken == "" {
		return fmt.Errorf("%w: GITLAB_API_URL and GITLAB_ACCESS_TOKEN are required", timelog.ErrConfigMissing)
	}
	return nil
}

func (c *Config) ValidateJira() error {
	if c.Jira.APIURL == "" || c.Jira.Email == "" || c.Jira.AccessToken == "" {
		return fmt.Errorf("%w: JIRA_API_URL, JIRA_EMAIL and JIRA_ACCESS_TOKEN are required", timelog.ErrConfigMissing)
	}
	return nil
}

func (c *Config) ValidateAirtable() error {
	if c.Airtable.AccessToken == "" || c.Airtable.BaseID == "" || c.Airtable.TableName == "" {
		return fmt.Errorf("%w: AIRTABLE_PERSONAL_ACCESS_TOKEN, AIRTABLE_BASE_ID and AIRTABLE_TABLE_NAME are required", timelog.ErrConfigMissing)
	}
	return nil
}

// parseAliases reads "raw=Friendly,raw2=Other" pairs. Malformed pairs
// are skipped.
func parseAliases(s string) map[string]string {
	aliases := make(map[string]string)
	if s == "" {
		return aliases
	}
	for _, pair := range strings.Split(s, ",") {
		raw, friendly, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || raw == "" || friendly == "" {
			continue
		}
		aliases[raw] = friendly
	}
	return aliases
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
