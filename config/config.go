package config

import (
	"encoding/json"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the GitHub Actions environment the bot runs in.
// Every value comes from the GITHUB_* environment variables which the
// Actions runner sets for each step.
type Config struct {
	// EventName is the name of the event which triggered the run,
	// either "issues" or "issue_comment"
	EventName string `split_words:"true" required:"true"`

	// EventPath is the path of the file holding the JSON webhook
	// payload of the triggering event
	EventPath string `split_words:"true"`

	// Repository is the owner and repository name, like "owner/repo".
	// Optional, the payload's embedded repository is used as a fallback.
	Repository string

	// Sha is the commit SHA which triggered the workflow
	Sha string

	// Ref is the branch or tag ref which triggered the workflow
	Ref string

	// Workflow is the name of the running workflow
	Workflow string

	// Action is the ID of the current action step
	Action string

	// Actor is the login of the user who initiated the run. Used as the
	// commit author identity when publishing catalog changes.
	Actor string `required:"true"`

	// Job is the ID of the current job
	Job string

	// RunAttempt is a unique number for each attempt of a workflow run
	RunAttempt int `split_words:"true" default:"1"`

	// RunNumber is a unique number for each run of a workflow
	RunNumber int `split_words:"true" default:"1"`

	// RunID is a unique number for each workflow run within the repository
	RunID int64 `split_words:"true"`

	// APIURL is the base URL of the GitHub REST API
	APIURL string `envconfig:"API_URL" default:"https://api.github.com"`

	// ServerURL is the base URL of the GitHub server
	ServerURL string `envconfig:"SERVER_URL" default:"https://github.com"`

	// GraphqlURL is the base URL of the GitHub GraphQL API
	GraphqlURL string `envconfig:"GRAPHQL_URL" default:"https://api.github.com/graphql"`

	// Token authenticates API calls made on behalf of the workflow
	Token string `required:"true"`
}

// NewConfig loads configuration values from environment variables
func NewConfig() (*Config, error) {
	var config Config

	if err := envconfig.Process("github", &config); err != nil {
		return nil, fmt.Errorf("error loading values from environment variables: %s",
			err.Error())
	}

	return &config, nil
}

// String returns a log safe version of Config in string form. Redacts any sensative fields.
func (c Config) String() (string, error) {
	if c.Token != "" {
		c.Token = "REDACTED_NOT_EMPTY"
	}

	configBytes, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to convert configuration into JSON: %s", err.Error())
	}

	return string(configBytes), nil
}
