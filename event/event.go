package event

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/AliceBotProject/alicebot-store/config"

	"github.com/google/go-github/v26/github"
)

// EventNameIssues is the event name for an issue being opened
const EventNameIssues = "issues"

// EventNameIssueComment is the event name for a comment being added to an issue
const EventNameIssueComment = "issue_comment"

// ConfigurationError indicates the process environment or the event payload
// cannot be used to run the bot. Configuration errors are fatal and occur
// before the pipeline starts.
type ConfigurationError struct {
	// Reason describes what part of the configuration is unusable
	Reason string
}

// Error implements error
func (e ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// Repo identifies a GitHub repository
type Repo struct {
	// Owner is the user or organization which owns the repository
	Owner string

	// Name of the repository
	Name string
}

// Context is an immutable snapshot of the event which triggered the run.
// It is built once from the process environment and the event payload file
// and passed to every component which needs it.
type Context struct {
	// EventName is the name of the triggering event
	EventName string

	// Issue is the issue the run is about
	Issue *github.Issue

	// Comment is the comment which triggered the run. Only set for
	// issue comment events.
	Comment *github.IssueComment

	// Repository is the repository object embedded in the payload
	Repository *github.Repository

	// repository is the "owner/repo" slug from the environment, takes
	// precedence over the payload when resolving Repo
	repository string
}

// NewContext reads the event payload file named by the configuration and
// parses it as either an issue event or an issue comment event. The payload
// file must exist and must match the shape for the configured event name.
func NewContext(cfg *config.Config) (*Context, error) {
	if cfg.EventPath == "" {
		return nil, ConfigurationError{
			Reason: "GITHUB_EVENT_PATH must be set",
		}
	}

	payloadBytes, err := os.ReadFile(cfg.EventPath)
	if err != nil {
		return nil, ConfigurationError{
			Reason: fmt.Sprintf("failed to read event payload %s: %s",
				cfg.EventPath, err.Error()),
		}
	}

	ctx := &Context{
		EventName:  cfg.EventName,
		repository: cfg.Repository,
	}

	switch cfg.EventName {
	case EventNameIssues:
		var payload github.IssuesEvent

		if err := json.Unmarshal(payloadBytes, &payload); err != nil {
			return nil, ConfigurationError{
				Reason: fmt.Sprintf("failed to parse payload as an "+
					"issues event: %s", err.Error()),
			}
		}

		ctx.Issue = payload.Issue
		ctx.Repository = payload.Repo
	case EventNameIssueComment:
		var payload github.IssueCommentEvent

		if err := json.Unmarshal(payloadBytes, &payload); err != nil {
			return nil, ConfigurationError{
				Reason: fmt.Sprintf("failed to parse payload as an "+
					"issue comment event: %s", err.Error()),
			}
		}

		ctx.Issue = payload.Issue
		ctx.Comment = payload.Comment
		ctx.Repository = payload.Repo
	default:
		return nil, ConfigurationError{
			Reason: fmt.Sprintf("cannot handle event type: %s", cfg.EventName),
		}
	}

	if ctx.Issue == nil || ctx.Issue.Number == nil || ctx.Issue.Title == nil {
		return nil, ConfigurationError{
			Reason: "event payload does not contain an issue",
		}
	}

	if cfg.EventName == EventNameIssueComment &&
		(ctx.Comment == nil || ctx.Comment.ID == nil) {
		return nil, ConfigurationError{
			Reason: "issue comment event payload does not contain a comment",
		}
	}

	return ctx, nil
}

// Repo resolves the repository the run operates on. The GITHUB_REPOSITORY
// environment variable takes precedence, the repository object embedded in
// the payload is the fallback.
func (c *Context) Repo() (Repo, error) {
	if c.repository != "" {
		parts := strings.SplitN(c.repository, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return Repo{}, ConfigurationError{
				Reason: fmt.Sprintf("GITHUB_REPOSITORY must be in "+
					"\"owner/repo\" form, got: %s", c.repository),
			}
		}

		return Repo{Owner: parts[0], Name: parts[1]}, nil
	}

	if c.Repository != nil && c.Repository.Owner != nil &&
		c.Repository.Owner.Login != nil && c.Repository.Name != nil {
		return Repo{
			Owner: *c.Repository.Owner.Login,
			Name:  *c.Repository.Name,
		}, nil
	}

	return Repo{}, ConfigurationError{
		Reason: "repository requires a GITHUB_REPOSITORY environment " +
			"variable like \"owner/repo\" or a payload with an embedded " +
			"repository",
	}
}

// DefaultBranch returns the default branch of the payload's repository,
// used as the base branch of published pull requests
func (c *Context) DefaultBranch() (string, error) {
	if c.Repository == nil || c.Repository.DefaultBranch == nil {
		return "", ConfigurationError{
			Reason: "event payload does not name a default branch",
		}
	}

	return *c.Repository.DefaultBranch, nil
}
