package issues

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/AliceBotProject/alicebot-store/event"

	"github.com/Noah-Huppert/golog"
	"github.com/google/go-github/v26/github"
	"golang.org/x/oauth2"
)

// NewGitHubClient creates a GitHub API client authenticated with the
// workflow token. The API base URL comes from the environment so runs
// against GitHub Enterprise servers work too.
func NewGitHubClient(ctx context.Context, token, apiURL string) (*github.Client, error) {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
	})

	gh := github.NewClient(oauth2.NewClient(ctx, tokenSource))

	if apiURL != "" {
		baseURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse API URL: %s", err.Error())
		}

		if !strings.HasSuffix(baseURL.Path, "/") {
			baseURL.Path += "/"
		}

		gh.BaseURL = baseURL
	}

	return gh, nil
}

// Client performs issue and pull request operations for the one issue a run
// is about
type Client struct {
	// Ctx is the run context
	Ctx context.Context

	// Logger logs API calls
	Logger golog.Logger

	// GH is the GitHub API client
	GH *github.Client

	// Repo is the repository holding the issue
	Repo event.Repo

	// Number is the issue's user facing number
	Number int
}

// AddLabels adds labels to the issue
func (c Client) AddLabels(labels []string) error {
	_, _, err := c.GH.Issues.AddLabelsToIssue(c.Ctx, c.Repo.Owner, c.Repo.Name,
		c.Number, labels)
	if err != nil {
		return fmt.Errorf("failed to add labels to issue #%d: %s",
			c.Number, err.Error())
	}

	return nil
}

// RemoveLabel removes one label from the issue
func (c Client) RemoveLabel(name string) error {
	_, err := c.GH.Issues.RemoveLabelForIssue(c.Ctx, c.Repo.Owner, c.Repo.Name,
		c.Number, name)
	if err != nil {
		return fmt.Errorf("failed to remove label %s from issue #%d: %s",
			name, c.Number, err.Error())
	}

	return nil
}

// CreateComment posts a comment on the issue
func (c Client) CreateComment(body string) error {
	_, _, err := c.GH.Issues.CreateComment(c.Ctx, c.Repo.Owner, c.Repo.Name,
		c.Number, &github.IssueComment{
			Body: &body,
		})
	if err != nil {
		return fmt.Errorf("failed to create comment on issue #%d: %s",
			c.Number, err.Error())
	}

	return nil
}

// CreateCommentReaction adds a reaction to a comment on the issue
func (c Client) CreateCommentReaction(commentID int64, content string) error {
	_, _, err := c.GH.Reactions.CreateIssueCommentReaction(c.Ctx, c.Repo.Owner,
		c.Repo.Name, commentID, content)
	if err != nil {
		return fmt.Errorf("failed to create reaction on comment %d: %s",
			commentID, err.Error())
	}

	return nil
}

// CreatePullRequest opens a pull request and returns its HTML URL
func (c Client) CreatePullRequest(head, base, title, body string) (string, error) {
	pr, _, err := c.GH.PullRequests.Create(c.Ctx, c.Repo.Owner, c.Repo.Name,
		&github.NewPullRequest{
			Title: &title,
			Head:  &head,
			Base:  &base,
			Body:  &body,
		})
	if err != nil {
		return "", fmt.Errorf("failed to create pull request: %s", err.Error())
	}

	return pr.GetHTMLURL(), nil
}

// HasOpenPullRequest returns true if an open pull request from headBranch
// exists in the repository
func (c Client) HasOpenPullRequest(headBranch string) (bool, error) {
	prs, _, err := c.GH.PullRequests.List(c.Ctx, c.Repo.Owner, c.Repo.Name,
		&github.PullRequestListOptions{
			State: "open",
			Head:  fmt.Sprintf("%s:%s", c.Repo.Owner, headBranch),
		})
	if err != nil {
		return false, fmt.Errorf("failed to list open pull requests: %s",
			err.Error())
	}

	return len(prs) > 0, nil
}
