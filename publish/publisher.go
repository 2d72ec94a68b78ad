package publish

import (
	"context"
	"fmt"

	"github.com/Noah-Huppert/golog"
)

// commitMessage used for every published catalog change
const commitMessage = "feat: update data"

// PublishError indicates a catalog change could not be turned into a pull
// request. Publish errors are internal and are reported to submitters as
// unexpected errors.
type PublishError struct {
	// Reason describes which publish step failed
	Reason string

	// Output is the captured output of the failed git command, may
	// be empty
	Output string
}

// Error implements error
func (e PublishError) Error() string {
	if e.Output == "" {
		return e.Reason
	}

	return fmt.Sprintf("%s: %s", e.Reason, e.Output)
}

// PullRequestAPI is the slice of the issue API client the publisher needs
type PullRequestAPI interface {
	// CreatePullRequest opens a pull request and returns its HTML URL
	CreatePullRequest(head, base, title, body string) (string, error)

	// HasOpenPullRequest returns true if an open pull request from
	// headBranch exists
	HasOpenPullRequest(headBranch string) (bool, error)
}

// BranchName returns the branch a catalog change for an issue is published
// on. The name is derived only from the issue number, so retries for the
// same issue reuse one branch instead of piling up new ones.
func BranchName(issueNumber int) string {
	return fmt.Sprintf("update-from-issue-%d", issueNumber)
}

// PullRequestBody returns the pull request body which links a pull request
// back to its issue. Merging the pull request closes the issue.
func PullRequestBody(issueNumber int) string {
	return fmt.Sprintf("close #%d", issueNumber)
}

// Publisher turns an accepted catalog change into a reviewable pull request
type Publisher struct {
	// Ctx is the run context
	Ctx context.Context

	// Logger logs publish progress
	Logger golog.Logger

	// Git runs git commands in the store checkout
	Git GitRunner

	// PRs performs pull request API calls
	PRs PullRequestAPI

	// Actor is the login of the submitter, used as the commit identity
	Actor string
}

// HasOpenPullRequest returns true if an open pull request for the issue
// already exists. Detection is by the issue's deterministic branch name,
// not by searching pull request bodies.
func (p Publisher) HasOpenPullRequest(issueNumber int) (bool, error) {
	has, err := p.PRs.HasOpenPullRequest(BranchName(issueNumber))
	if err != nil {
		return false, PublishError{
			Reason: err.Error(),
		}
	}

	return has, nil
}

// Publish commits the changed catalog files on the issue's branch, force
// pushes it and opens a pull request against baseBranch. Returns the pull
// request's HTML URL.
func (p Publisher) Publish(issueNumber int, baseBranch, title string, files []string) (string, error) {
	branch := BranchName(issueNumber)

	commands := [][]string{
		{"config", "user.name", p.Actor},
		{"config", "user.email", fmt.Sprintf("%s@users.noreply.github.com", p.Actor)},
		{"checkout", "-b", branch},
		append([]string{"add"}, files...),
		{"commit", "-m", commitMessage},
		{"push", "-f", "origin", branch},
	}

	for _, args := range commands {
		output, err := p.Git.Run(p.Ctx, args...)
		if err != nil {
			return "", PublishError{
				Reason: err.Error(),
				Output: output,
			}
		}
	}

	p.Logger.Infof("pushed branch %s, opening pull request against %s",
		branch, baseBranch)

	prURL, err := p.PRs.CreatePullRequest(branch, baseBranch, title,
		PullRequestBody(issueNumber))
	if err != nil {
		return "", PublishError{
			Reason: err.Error(),
		}
	}

	return prURL, nil
}
