package result

import (
	"github.com/Noah-Huppert/golog"
)

// IssueAPI is the slice of the issue API client the notifier needs
type IssueAPI interface {
	// AddLabels adds labels to the issue
	AddLabels(labels []string) error

	// RemoveLabel removes one label from the issue
	RemoveLabel(name string) error

	// CreateComment posts a comment on the issue
	CreateComment(body string) error
}

// Notifier applies a run's terminal result to the issue: mutually exclusive
// labels, a rendered comment and the process exit status. Every run, success
// or failure, ends here exactly once.
type Notifier struct {
	// Logger logs the result
	Logger golog.Logger

	// Renderer renders comment templates
	Renderer *Renderer

	// Issue performs issue API calls
	Issue IssueAPI
}

// Execute applies a result to the issue and returns the process exit code.
// The labels of every other result are removed best effort first, so at
// most one result label is ever present.
func (n Notifier) Execute(res Result, values map[string]string) int {
	n.Logger.Infof("run result: %s", res)

	for _, other := range Results {
		if other == res {
			continue
		}

		if err := n.Issue.RemoveLabel(other.LabelName()); err != nil {
			// Removal is best effort, the label usually is not present
			n.Logger.Debugf("failed to remove label %s: %s",
				other.LabelName(), err.Error())
		}
	}

	if err := n.Issue.AddLabels([]string{res.LabelName()}); err != nil {
		n.Logger.Errorf("failed to add result label: %s", err.Error())
		return 1
	}

	comment, err := n.Renderer.Render(res, values)
	if err != nil {
		n.Logger.Errorf("failed to render result comment: %s", err.Error())
		return 1
	}

	n.Logger.Infof("create comment: %s", comment)

	if err := n.Issue.CreateComment(comment); err != nil {
		n.Logger.Errorf("failed to create result comment: %s", err.Error())
		return 1
	}

	return res.ExitCode()
}
