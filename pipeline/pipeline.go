package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/AliceBotProject/alicebot-store/catalog"
	"github.com/AliceBotProject/alicebot-store/event"
	"github.com/AliceBotProject/alicebot-store/models"
	"github.com/AliceBotProject/alicebot-store/parsing"
	"github.com/AliceBotProject/alicebot-store/publish"
	"github.com/AliceBotProject/alicebot-store/result"
	"github.com/AliceBotProject/alicebot-store/validation"

	"github.com/Noah-Huppert/golog"
)

// ackComment is posted when an issue is opened, before validation starts
const ackComment = "感谢你的提交。\n\n自动验证正在进行中。"

// ackReaction is added to the triggering comment of an issue comment event
const ackReaction = "rocket"

// duplicateComment is posted instead of publishing when an open pull
// request for the issue already exists
const duplicateComment = "存在未关闭的 Pull Request。\n\n请等待之前的 Pull Request 完成。"

// IssueAPI is the slice of the issue API client the pipeline needs
type IssueAPI interface {
	// CreateComment posts a comment on the issue
	CreateComment(body string) error

	// CreateCommentReaction adds a reaction to a comment on the issue
	CreateCommentReaction(commentID int64, content string) error
}

// Outcome is what a run leaves for the notifier
type Outcome struct {
	// Result reached by the run
	Result result.Result

	// Values are the named values for the result's comment template
	Values map[string]string

	// SkipNotify is true when the run short circuited because an open
	// pull request for the issue already exists. The issue received a
	// plain comment instead of a result, and the process exits zero.
	SkipNotify bool
}

// Pipeline sequences one run: acknowledge, parse, validate, store, then
// publish. The first failing stage short circuits to its result.
type Pipeline struct {
	// Ctx is the run context
	Ctx context.Context

	// Logger logs pipeline progress
	Logger golog.Logger

	// EventCtx is the snapshot of the triggering event
	EventCtx *event.Context

	// Parser builds submissions from issue titles and bodies
	Parser *parsing.SubmissionParser

	// Validator confirms submissions reference real, loadable packages
	Validator validation.Validator

	// Store merges submissions into the catalog files
	Store catalog.Store

	// Publisher turns catalog changes into pull requests
	Publisher publish.Publisher

	// Issue performs issue API calls
	Issue IssueAPI

	// Now is the timestamp recorded on the submission
	Now time.Time
}

// Run executes the pipeline and returns its outcome. Run never returns an
// error and never panics: any fault becomes a terminal result for the
// notifier to apply.
func (p *Pipeline) Run() (outcome Outcome) {
	defer func() {
		if panicValue := recover(); panicValue != nil {
			p.Logger.Errorf("recovered from panic: %v", panicValue)

			outcome = Outcome{
				Result: result.UnexpectedError,
				Values: map[string]string{
					"exception": fmt.Sprintf("%v", panicValue),
				},
			}
		}
	}()

	p.acknowledge()

	issueNumber := p.EventCtx.Issue.GetNumber()
	title := p.EventCtx.Issue.GetTitle()

	// Parse
	p.Logger.Info("start parse issue")

	submission, err := p.Parser.ParseSubmission(title,
		p.EventCtx.Issue.GetBody(), p.Now)
	if err != nil {
		return Outcome{
			Result: result.ParseFailed,
			Values: map[string]string{"exception": userError(err)},
		}
	}

	// Validate
	p.Logger.Info("start validation")

	validateInfo, err := p.Validator.Validate(p.Ctx, submission)
	if err != nil {
		return Outcome{
			Result: result.ValidationFailed,
			Values: map[string]string{"exception": err.Error()},
		}
	}

	// Update data
	p.Logger.Info("start update data")

	if err := p.Store.Upsert(submission); err != nil {
		return Outcome{
			Result: result.UnexpectedError,
			Values: map[string]string{"exception": err.Error()},
		}
	}

	// Publish, unless an open pull request for this issue already exists
	hasOpen, err := p.Publisher.HasOpenPullRequest(issueNumber)
	if err != nil {
		return Outcome{
			Result: result.UnexpectedError,
			Values: map[string]string{"exception": err.Error()},
		}
	}

	if hasOpen {
		p.Logger.Info("unclosed pull request already exists")

		if err := p.Issue.CreateComment(duplicateComment); err != nil {
			p.Logger.Errorf("failed to comment about existing pull "+
				"request: %s", err.Error())
		}

		return Outcome{SkipNotify: true}
	}

	baseBranch, err := p.EventCtx.DefaultBranch()
	if err != nil {
		return Outcome{
			Result: result.UnexpectedError,
			Values: map[string]string{"exception": err.Error()},
		}
	}

	p.Logger.Info("create pull request")

	prURL, err := p.Publisher.Publish(issueNumber, baseBranch, title,
		catalogFiles())
	if err != nil {
		return Outcome{
			Result: result.UnexpectedError,
			Values: map[string]string{"exception": err.Error()},
		}
	}

	return Outcome{
		Result: result.ValidationSuccess,
		Values: map[string]string{
			"pull_request_url": prURL,
			"validate_info":    validateInfo,
		},
	}
}

// acknowledge tells the submitter the run started. Failures are logged but
// never stop the pipeline.
func (p *Pipeline) acknowledge() {
	switch p.EventCtx.EventName {
	case event.EventNameIssues:
		if err := p.Issue.CreateComment(ackComment); err != nil {
			p.Logger.Errorf("failed to acknowledge issue: %s", err.Error())
		}
	case event.EventNameIssueComment:
		err := p.Issue.CreateCommentReaction(p.EventCtx.Comment.GetID(), ackReaction)
		if err != nil {
			p.Logger.Errorf("failed to acknowledge comment: %s", err.Error())
		}
	}
}

// catalogFiles returns every catalog file name, the fixed set of files
// staged for the publish commit
func catalogFiles() []string {
	files := []string{}

	for _, kind := range models.Kinds {
		files = append(files, kind.CatalogFile())
	}

	return files
}

// userError prefers the submitter facing form of a parse error
func userError(err error) string {
	if parseErr, ok := err.(parsing.ParseError); ok {
		return parseErr.UserError()
	}

	return err.Error()
}
