package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/AliceBotProject/alicebot-store/catalog"
	"github.com/AliceBotProject/alicebot-store/config"
	"github.com/AliceBotProject/alicebot-store/event"
	"github.com/AliceBotProject/alicebot-store/issues"
	"github.com/AliceBotProject/alicebot-store/parsing"
	"github.com/AliceBotProject/alicebot-store/pipeline"
	"github.com/AliceBotProject/alicebot-store/publish"
	"github.com/AliceBotProject/alicebot-store/result"
	"github.com/AliceBotProject/alicebot-store/validation"

	"github.com/Noah-Huppert/golog"
)

func main() {
	// {{{1 Context
	ctx, ctxCancel := context.WithCancel(context.Background())

	// signals holds signals received by process
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)

	go func() {
		<-signals

		ctxCancel()
	}()

	// {{{1 Logger
	logger := golog.NewStdLogger("store-bot")

	// {{{1 Configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("failed to load configuration: %s", err.Error())
	}

	// {{{1 Event context
	eventCtx, err := event.NewContext(cfg)
	if err != nil {
		logger.Fatalf("failed to load event context: %s", err.Error())
	}

	repo, err := eventCtx.Repo()
	if err != nil {
		logger.Fatalf("failed to resolve repository: %s", err.Error())
	}

	// {{{1 GitHub API client
	gh, err := issues.NewGitHubClient(ctx, cfg.Token, cfg.APIURL)
	if err != nil {
		logger.Fatalf("failed to create GitHub client: %s", err.Error())
	}

	issueClient := issues.Client{
		Ctx:    ctx,
		Logger: logger.GetChild("issues"),
		GH:     gh,
		Repo:   repo,
		Number: eventCtx.Issue.GetNumber(),
	}

	// {{{1 Notifier
	renderer, err := result.NewRenderer()
	if err != nil {
		logger.Fatalf("failed to load comment templates: %s", err.Error())
	}

	notifier := result.Notifier{
		Logger:   logger.GetChild("notifier"),
		Renderer: renderer,
		Issue:    issueClient,
	}

	// {{{1 Pipeline
	runPipeline := &pipeline.Pipeline{
		Ctx:      ctx,
		Logger:   logger.GetChild("pipeline"),
		EventCtx: eventCtx,
		Parser:   parsing.NewSubmissionParser(parsing.NewGoldmarkExtractor()),
		Validator: validation.Validator{
			Logger: logger.GetChild("validation"),
			Index:  validation.PyPIIndex{},
			Sandbox: validation.ExecSandboxTester{
				Logger: logger.GetChild("sandbox"),
			},
		},
		Store: catalog.Store{
			Logger: logger.GetChild("catalog"),
		},
		Publisher: publish.Publisher{
			Ctx:    ctx,
			Logger: logger.GetChild("publish"),
			Git: publish.ExecGitRunner{
				Logger: logger.GetChild("git"),
			},
			PRs:   issueClient,
			Actor: cfg.Actor,
		},
		Issue: issueClient,
		Now:   time.Now(),
	}

	logger.Infof("start handle issue #%d", eventCtx.Issue.GetNumber())

	outcome := runPipeline.Run()

	if outcome.SkipNotify {
		logger.Info("done")
		os.Exit(0)
	}

	os.Exit(notifier.Execute(outcome.Result, outcome.Values))
}
