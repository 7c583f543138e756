package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"trendscribe/pkg/classify"
	"trendscribe/pkg/config"
	"trendscribe/pkg/content"
	"trendscribe/pkg/feed"
	"trendscribe/pkg/generator"
	"trendscribe/pkg/publisher"
	"trendscribe/pkg/service"
	"trendscribe/pkg/store"
	"trendscribe/pkg/trends"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" default:"trendscribe.yml" description:"config file path"`
	Debug   bool   `long:"dbg" env:"DEBUG" description:"debug mode"`
	NoColor bool   `long:"no-color" env:"NO_COLOR" description:"disable color output"`

	Trends   TrendsCommand   `command:"trends" description:"list current trend candidates"`
	Generate GenerateCommand `command:"generate" description:"generate a draft article for a topic"`
	Drafts   DraftsCommand   `command:"drafts" description:"list stored drafts"`
	Run      RunCommand      `command:"run" description:"run one full pipeline cycle"`
	Check    CheckCommand    `command:"check" description:"verify configured integrations"`
	Version  VersionCommand  `command:"version" description:"show version info"`
}

var revision = "unknown"

var opts Opts

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		setupLog(opts.Debug)
		return command.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// TrendsCommand lists trend candidates for a category
type TrendsCommand struct {
	Category string `long:"category" description:"limit to one category slug"`
}

// Execute runs the trends command
func (cmd *TrendsCommand) Execute(_ []string) error {
	app, err := newApp(opts.Config)
	if err != nil {
		return err
	}
	defer app.close()

	ctx, cancel := mainCtx()
	defer cancel()

	items, err := app.pipeline.Trending(ctx, cmd.Category)
	if err != nil {
		return fmt.Errorf("fetch trends: %w", err)
	}

	for i, item := range items {
		fmt.Printf("%2d. [%s] %s\n", i+1, item.Category, item.Title)
		if item.URL != "" {
			fmt.Printf("    %s (%s, %s)\n", item.URL, item.Source, item.PublishedAt)
		}
	}
	log.Printf("[INFO] %d trend candidates", len(items))
	return nil
}

// GenerateCommand generates one draft for an explicit topic
type GenerateCommand struct {
	Topic    string `long:"topic" required:"yes" description:"topic to write about"`
	Category string `long:"category" description:"category slug"`
	Source   string `long:"source" description:"source article URL for research"`
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(_ []string) error {
	app, err := newApp(opts.Config)
	if err != nil {
		return err
	}
	defer app.close()

	ctx, cancel := mainCtx()
	defer cancel()

	draft, err := app.pipeline.GenerateDraft(ctx, cmd.Topic, cmd.Category, cmd.Source)
	if err != nil {
		return fmt.Errorf("generate draft: %w", err)
	}

	printDraft(draft.ID, draft.Title, draft.Category, draft.AIGenerated, draft.PostLink)
	return nil
}

// DraftsCommand lists stored drafts
type DraftsCommand struct {
	Limit int `long:"limit" default:"10" description:"max drafts to list"`
}

// Execute runs the drafts command
func (cmd *DraftsCommand) Execute(_ []string) error {
	app, err := newApp(opts.Config)
	if err != nil {
		return err
	}
	defer app.close()

	ctx, cancel := mainCtx()
	defer cancel()

	drafts, err := app.store.ListDrafts(ctx, cmd.Limit)
	if err != nil {
		return fmt.Errorf("list drafts: %w", err)
	}
	for _, d := range drafts {
		status := "local"
		if d.Published() {
			status = d.PostLink
		}
		fmt.Printf("%4d  %-19s  [%s]  %s  (%s)\n",
			d.ID, d.CreatedAt.Format("2006-01-02 15:04:05"), d.Category, d.Title, status)
	}
	return nil
}

// RunCommand runs one full pipeline cycle
type RunCommand struct {
	Category string `long:"category" description:"limit trend discovery to one category slug"`
	IfDue    bool   `long:"if-due" description:"run only when the configured interval has passed"`
}

// Execute runs the run command
func (cmd *RunCommand) Execute(_ []string) error {
	app, err := newApp(opts.Config)
	if err != nil {
		return err
	}
	defer app.close()

	ctx, cancel := mainCtx()
	defer cancel()

	if cmd.IfDue {
		d, err := app.pipeline.RunIfDue(ctx, cmd.Category)
		if err != nil {
			return fmt.Errorf("pipeline run: %w", err)
		}
		if d == nil {
			log.Print("[INFO] not due yet, nothing to do")
			return nil
		}
		printDraft(d.ID, d.Title, d.Category, d.AIGenerated, d.PostLink)
		return nil
	}

	d, err := app.pipeline.Run(ctx, cmd.Category)
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}
	printDraft(d.ID, d.Title, d.Category, d.AIGenerated, d.PostLink)
	return nil
}

// CheckCommand verifies the configured integrations
type CheckCommand struct{}

// Execute runs the check command
func (cmd *CheckCommand) Execute(_ []string) error {
	app, err := newApp(opts.Config)
	if err != nil {
		return err
	}
	defer app.close()

	ctx, cancel := mainCtx()
	defer cancel()

	if app.newsAPI.Configured() {
		if err := app.newsAPI.TestConnection(ctx); err != nil {
			fmt.Printf("news search API: FAILED (%v)\n", err)
		} else {
			fmt.Println("news search API: ok")
		}
	} else {
		fmt.Println("news search API: not configured")
	}

	if app.generator.AIConfigured() {
		fmt.Println("ai generation: configured")
	} else {
		fmt.Println("ai generation: not configured, template fallback in use")
	}

	if app.publisher.Configured() {
		fmt.Println("cms publishing: configured")
	} else {
		fmt.Println("cms publishing: not configured, drafts stay local")
	}
	return nil
}

// VersionCommand shows version info
type VersionCommand struct{}

// Execute runs the version command
func (cmd *VersionCommand) Execute(_ []string) error {
	fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
	return nil
}

// app bundles the wired collaborators for one command invocation
type app struct {
	pipeline  *service.Pipeline
	store     *store.Store
	newsAPI   *trends.NewsAPIClient
	generator *generator.Service
	publisher *publisher.Client
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		log.Printf("[WARN] store close failed: %v", err)
	}
}

// newApp loads the config and wires the pipeline
func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	classifier := classify.New(cfg.Categories)
	parser := feed.NewParser(cfg.Sources.Timeout, cfg.Sources.UserAgent, classifier)
	newsAPI := trends.NewNewsAPIClient(cfg.NewsAPI.APIKey, cfg.NewsAPI.BaseURL,
		cfg.Sources.UserAgent, cfg.NewsAPI.Timeout, classifier)
	trendsFeed := trends.NewTrendsFeedClient(cfg.TrendsFeed.URL, cfg.Sources.UserAgent,
		cfg.TrendsFeed.Timeout, classifier)
	aggregator := trends.NewAggregator(parser, newsAPI, trendsFeed, trends.AggregatorConfig{
		FeedURLs:  cfg.Sources.Feeds,
		FeedLimit: cfg.Sources.FeedLimit,
	})

	gen := generator.New(generator.Config{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Endpoint:    cfg.LLM.Endpoint,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, generator.PromptSettings{
		BrandVoice:      cfg.Content.BrandVoice,
		WritingStyle:    cfg.Content.WritingStyle,
		TargetAudience:  cfg.Content.TargetAudience,
		ContentLength:   cfg.Content.ContentLength,
		IncludeExamples: cfg.Content.IncludeExamples,
		IncludeStats:    cfg.Content.IncludeStats,
		IncludeCTA:      cfg.Content.IncludeCTA,
	})

	extractor := content.NewExtractor(cfg.Content.ResearchTimeout, cfg.Content.ResearchUserAgent)
	pub := publisher.New(publisher.Config{
		BaseURL:  cfg.Publish.BaseURL,
		Username: cfg.Publish.Username,
		Password: cfg.Publish.Password,
		Timeout:  cfg.Publish.Timeout,
	}, classifier)

	st, err := store.New(store.Config{DSN: cfg.Database.DSN})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	pipeline := service.NewPipeline(aggregator, gen, extractor, pub, st, service.Config{
		UseAI:        cfg.Content.UseAI,
		Research:     cfg.Content.Research,
		Publish:      cfg.Publish.Enabled,
		AutoInterval: cfg.Auto.Interval,
	})

	return &app{pipeline: pipeline, store: st, newsAPI: newsAPI, generator: gen, publisher: pub}, nil
}

func printDraft(id int64, title, category string, ai bool, link string) {
	mode := "template"
	if ai {
		mode = "ai"
	}
	fmt.Printf("draft %d created: %q [%s, %s]\n", id, title, category, mode)
	if link != "" {
		fmt.Printf("published: %s\n", link)
	}
}

// mainCtx returns a context canceled on termination signals
func mainCtx() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	if !opts.NoColor {
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
