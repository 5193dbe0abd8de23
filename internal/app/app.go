// Package app wires one clipping run: build sources, fetch them one at a
// time, run the pipeline, post-process links and render the outputs.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deusflow/clipping/internal/config"
	"github.com/deusflow/clipping/internal/format"
	"github.com/deusflow/clipping/internal/links"
	"github.com/deusflow/clipping/internal/logger"
	"github.com/deusflow/clipping/internal/news"
	"github.com/deusflow/clipping/internal/query"
	"github.com/deusflow/clipping/internal/rss"
	"github.com/deusflow/clipping/internal/scraper"
	"github.com/deusflow/clipping/internal/telegram"
)

// FeedFetcher returns the entries of one feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL, label string) ([]rss.Entry, error)
}

// PortalScraper returns the headlines of one portal page.
type PortalScraper interface {
	Headlines(ctx context.Context, portal, pageURL string) ([]rss.Entry, error)
}

type LinkResolver interface {
	Resolve(ctx context.Context, link string) string
}

type LinkShortener interface {
	Shorten(ctx context.Context, link string) string
}

type Sender interface {
	SendMessage(ctx context.Context, text string) error
}

// Deps are the network collaborators. Nil Resolver, Shortener or Sender
// disables that step.
type Deps struct {
	Fetcher   FeedFetcher
	Scraper   PortalScraper
	Resolver  LinkResolver
	Shortener LinkShortener
	Sender    Sender
	Now       func() time.Time
}

// Options are the per-invocation inputs.
type Options struct {
	Date     string   // YYYY-MM-DD
	Last24h  bool     // window ending now instead of a reference date
	Formats  []string // formatter names, "plain" when empty
	Send     bool     // post the Telegram rendering
	NoWindow bool     // disable time filtering for this run
}

// Report is what a run produced.
type Report struct {
	RunID   string
	Result  news.Result
	Outputs []Output
}

type Output struct {
	Format string
	Text   string
}

type App struct {
	cfg  *config.Config
	deps Deps
}

// New builds an App with the real HTTP collaborators.
func New(cfg *config.Config) *App {
	deps := Deps{
		Fetcher: rss.NewFetcher(cfg.RequestTimeout),
		Scraper: scraper.New(cfg.RequestTimeout),
		Now:     time.Now,
	}
	if cfg.ResolveLinks {
		deps.Resolver = links.NewResolver(cfg.RequestTimeout)
	}
	if cfg.ShortenLinks {
		deps.Shortener = links.NewShortener(cfg.ShortenerEndpoint, cfg.RequestTimeout)
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
		deps.Sender = telegram.New(cfg.TelegramToken, cfg.TelegramChatID, cfg.RequestTimeout)
	}
	return NewWithDeps(cfg, deps)
}

func NewWithDeps(cfg *config.Config, deps Deps) *App {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &App{cfg: cfg, deps: deps}
}

// plan is the validated form of Options.
type plan struct {
	ref        time.Time // zero in last-24h mode
	window     *news.Window
	label      string
	formatters []namedFormatter
}

type namedFormatter struct {
	name string
	fn   format.Formatter
}

// prepare checks every input before any network work starts.
func (a *App) prepare(opts Options) (plan, error) {
	var p plan
	loc := a.cfg.Location()

	names := opts.Formats
	if len(names) == 0 {
		names = []string{"plain"}
	}
	for _, n := range names {
		fn, err := format.Lookup(n)
		if err != nil {
			return p, err
		}
		p.formatters = append(p.formatters, namedFormatter{name: strings.ToLower(n), fn: fn})
	}
	if opts.Last24h && opts.Date != "" {
		return p, fmt.Errorf("--date and --last24h are mutually exclusive")
	}
	if opts.Send && a.deps.Sender == nil {
		return p, fmt.Errorf("--send needs TELEGRAM_TOKEN and TELEGRAM_CHAT_ID")
	}

	var w news.Window
	if opts.Last24h {
		w = news.Last24Hours(a.deps.Now(), loc)
		p.label = w.String()
	} else {
		ref, err := config.ParseReferenceDate(opts.Date, loc)
		if err != nil {
			return p, err
		}
		clock, err := a.cfg.WindowEnd()
		if err != nil {
			return p, err
		}
		p.ref = ref
		w = news.DailyWindow(ref, clock, loc)
		p.label = ref.Format("02/01/2006")
	}
	if a.cfg.Profile.Window.On() && !opts.NoWindow {
		p.window = &w
	}
	return p, nil
}

// Sources lists the feed URLs a run would fetch.
func (a *App) Sources(opts Options) ([]query.Source, error) {
	p, err := a.prepare(opts)
	if err != nil {
		return nil, err
	}
	return query.NewBuilder(a.cfg.Profile.Locale).Build(a.cfg.Profile.QuerySets, p.ref), nil
}

// Run executes one clipping and writes every rendering to out. Source
// failures never abort it; only invalid options do.
func (a *App) Run(ctx context.Context, opts Options, out io.Writer) (*Report, error) {
	p, err := a.prepare(opts)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := logger.With("run_id", runID)
	profile := a.cfg.Profile

	pipeline := news.NewPipeline(
		news.NewNormalizer(profile.Aliases, a.cfg.Location()),
		news.NewClassifier(profile.Roster, profile.Blocklist),
		p.window,
	)
	run := pipeline.Begin()

	sources := query.NewBuilder(profile.Locale).Build(profile.QuerySets, p.ref)
	log.Info("clipping started", "label", p.label, "sources", len(sources), "window", p.window != nil)

	for i, src := range sources {
		entries, err := a.deps.Fetcher.Fetch(ctx, src.URL, feedLabel(src))
		if err != nil {
			log.Warn("source skipped", "source", src.Label, "set", src.Set, "err", err)
			run.Stats().SourceFailed()
			continue
		}
		run.Add(news.Batch{Set: src.Set, Policy: src.Policy, Entries: entries})
		log.Debug("source processed", "current", i+1, "total", len(sources), "source", src.Label, "entries", len(entries))
	}

	a.scrapePortals(ctx, log, run, p.window != nil)

	res := run.Result()
	a.postProcessLinks(ctx, res)
	log.Info("clipping finished", "stats", res.Stats)

	clip := format.New(profile.Title, p.label, format.Sections(profile.Sections), res)
	report := &Report{RunID: runID, Result: res}
	for i, f := range p.formatters {
		text := f.fn(clip)
		report.Outputs = append(report.Outputs, Output{Format: f.name, Text: text})
		if i > 0 {
			fmt.Fprintln(out)
		}
		if _, err := io.WriteString(out, text); err != nil {
			return report, fmt.Errorf("write %s output: %w", f.name, err)
		}
	}

	if opts.Send {
		if err := a.deps.Sender.SendMessage(ctx, format.Telegram(clip)); err != nil {
			log.Error("telegram delivery failed", "err", err)
			return report, fmt.Errorf("telegram delivery: %w", err)
		}
	}
	return report, nil
}

// feedLabel names the fallback outlet for items without <source>: static
// feeds use their configured name, searches rely on the items themselves.
func feedLabel(src query.Source) string {
	if src.Kind == query.KindFeed {
		return src.Label
	}
	return ""
}

// portalSet tags articles that came from portal scraping.
const portalSet = "portais"

// scrapePortals adds portal headlines. They carry no date, so they are only
// useful when the window is off.
func (a *App) scrapePortals(ctx context.Context, log *slog.Logger, run *news.Run, windowed bool) {
	portals := a.cfg.Profile.Portals
	if len(portals) == 0 || a.deps.Scraper == nil {
		return
	}
	if windowed {
		log.Debug("portal scraping skipped: entries have no publication time", "portals", len(portals))
		return
	}
	policy := news.Policy{Topical: true}
	for _, portal := range portals {
		entries, err := a.deps.Scraper.Headlines(ctx, portal.Name, portal.URL)
		if err != nil {
			log.Warn("portal skipped", "source", portal.Name, "url", portal.URL, "err", err)
			run.Stats().SourceFailed()
			continue
		}
		run.Add(news.Batch{Set: portalSet, Policy: policy, Entries: entries})
	}
}

// postProcessLinks resolves and shortens the links of the surviving
// articles in place.
func (a *App) postProcessLinks(ctx context.Context, res news.Result) {
	if a.deps.Resolver == nil && a.deps.Shortener == nil {
		return
	}
	for _, groups := range []news.Groups{res.Organization, res.General} {
		for _, list := range groups {
			for i := range list {
				if a.deps.Resolver != nil {
					list[i].Link = a.deps.Resolver.Resolve(ctx, list[i].Link)
				}
				if a.deps.Shortener != nil {
					list[i].Link = a.deps.Shortener.Shorten(ctx, list[i].Link)
				}
			}
		}
	}
}
