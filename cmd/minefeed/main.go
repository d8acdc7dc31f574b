// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashwire/minefeed/internal/article"
	"github.com/hashwire/minefeed/internal/cli"
	"github.com/hashwire/minefeed/internal/config"
	"github.com/hashwire/minefeed/internal/eventregistry"
	"github.com/hashwire/minefeed/internal/filelock"
	"github.com/hashwire/minefeed/internal/gemini"
	"github.com/hashwire/minefeed/internal/httplogger"
	"github.com/hashwire/minefeed/internal/logger"
	"github.com/hashwire/minefeed/internal/relevance"
	"github.com/hashwire/minefeed/internal/rss"
	"github.com/hashwire/minefeed/internal/state"
	"github.com/hashwire/minefeed/internal/twitter"
)

// errAlreadyRunning indicates another process holds the state lock.
var errAlreadyRunning = errors.New("already running")

func main() { cli.Main(new(bot)) }

// poster publishes post texts. Implemented by [twitter.Client].
type poster interface {
	Post(ctx context.Context, text string) error
}

// summarizer produces one-sentence article summaries. Implemented by
// [gemini.Summarizer].
type summarizer interface {
	Summarize(ctx context.Context, a article.Article) (string, error)
}

type bot struct {
	init sync.Once

	// configuration
	query          string
	lang           string
	interval       time.Duration
	bootstrapCount int
	statePath      string
	pauseFile      string
	configPath     string
	rulesPath      string
	geminiModel    string
	logFile        string
	loop           bool
	dry            bool
	verbose        bool

	// credentials, resolved from the environment
	newsAPIKey   string
	twitterToken string
	geminiKey    string

	// can be replaced in tests
	httpc *http.Client
	now   func() time.Time

	// initialized by doInit
	logger     *logger.Logger
	slog       *slog.Logger
	sources    []article.Source
	poster     poster
	summarizer summarizer
	rules      *relevance.Rules
	matcher    relevance.Matcher
	state      *state.State
}

func (b *bot) Flags(fs *flag.FlagSet) {
	fs.StringVar(&b.query, "query", "", `Search phrase sent to the news API (default "bitcoin mining").`)
	fs.StringVar(&b.lang, "lang", "", "Article language code, for example eng.")
	fs.DurationVar(&b.interval, "interval", 0, "Delay between poll cycles in loop mode (default 5m).")
	fs.IntVar(&b.bootstrapCount, "bootstrap-count", 0, "Cap on posts during the very first cycle, 0 for no cap.")
	fs.StringVar(&b.statePath, "state", "", `State file location (default "minefeed-state.json").`)
	fs.StringVar(&b.pauseFile, "pause-file", "", "Pause polling while this file exists.")
	fs.StringVar(&b.configPath, "config", "", "Path to a YAML configuration file.")
	fs.StringVar(&b.rulesPath, "rules", "", "Path to a Starlark rules file.")
	fs.StringVar(&b.geminiModel, "gemini-model", "", "Summarize articles with this Gemini model (needs GEMINI_API_KEY).")
	fs.StringVar(&b.logFile, "log-file", "", "Duplicate logs to this size-rotated file.")
	fs.BoolVar(&b.loop, "loop", false, "Keep polling at the configured interval instead of running once.")
	fs.BoolVar(&b.dry, "dry-run", false, "Log what would be posted without posting; state still updates.")
	fs.BoolVar(&b.verbose, "v", false, "Enable debug logging.")
}

func (b *bot) Run(ctx context.Context, env *cli.Env) error {
	fileCfg := new(config.Config)
	if b.configPath != "" {
		cfg, err := config.Load(b.configPath)
		if err != nil {
			return fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
		}
		fileCfg = cfg
	}

	// Flags take precedence over environment variables, which take
	// precedence over the configuration file.
	b.query = cmp.Or(b.query, env.Getenv("BOT_QUERY"), fileCfg.Query, "bitcoin mining")
	b.lang = cmp.Or(b.lang, env.Getenv("BOT_ARTICLE_LANG"), fileCfg.Lang)
	b.interval = cmp.Or(b.interval, parseInterval(env.Getenv("BOT_POLL_INTERVAL")), fileCfg.Interval.Std(), 5*time.Minute)
	b.bootstrapCount = cmp.Or(b.bootstrapCount, parseInt(env.Getenv("BOT_BOOTSTRAP_COUNT")), fileCfg.BootstrapCount)
	b.statePath = cmp.Or(b.statePath, env.Getenv("BOT_STATE_PATH"), fileCfg.StatePath, "minefeed-state.json")
	b.pauseFile = cmp.Or(b.pauseFile, fileCfg.PauseFile)
	b.rulesPath = cmp.Or(b.rulesPath, fileCfg.RulesPath)
	b.geminiModel = cmp.Or(b.geminiModel, fileCfg.GeminiModel)
	b.logFile = cmp.Or(b.logFile, fileCfg.LogFile)
	b.verbose = b.verbose || strings.EqualFold(env.Getenv("BOT_LOG_LEVEL"), "debug")

	b.newsAPIKey = cmp.Or(b.newsAPIKey, env.Getenv("EVENT_REGISTRY_API_KEY"), env.Getenv("NEWSAPI_API_KEY"))
	b.twitterToken = cmp.Or(b.twitterToken, env.Getenv("TWITTER_BEARER_TOKEN"))
	b.geminiKey = cmp.Or(b.geminiKey, env.Getenv("GEMINI_API_KEY"))

	if !b.dry {
		if b.newsAPIKey == "" {
			return fmt.Errorf("%w: EVENT_REGISTRY_API_KEY is not set", cli.ErrInvalidArgs)
		}
		if b.twitterToken == "" {
			return fmt.Errorf("%w: TWITTER_BEARER_TOKEN is not set", cli.ErrInvalidArgs)
		}
	}

	var initErr error
	b.init.Do(func() { initErr = b.doInit(ctx, env, fileCfg) })
	if initErr != nil {
		return initErr
	}
	defer b.logger.Close()
	if c, ok := b.summarizer.(*gemini.Summarizer); ok {
		defer c.Close()
	}

	// Two processes sharing a state file would race on checkpoints and
	// repost articles.
	lock, err := filelock.Acquire(b.statePath+".lock", strconv.Itoa(os.Getpid())+"\n")
	if err != nil {
		if errors.Is(err, filelock.ErrAlreadyLocked) {
			return fmt.Errorf("%w: %s is held by another minefeed process", errAlreadyRunning, b.statePath+".lock")
		}
		return err
	}
	defer lock.Release()

	if !b.loop {
		if b.paused() {
			b.slog.Info("paused, skipping cycle; remove the pause file and run again", "pause_file", b.pauseFile)
			return nil
		}
		if err := b.cycle(ctx); err != nil {
			b.slog.Error("cycle failed", "error", err)
		}
		return nil
	}

	b.slog.Info("starting loop", "interval", b.interval)
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	for {
		if b.paused() {
			b.slog.Info("paused, skipping cycle", "pause_file", b.pauseFile)
		} else if err := b.cycle(ctx); err != nil {
			b.slog.Error("cycle failed", "error", err)
		}
		select {
		case <-ctx.Done():
			b.slog.Info("shutting down")
			return nil
		case <-ticker.C:
		}
	}
}

func (b *bot) doInit(ctx context.Context, env *cli.Env, fileCfg *config.Config) error {
	if b.now == nil {
		b.now = time.Now
	}

	if b.logger == nil {
		b.logger = logger.New(logger.Options{
			Out:     env.Stderr,
			File:    b.logFile,
			Verbose: b.verbose,
		})
	}
	b.slog = b.logger.Logger

	if b.httpc == nil && b.verbose {
		b.httpc = &http.Client{
			Timeout: time.Minute,
			Transport: httplogger.New(http.DefaultTransport, func(format string, args ...any) {
				b.slog.Debug(fmt.Sprintf(format, args...))
			}),
		}
	}

	b.matcher = relevance.NewMatcher(b.query)
	if b.rulesPath != "" {
		rules, err := relevance.LoadRules(b.rulesPath, b.slog)
		if err != nil {
			return fmt.Errorf("%w: loading rules: %v", cli.ErrInvalidArgs, err)
		}
		b.rules = rules
	}

	if b.sources == nil {
		b.sources = []article.Source{eventregistry.New(eventregistry.Config{
			APIKey:     b.newsAPIKey,
			Query:      b.query,
			Lang:       b.lang,
			HTTPClient: b.httpc,
			Logger:     b.slog,
		})}
		if len(fileCfg.Feeds) > 0 {
			b.sources = append(b.sources, rss.New(rss.Config{
				Feeds:      fileCfg.Feeds,
				HTTPClient: b.httpc,
				Logger:     b.slog,
			}))
		}
	}

	if b.poster == nil {
		b.poster = twitter.New(twitter.Config{
			Token:      b.twitterToken,
			HTTPClient: b.httpc,
			Logger:     b.slog,
		})
	}

	if b.summarizer == nil && b.geminiModel != "" {
		if b.geminiKey == "" {
			b.slog.Warn("GEMINI_API_KEY is not set, summaries disabled")
		} else {
			s, err := gemini.New(ctx, gemini.Config{
				APIKey: b.geminiKey,
				Model:  b.geminiModel,
				Logger: b.slog,
			})
			if err != nil {
				return fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
			}
			b.summarizer = s
		}
	}

	b.state = state.Load(b.statePath, b.slog)
	return nil
}

// paused reports whether the pause file exists.
func (b *bot) paused() bool {
	if b.pauseFile == "" {
		return false
	}
	_, err := os.Stat(b.pauseFile)
	return err == nil
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// parseInterval accepts a Go duration ("5m") or a number of seconds ("300").
func parseInterval(s string) time.Duration {
	if s == "" {
		return 0
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second
	}
	return 0
}
