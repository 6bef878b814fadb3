package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/bingbr/bard/internal/config"
	"github.com/bingbr/bard/internal/discord"
	"github.com/bingbr/bard/internal/discord/commands"
	"github.com/bingbr/bard/internal/storage/logs"
	"github.com/bingbr/bard/internal/storage/postgres"
	"github.com/bingbr/bard/riot"
)

const (
	dbTimeout             = 5 * time.Second
	httpTimeout           = 20 * time.Second
	riotValidationTimeout = 10 * time.Second
	assetVersionTimeout   = 10 * time.Second
	logRetention          = 14 * 24 * time.Hour
	logPruneInterval      = 24 * time.Hour
)

func Run(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Setup Database
	db, closeDB, err := connectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer closeDB()
	var sink logs.Sink
	if db != nil {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("init log schema: %w", err)
		}
		sink = db
	}

	// Setup Logger and Riot client
	logger := setupLogger(cfg, sink)
	client, err := newRiotClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if err := validateRiotAPIKeyOnStartup(ctx, client, logger); err != nil {
		return err
	}

	commands.ConfigureRuntime(commands.Runtime{Client: client})
	bot, err := discord.NewBot(cfg.DiscordToken, cfg.GuildID, cfg.IsDev,
		discord.WithRegistry(discord.NewRegistry(commands.All()...)),
		discord.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	// Background Services
	bgCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if db != nil {
		goSafe(logger, "prune_logs", func() {
			runLogPruning(bgCtx, db, logger)
		})
	}
	return bot.Run(ctx)
}

// newRiotClient wires the HTTP transport, the optional rate limiter and the
// asset version into a client for the configured home region.
func newRiotClient(ctx context.Context, cfg config.Config, logger *slog.Logger) (*riot.Client, error) {
	httpClient := &http.Client{Timeout: httpTimeout}
	var doer riot.Doer = httpClient

	limits, loaded, err := riot.LoadRateLimitConfig(cfg.RateLimitCfg)
	if err != nil {
		return nil, fmt.Errorf("configure riot rate limits: %w", err)
	}
	if loaded {
		limited, err := riot.NewRateLimitedDoer(doer, limits)
		if err != nil {
			return nil, fmt.Errorf("configure riot rate limits: %w", err)
		}
		doer = limited
		logger.Info("Riot rate limits configured", "path", cfg.RateLimitCfg, "endpoints", len(limits.Endpoints))
	}

	settings := riot.DefaultSettings(cfg.RiotAPIKey, cfg.RiotRegion)
	settings.AssetVersion = resolveAssetVersion(ctx, cfg.AssetVersion, httpClient, logger)

	client, err := riot.NewClient(settings, riot.WithDoer(doer), riot.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create riot client: %w", err)
	}
	logger.Info("Riot client ready", "region", client.Region(), "assetVersion", client.AssetVersion())
	return client, nil
}

// resolveAssetVersion returns the pinned version, or the newest one when
// asked for "latest". A failed lookup keeps the built-in default. The lookup
// goes straight to Data Dragon, outside the API rate limiter.
func resolveAssetVersion(ctx context.Context, configured string, doer riot.Doer, logger *slog.Logger) string {
	if configured != config.LatestAssetVersion {
		return configured
	}
	lookupCtx, cancel := context.WithTimeout(ctx, assetVersionTimeout)
	defer cancel()
	version, err := riot.FetchLatestAssetVersion(lookupCtx, doer)
	if err != nil {
		logger.Warn("Failed to resolve latest asset version; using default", "default", riot.DefaultAssetVersion, "error", err)
		return ""
	}
	return version
}

func validateRiotAPIKeyOnStartup(ctx context.Context, client *riot.Client, logger *slog.Logger) error {
	if client == nil {
		return fmt.Errorf("validate riot api key: client is nil")
	}
	checkCtx, cancel := context.WithTimeout(ctx, riotValidationTimeout)
	defer cancel()
	if _, err := client.ChampionsFreeList(checkCtx); err != nil {
		logger.Error("Riot API key validation failed", "region", client.Region(), "error", err)
		return fmt.Errorf("validate riot api key: %w", err)
	}
	logger.Info("Riot API key validated", "region", client.Region())
	return nil
}

func connectDB(ctx context.Context, url string) (*postgres.Database, func(), error) {
	if url == "" {
		return nil, func() {}, nil
	}
	// Retry logic to handle transient connection issues at startup, such as the database not being ready yet.
	var lastErr error
	for i := range 3 {
		if i > 0 {
			timer := time.NewTimer(2 * time.Second)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, nil, fmt.Errorf("database connection canceled: %w", ctx.Err())
			case <-timer.C:
			}
		}
		tCtx, cancel := context.WithTimeout(ctx, dbTimeout)
		pool, err := postgres.NewPool(tCtx, url)
		cancel()

		if err == nil {
			return postgres.NewDB(pool), pool.Close, nil
		}
		lastErr = err
	}
	return nil, nil, fmt.Errorf("database connection failed after retries: %w", lastErr)
}

func setupLogger(cfg config.Config, sink logs.Sink) *slog.Logger {
	logger := slog.New(newLogHandler(cfg, os.Stderr, sink))
	slog.SetDefault(logger)
	if cfg.IsDev {
		logger.Info("Development mode enabled")
	}
	return logger
}

func newLogHandler(cfg config.Config, w io.Writer, sink logs.Sink) slog.Handler {
	var handler slog.Handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel})
	if sink != nil {
		handler = slog.NewMultiHandler(handler, logs.NewHandler(sink, slog.LevelDebug, 2*time.Second))
	}
	return handler
}

type logPruner interface {
	PruneLogs(ctx context.Context, cutoff time.Time) (int64, error)
}

// runLogPruning deletes expired log rows at startup and then once a day.
func runLogPruning(ctx context.Context, db logPruner, logger *slog.Logger) {
	pruneLogs(ctx, db, logger, time.Now())

	ticker := time.NewTicker(logPruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			pruneLogs(ctx, db, logger, now)
		}
	}
}

func pruneLogs(ctx context.Context, db logPruner, logger *slog.Logger, now time.Time) {
	pruneCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()
	removed, err := db.PruneLogs(pruneCtx, now.Add(-logRetention))
	if err != nil {
		logger.Warn("Failed to prune logs", "error", err)
		return
	}
	if removed > 0 {
		logger.Info("Pruned logs", "removed", removed)
	}
}

func goSafe(logger *slog.Logger, task string, fn func()) {
	if logger == nil {
		logger = slog.Default()
	}
	task = strings.TrimSpace(task)
	if task == "" {
		task = "unnamed"
	}
	if fn == nil {
		logger.Error("Background task not started: nil func", "task", task)
		return
	}

	taskLogger := logger.With("task", task)
	go func() {
		startedAt := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				taskLogger.Error("Background task panicked", "panic", recovered, "elapsed", time.Since(startedAt), "stack", string(debug.Stack()))
			}
		}()
		fn()
	}()
}
