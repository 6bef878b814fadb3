// Command janitor prunes old bard_logs rows. It runs as a scheduled AWS
// Lambda so retention holds even while the bot is down.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/bingbr/bard/internal/storage/postgres"
)

const (
	defaultRetentionDays = 14
	pruneTimeout         = 10 * time.Second
)

func handler(ctx context.Context) (string, error) {
	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		return "no DATABASE_URL", nil
	}
	days, err := retentionDays(os.Getenv("LOG_RETENTION_DAYS"))
	if err != nil {
		return "", err
	}

	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		return "", fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	pruneCtx, cancel := context.WithTimeout(ctx, pruneTimeout)
	defer cancel()
	removed, err := postgres.NewDB(pool).PruneLogs(pruneCtx, time.Now().AddDate(0, 0, -days))
	if err != nil {
		return "", err
	}
	slog.Info("Pruned logs", "removed", removed, "retentionDays", days)
	return fmt.Sprintf("removed %d", removed), nil
}

func retentionDays(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultRetentionDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return 0, fmt.Errorf("LOG_RETENTION_DAYS %q must be a positive integer", raw)
	}
	return days, nil
}

func main() { lambda.Start(handler) }
