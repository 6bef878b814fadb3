package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bingbr/bard/internal/storage/logs"
)

func (db *Database) InsertLog(ctx context.Context, entry logs.Entry) error {
	if entry.Time.IsZero() {
		entry.Time = time.Now().UTC()
	}
	if entry.Attrs == nil {
		entry.Attrs = map[string]any{}
	}
	payload, err := json.Marshal(entry.Attrs)
	if err != nil {
		return fmt.Errorf("marshal log attrs: %w", err)
	}
	_, err = db.exec(ctx, "insert log entry", insertLogSQL, entry.Time, entry.Level, entry.Message, payload)
	return err
}

// PruneLogs deletes entries logged before cutoff and reports how many went.
func (db *Database) PruneLogs(ctx context.Context, cutoff time.Time) (int64, error) {
	return db.exec(ctx, "prune bard_logs", pruneLogsSQL, cutoff)
}

const insertLogSQL = `
INSERT INTO bard_logs (logged_at, level, message, attrs)
VALUES ($1, $2, $3, $4::jsonb)
`

const pruneLogsSQL = `DELETE FROM bard_logs WHERE logged_at < $1`
