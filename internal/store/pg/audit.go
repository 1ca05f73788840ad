package pg

import (
	"context"

	"github.com/dropDatabas3/portalgate/internal/store/core"
	"github.com/google/uuid"
)

func (s *Store) InsertAccessEvent(ctx context.Context, ev *core.AccessEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO access_events (id, user_id, resource_id, verdict, reason, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, ev.ID, string(ev.UserID), string(ev.ResourceID), ev.Verdict, ev.Reason, ev.OccurredAt)
	return err
}

func (s *Store) ListAccessEvents(ctx context.Context, f core.AccessEventFilter) ([]core.AccessEvent, error) {
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	const q = `
		SELECT id, user_id, resource_id, verdict, reason, occurred_at
		FROM access_events
		WHERE ($1 = '' OR user_id = $1)
		  AND ($2 = '' OR verdict = $2)
		ORDER BY occurred_at DESC
		LIMIT $3`

	rows, err := s.pool.Query(ctx, q, string(f.UserID), f.Verdict, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.AccessEvent
	for rows.Next() {
		var ev core.AccessEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.ResourceID, &ev.Verdict, &ev.Reason, &ev.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
