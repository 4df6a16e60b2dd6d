package store

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/nihongo/internal/model"
)

// timeLayout is fixed width so stored timestamps sort and compare as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// InsertResult persists a finished quiz and returns its row id.
func (s *Store) InsertResult(ctx context.Context, rec model.ResultRecord) (int64, error) {
	if rec.SessionID == "" {
		return 0, fmt.Errorf("insert result: empty session id")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_results (session_id, category, started_at, ended_at, total, correct, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		string(rec.Category),
		rec.StartedAt.UTC().Format(timeLayout),
		rec.EndedAt.UTC().Format(timeLayout),
		rec.Total,
		rec.Correct,
		rec.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("insert result: %w", err)
	}
	return res.LastInsertId()
}

// ListResults returns quiz results oldest first. An empty category matches all
// categories; since filters by end time when non-nil.
func (s *Store) ListResults(ctx context.Context, category model.Category, since *time.Time) ([]model.ResultRecord, error) {
	sinceArg := ""
	if since != nil {
		sinceArg = since.UTC().Format(timeLayout)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, category, started_at, ended_at, total, correct, score
		 FROM quiz_results
		 WHERE (? = '' OR category = ?)
		   AND (? = '' OR ended_at >= ?)
		 ORDER BY ended_at ASC, id ASC`,
		string(category), string(category), sinceArg, sinceArg)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer closeRows(rows)

	var result []model.ResultRecord
	for rows.Next() {
		var (
			rec                model.ResultRecord
			category           string
			startedAt, endedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &category, &startedAt, &endedAt,
			&rec.Total, &rec.Correct, &rec.Score); err != nil {
			return nil, fmt.Errorf("list results: %w", err)
		}
		rec.Category = model.Category(category)
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("list results: %w", err)
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, fmt.Errorf("list results: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return result, nil
}
