package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/careerbridge/assessment/internal/assessment"
)

// SQLStore persists snapshots and results over database/sql. Works
// against both sqlite and postgres; the schema keeps answers and
// score reports as JSON blobs in TEXT columns.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	rj, err := json.Marshal(snap.Responses)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (user_id, section, responses_json, current_index, updated_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (user_id, section) DO UPDATE SET
		   responses_json=EXCLUDED.responses_json,
		   current_index=EXCLUDED.current_index,
		   updated_at=EXCLUDED.updated_at`,
		snap.UserID, string(snap.Section), string(rj), snap.CurrentIndex, snap.UpdatedAt)
	return err
}

func (s *SQLStore) GetSnapshot(ctx context.Context, userID string, section assessment.Section) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, section, responses_json, current_index, updated_at
		 FROM snapshots WHERE user_id=$1 AND section=$2`, userID, string(section))
	return scanSnapshot(row)
}

func (s *SQLStore) DeleteSnapshot(ctx context.Context, userID string, section assessment.Section) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE user_id=$1 AND section=$2`, userID, string(section))
	return err
}

func (s *SQLStore) ListSnapshots(ctx context.Context, userID string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, section, responses_json, current_index, updated_at
		 FROM snapshots WHERE user_id=$1 ORDER BY section`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var snap Snapshot
	var section, rjson string
	if err := row.Scan(&snap.UserID, &section, &rjson, &snap.CurrentIndex, &snap.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}
	snap.Section = assessment.Section(section)
	if err := json.Unmarshal([]byte(rjson), &snap.Responses); err != nil {
		snap.Responses = map[string]assessment.Answer{}
	}
	return snap, nil
}

func (s *SQLStore) PutResult(ctx context.Context, r Result) error {
	repj, err := json.Marshal(r.Report)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (id, user_id, section, report_json, time_spent_minutes, completion_pct, status, submitted_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (user_id, section) DO NOTHING`,
		r.ID, r.UserID, string(r.Section), string(repj),
		r.TimeSpentMinutes, r.CompletionPct, r.Status, r.SubmittedAt)
	return err
}

func (s *SQLStore) GetResult(ctx context.Context, userID string, section assessment.Section) (Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, section, report_json, time_spent_minutes, completion_pct, status, submitted_at
		 FROM results WHERE user_id=$1 AND section=$2`, userID, string(section))
	var r Result
	var sec, repj string
	if err := row.Scan(&r.ID, &r.UserID, &sec, &repj, &r.TimeSpentMinutes, &r.CompletionPct, &r.Status, &r.SubmittedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Result{}, ErrNotFound
		}
		return Result{}, err
	}
	r.Section = assessment.Section(sec)
	if err := json.Unmarshal([]byte(repj), &r.Report); err != nil {
		return Result{}, err
	}
	return r, nil
}
