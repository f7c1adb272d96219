package decisions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hardsub/internal/analysis"
)

// Record is one persisted scan verdict.
type Record struct {
	ID               string
	Source           string
	HasSubtitles     bool
	Confidence       float64
	Reason           string
	Conflict         bool
	ConflictSeverity string
	Uncertainty      string
	Votes            []analysis.Vote
	CreatedAt        time.Time
}

// SaveReport persists the verdict of one completed scan.
func (s *Store) SaveReport(ctx context.Context, report *analysis.Report) error {
	if report == nil {
		return errors.New("nil report")
	}
	if strings.TrimSpace(report.ScanID) == "" {
		return errors.New("report missing scan id")
	}

	votes, err := json.Marshal(report.Votes)
	if err != nil {
		return fmt.Errorf("marshal votes: %w", err)
	}

	createdAt := report.StartedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.execWithRetry(ctx, `
		INSERT INTO decisions (id, source, has_subtitles, confidence, reason, conflict, conflict_severity, uncertainty, votes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ScanID,
		report.Source,
		boolToInt(report.HasSubtitles),
		report.Confidence,
		report.Reason,
		boolToInt(report.Conflict),
		report.ConflictSeverity,
		report.Uncertainty,
		string(votes),
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

// List returns the most recent decisions, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	ctx = ensureContext(ctx)
	query := `
		SELECT id, source, has_subtitles, confidence, reason, conflict, conflict_severity, uncertainty, votes, created_at
		FROM decisions
		ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}
	return records, nil
}

// Get fetches one decision by scan id. The second return value reports
// whether the record exists.
func (s *Store) Get(ctx context.Context, id string) (Record, bool, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, has_subtitles, confidence, reason, conflict, conflict_severity, uncertainty, votes, created_at
		FROM decisions WHERE id = ?`, id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return record, true, nil
}

// Clear removes every stored decision and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, "DELETE FROM decisions")
	if err != nil {
		return 0, fmt.Errorf("clear decisions: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count cleared decisions: %w", err)
	}
	return removed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		record       Record
		hasSubtitles int
		conflict     int
		votesJSON    string
		createdAt    string
	)
	err := row.Scan(
		&record.ID,
		&record.Source,
		&hasSubtitles,
		&record.Confidence,
		&record.Reason,
		&conflict,
		&record.ConflictSeverity,
		&record.Uncertainty,
		&votesJSON,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("scan decision: %w", err)
	}

	record.HasSubtitles = hasSubtitles != 0
	record.Conflict = conflict != 0
	if votesJSON != "" {
		if err := json.Unmarshal([]byte(votesJSON), &record.Votes); err != nil {
			return Record{}, fmt.Errorf("decode votes for %s: %w", record.ID, err)
		}
	}
	if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		record.CreatedAt = parsed
	}
	return record, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
