package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const runColumns = `id, node_id, status, params, rows_in, rows_out, started_at, completed_at, error`

// CreateRun records the start of a node run.
func (s *SQLiteStore) CreateRun(nodeID string, params map[string]any, rowsIn int) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	encoded, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode run params: %w", err)
	}
	if params == nil {
		encoded = []byte("{}")
	}

	run := &Run{
		ID:        generateID(),
		NodeID:    nodeID,
		Status:    RunStatusRunning,
		Params:    params,
		RowsIn:    rowsIn,
		StartedAt: time.Now().UTC(),
	}

	s.logger.Debug("creating run", slog.String("id", run.ID), slog.String("node", nodeID))

	_, err = s.db.Exec(
		`INSERT INTO runs (id, node_id, status, params, rows_in, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.NodeID, string(run.Status), string(encoded), run.RowsIn, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun marks a run as finished with the given status.
func (s *SQLiteStore) CompleteRun(id string, status RunStatus, rowsOut int, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	var errValue sql.NullString
	if errMsg != "" {
		errValue = sql.NullString{String: errMsg, Valid: true}
	}

	res, err := s.db.Exec(
		`UPDATE runs SET status = ?, rows_out = ?, completed_at = ?, error = ? WHERE id = ?`,
		string(status), rowsOut, time.Now().UTC(), errValue, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(id string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
// A limit of zero or less returns every run.
func (s *SQLiteStore) ListRuns(limit int) ([]*Run, error) {
	return s.listRuns(`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limitArg(limit))
}

// ListRunsForNode returns the most recent runs of one node, newest first.
func (s *SQLiteStore) ListRunsForNode(nodeID string, limit int) ([]*Run, error) {
	return s.listRuns(`SELECT `+runColumns+` FROM runs WHERE node_id = ? ORDER BY started_at DESC, rowid DESC LIMIT ?`, nodeID, limitArg(limit))
}

func (s *SQLiteStore) listRuns(query string, args ...any) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	run := &Run{}
	var (
		status      string
		params      string
		completedAt sql.NullTime
		errMsg      sql.NullString
	)
	if err := sc.Scan(&run.ID, &run.NodeID, &status, &params, &run.RowsIn, &run.RowsOut,
		&run.StartedAt, &completedAt, &errMsg); err != nil {
		return nil, err
	}
	run.Status = RunStatus(status)
	if params != "" && params != "{}" {
		if err := json.Unmarshal([]byte(params), &run.Params); err != nil {
			return nil, fmt.Errorf("failed to decode run params: %w", err)
		}
	}
	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	run.Error = errMsg.String
	return run, nil
}

func limitArg(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
