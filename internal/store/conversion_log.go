package store

import (
	"encoding/json"
	"fmt"
)

// ConversionLog one conversion run's metadata. Only run metadata is
// recorded; the schedules themselves are never persisted.
type ConversionLog struct {
	ID           int64    `json:"id"`
	RunID        string   `json:"runId"`
	Department   string   `json:"department"`
	InputFiles   string   `json:"inputFiles"`
	Year         int      `json:"year"`
	Month        int      `json:"month"`
	Records      int      `json:"records"`
	Warnings     []string `json:"warnings"`
	Status       string   `json:"status"` // ok / error
	ErrorKind    string   `json:"errorKind,omitempty"`
	ErrorMessage string   `json:"errorMessage,omitempty"`
	CreatedAt    string   `json:"createdAt"`
}

// InsertConversionLog records one finished run.
func (s *Store) InsertConversionLog(log ConversionLog) (int64, error) {
	warnings, err := json.Marshal(log.Warnings)
	if err != nil {
		return 0, fmt.Errorf("failed to encode warnings: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO conversion_logs
			(run_id, department, input_files, year, month, records, warnings, status, error_kind, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, log.RunID, log.Department, log.InputFiles, log.Year, log.Month,
		log.Records, string(warnings), log.Status, log.ErrorKind, log.ErrorMessage)
	if err != nil {
		return 0, fmt.Errorf("failed to insert conversion log: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get conversion log id: %w", err)
	}
	return id, nil
}

// ListConversionLogs returns the most recent runs, newest first.
func (s *Store) ListConversionLogs(limit int) ([]ConversionLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, run_id, department, input_files, year, month, records, warnings, status, error_kind, error_message, created_at
		FROM conversion_logs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversion logs: %w", err)
	}
	defer rows.Close()

	logs := make([]ConversionLog, 0, limit)
	for rows.Next() {
		var log ConversionLog
		var warnings string
		if err := rows.Scan(&log.ID, &log.RunID, &log.Department, &log.InputFiles,
			&log.Year, &log.Month, &log.Records, &warnings,
			&log.Status, &log.ErrorKind, &log.ErrorMessage, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversion log: %w", err)
		}
		if err := json.Unmarshal([]byte(warnings), &log.Warnings); err != nil {
			log.Warnings = nil
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}
