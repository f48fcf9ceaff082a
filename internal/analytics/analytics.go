package analytics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/biaslens/internal/config"
	"github.com/studiowebux/biaslens/internal/migrations"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	statsCacheTTL   = 30 * time.Second
)

// Entry is one submission. Only metadata is kept, never the input or results.
type Entry struct {
	ID           int64
	Mode         string
	Endpoint     string
	StatusCode   int // 0 when no response was received
	RequestSize  int64
	ResponseSize int64
	DurationMs   int64
	RecordCount  int
	ErrorMessage string
	Timestamp    time.Time
	ProfileName  string
}

type Stats struct {
	Mode               string
	TotalCalls         int
	SuccessCount       int
	ErrorCount         int
	NetworkErrors      int // DNS, connection refused, timeout (status code 0)
	TotalRecords       int
	TotalResponseBytes int64
	AvgDurationMs      float64
	MinDurationMs      int64
	MaxDurationMs      int64
	StatusCodes        map[int]int
	LastCalled         time.Time
}

type Manager struct {
	db    *sql.DB
	cache *statsCache
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create analytics directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to analytics database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db, cache: newStatsCache(statsCacheTTL)}, nil
}

func (m *Manager) Save(entry Entry) error {
	query := `
		INSERT INTO analytics (mode, endpoint, status_code, request_size, response_size, duration_ms, record_count, error_message, timestamp, profile_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := m.db.Exec(query,
		entry.Mode,
		entry.Endpoint,
		entry.StatusCode,
		entry.RequestSize,
		entry.ResponseSize,
		entry.DurationMs,
		entry.RecordCount,
		entry.ErrorMessage,
		entry.Timestamp.Local().Format(timestampLayout),
		entry.ProfileName,
	)
	if err != nil {
		return fmt.Errorf("failed to save analytics entry: %w", err)
	}

	m.cache.invalidateProfile(entry.ProfileName)
	return nil
}

func (m *Manager) LoadAll(profileName string, limit int) ([]Entry, error) {
	query := `
		SELECT id, mode, endpoint, status_code, request_size, response_size, duration_ms, record_count, error_message, timestamp, COALESCE(profile_name, '')
		FROM analytics
		WHERE profile_name = ? OR (profile_name IS NULL AND ? = '')
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, profileName, profileName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load all analytics: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var timestamp string
		var errorMsg sql.NullString

		err := rows.Scan(
			&e.ID,
			&e.Mode,
			&e.Endpoint,
			&e.StatusCode,
			&e.RequestSize,
			&e.ResponseSize,
			&e.DurationMs,
			&e.RecordCount,
			&errorMsg,
			&timestamp,
			&e.ProfileName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analytics entry: %w", err)
		}

		if errorMsg.Valid {
			e.ErrorMessage = errorMsg.String
		}
		e.Timestamp = parseTimestamp(timestamp)

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetStatsPerMode aggregates submissions by input mode, most recent first
func (m *Manager) GetStatsPerMode(profileName string) ([]Stats, error) {
	if cached, ok := m.cache.get(profileName); ok {
		return cached, nil
	}

	query := `
		WITH status_codes_agg AS (
			SELECT
				mode,
				json_group_object(CAST(status_code AS TEXT), count) as status_codes_json
			FROM (
				SELECT mode, status_code, COUNT(*) as count
				FROM analytics
				WHERE profile_name = ? OR (profile_name IS NULL AND ? = '')
				GROUP BY mode, status_code
			)
			GROUP BY mode
		)
		SELECT
			a.mode,
			COUNT(*) as total_calls,
			SUM(CASE WHEN a.status_code >= 200 AND a.status_code < 300 THEN 1 ELSE 0 END) as success_count,
			SUM(CASE WHEN a.status_code >= 400 THEN 1 ELSE 0 END) as error_count,
			SUM(CASE WHEN a.status_code = 0 THEN 1 ELSE 0 END) as network_errors,
			SUM(a.record_count) as total_records,
			COALESCE(SUM(a.response_size), 0) as total_response_bytes,
			AVG(a.duration_ms) as avg_duration,
			MIN(a.duration_ms) as min_duration,
			MAX(a.duration_ms) as max_duration,
			MAX(a.timestamp) as last_called,
			COALESCE(s.status_codes_json, '{}') as status_codes_json
		FROM analytics a
		LEFT JOIN status_codes_agg s ON a.mode = s.mode
		WHERE a.profile_name = ? OR (a.profile_name IS NULL AND ? = '')
		GROUP BY a.mode
		ORDER BY last_called DESC
	`

	rows, err := m.db.Query(query, profileName, profileName, profileName, profileName)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats per mode: %w", err)
	}
	defer rows.Close()

	var statsList []Stats
	for rows.Next() {
		var s Stats
		var lastCalled sql.NullString
		var statusCodesJSON string

		err := rows.Scan(
			&s.Mode,
			&s.TotalCalls,
			&s.SuccessCount,
			&s.ErrorCount,
			&s.NetworkErrors,
			&s.TotalRecords,
			&s.TotalResponseBytes,
			&s.AvgDurationMs,
			&s.MinDurationMs,
			&s.MaxDurationMs,
			&lastCalled,
			&statusCodesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}

		if lastCalled.Valid && lastCalled.String != "" {
			s.LastCalled = parseTimestamp(lastCalled.String)
		}

		s.StatusCodes = make(map[int]int)
		if statusCodesJSON != "{}" {
			var statusCodesMap map[string]int
			if err := json.Unmarshal([]byte(statusCodesJSON), &statusCodesMap); err != nil {
				return nil, fmt.Errorf("failed to unmarshal status codes: %w", err)
			}
			for codeStr, count := range statusCodesMap {
				var code int
				if _, err := fmt.Sscanf(codeStr, "%d", &code); err == nil {
					s.StatusCodes[code] = count
				}
			}
		}

		statsList = append(statsList, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	m.cache.set(profileName, statsList)
	return statsList, nil
}

// parseTimestamp reads a SQLite timestamp stored in local time
func parseTimestamp(value string) time.Time {
	t, err := time.ParseInLocation(timestampLayout, value, time.Local)
	if err == nil {
		return t
	}
	// Try RFC3339 format as fallback
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}

func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM analytics")
	if err != nil {
		return fmt.Errorf("failed to clear analytics: %w", err)
	}
	m.cache.invalidate()
	return nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
