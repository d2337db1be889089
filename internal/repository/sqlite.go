// Package store persists the append-only analysis history.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

// AnalysisStore is the persistence contract for completed analyses.
type AnalysisStore interface {
	Append(ctx context.Context, record *domain.AnalysisRecord) error
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]domain.AnalysisRecord, error)
	ListByDomain(ctx context.Context, tenantID string, dom domain.Domain, limit int) ([]domain.AnalysisRecord, error)
	Close() error
}

// SQLiteStore implements AnalysisStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ AnalysisStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens the database and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			analysis_id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			domain TEXT NOT NULL,
			specialist TEXT NOT NULL,
			query TEXT NOT NULL,
			overall_quality INTEGER NOT NULL,
			iterations INTEGER NOT NULL,
			audited_steps INTEGER NOT NULL,
			recommendations TEXT,
			execution_ms INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_tenant ON analyses(tenant_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_domain ON analyses(tenant_id, domain, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Append writes one analysis record. Records are immutable.
func (s *SQLiteStore) Append(ctx context.Context, record *domain.AnalysisRecord) error {
	recommendations, _ := json.Marshal(record.Recommendations)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (analysis_id, tenant_id, domain, specialist, query, overall_quality, iterations, audited_steps, recommendations, execution_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.AnalysisID, record.TenantID, string(record.Domain), record.Specialist, record.Query,
		record.OverallQuality, record.Iterations, record.AuditedSteps, string(recommendations),
		record.ExecutionMs, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append analysis: %w", err)
	}
	return nil
}

// ListByTenant returns a tenant's analyses, newest first.
func (s *SQLiteStore) ListByTenant(ctx context.Context, tenantID string, limit int) ([]domain.AnalysisRecord, error) {
	return s.list(ctx,
		`SELECT analysis_id, tenant_id, domain, specialist, query, overall_quality, iterations, audited_steps, recommendations, execution_ms, created_at
		 FROM analyses WHERE tenant_id = ? ORDER BY created_at DESC, analysis_id DESC`,
		[]any{tenantID}, limit)
}

// ListByDomain returns a tenant's analyses for one domain, newest first.
func (s *SQLiteStore) ListByDomain(ctx context.Context, tenantID string, dom domain.Domain, limit int) ([]domain.AnalysisRecord, error) {
	return s.list(ctx,
		`SELECT analysis_id, tenant_id, domain, specialist, query, overall_quality, iterations, audited_steps, recommendations, execution_ms, created_at
		 FROM analyses WHERE tenant_id = ? AND domain = ? ORDER BY created_at DESC, analysis_id DESC`,
		[]any{tenantID, string(dom)}, limit)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args []any, limit int) ([]domain.AnalysisRecord, error) {
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []domain.AnalysisRecord
	for rows.Next() {
		var rec domain.AnalysisRecord
		var dom string
		var recommendations sql.NullString
		if err := rows.Scan(&rec.AnalysisID, &rec.TenantID, &dom, &rec.Specialist, &rec.Query,
			&rec.OverallQuality, &rec.Iterations, &rec.AuditedSteps, &recommendations,
			&rec.ExecutionMs, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Domain = domain.Domain(dom)
		if recommendations.Valid && recommendations.String != "null" {
			if err := json.Unmarshal([]byte(recommendations.String), &rec.Recommendations); err != nil {
				return nil, fmt.Errorf("failed to decode recommendations: %w", err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
