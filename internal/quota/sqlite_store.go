package quota

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/sqlinline"
)

// SQLiteStore keeps quota records in the quota_records table of a SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the quota_records table when missing.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, sqlinline.QSQLiteCreateQuotaRecords); err != nil {
		return nil, fmt.Errorf("create quota_records: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, id domain.Identity) (domain.QuotaRecord, bool, error) {
	var rec domain.QuotaRecord
	err := s.db.QueryRowContext(ctx, sqlinline.QSQLiteSelectQuotaRecord, id.Key()).Scan(&rec.Remaining, &rec.LastResetDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.QuotaRecord{}, false, nil
		}
		return domain.QuotaRecord{}, false, err
	}
	return rec, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, id domain.Identity, rec domain.QuotaRecord) error {
	_, err := s.db.ExecContext(ctx, sqlinline.QSQLiteUpsertQuotaRecord, id.Key(), rec.Remaining, rec.LastResetDate)
	return err
}

var _ domain.QuotaRepository = (*SQLiteStore)(nil)
