package quota

import (
	"context"
	"fmt"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/infra"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/sqlinline"
)

// PostgresStore keeps quota records in Postgres through the marked query runner.
type PostgresStore struct {
	sql infra.SQLExecutor
}

func NewPostgresStore(sql infra.SQLExecutor) *PostgresStore {
	return &PostgresStore{sql: sql}
}

// EnsureSchema creates the quota_records table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.sql.Exec(ctx, sqlinline.QCreateQuotaRecords); err != nil {
		return fmt.Errorf("create quota_records: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, id domain.Identity) (domain.QuotaRecord, bool, error) {
	var rec domain.QuotaRecord
	row := s.sql.QueryRow(ctx, sqlinline.QSelectQuotaRecord, id.Key())
	if err := row.Scan(&rec.Remaining, &rec.LastResetDate); err != nil {
		if infra.IsNoRows(err) {
			return domain.QuotaRecord{}, false, nil
		}
		return domain.QuotaRecord{}, false, err
	}
	return rec, true, nil
}

func (s *PostgresStore) Save(ctx context.Context, id domain.Identity, rec domain.QuotaRecord) error {
	_, err := s.sql.Exec(ctx, sqlinline.QUpsertQuotaRecord, id.Key(), rec.Remaining, rec.LastResetDate)
	return err
}

var _ domain.QuotaRepository = (*PostgresStore)(nil)
