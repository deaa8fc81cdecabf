package quota

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
)

type stubExecutor struct {
	rec     domain.QuotaRecord
	err     error
	queries []string
	args    []any
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.queries = append(s.queries, query)
	s.args = args
	return pgconn.CommandTag{}, s.err
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	s.queries = append(s.queries, query)
	s.args = args
	return stubRow{rec: s.rec, err: s.err}
}

type stubRow struct {
	rec domain.QuotaRecord
	err error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != 2 {
		return errors.New("unexpected dest count")
	}
	*(dest[0].(*int)) = r.rec.Remaining
	*(dest[1].(*string)) = r.rec.LastResetDate
	return nil
}

func TestPostgresStoreLoad(t *testing.T) {
	exec := &stubExecutor{rec: domain.QuotaRecord{Remaining: 3, LastResetDate: "2024-05-01"}}
	store := NewPostgresStore(exec)

	rec, found, err := store.Load(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !found || rec.Remaining != 3 || rec.LastResetDate != "2024-05-01" {
		t.Fatalf("Load = %+v found=%v", rec, found)
	}
	if exec.args[0] != "a@x.com" {
		t.Fatalf("identity arg = %v", exec.args[0])
	}
}

func TestPostgresStoreLoadNoRows(t *testing.T) {
	store := NewPostgresStore(&stubExecutor{err: pgx.ErrNoRows})

	_, found, err := store.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if found {
		t.Fatal("expected found=false")
	}
}

func TestPostgresStoreSaveAndSchema(t *testing.T) {
	exec := &stubExecutor{}
	store := NewPostgresStore(exec)
	ctx := context.Background()

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}
	if err := store.Save(ctx, "", domain.QuotaRecord{Remaining: 1, LastResetDate: "2024-05-01"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if len(exec.queries) != 2 || !strings.Contains(exec.queries[1], "on conflict (identity)") {
		t.Fatalf("unexpected queries: %v", exec.queries)
	}
	if exec.args[0] != "anonymous" || exec.args[1] != 1 || exec.args[2] != "2024-05-01" {
		t.Fatalf("unexpected args: %v", exec.args)
	}
}
