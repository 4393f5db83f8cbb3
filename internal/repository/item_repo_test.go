package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils/tests"
)

type sqlRecorder struct {
	statements []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface      { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.statements = append(r.statements, sql)
}

// The size reservation must carry its balance check inside the UPDATE, so two
// concurrent borrow creations cannot both pass a stale read and drive the
// counter negative.
func TestReserveSizeGuardsBalance(t *testing.T) {
	rec := &sqlRecorder{}
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true, Logger: rec})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	repo := NewItemRepo(db)

	reserved, err := repo.ReserveSize(db, uuid.New(), 3)
	if err != nil {
		t.Fatalf("ReserveSize: %v", err)
	}
	if reserved {
		t.Error("dry run reported an affected row")
	}

	if len(rec.statements) != 1 {
		t.Fatalf("recorded %d statements, want 1:\n%s",
			len(rec.statements), strings.Join(rec.statements, "\n"))
	}
	stmt := rec.statements[0]
	if !strings.HasPrefix(stmt, "UPDATE `item_sizes`") {
		t.Errorf("unexpected statement: %q", stmt)
	}
	if !strings.Contains(stmt, "available >=") {
		t.Errorf("update carries no balance guard: %q", stmt)
	}
	if !strings.Contains(stmt, "available - ") {
		t.Errorf("update does not decrement the counter: %q", stmt)
	}
}
