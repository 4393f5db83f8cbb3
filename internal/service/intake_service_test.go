package service

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

// sqlRecorder keeps the SQL gorm builds so statements can be asserted
// without a live database.
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

func TestCascadeDeleteItemOrder(t *testing.T) {
	rec := &sqlRecorder{}
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true, Logger: rec})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}

	if err := cascadeDeleteItem(db, uuid.New()); err != nil {
		t.Fatalf("cascadeDeleteItem: %v", err)
	}

	// Children before parents, the item row last.
	wantOrder := []string{
		"stock_movements",
		"return_requests",
		"borrow_requests",
		"item_clearances",
		"item_images",
		"item_sizes",
		"item_stocks",
		"items",
	}

	if len(rec.statements) != len(wantOrder) {
		t.Fatalf("recorded %d statements, want %d:\n%s",
			len(rec.statements), len(wantOrder), strings.Join(rec.statements, "\n"))
	}

	for i, table := range wantOrder {
		if !strings.HasPrefix(rec.statements[i], "DELETE FROM `"+table+"`") {
			t.Errorf("statement %d = %q, want hard delete from %s", i, rec.statements[i], table)
		}
	}

	// Return requests carry no item_id; they are keyed through the borrow
	// rows of the item.
	if !strings.Contains(rec.statements[1], "FROM `borrow_requests`") {
		t.Errorf("return_requests delete missing borrow subquery: %q", rec.statements[1])
	}
}
