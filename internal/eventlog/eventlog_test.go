package eventlog_test

import (
	"context"
	"testing"

	"github.com/careerbridge/assessment/internal/db"
	"github.com/careerbridge/assessment/internal/eventlog"
)

func TestEventRepo_Append(t *testing.T) {
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })

	repo := eventlog.NewEventRepo(dbh)
	ev := eventlog.Event{
		Type:     eventlog.TypeSectionSubmitted,
		Key:      "u1|interest",
		DataJSON: `{"id":"r-1"}`,
	}
	if err := repo.Append(ctx, ev); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(ctx, ev); err != nil {
		t.Fatalf("second append: %v", err)
	}

	var seq int64
	var siteID string
	err = dbh.QueryRowContext(ctx,
		`SELECT seq, site_id FROM event_log WHERE key=$1 ORDER BY seq DESC LIMIT 1`,
		"u1|interest").Scan(&seq, &siteID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if seq < 2 {
		t.Fatalf("seq = %d, want monotonically assigned", seq)
	}
	if siteID != "local" {
		t.Fatalf("site_id = %q, want default local", siteID)
	}
}
