package historical

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"spotclear/internal/model"
)

// openTestCache opens an in-memory SQLite cache (for testing only).
func openTestCache(t *testing.T) *Cache {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", ":memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("open in-memory cache: %v", err)
	}
	c := &Cache{sql: sqlDB}
	if err := c.migrate(); err != nil {
		sqlDB.Close()
		t.Fatalf("migrate: %v", err)
	}
	return c
}

func TestCache_PutGetRoundTrip(t *testing.T) {
	c := openTestCache(t)
	defer c.Close()

	rows := []model.UnitInfo{{Unit: "A", Region: "R", DispatchType: model.Generator, LossFactor: 1}}
	if err := c.Put("2026-07-31T00:00", tableUnitInfo, rows); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got []model.UnitInfo
	hit, err := c.Get("2026-07-31T00:00", tableUnitInfo, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("Get reported miss after Put")
	}
	if len(got) != 1 || got[0].Unit != "A" {
		t.Fatalf("Get returned %+v, want [{Unit:A ...}]", got)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c := openTestCache(t)
	defer c.Close()

	var got []model.UnitInfo
	hit, err := c.Get("2026-07-31T00:00", tableUnitInfo, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatal("Get reported hit on empty cache")
	}
}

func TestLoader_Load_FetchesConcurrentlyAndCaches(t *testing.T) {
	c := openTestCache(t)
	defer c.Close()

	calls := 0
	l := &Loader{
		Cache: c,
		Fetchers: Fetchers{
			UnitInfo: func(ctx context.Context, intervalID string) ([]model.UnitInfo, error) {
				calls++
				return []model.UnitInfo{{Unit: "A", Region: "R", DispatchType: model.Generator, LossFactor: 1}}, nil
			},
		},
	}

	tables, err := l.Load(context.Background(), "2026-07-31T00:00")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tables.UnitInfo) != 1 {
		t.Fatalf("Load returned %d unit_info rows, want 1", len(tables.UnitInfo))
	}

	// Second call should hit the cache, not the fetcher.
	if _, err := l.Load(context.Background(), "2026-07-31T00:00"); err != nil {
		t.Fatalf("Load (cached): %v", err)
	}
	if calls != 1 {
		t.Fatalf("fetcher called %d times, want 1 (second Load should hit cache)", calls)
	}
}
