package historical

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"spotclear/internal/logger"
)

// Cache is a minimal read-through SQLite cache keyed by (interval_id,
// table_name), storing each input table as a JSON blob. It never
// interprets the blob; internal/model is the only place that gives these
// bytes meaning.
type Cache struct {
	sql *sql.DB
}

// OpenCache opens (or creates) the SQLite cache at path and runs its single
// migration.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("historical: open cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("historical: ping cache: %w", err)
	}
	c := &Cache{sql: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("historical: migrate cache: %w", err)
	}
	logger.Success("HISTORICAL", "opened cache %s", path)
	return c, nil
}

func (c *Cache) migrate() error {
	_, err := c.sql.Exec(`
		CREATE TABLE IF NOT EXISTS input_table_cache (
			interval_id TEXT NOT NULL,
			table_name  TEXT NOT NULL,
			payload     TEXT NOT NULL,
			fetched_at  TEXT NOT NULL,
			PRIMARY KEY (interval_id, table_name)
		)`)
	return err
}

// Close closes the underlying connection.
func (c *Cache) Close() error {
	return c.sql.Close()
}

// Get unmarshals a cached table into dest, reporting whether it was
// present.
func (c *Cache) Get(intervalID, table string, dest interface{}) (bool, error) {
	var payload string
	err := c.sql.QueryRow(
		`SELECT payload FROM input_table_cache WHERE interval_id = ? AND table_name = ?`,
		intervalID, table,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("historical: cache read %s/%s: %w", intervalID, table, err)
	}
	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		return false, fmt.Errorf("historical: cache decode %s/%s: %w", intervalID, table, err)
	}
	return true, nil
}

// Put stores v as the cached payload for (intervalID, table).
func (c *Cache) Put(intervalID, table string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("historical: cache encode %s/%s: %w", intervalID, table, err)
	}
	_, err = c.sql.Exec(
		`INSERT INTO input_table_cache (interval_id, table_name, payload, fetched_at)
		 VALUES (?, ?, ?, datetime('now'))
		 ON CONFLICT (interval_id, table_name) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		intervalID, table, string(payload),
	)
	if err != nil {
		return fmt.Errorf("historical: cache write %s/%s: %w", intervalID, table, err)
	}
	return nil
}
