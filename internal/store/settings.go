package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// SettingsRepo is a string key/value table.
type SettingsRepo struct {
	drv *entsql.Driver
}

func (r *SettingsRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// Get returns the value stored under key and whether it exists.
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := r.builder().
		Select(settingsValue.Name).
		From(entsql.Table(settingsTable)).
		Where(entsql.EQ(settingsKey.Name, key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return "", false, fmt.Errorf("query setting %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", false, fmt.Errorf("query setting %q: %w", key, err)
		}
		return "", false, nil
	}

	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan setting %q: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value under key.
func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	query, args := r.builder().
		Insert(settingsTable).
		Columns(settingsKey.Name, settingsValue.Name, settingsUpdatedAt.Name).
		Values(key, value, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns(settingsKey.Name),
			entsql.ResolveWithNewValues(),
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("store setting %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	query, args := r.builder().
		Delete(settingsTable).
		Where(entsql.EQ(settingsKey.Name, key)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}
