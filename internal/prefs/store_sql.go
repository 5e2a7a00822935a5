package prefs

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Get(ctx context.Context, subject, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE subject=$1 AND key=$2`, subject, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLStore) Set(ctx context.Context, subject, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO preferences (subject, key, value, updated_at) VALUES ($1,$2,$3,$4)
ON CONFLICT (subject, key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		subject, key, value, time.Now().Unix())
	return err
}
