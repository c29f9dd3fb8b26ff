package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/IT-Nick/testportal/internal/infra/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS tests (
	id                 TEXT PRIMARY KEY,
	title              TEXT NOT NULL DEFAULT '',
	description        TEXT NOT NULL DEFAULT '',
	time_limit_minutes INTEGER NOT NULL,
	status             TEXT NOT NULL,
	author_id          TEXT NOT NULL DEFAULT '',
	questions          JSONB NOT NULL DEFAULT '[]',
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS submissions (
	id                 TEXT PRIMARY KEY,
	test_id            TEXT NOT NULL REFERENCES tests (id),
	student_id         TEXT NOT NULL,
	answers            JSONB NOT NULL DEFAULT '{}',
	time_spent_seconds INTEGER NOT NULL,
	timed_out          BOOLEAN NOT NULL DEFAULT FALSE,
	submitted_at       TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS submissions_student_idx ON submissions (student_id);
CREATE INDEX IF NOT EXISTS submissions_test_idx ON submissions (test_id);
`

// InitDatabase устанавливает подключение к базе данных и создает таблицы
func InitDatabase(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*pgxpool.Pool, error) {
	const op = "app.InitDatabase"

	connConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, errors.Wrapf(err, "%s: failed to parse database config", op)
	}

	db, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: failed to create database pool", op)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "%s: failed to ping database", op)
	}

	if _, err := db.Exec(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "%s: failed to apply schema", op)
	}

	log.Info("database connected successfully")
	return db, nil
}
