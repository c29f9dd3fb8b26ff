package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

// ErrNotFound тест не найден
var ErrNotFound = errors.New("test not found")

// TestRepository репозиторий для работы с тестами в PostgreSQL.
// Вопросы хранятся одним jsonb-документом вместе с тестом.
type TestRepository struct {
	db *pgxpool.Pool
}

// NewTestRepository создает новый экземпляр TestRepository
func NewTestRepository(db *pgxpool.Pool) *TestRepository {
	return &TestRepository{db: db}
}

// SaveTest создает или перезаписывает тест
func (r *TestRepository) SaveTest(ctx context.Context, test model.Test) error {
	questions, err := json.Marshal(test.Questions)
	if err != nil {
		return errors.Wrap(err, "failed to encode questions")
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO tests (id, title, description, time_limit_minutes, status, author_id, questions, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			time_limit_minutes = EXCLUDED.time_limit_minutes,
			status = EXCLUDED.status,
			author_id = EXCLUDED.author_id,
			questions = EXCLUDED.questions,
			updated_at = EXCLUDED.updated_at`,
		test.ID, test.Title, test.Description, test.TimeLimitMinutes, string(test.Status), test.AuthorID, questions, test.UpdatedAt)
	if err != nil {
		return errors.Wrapf(err, "failed to save test %s", test.ID)
	}
	return nil
}

// GetTest получает тест по id
func (r *TestRepository) GetTest(ctx context.Context, id string) (*model.Test, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, title, description, time_limit_minutes, status, author_id, questions, updated_at
		FROM tests WHERE id = $1`, id)
	test, err := scanTest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "test %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get test %s", id)
	}
	return test, nil
}

// ListTests возвращает все тесты, последние измененные первыми
func (r *TestRepository) ListTests(ctx context.Context) ([]model.Test, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, description, time_limit_minutes, status, author_id, questions, updated_at
		FROM tests ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query tests")
	}
	defer rows.Close()

	var tests []model.Test
	for rows.Next() {
		test, err := scanTest(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan test")
		}
		tests = append(tests, *test)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate over rows")
	}
	return tests, nil
}

func scanTest(row pgx.Row) (*model.Test, error) {
	var (
		test      model.Test
		status    string
		questions []byte
		updatedAt time.Time
	)
	if err := row.Scan(&test.ID, &test.Title, &test.Description, &test.TimeLimitMinutes,
		&status, &test.AuthorID, &questions, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questions, &test.Questions); err != nil {
		return nil, errors.Wrap(err, "failed to decode questions")
	}
	test.Status = model.Status(status)
	test.UpdatedAt = updatedAt
	return &test, nil
}
