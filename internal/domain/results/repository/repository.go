package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

// ErrNotFound попытка не найдена
var ErrNotFound = errors.New("submission not found")

// SubmissionRepository репозиторий попыток в PostgreSQL
type SubmissionRepository struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository создает новый экземпляр SubmissionRepository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

const submissionColumns = `id, test_id, student_id, answers, time_spent_seconds, timed_out, submitted_at`

// SaveSubmission сохраняет попытку. Повторная запись с тем же id игнорируется.
func (r *SubmissionRepository) SaveSubmission(ctx context.Context, sub model.Submission) error {
	answers, err := json.Marshal(sub.Answers)
	if err != nil {
		return errors.Wrap(err, "failed to encode answers")
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO submissions (`+submissionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`,
		sub.ID, sub.TestID, sub.StudentID, answers, sub.TimeSpentSeconds, sub.TimedOut, sub.SubmittedAt)
	if err != nil {
		return errors.Wrapf(err, "failed to insert submission %s", sub.ID)
	}
	return nil
}

// GetSubmission получает попытку по id
func (r *SubmissionRepository) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	row := r.db.QueryRow(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)
	sub, err := scanSubmission(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "submission %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get submission %s", id)
	}
	return sub, nil
}

// ListByStudent попытки студента, новые первыми
func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID string) ([]model.Submission, error) {
	return r.list(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE student_id = $1 ORDER BY submitted_at DESC`, studentID)
}

// ListByTest попытки по тесту
func (r *SubmissionRepository) ListByTest(ctx context.Context, testID string) ([]model.Submission, error) {
	return r.list(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE test_id = $1 ORDER BY submitted_at DESC`, testID)
}

func (r *SubmissionRepository) list(ctx context.Context, query string, arg string) ([]model.Submission, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query submissions")
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan submission")
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate over rows")
	}
	return subs, nil
}

func scanSubmission(row pgx.Row) (*model.Submission, error) {
	var (
		sub     model.Submission
		answers []byte
	)
	if err := row.Scan(&sub.ID, &sub.TestID, &sub.StudentID, &answers,
		&sub.TimeSpentSeconds, &sub.TimedOut, &sub.SubmittedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(answers, &sub.Answers); err != nil {
		return nil, errors.Wrap(err, "failed to decode answers")
	}
	return &sub, nil
}
