package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

// MemoryRepository хранит попытки в памяти процесса
type MemoryRepository struct {
	mu   sync.RWMutex
	subs map[string]model.Submission
}

// NewMemoryRepository создает пустой MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{subs: make(map[string]model.Submission)}
}

func (r *MemoryRepository) SaveSubmission(_ context.Context, sub model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[sub.ID]; ok {
		return nil
	}
	r.subs[sub.ID] = copySubmission(sub)
	return nil
}

func (r *MemoryRepository) GetSubmission(_ context.Context, id string) (*model.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "submission %s", id)
	}
	cp := copySubmission(sub)
	return &cp, nil
}

func (r *MemoryRepository) ListByStudent(_ context.Context, studentID string) ([]model.Submission, error) {
	return r.filter(func(s model.Submission) bool { return s.StudentID == studentID }), nil
}

func (r *MemoryRepository) ListByTest(_ context.Context, testID string) ([]model.Submission, error) {
	return r.filter(func(s model.Submission) bool { return s.TestID == testID }), nil
}

func (r *MemoryRepository) filter(keep func(model.Submission) bool) []model.Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Submission
	for _, s := range r.subs {
		if keep(s) {
			out = append(out, copySubmission(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out
}

func copySubmission(s model.Submission) model.Submission {
	answers := make(map[string]string, len(s.Answers))
	for k, v := range s.Answers {
		answers[k] = v
	}
	s.Answers = answers
	return s
}
