package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

// MemoryRepository хранит тесты в памяти процесса
type MemoryRepository struct {
	mu    sync.RWMutex
	tests map[string]model.Test
}

// NewMemoryRepository создает пустой MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tests: make(map[string]model.Test)}
}

func (r *MemoryRepository) SaveTest(_ context.Context, test model.Test) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tests[test.ID] = test.Clone()
	return nil
}

func (r *MemoryRepository) GetTest(_ context.Context, id string) (*model.Test, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	test, ok := r.tests[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "test %s", id)
	}
	cp := test.Clone()
	return &cp, nil
}

func (r *MemoryRepository) ListTests(_ context.Context) ([]model.Test, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tests := make([]model.Test, 0, len(r.tests))
	for _, t := range r.tests {
		tests = append(tests, t.Clone())
	}
	sort.Slice(tests, func(i, j int) bool {
		if !tests[i].UpdatedAt.Equal(tests[j].UpdatedAt) {
			return tests[i].UpdatedAt.After(tests[j].UpdatedAt)
		}
		return tests[i].ID < tests[j].ID
	})
	return tests, nil
}
