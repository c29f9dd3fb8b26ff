package storage

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

// Store хранилище текущих пользователей по ключу.
// Веб-интерфейс использует один ключ "user", бот ключ на каждый чат.
type Store interface {
	Get(key string) (model.User, bool)
	Set(key string, user model.User) error
	Delete(key string) error
}

// MemoryStore in-memory реализация Store
type MemoryStore struct {
	data map[string]model.User
	mu   sync.RWMutex
}

// NewMemoryStore создаёт новый MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]model.User)}
}

func (m *MemoryStore) Get(key string) (model.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.data[key]
	return user, ok
}

func (m *MemoryStore) Set(key string, user model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = user
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// JSONStore реализация, сохраняющая данные в JSON-файл
// Переживает перезапуск процесса.
type JSONStore struct {
	filename string
	mu       sync.Mutex
}

// NewJSONStore создаёт новый JSONStore с указанным файлом.
func NewJSONStore(filename string) (*JSONStore, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		if err := os.WriteFile(filename, []byte("{}"), 0644); err != nil {
			return nil, errors.Wrapf(err, "failed to create session file %s", filename)
		}
	}
	return &JSONStore{filename: filename}, nil
}

func (j *JSONStore) load() (map[string]model.User, error) {
	data, err := os.ReadFile(j.filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read session file %s", j.filename)
	}
	if len(data) == 0 {
		return make(map[string]model.User), nil
	}
	var m map[string]model.User
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "failed to decode session file")
	}
	if m == nil {
		m = make(map[string]model.User)
	}
	return m, nil
}

func (j *JSONStore) save(m map[string]model.User) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode sessions")
	}
	if err := os.WriteFile(j.filename, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write session file %s", j.filename)
	}
	return nil
}

func (j *JSONStore) Get(key string) (model.User, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return model.User{}, false
	}
	user, ok := m[key]
	return user, ok
}

func (j *JSONStore) Set(key string, user model.User) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return err
	}
	m[key] = user
	return j.save(m)
}

func (j *JSONStore) Delete(key string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return err
	}
	delete(m, key)
	return j.save(m)
}

// NewStore возвращает реализацию Store в зависимости от типа хранения.
func NewStore(storageType, filename string) (Store, error) {
	if storageType == "json" {
		return NewJSONStore(filename)
	}
	return NewMemoryStore(), nil
}
