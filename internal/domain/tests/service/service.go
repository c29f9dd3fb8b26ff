package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/IT-Nick/testportal/internal/domain/authoring"
	"github.com/IT-Nick/testportal/internal/domain/identity"
	"github.com/IT-Nick/testportal/internal/domain/model"
	"github.com/IT-Nick/testportal/internal/domain/taking"
	"github.com/IT-Nick/testportal/internal/domain/tests/definition"
	"github.com/IT-Nick/testportal/internal/domain/tests/repository"
)

// ErrNotPublished тест еще не опубликован
var ErrNotPublished = errors.New("test is not published")

// Repository хранилище тестов (PostgreSQL или память)
type Repository interface {
	SaveTest(ctx context.Context, test model.Test) error
	GetTest(ctx context.Context, id string) (*model.Test, error)
	ListTests(ctx context.Context) ([]model.Test, error)
}

// SessionOptions параметры запуска прохождения
type SessionOptions struct {
	TickInterval time.Duration
	Recorder     taking.Recorder
	OnSubmitted  func(sub model.Submission, err error)
}

// TestService для работы с тестами
type TestService struct {
	repo  Repository
	log   logrus.FieldLogger
	newID model.IDFunc
	now   func() time.Time
}

// NewTestService создает новый экземпляр TestService
func NewTestService(repo Repository, log logrus.FieldLogger) *TestService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &TestService{
		repo:  repo,
		log:   log,
		newID: model.NewID,
		now:   time.Now,
	}
}

// SeedSample сохраняет демонстрационный тест, если его еще нет
func (s *TestService) SeedSample(ctx context.Context) error {
	_, err := s.repo.GetTest(ctx, definition.SampleTestID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return errors.Wrap(err, "failed to check sample test")
	}
	sample := definition.Sample()
	sample.UpdatedAt = s.now()
	if err := s.repo.SaveTest(ctx, sample); err != nil {
		return errors.Wrap(err, "failed to seed sample test")
	}
	s.log.WithField("test_id", sample.ID).Info("sample test seeded")
	return nil
}

// ListPublished опубликованные тесты без правильных ответов
func (s *TestService) ListPublished(ctx context.Context) ([]model.Sheet, error) {
	tests, err := s.repo.ListTests(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tests")
	}
	sheets := make([]model.Sheet, 0, len(tests))
	for _, t := range tests {
		if t.Status == model.StatusPublished {
			sheets = append(sheets, t.Sheet())
		}
	}
	return sheets, nil
}

// ListAll все тесты для преподавателя
func (s *TestService) ListAll(ctx context.Context, p identity.Provider) ([]model.Test, error) {
	if _, err := identity.RequireRole(p, model.RoleTeacher); err != nil {
		return nil, err
	}
	tests, err := s.repo.ListTests(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tests")
	}
	return tests, nil
}

// GetTest полный тест, только для преподавателя
func (s *TestService) GetTest(ctx context.Context, p identity.Provider, id string) (*model.Test, error) {
	if _, err := identity.RequireRole(p, model.RoleTeacher); err != nil {
		return nil, err
	}
	return s.repo.GetTest(ctx, id)
}

// OpenEditor открывает редактор. Пустой testID означает новый тест.
func (s *TestService) OpenEditor(ctx context.Context, p identity.Provider, testID string) (*authoring.Editor, error) {
	user, err := identity.RequireRole(p, model.RoleTeacher)
	if err != nil {
		return nil, err
	}
	if testID == "" {
		test := model.NewTest(s.newID())
		test.AuthorID = user.ID
		return authoring.NewEditor(test, s.newID), nil
	}
	test, err := s.repo.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	return authoring.NewEditor(*test, s.newID), nil
}

// SaveEditor проверяет тест и сохраняет его со статусом status.
// Ошибка валидации возвращается как есть (*authoring.ValidationError).
func (s *TestService) SaveEditor(ctx context.Context, e *authoring.Editor, status model.Status) (model.Test, error) {
	if err := e.Save(status); err != nil {
		return model.Test{}, err
	}
	test := e.Test()
	test.UpdatedAt = s.now()
	if err := s.repo.SaveTest(ctx, test); err != nil {
		return model.Test{}, errors.Wrap(err, "failed to store test")
	}
	s.log.WithFields(logrus.Fields{"test_id": test.ID, "status": test.Status}).Info("test saved")
	return test, nil
}

// StartSession начинает прохождение опубликованного теста студентом.
// Таймер не запускается, это делает вызывающий через Session.Start.
func (s *TestService) StartSession(ctx context.Context, p identity.Provider, testID string, opts SessionOptions) (*taking.Session, error) {
	user, err := identity.RequireRole(p, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	test, err := s.repo.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test.Status != model.StatusPublished {
		return nil, errors.Wrapf(ErrNotPublished, "test %s", testID)
	}
	session, err := taking.New(test.Sheet(), taking.Config{
		StudentID:    user.ID,
		TickInterval: opts.TickInterval,
		Recorder:     opts.Recorder,
		OnSubmitted:  opts.OnSubmitted,
		Now:          s.now,
		NewID:        s.newID,
		Log:          s.log.WithField("student_id", user.ID),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to start test %s", testID)
	}
	s.log.WithFields(logrus.Fields{"test_id": testID, "student_id": user.ID}).Info("test started")
	return session, nil
}
