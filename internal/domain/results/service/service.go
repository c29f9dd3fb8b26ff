package service

import (
	"context"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/IT-Nick/testportal/internal/domain/identity"
	"github.com/IT-Nick/testportal/internal/domain/model"
)

// DefaultPassScore проходной балл в процентах
const DefaultPassScore = 60

// Repository хранилище попыток
type Repository interface {
	SaveSubmission(ctx context.Context, sub model.Submission) error
	GetSubmission(ctx context.Context, id string) (*model.Submission, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Submission, error)
	ListByTest(ctx context.Context, testID string) ([]model.Submission, error)
}

// TestSource источник тестов с правильными ответами
type TestSource interface {
	GetTest(ctx context.Context, id string) (*model.Test, error)
	ListTests(ctx context.Context) ([]model.Test, error)
}

// ResultService принимает попытки и считает результаты
type ResultService struct {
	repo      Repository
	tests     TestSource
	passScore int
	log       logrus.FieldLogger
}

// NewResultService создает новый экземпляр ResultService
func NewResultService(repo Repository, tests TestSource, passScore int, log logrus.FieldLogger) *ResultService {
	if passScore <= 0 {
		passScore = DefaultPassScore
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ResultService{repo: repo, tests: tests, passScore: passScore, log: log}
}

// Record сохраняет попытку
func (s *ResultService) Record(ctx context.Context, sub model.Submission) error {
	if err := s.repo.SaveSubmission(ctx, sub); err != nil {
		return errors.Wrap(err, "failed to save submission")
	}
	s.log.WithFields(logrus.Fields{
		"submission_id": sub.ID,
		"test_id":       sub.TestID,
		"answered":      len(sub.Answers),
		"timed_out":     sub.TimedOut,
	}).Info("submission recorded")
	return nil
}

// Grade оценивает попытку по тесту
func Grade(test model.Test, sub model.Submission) model.Result {
	res := model.Result{
		SubmissionID:     sub.ID,
		TestID:           test.ID,
		TestTitle:        test.Title,
		StudentID:        sub.StudentID,
		TotalQuestions:   len(test.Questions),
		TimeSpentSeconds: sub.TimeSpentSeconds,
		TimedOut:         sub.TimedOut,
		SubmittedAt:      sub.SubmittedAt,
		Answers:          make([]model.Answer, 0, len(test.Questions)),
	}
	for _, q := range test.Questions {
		given := sub.Answers[q.ID]
		a := model.Answer{QuestionID: q.ID, QuestionText: q.Text, Kind: q.Kind}
		if q.Kind.IsChoice() {
			correct, _ := q.CorrectOption()
			a.CorrectAnswer = correct.Text
			a.IsCorrect = given != "" && given == correct.ID
			for _, o := range q.Options() {
				if o.ID == given {
					a.UserAnswer = o.Text
				}
			}
		} else {
			a.UserAnswer = given
			a.CorrectAnswer = q.ReferenceAnswer()
			a.IsCorrect = given != "" && normalize(given) == normalize(a.CorrectAnswer)
		}
		if a.IsCorrect {
			res.CorrectCount++
		}
		res.Answers = append(res.Answers, a)
	}
	if res.TotalQuestions > 0 {
		res.Score = int(math.Round(float64(res.CorrectCount) * 100 / float64(res.TotalQuestions)))
	}
	return res
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Result оцененная попытка. Студент видит только свои попытки.
func (s *ResultService) Result(ctx context.Context, p identity.Provider, submissionID string) (*model.Result, error) {
	user := p.CurrentUser()
	if user == nil {
		return nil, identity.ErrNotAuthenticated
	}
	sub, err := s.repo.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if user.Role == model.RoleStudent && sub.StudentID != user.ID {
		return nil, errors.Wrap(identity.ErrForbidden, "submission belongs to another student")
	}
	test, err := s.tests.GetTest(ctx, sub.TestID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load test for submission %s", submissionID)
	}
	res := Grade(*test, *sub)
	return &res, nil
}

// StudentResults результаты текущего студента
func (s *ResultService) StudentResults(ctx context.Context, p identity.Provider) ([]model.Result, error) {
	user, err := identity.RequireRole(p, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	subs, err := s.repo.ListByStudent(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list submissions")
	}
	results := make([]model.Result, 0, len(subs))
	for _, sub := range subs {
		test, err := s.tests.GetTest(ctx, sub.TestID)
		if err != nil {
			s.log.WithError(err).WithField("submission_id", sub.ID).Warn("skipping submission without test")
			continue
		}
		results = append(results, Grade(*test, sub))
	}
	return results, nil
}

// TestSummaries сводка по всем тестам для преподавателя
func (s *ResultService) TestSummaries(ctx context.Context, p identity.Provider) ([]model.TestSummary, error) {
	if _, err := identity.RequireRole(p, model.RoleTeacher); err != nil {
		return nil, err
	}
	tests, err := s.tests.ListTests(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tests")
	}
	summaries := make([]model.TestSummary, 0, len(tests))
	for _, test := range tests {
		subs, err := s.repo.ListByTest(ctx, test.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list submissions for %s", test.ID)
		}
		results := make([]model.Result, len(subs))
		for i, sub := range subs {
			results[i] = Grade(test, sub)
		}
		summaries = append(summaries, Summarize(test, results, s.passScore))
	}
	return summaries, nil
}

// Summarize агрегирует результаты по одному тесту
func Summarize(test model.Test, results []model.Result, passScore int) model.TestSummary {
	sum := model.TestSummary{TestID: test.ID, TestTitle: test.Title, Participants: len(results)}
	if len(results) == 0 {
		return sum
	}
	total, passed := 0, 0
	sum.LowestScore = results[0].Score
	for _, r := range results {
		total += r.Score
		if r.Score > sum.HighestScore {
			sum.HighestScore = r.Score
		}
		if r.Score < sum.LowestScore {
			sum.LowestScore = r.Score
		}
		if r.Score >= passScore {
			passed++
		}
	}
	sum.AverageScore = float64(total) / float64(len(results))
	sum.PassRate = float64(passed) * 100 / float64(len(results))
	return sum
}
